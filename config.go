package pagedesk

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/eringen/pagedesk/editor"
)

// SiteConfig holds all configuration for a pagedesk site.
type SiteConfig struct {
	Name        string // Site name (default "pagedesk")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/pages.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	LoginAttempts int           // Failed logins allowed per IP in LoginWindow (default 5)
	LoginWindow   time.Duration // Sliding window for failed logins (default 1min)

	MenuCacheTTL time.Duration // Page menu cache TTL (default 5min)
	WorkspaceTTL time.Duration // Idle authoring workspaces are dropped after this (default 12h)

	Markdown bool   // Render post content as Markdown
	LogLevel string // zerolog level name (default "info")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "pagedesk"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/pages.db"
	}
	if c.MenuCacheTTL == 0 {
		c.MenuCacheTTL = 5 * time.Minute
	}
	if c.WorkspaceTTL == 0 {
		c.WorkspaceTTL = 12 * time.Hour
	}
	if c.LoginAttempts <= 0 {
		c.LoginAttempts = 5
	}
	if c.LoginWindow == 0 {
		c.LoginWindow = time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the logger built from SiteConfig.LogLevel.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.Log = l
		a.customLog = true
	}
}

// WithEditorOptions passes options to the registry of every authoring
// workspace, e.g. a fixed clock or id generator.
func WithEditorOptions(opts ...editor.RegistryOption) Option {
	return func(a *App) {
		a.editorOpts = append(a.editorOpts, opts...)
	}
}
