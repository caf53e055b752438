// Package pagedesk is a small content site with a web authoring desk. An
// administrator creates posts, images, videos, slideshows and quizzes in a
// type-specific form; visitors browse the stored pages.
//
// Users provide the templ components via the ViewFuncs struct, and pagedesk
// handles the handler logic, middleware, and database operations.
package pagedesk

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/pagedesk/display"
	"github.com/eringen/pagedesk/editor"
	"github.com/eringen/pagedesk/page"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages.
type ViewFuncs struct {
	Home           func(site SiteConfig, pages []page.Summary) templ.Component
	Page           func(site SiteConfig, p page.Page, pages []page.Summary, body templ.Component) templ.Component
	AdminLogin     func(notice string, showError bool, csrfToken string) templ.Component
	AdminWorkspace func(v editor.View, csrfToken string) templ.Component
	AdminImages    func(images []Image, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component

	// Slideshow and Quiz render the interactive page types.
	Slideshow display.Renderer
	Quiz      display.Renderer
}

// App is the central pagedesk application. It wires together the store,
// menu cache, authoring workspaces, handlers, middleware, and views.
type App struct {
	Config     SiteConfig
	Echo       *echo.Echo
	Store      *Store
	Menu       *MenuCache
	Display    *display.Dispatcher
	Workspaces *Workspaces
	Views      ViewFuncs
	Log        zerolog.Logger

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	customLog    bool
	editorOpts   []editor.RegistryOption
}

// New creates a new pagedesk App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}
	if !a.customLog {
		a.Log = NewLogger(a.Config.LogLevel)
	}
	a.Echo.HideBanner = true

	return a
}

// Setup opens the database and registers middleware and routes. Start
// calls it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("pagedesk: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("pagedesk: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("pagedesk: init store: %w", err)
	}
	a.Store = store
	a.Menu = NewMenuCache(a.Store, a.Config.MenuCacheTTL)
	a.loginLimiter = NewLoginLimiter(a.Config.LoginAttempts, a.Config.LoginWindow)
	a.Workspaces = NewWorkspaces(a.Config.WorkspaceTTL, a.newController)

	var dopts []display.Option
	if a.Config.Markdown {
		dopts = append(dopts, display.WithMarkdown())
	}
	a.Display = display.New(a.Views.Slideshow, a.Views.Quiz, dopts...)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and starts the server.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Log.Info().Str("addr", a.Config.Addr).Str("db", a.Config.DatabasePath).Msg("starting server")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) newController(sess editor.Session) *editor.Controller {
	return editor.NewController(a.Store, sess, a.Menu,
		editor.WithRegistry(editor.NewRegistry(a.editorOpts...)),
		editor.WithLogger(a.Log.With().Str("component", "editor").Logger()),
	)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/styles.css", a.handleStyles)
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/page/:id/", a.handlePage)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", a.handleAdminLogout)
	e.POST("/admin/select/", a.handleAdminSelect)
	e.POST("/admin/type/", a.handleAdminType)
	e.POST("/admin/rows/add/", a.handleAdminAddRow)
	e.POST("/admin/rows/remove/", a.handleAdminRemoveRow)
	e.POST("/admin/save/", a.handleAdminSave)
	e.POST("/admin/delete/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleUploads)
	e.POST("/admin/images/upload/", a.handleUpload)
	e.POST("/admin/images/delete/", a.handleUploadDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Workspaces != nil {
		a.Workspaces.Close()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		fmt.Fprintf(os.Stderr, "pagedesk: required environment variable %s is not set\n", key)
		os.Exit(1)
	}
	return v
}
