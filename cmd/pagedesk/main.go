package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/eringen/pagedesk"
	"github.com/eringen/pagedesk/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("pagedesk %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func loadConfig() pagedesk.SiteConfig {
	menuTTL, _ := time.ParseDuration(pagedesk.EnvOr("MENU_CACHE_TTL", "5m"))
	markdown, _ := strconv.ParseBool(pagedesk.EnvOr("MARKDOWN", "false"))
	secure, _ := strconv.ParseBool(pagedesk.EnvOr("COOKIE_SECURE", "false"))
	attempts, _ := strconv.Atoi(pagedesk.EnvOr("LOGIN_ATTEMPTS", "5"))
	window, _ := time.ParseDuration(pagedesk.EnvOr("LOGIN_WINDOW", "1m"))
	return pagedesk.SiteConfig{
		Name:          pagedesk.EnvOr("SITE_NAME", "pagedesk"),
		URL:           pagedesk.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:   os.Getenv("SITE_DESCRIPTION"),
		Author:        os.Getenv("SITE_AUTHOR"),
		Addr:          pagedesk.EnvOr("ADDR", ":3000"),
		DatabasePath:  pagedesk.EnvOr("DATABASE_PATH", "data/pages.db"),
		AdminPassword: pagedesk.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: pagedesk.MustEnv("SESSION_SECRET"),
		CookieSecure:  secure,
		LoginAttempts: attempts,
		LoginWindow:   window,
		MenuCacheTTL:  menuTTL,
		Markdown:      markdown,
		LogLevel:      pagedesk.EnvOr("LOG_LEVEL", "info"),
	}
}

func runServe() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := loadConfig()
	app := pagedesk.New(cfg, views.Funcs(cfg), pagedesk.WithStaticDir(pagedesk.EnvOr("STATIC_DIR", "public")))
	defer app.Close()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case <-quit:
	}

	app.Log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func printUsage() {
	fmt.Println(`pagedesk - a content site with a web authoring desk

Usage:
  pagedesk <command>

Commands:
  serve         Start the site and admin server
  version       Print the pagedesk version
  help          Show this help message

Environment:
  ADMIN_PASSWORD, SESSION_SECRET (required), SITE_NAME, SITE_URL,
  SITE_DESCRIPTION, SITE_AUTHOR, ADDR, DATABASE_PATH, STATIC_DIR,
  MENU_CACHE_TTL, MARKDOWN, COOKIE_SECURE, LOGIN_ATTEMPTS, LOGIN_WINDOW,
  LOG_LEVEL.
  A .env file in the working directory is loaded first.`)
}
