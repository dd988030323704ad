// Package cleanblog is a small blog publishing tool built with Go, Echo, and templ.
// It serves a post list, post pages, create/edit/delete forms, and two static
// pages over a single SQLite table.
//
// Templates are supplied through ViewFuncs; the views package provides the
// default set.
package cleanblog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ViewFuncs holds the templ components the handlers render. Each function
// receives exactly the data its page needs.
type ViewFuncs struct {
	Index       func(allPosts []BlogPost, flashes []string) templ.Component
	Post        func(post BlogPost, flashes []string) templ.Component
	MakePost    func(form PostForm, isEdit bool) templ.Component
	About       func() templ.Component
	Contact     func() templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central cleanblog application. It wires together the store,
// handlers, middleware, and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Views  ViewFuncs

	writeLimiter *WriteLimiter
	staticDir    string
	now          func() time.Time
	ownsStore    bool
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.SetDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
		now:       time.Now,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// WithStore makes the App use an already opened store instead of opening
// Config.DatabasePath. The caller keeps ownership of s.
func WithStore(s *Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// Init opens the store (unless one was supplied) and installs middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.Config.SessionSecret == "" {
		return errors.New("cleanblog: SessionSecret is required")
	}
	level, err := parseLogLevel(a.Config.LogLevel)
	if err != nil {
		return fmt.Errorf("cleanblog: %w", err)
	}
	a.Echo.Logger.SetLevel(level)

	if a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("cleanblog: init store: %w", err)
		}
		a.Store = store
		a.ownsStore = true
	}

	a.writeLimiter = NewWriteLimiter(a.Config.WriteLimit, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("listening on %s (database %s)", a.Config.Addr, a.Config.DatabasePath)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones to finish.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)

	e.GET("/", a.handleListPosts)
	e.GET("/post/:id", a.handleShowPost)
	e.GET("/new-post", a.handleNewPost)
	e.POST("/new-post", a.handleNewPost, a.limitWrites)
	e.GET("/edit-post/:id", a.handleEditPost)
	e.POST("/edit-post/:id", a.handleEditPost, a.limitWrites)
	e.GET("/delete/:id", a.handleDeletePost, a.limitWrites)
	e.GET("/about", a.handleAbout)
	e.GET("/contact", a.handleContact)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.writeLimiter != nil {
		a.writeLimiter.Stop()
	}
	if a.Store != nil && a.ownsStore {
		return a.Store.Close()
	}
	return nil
}

func parseLogLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
