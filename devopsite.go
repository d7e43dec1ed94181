// Package devopsite serves the marketing and content site of a DevOps
// consultancy: static marketing pages, a markdown blog, a project portfolio,
// sitemap and feed endpoints, and the contact and consultation forms.
//
// Callers provide the templ components through ViewFuncs; devopsite owns the
// handlers, middleware, content snapshot, view counting and form relay.
package devopsite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/devopsite/analytics"
	"github.com/eringen/devopsite/content"
	"github.com/eringen/devopsite/relay"
)

// ViewFuncs holds the templ components the handlers render. Every field
// must be set; views.Default provides a complete set.
type ViewFuncs struct {
	Page           func(data StaticPageData) templ.Component
	BlogIndex      func(data BlogIndexData) templ.Component
	BlogList       func(data BlogIndexData) templ.Component // HTMX partial
	Post           func(data PostData) templ.Component
	Projects       func(data ProjectIndexData) templ.Component
	Project        func(data ProjectData) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(data DashboardData) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central application. It wires together the content cache,
// handlers, middleware, view recorder, form relay and templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content *ContentCache
	Relay   *relay.Relay
	Views   ViewFuncs

	logger         zerolog.Logger
	contentFS      fs.FS
	providers      []relay.Provider
	analyticsStore *analytics.Store
	ownsAnalytics  bool
	recorder       *analytics.Recorder
	loginLimiter   *Limiter
	formLimiter    *Limiter
	stopCleanup    func()
	customRoutes   []func(*App)
	now            func() time.Time
	ready          bool
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config: cfg,
		Echo:   e,
		Views:  views,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Setup loads the content, opens the view store, builds the form relay and
// registers middleware and routes. A content error here is fatal.
func (a *App) Setup(ctx context.Context) error {
	if a.ready {
		return nil
	}
	if a.Config.AdminEnabled() && a.Config.SessionSecret == "" {
		return errors.New("devopsite: SessionSecret is required when AdminPassword is set")
	}

	if a.contentFS == nil {
		a.contentFS = os.DirFS(a.Config.ContentDir)
	}
	cache, err := NewContentCache(a.loadContent, a.logger)
	if err != nil {
		return fmt.Errorf("devopsite: load content: %w", err)
	}
	a.Content = cache

	if err := a.setupAnalytics(ctx); err != nil {
		return err
	}
	if err := a.setupRelay(ctx); err != nil {
		return err
	}

	a.loginLimiter = NewLimiter(5, time.Minute)
	a.formLimiter = NewLimiter(a.Config.FormRateLimit, a.Config.FormRateWindow)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

func (a *App) loadContent() (*content.Library, error) {
	return content.Load(a.contentFS,
		content.WithRoutes(a.Config.Routes),
		content.WithClock(a.now),
	)
}

func (a *App) setupAnalytics(ctx context.Context) error {
	if a.analyticsStore == nil {
		if !a.Config.AnalyticsEnabled {
			return nil
		}
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("devopsite: init analytics: %w", err)
		}
		a.analyticsStore = store
		a.ownsAnalytics = true
	}
	rec, err := analytics.NewRecorder(ctx, a.analyticsStore)
	if err != nil {
		return fmt.Errorf("devopsite: init analytics: %w", err)
	}
	a.recorder = rec
	a.stopCleanup = a.analyticsStore.StartCleanupScheduler(a.Config.AnalyticsRetention, 24*time.Hour, a.logger)
	return nil
}

func (a *App) setupRelay(ctx context.Context) error {
	providers := a.providers
	if providers == nil {
		if a.Config.FormsEndpoint != "" {
			providers = append(providers, relay.NewHTTPProvider(a.Config.FormsEndpoint, a.Config.FormsAPIKey))
		}
		if a.Config.FormsArchiveBucket != "" {
			archiver, err := relay.NewS3Archiver(ctx, a.Config.FormsArchiveBucket)
			if err != nil {
				return fmt.Errorf("devopsite: init form archive: %w", err)
			}
			providers = append(providers, archiver)
		}
		if len(providers) == 0 {
			a.logger.Warn().Msg("no form provider configured; submissions are only logged")
			providers = append(providers, relay.NewLogProvider(a.logger))
		}
	}
	a.Relay = relay.New(providers...)
	a.logger.Info().Strs("providers", a.Relay.Providers()).Msg("form relay ready")
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	a.registerEmbeddedAssets()
	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemapXML)
	e.GET("/sitemap.json", a.handleSitemapJSON)
	e.GET("/feed.xml", a.handleFeed)

	for _, r := range a.Config.Routes {
		switch r.Path {
		case "/blog", "/projects":
			continue
		}
		e.GET(r.Path, a.handleStaticPage(r))
	}

	e.GET("/blog", a.handleBlog)
	e.GET("/blog/category/:slug", a.handleBlogCategory)
	e.GET("/blog/tag/:slug", a.handleBlogTag)
	e.GET("/blog/:slug", a.handlePost)
	e.GET("/projects", a.handleProjects)
	e.GET("/projects/:slug", a.handleProject)

	api := e.Group("/api")
	api.GET("/blog/stats", a.handleBlogStats)
	api.GET("/blog/posts", a.handleBlogPosts)
	api.POST("/contact", a.handleForm(relay.FormContact))
	api.POST("/consultation", a.handleForm(relay.FormConsultation))

	if a.Config.AdminEnabled() {
		e.GET("/admin", a.handleAdmin)
		e.POST("/admin/login", a.handleAdminLogin)
		e.POST("/admin/logout", handleAdminLogout)
		e.POST("/admin/reload", a.handleAdminReload)
	}
}

// Start serves HTTP on Config.Addr until the server is shut down.
func (a *App) Start() error {
	if !a.ready {
		if err := a.Setup(context.Background()); err != nil {
			return err
		}
	}
	a.logger.Info().Str("addr", a.Config.Addr).Str("url", a.Config.URL).Msg("listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close releases background workers and the view store.
func (a *App) Close() error {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.recorder != nil {
		a.recorder.Close()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.formLimiter != nil {
		a.formLimiter.Close()
	}
	if a.analyticsStore != nil && a.ownsAnalytics {
		return a.analyticsStore.Close()
	}
	return nil
}

// Logger returns the application logger.
func (a *App) Logger() zerolog.Logger {
	return a.logger
}
