package devopsite

import (
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/eringen/devopsite/analytics"
	"github.com/eringen/devopsite/content"
	"github.com/eringen/devopsite/relay"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name         string // Site name (default "DevOps Consulting")
	URL          string // Canonical URL (default "http://localhost:3000")
	Description  string // Site description for RSS and meta tags
	Organization string // Publisher name for JSON-LD (default Name)

	Addr       string // Listen address (default ":3000")
	ContentDir string // Content tree root (default "content")
	StaticDir  string // Static assets served under /public (default "public")

	Routes      []content.StaticRoute // Marketing route catalog (default content.DefaultRoutes)
	PageSize    int                   // Blog listing page size (default 9)
	RecentCount int                   // Recent/popular subset size (default 5)

	AnalyticsEnabled      bool          // Record post views (default false)
	AnalyticsDatabasePath string        // View store path (default "data/analytics.db")
	TrendingWindow        time.Duration // Trailing window for trending (default 7 days)
	AnalyticsRetention    time.Duration // View counters older than this are pruned (default 1 year)

	AdminPassword string // Admin login password; admin is disabled when empty
	SessionSecret string // Session encryption secret; required with AdminPassword
	CookieSecure  bool   // Set true for HTTPS

	FormsEndpoint      string        // Form provider URL; submissions are only logged when empty
	FormsAPIKey        string        // Bearer token for the form provider
	FormsArchiveBucket string        // Optional S3 bucket archiving every submission
	FormRateLimit      int           // Submissions per IP per window (default 5)
	FormRateWindow     time.Duration // default 10 minutes
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "DevOps Consulting"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Organization == "" {
		c.Organization = c.Name
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if len(c.Routes) == 0 {
		c.Routes = content.DefaultRoutes()
	}
	if c.PageSize <= 0 {
		c.PageSize = 9
	}
	if c.RecentCount <= 0 {
		c.RecentCount = 5
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.TrendingWindow <= 0 {
		c.TrendingWindow = analytics.DefaultTrendingWindow
	}
	if c.AnalyticsRetention <= 0 {
		c.AnalyticsRetention = 365 * 24 * time.Hour
	}
	if c.FormRateLimit <= 0 {
		c.FormRateLimit = 5
	}
	if c.FormRateWindow <= 0 {
		c.FormRateWindow = 10 * time.Minute
	}
}

// AdminEnabled reports whether the admin area is served.
func (c SiteConfig) AdminEnabled() bool {
	return c.AdminPassword != ""
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the application logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithContentFS reads content from fsys instead of Config.ContentDir.
// Content watching is unavailable for such trees.
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}

// WithProviders replaces the form providers built from the config.
func WithProviders(providers ...relay.Provider) Option {
	return func(a *App) {
		a.providers = providers
	}
}

// WithAnalyticsStore uses an already opened view store. The App does not
// close it.
func WithAnalyticsStore(s *analytics.Store) Option {
	return func(a *App) {
		a.analyticsStore = s
		a.ownsAnalytics = false
	}
}

// WithClock overrides the clock used for sitemaps, views and submissions.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
