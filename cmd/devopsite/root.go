package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/devopsite"
	"github.com/eringen/devopsite/content"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	v       = viper.New()
	logger  = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "devopsite",
	Short: "DevOps consultancy site server",
	Long: `devopsite serves the marketing pages, blog and portfolio of a DevOps
consultancy from a directory of markdown and YAML content.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./devopsite.yaml)")
	rootCmd.PersistentFlags().String("content", "", "content directory")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("content_dir", rootCmd.PersistentFlags().Lookup("content"))
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the devopsite version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "devopsite %s\n", version)
		},
	})
}

func setDefaults() {
	v.SetDefault("site.name", "DevOps Consulting")
	v.SetDefault("site.url", "http://localhost:3000")
	v.SetDefault("addr", ":3000")
	v.SetDefault("content_dir", "content")
	v.SetDefault("static_dir", "public")
	v.SetDefault("blog.page_size", 9)
	v.SetDefault("blog.recent_count", 5)
	v.SetDefault("analytics.database_path", "data/analytics.db")
	v.SetDefault("analytics.trending_window", "168h")
	v.SetDefault("analytics.retention", "8760h")
	v.SetDefault("forms.rate_limit", 5)
	v.SetDefault("forms.rate_window", "10m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

func initializeConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	setDefaults()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("devopsite")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("DEVOPSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	readErr := v.ReadInConfig()
	logger = newLogger()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) || cfgFile != "" {
			return fmt.Errorf("read config: %w", readErr)
		}
		logger.Debug().Msg("no config file found; using defaults and environment")
	} else {
		logger.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	}
	return nil
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(v.GetString("log.level"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var l zerolog.Logger
	if v.GetBool("log.pretty") {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		l = zerolog.New(os.Stderr)
	}
	return l.Level(level).With().Timestamp().Logger()
}

// siteConfig maps the viper keys onto devopsite.SiteConfig.
func siteConfig() (devopsite.SiteConfig, error) {
	cfg := devopsite.SiteConfig{
		Name:                  v.GetString("site.name"),
		URL:                   v.GetString("site.url"),
		Description:           v.GetString("site.description"),
		Organization:          v.GetString("site.organization"),
		Addr:                  v.GetString("addr"),
		ContentDir:            v.GetString("content_dir"),
		StaticDir:             v.GetString("static_dir"),
		PageSize:              v.GetInt("blog.page_size"),
		RecentCount:           v.GetInt("blog.recent_count"),
		AnalyticsEnabled:      v.GetBool("analytics.enabled"),
		AnalyticsDatabasePath: v.GetString("analytics.database_path"),
		TrendingWindow:        v.GetDuration("analytics.trending_window"),
		AnalyticsRetention:    v.GetDuration("analytics.retention"),
		AdminPassword:         v.GetString("admin.password"),
		SessionSecret:         v.GetString("admin.session_secret"),
		CookieSecure:          v.GetBool("cookie_secure"),
		FormsEndpoint:         v.GetString("forms.endpoint"),
		FormsAPIKey:           v.GetString("forms.api_key"),
		FormsArchiveBucket:    v.GetString("forms.archive_bucket"),
		FormRateLimit:         v.GetInt("forms.rate_limit"),
		FormRateWindow:        v.GetDuration("forms.rate_window"),
	}
	if v.IsSet("routes") {
		var routes []content.StaticRoute
		if err := v.UnmarshalKey("routes", &routes); err != nil {
			return cfg, fmt.Errorf("decode routes: %w", err)
		}
		cfg.Routes = routes
	}
	return cfg, nil
}
