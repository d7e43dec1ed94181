package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/devopsite"
	"github.com/eringen/devopsite/views"
)

const shutdownTimeout = 10 * time.Second

var watch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site",
	Long: `serve loads the content tree, then serves the site until interrupted.
With --watch the content is reloaded whenever a file under the content
directory changes; a reload that fails keeps the previous content online.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := siteConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app := devopsite.New(cfg, views.Default(), devopsite.WithLogger(logger))
		if err := app.Setup(ctx); err != nil {
			return err
		}
		defer app.Close()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(app.Start)
		if watch {
			g.Go(func() error { return app.WatchContent(ctx) })
		}
		g.Go(func() error {
			<-ctx.Done()
			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return app.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload content on file changes")
	serveCmd.Flags().String("addr", "", "listen address")
	_ = v.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}
