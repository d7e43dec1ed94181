package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/devopsite/content"
)

func loadLibrary() (*content.Library, error) {
	cfg, err := siteConfig()
	if err != nil {
		return nil, err
	}
	routes := cfg.Routes
	if len(routes) == 0 {
		routes = content.DefaultRoutes()
	}
	return content.Load(os.DirFS(cfg.ContentDir), content.WithRoutes(routes))
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content tree",
	Long: `check loads the content directory exactly as serve does and reports the
first integrity error: missing fields, unknown author, category or tag
references, duplicate slugs and colliding sitemap URLs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		drafts := len(lib.AllPosts()) - len(lib.Posts())
		fmt.Fprintf(out, "ok: %d posts (%d drafts), %d projects, %d authors, %d categories, %d tags\n",
			len(lib.Posts()), drafts, len(lib.Projects()),
			len(lib.Authors()), len(lib.Categories()), len(lib.Tags()))
		return nil
	},
}

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Print the sitemap entries as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary()
		if err != nil {
			return err
		}
		entries, err := lib.Sitemap(v.GetString("site.url"), time.Now())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd, sitemapCmd)
}
