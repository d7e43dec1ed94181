package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/devopsite/scaffold"
)

var initURL string

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a starter site",
	Long: `init writes a devopsite.yaml, an example .env, the content tables, a
first post and a stylesheet into dir (default the current directory).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		data := scaffold.Data{
			SiteName: scaffold.Title(filepath.Base(abs)),
			SiteURL:  initURL,
			Date:     time.Now().Format("2006-01-02"),
		}
		created, err := scaffold.Write(dir, data)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range created {
			fmt.Fprintf(out, "  created %s\n", p)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next steps:")
		if dir != "." {
			fmt.Fprintf(out, "  cd %s\n", dir)
		}
		fmt.Fprintln(out, "  devopsite check")
		fmt.Fprintln(out, "  devopsite serve --watch")
		fmt.Fprintln(out, "Set DEVOPSITE_ADMIN_PASSWORD and DEVOPSITE_ADMIN_SESSION_SECRET in .env to enable /admin.")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initURL, "url", "http://localhost:3000", "canonical site URL")
	rootCmd.AddCommand(initCmd)
}
