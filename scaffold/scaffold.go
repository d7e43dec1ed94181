// Package scaffold provides the embedded starter site written by
// `devopsite init`: a config file, an example .env, the content tables, a
// first post and a stylesheet.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains all scaffold files. Files with a .tmpl suffix are
// executed as Go text/templates; everything else is copied as is.
//
//go:embed all:templates
var Templates embed.FS

const root = "templates"

// Data holds the template variables passed to every scaffold template.
type Data struct {
	SiteName string
	SiteURL  string
	Date     string // publish date of the starter post, YYYY-MM-DD
}

// ErrExists is returned when the target directory already holds a site.
var ErrExists = errors.New("scaffold: target already exists")

// Write renders the scaffold into dir and returns the created paths.
// dir may exist but must not already contain devopsite.yaml.
func Write(dir string, data Data) ([]string, error) {
	if _, err := os.Stat(filepath.Join(dir, "devopsite.yaml")); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, dir)
	}

	var created []string
	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := filepath.Join(dir, strings.TrimSuffix(rel, ".tmpl"))
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		src, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := writeFile(outPath, path, src, data); err != nil {
			return err
		}
		created = append(created, outPath)
		return nil
	})
	return created, err
}

func writeFile(outPath, name string, src []byte, data Data) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	if !strings.HasSuffix(name, ".tmpl") {
		_, err = f.Write(src)
		return err
	}
	tmpl, err := template.New(filepath.Base(name)).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	return nil
}

// Title converts a hyphenated name to title case: "acme-ops" -> "Acme Ops".
func Title(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
