package devopsite

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// EmbeddedAssets contains the default stylesheet served at /public/site.css
// when the static directory does not provide one.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

func (a *App) registerEmbeddedAssets() {
	sub, _ := fs.Sub(EmbeddedAssets, "embedded")
	handler := echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(sub))))
	entries, _ := fs.ReadDir(sub, ".")
	for _, e := range entries {
		if _, err := os.Stat(filepath.Join(a.Config.StaticDir, e.Name())); err == nil {
			continue
		}
		a.Echo.GET("/public/"+e.Name(), handler)
	}
}
