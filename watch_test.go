package devopsite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/devopsite"
	"github.com/eringen/devopsite/views"
)

func writeTree(t *testing.T, dir string, fsys fstest.MapFS) {
	t.Helper()
	for name, f := range fsys {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o644))
	}
}

func TestWatchContentReloads(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, siteFS())

	app := devopsite.New(devopsite.SiteConfig{ContentDir: dir, StaticDir: t.TempDir()}, views.Default(),
		devopsite.WithLogger(zerolog.Nop()))
	require.NoError(t, app.Setup(context.Background()))
	t.Cleanup(func() { app.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.WatchContent(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	// Each write restarts the debounce, so rewrite less often than it fires.
	tick := devopsite.WatchDebounce + 250*time.Millisecond

	gamma := post("title: Gamma\npublishedAt: 2024-04-01\nauthor: jane\ncategory: kubernetes\n", "Gamma body.\n")
	gammaPath := filepath.Join(dir, "posts", "gamma.md")
	require.Eventually(t, func() bool {
		if _, err := app.Content.Library().Post("gamma"); err == nil {
			return true
		}
		assert.NoError(t, os.WriteFile(gammaPath, gamma.Data, 0o644))
		return false
	}, 15*time.Second, tick)
	assert.Empty(t, app.Content.Status().LastError)

	broken := post("title: Broken\npublishedAt: 2024-05-01\nauthor: nobody\ncategory: kubernetes\n", "x\n")
	brokenPath := filepath.Join(dir, "posts", "broken.md")
	require.Eventually(t, func() bool {
		if app.Content.Status().LastError != "" {
			return true
		}
		assert.NoError(t, os.WriteFile(brokenPath, broken.Data, 0o644))
		return false
	}, 15*time.Second, tick)

	st := app.Content.Status()
	assert.Contains(t, st.LastError, "nobody")
	assert.False(t, st.FailedAt.IsZero())
	_, err := app.Content.Library().Post("gamma")
	assert.NoError(t, err, "the previous snapshot keeps serving")
}

func TestWatchContentBeforeSetup(t *testing.T) {
	app := devopsite.New(devopsite.SiteConfig{}, views.Default())
	assert.Error(t, app.WatchContent(context.Background()))
}
