package devopsite

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eringen/devopsite/content"
)

// ContentCache holds the current content snapshot and swaps it on reload.
type ContentCache struct {
	mu      sync.RWMutex
	lib     *content.Library
	lastErr error
	failed  time.Time
	reloads int

	reloadMu sync.Mutex
	load     func() (*content.Library, error)
	logger   zerolog.Logger
}

// CacheStatus describes the cache for the admin dashboard.
type CacheStatus struct {
	LoadedAt  time.Time
	Reloads   int
	LastError string
	FailedAt  time.Time
}

// NewContentCache performs the initial load. Its failure is returned as is;
// there is no previous snapshot to fall back to.
func NewContentCache(load func() (*content.Library, error), logger zerolog.Logger) (*ContentCache, error) {
	lib, err := load()
	if err != nil {
		return nil, err
	}
	logLoaded(logger, lib, "content loaded")
	return &ContentCache{lib: lib, load: load, logger: logger}, nil
}

// Library returns the current snapshot. Callers may hold it for the length
// of a request; it is never mutated.
func (c *ContentCache) Library() *content.Library {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lib
}

// Reload re-reads the content. On failure the previous snapshot stays in
// service and the error is returned and recorded.
func (c *ContentCache) Reload() error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	lib, err := c.load()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		c.failed = time.Now()
		c.logger.Error().Err(err).Msg("content reload failed; keeping previous snapshot")
		return err
	}
	c.lib = lib
	c.lastErr = nil
	c.reloads++
	logLoaded(c.logger, lib, "content reloaded")
	return nil
}

// Status reports the snapshot age and the last reload failure, if any.
func (c *ContentCache) Status() CacheStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := CacheStatus{LoadedAt: c.lib.LoadedAt(), Reloads: c.reloads, FailedAt: c.failed}
	if c.lastErr != nil {
		s.LastError = c.lastErr.Error()
	}
	return s
}

func logLoaded(logger zerolog.Logger, lib *content.Library, msg string) {
	logger.Info().
		Int("posts", len(lib.Posts())).
		Int("drafts", len(lib.AllPosts())-len(lib.Posts())).
		Int("projects", len(lib.Projects())).
		Int("routes", len(lib.Routes())).
		Msg(msg)
}
