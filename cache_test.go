package devopsite

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/devopsite/content"
)

func TestContentCacheReload(t *testing.T) {
	first, err := content.Load(fstest.MapFS{})
	require.NoError(t, err)
	second, err := content.Load(fstest.MapFS{})
	require.NoError(t, err)

	next := []*content.Library{first, second}
	var loadErr error
	load := func() (*content.Library, error) {
		if loadErr != nil {
			return nil, loadErr
		}
		lib := next[0]
		next = next[1:]
		return lib, nil
	}

	cache, err := NewContentCache(load, zerolog.Nop())
	require.NoError(t, err)
	assert.Same(t, first, cache.Library())

	require.NoError(t, cache.Reload())
	assert.Same(t, second, cache.Library())
	assert.Equal(t, 1, cache.Status().Reloads)

	loadErr = errors.New("broken front matter")
	assert.ErrorIs(t, cache.Reload(), loadErr)
	assert.Same(t, second, cache.Library(), "failed reload keeps the previous snapshot")
	st := cache.Status()
	assert.Equal(t, "broken front matter", st.LastError)
	assert.False(t, st.FailedAt.IsZero())
	assert.Equal(t, 1, st.Reloads)
}

func TestContentCacheInitialFailure(t *testing.T) {
	_, err := NewContentCache(func() (*content.Library, error) {
		return nil, content.ErrIntegrity
	}, zerolog.Nop())
	assert.ErrorIs(t, err, content.ErrIntegrity)
}
