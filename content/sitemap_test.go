package content

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"https://example.com", "/", "https://example.com/"},
		{"https://example.com/", "", "https://example.com/"},
		{"https://example.com/", "/blog/x", "https://example.com/blog/x"},
		{"https://example.com", "about", "https://example.com/about"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AbsoluteURL(tt.base, tt.path))
	}
}

func TestGenerateSitemapEntries(t *testing.T) {
	posts := []Post{
		mkPost("first", "2023-01-01"),
		mkPost("second", "2023-06-01", func(p *Post) { p.UpdatedAt = day("2023-07-01") }),
		mkPost("hidden", "2024-01-01", draft),
	}
	projects := []Project{
		{Slug: "bank", CompletedAt: day("2023-05-01")},
	}
	routes := DefaultRoutes()

	entries, err := GenerateSitemapEntries("https://devops.example", posts, projects, routes, fixedNow)
	require.NoError(t, err)
	require.Len(t, entries, len(routes)+2+1)

	seen := map[string]bool{}
	for _, e := range entries {
		assert.False(t, seen[e.URL], "duplicate %s", e.URL)
		seen[e.URL] = true
	}

	assert.Equal(t, SitemapEntry{
		URL: "https://devops.example/", LastModified: fixedNow, ChangeFrequency: Weekly, Priority: 1.0,
	}, entries[0])

	tail := entries[len(routes):]
	want := []SitemapEntry{
		{URL: "https://devops.example/blog/first", LastModified: day("2023-01-01"), ChangeFrequency: Weekly, Priority: 0.7},
		{URL: "https://devops.example/blog/second", LastModified: day("2023-07-01"), ChangeFrequency: Weekly, Priority: 0.7},
		{URL: "https://devops.example/projects/bank", LastModified: day("2023-05-01"), ChangeFrequency: Monthly, Priority: 0.6},
	}
	if diff := cmp.Diff(want, tail); diff != "" {
		t.Errorf("post/project entries mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSitemapEntriesDuplicate(t *testing.T) {
	posts := []Post{mkPost("same", "2023-01-01"), mkPost("same", "2023-02-01")}
	_, err := GenerateSitemapEntries("https://x.io", posts, nil, nil, fixedNow)
	require.Error(t, err)
	assert.True(t, IsIntegrity(err, DuplicateURL))
}

func TestDefaultRoutes(t *testing.T) {
	routes := DefaultRoutes()
	assert.Len(t, routes, 16)

	services, products := 0, 0
	for _, r := range routes {
		switch {
		case strings.HasPrefix(r.Path, "/services/"):
			services++
		case strings.HasPrefix(r.Path, "/products/"):
			products++
		}
		assert.Greater(t, r.Priority, 0.0)
		assert.LessOrEqual(t, r.Priority, 1.0)
	}
	assert.Equal(t, 5, services)
	assert.Equal(t, 4, products)
}

func TestLibrarySitemapCount(t *testing.T) {
	lib := loadTest(t, testFS())
	entries, err := lib.Sitemap("https://devops.example", fixedNow)
	require.NoError(t, err)
	assert.Len(t, entries, len(lib.Routes())+len(lib.Posts())+len(lib.Projects()))
}
