package content

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables() Tables {
	return Tables{
		Authors: map[string]Author{
			"jane": {ID: "jane", Name: "Jane Doe"},
		},
		Categories: map[string]Category{
			"kubernetes": {ID: "kubernetes", Name: "Kubernetes", Slug: "kubernetes"},
		},
		Tags: map[string]Tag{
			"k8s":  {ID: "k8s", Name: "K8s", Slug: "k8s"},
			"helm": {ID: "helm", Name: "Helm", Slug: "helm"},
		},
	}
}

func validRaw() RawPost {
	return RawPost{
		Source: "posts/scaling-clusters.md",
		Frontmatter: Frontmatter{
			Title:       "Scaling Clusters",
			Description: "How we scale.",
			PublishedAt: "2024-01-15",
			Author:      "jane",
			Category:    "kubernetes",
			Tags:        []string{"k8s", "helm", "k8s"},
		},
		Body: "## Intro\n\n" + strings.Repeat("word ", 398) + "\n\n### Detail\n",
	}
}

func TestResolvePost(t *testing.T) {
	p, err := ResolvePost(validRaw(), testTables())
	require.NoError(t, err)

	assert.Equal(t, "scaling-clusters", p.Slug)
	assert.Equal(t, "Jane Doe", p.Author.Name)
	assert.Equal(t, "kubernetes", p.Category.ID)
	require.Len(t, p.Tags, 2, "duplicate tag ids collapse")
	assert.Equal(t, "k8s", p.Tags[0].ID)
	assert.Equal(t, "helm", p.Tags[1].ID)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), p.PublishedAt)
	assert.True(t, p.UpdatedAt.IsZero())
	assert.Equal(t, p.PublishedAt, p.LastModified())
	assert.Equal(t, 400, p.WordCount)
	assert.Equal(t, 2, p.ReadingTime)
	assert.Equal(t, "How we scale.", p.Excerpt)
	require.Len(t, p.TOC, 1)
	assert.Equal(t, "intro", p.TOC[0].ID)
	require.Len(t, p.TOC[0].Children, 1)
	assert.Equal(t, "detail", p.TOC[0].Children[0].ID)
}

func TestResolvePostReadingTimeIgnoresCode(t *testing.T) {
	raw := validRaw()
	raw.Body = strings.Repeat("word ", 199) + "\n\n```\n" + strings.Repeat("code ", 300) + "\n```\n"
	p, err := ResolvePost(raw, testTables())
	require.NoError(t, err)
	assert.Equal(t, 199, p.WordCount)
	assert.Equal(t, 1, p.ReadingTime)
}

func TestResolvePostSlugPrecedence(t *testing.T) {
	raw := validRaw()
	raw.Slug = "Custom Slug"
	p, err := ResolvePost(raw, testTables())
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", p.Slug)

	raw = validRaw()
	raw.Source = ""
	p, err = ResolvePost(raw, testTables())
	require.NoError(t, err)
	assert.Equal(t, "scaling-clusters", p.Slug, "falls back to the title")
}

func TestResolvePostUpdatedAt(t *testing.T) {
	raw := validRaw()
	raw.UpdatedAt = "2024-02-01T10:30:00Z"
	p, err := ResolvePost(raw, testTables())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC), p.LastModified())
}

func TestResolvePostIntegrityErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawPost)
		kind   IntegrityKind
		field  string
	}{
		{"missing title", func(r *RawPost) { r.Title = "  " }, MissingField, "title"},
		{"missing publishedAt", func(r *RawPost) { r.PublishedAt = "" }, MissingField, "publishedAt"},
		{"invalid publishedAt", func(r *RawPost) { r.PublishedAt = "last tuesday" }, InvalidField, "publishedAt"},
		{"invalid updatedAt", func(r *RawPost) { r.UpdatedAt = "soon" }, InvalidField, "updatedAt"},
		{"missing author", func(r *RawPost) { r.Author = "" }, MissingField, "author"},
		{"dangling author", func(r *RawPost) { r.Author = "ghost" }, DanglingReference, "author"},
		{"missing category", func(r *RawPost) { r.Category = "" }, MissingField, "category"},
		{"dangling category", func(r *RawPost) { r.Category = "cooking" }, DanglingReference, "category"},
		{"dangling tag", func(r *RawPost) { r.Tags = []string{"k8s", "nope"} }, DanglingReference, "tags"},
		{"empty tag", func(r *RawPost) { r.Tags = []string{""} }, InvalidField, "tags"},
		{"unsluggable", func(r *RawPost) { r.Source, r.Title = "", "!!!" }, MissingField, "slug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)
			_, err := ResolvePost(raw, testTables())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIntegrity))

			var ie *IntegrityError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.kind, ie.Kind)
			assert.Equal(t, tt.field, ie.Field)
		})
	}
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2024-01-02", "2024-01-02T00:00:00Z", "2024-01-02T00:00:00", "2024-01-02 00:00:00"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got, in)
	}
	_, err := ParseDate("02/01/2024")
	assert.Error(t, err)
}
