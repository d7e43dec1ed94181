package devopsite

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/eringen/devopsite/content"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://example.com", nil, "https://example.com/"},
		{"https://example.com/", []string{"sitemap.xml"}, "https://example.com/sitemap.xml"},
		{"https://example.com", []string{"blog", "zero-downtime"}, "https://example.com/blog/zero-downtime"},
		{"https://example.com/site", []string{"/projects/"}, "https://example.com/site/projects"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %q) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}

func TestPageURL(t *testing.T) {
	d := BlogIndexData{BasePath: "/blog", Params: url.Values{"q": {"helm"}}}
	if got := d.PageURL(1); got != "/blog?q=helm" {
		t.Errorf("PageURL(1) = %q", got)
	}
	if got := d.PageURL(3); got != "/blog?page=3&q=helm" {
		t.Errorf("PageURL(3) = %q", got)
	}
	if got := (BlogIndexData{BasePath: "/blog/tag/k8s"}).PageURL(1); got != "/blog/tag/k8s" {
		t.Errorf("PageURL without params = %q", got)
	}
	if len(d.Params) != 1 {
		t.Error("PageURL mutated Params")
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Acme", URL: "https://example.com"}
	cfg.setDefaults()
	p := content.Post{
		Slug:        "a",
		Title:       "A </script> title",
		PublishedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Author:      content.Author{Name: "Jane"},
		Tags:        []content.Tag{{Name: "K8s"}, {Name: "Helm"}},
	}
	raw := BlogPostingJsonLD(p, cfg)

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if doc["@type"] != "BlogPosting" || doc["headline"] != p.Title {
		t.Errorf("unexpected document %v", doc)
	}
	if doc["url"] != "https://example.com/blog/a" {
		t.Errorf("url = %v", doc["url"])
	}
	if doc["keywords"] != "K8s, Helm" {
		t.Errorf("keywords = %v", doc["keywords"])
	}
	if strings.Contains(raw, "<") {
		t.Error("JSON-LD must not contain a raw '<'")
	}
}
