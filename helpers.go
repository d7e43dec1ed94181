package devopsite

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/devopsite/content"
)

// BuildURL joins a base URL with path segments. The site serves paths
// without trailing slashes, except for the root.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	return u.String()
}

// TagNames joins a post's tag names with ", ".
func TagNames(tags []content.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

func marshalJSONLD(data map[string]any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// OrganizationJsonLD returns a JSON-LD string for the site's Organization.
func OrganizationJsonLD(cfg SiteConfig) string {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     cfg.Organization,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	return marshalJSONLD(data)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post content.Post, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Excerpt,
		"datePublished": post.PublishedAt.Format("2006-01-02"),
		"dateModified":  post.LastModified().Format("2006-01-02"),
		"wordCount":     post.WordCount,
		"url":           postURL,
		"author": map[string]string{
			"@type": "Person",
			"name":  post.Author.Name,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Organization,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.CoverImage != "" {
		data["image"] = post.CoverImage
	}
	if len(post.Tags) > 0 {
		data["keywords"] = TagNames(post.Tags)
	}
	return marshalJSONLD(data)
}

// ProjectJsonLD returns a JSON-LD string describing a case study.
func ProjectJsonLD(p content.Project, cfg SiteConfig) string {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "CreativeWork",
		"name":        p.Title,
		"description": p.Description,
		"url":         BuildURL(cfg.URL, "projects", p.Slug),
		"dateCreated": p.CompletedAt.Format("2006-01-02"),
		"creator": map[string]string{
			"@type": "Organization",
			"name":  cfg.Organization,
		},
	}
	if len(p.Technologies) > 0 {
		data["keywords"] = strings.Join(p.Technologies, ", ")
	}
	return marshalJSONLD(data)
}
