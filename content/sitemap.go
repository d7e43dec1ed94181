package content

import (
	"strings"
	"time"
)

// ChangeFrequency is the sitemap changefreq hint.
type ChangeFrequency string

const (
	Always  ChangeFrequency = "always"
	Hourly  ChangeFrequency = "hourly"
	Daily   ChangeFrequency = "daily"
	Weekly  ChangeFrequency = "weekly"
	Monthly ChangeFrequency = "monthly"
	Yearly  ChangeFrequency = "yearly"
	Never   ChangeFrequency = "never"
)

// StaticRoute is one entry of the fixed marketing route catalog.
type StaticRoute struct {
	Path            string          `yaml:"path" mapstructure:"path" json:"path"`
	Title           string          `yaml:"title" mapstructure:"title" json:"title"`
	ChangeFrequency ChangeFrequency `yaml:"changeFrequency" mapstructure:"change_frequency" json:"changeFrequency"`
	Priority        float64         `yaml:"priority" mapstructure:"priority" json:"priority"`
}

// DefaultRoutes returns the built-in route catalog: home, about, contact,
// services with five subpages, products with four subpages, projects and blog.
func DefaultRoutes() []StaticRoute {
	return []StaticRoute{
		{Path: "/", Title: "Home", ChangeFrequency: Weekly, Priority: 1.0},
		{Path: "/about", Title: "About", ChangeFrequency: Monthly, Priority: 0.8},
		{Path: "/contact", Title: "Contact", ChangeFrequency: Monthly, Priority: 0.8},
		{Path: "/services", Title: "Services", ChangeFrequency: Monthly, Priority: 0.9},
		{Path: "/services/cloud-migration", Title: "Cloud Migration", ChangeFrequency: Monthly, Priority: 0.8},
		{Path: "/services/ci-cd", Title: "CI/CD Pipelines", ChangeFrequency: Monthly, Priority: 0.8},
		{Path: "/services/kubernetes", Title: "Kubernetes", ChangeFrequency: Monthly, Priority: 0.8},
		{Path: "/services/infrastructure-as-code", Title: "Infrastructure as Code", ChangeFrequency: Monthly, Priority: 0.8},
		{Path: "/services/observability", Title: "Observability", ChangeFrequency: Monthly, Priority: 0.8},
		{Path: "/products", Title: "Products", ChangeFrequency: Monthly, Priority: 0.9},
		{Path: "/products/pipeline-kit", Title: "Pipeline Kit", ChangeFrequency: Monthly, Priority: 0.8},
		{Path: "/products/cluster-guard", Title: "Cluster Guard", ChangeFrequency: Monthly, Priority: 0.8},
		{Path: "/products/cost-lens", Title: "Cost Lens", ChangeFrequency: Monthly, Priority: 0.8},
		{Path: "/products/incident-desk", Title: "Incident Desk", ChangeFrequency: Monthly, Priority: 0.8},
		{Path: "/projects", Title: "Projects", ChangeFrequency: Weekly, Priority: 0.8},
		{Path: "/blog", Title: "Blog", ChangeFrequency: Daily, Priority: 0.9},
	}
}

const (
	postFrequency    = Weekly
	postPriority     = 0.7
	projectFrequency = Monthly
	projectPriority  = 0.6
)

// SitemapEntry is one <url> of the sitemap.
type SitemapEntry struct {
	URL             string          `json:"url"`
	LastModified    time.Time       `json:"lastModified"`
	ChangeFrequency ChangeFrequency `json:"changeFrequency"`
	Priority        float64         `json:"priority"`
}

// AbsoluteURL joins a site-relative path onto baseURL.
func AbsoluteURL(baseURL, p string) string {
	base := strings.TrimRight(baseURL, "/")
	if p == "" || p == "/" {
		return base + "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

// GenerateSitemapEntries emits one entry per static route, per non-draft
// post and per project, in that order. Static routes are stamped with now.
// A URL produced twice is a content-integrity error.
func GenerateSitemapEntries(baseURL string, posts []Post, projects []Project, routes []StaticRoute, now time.Time) ([]SitemapEntry, error) {
	entries := make([]SitemapEntry, 0, len(routes)+len(posts)+len(projects))
	seen := make(map[string]struct{}, cap(entries))
	add := func(source string, e SitemapEntry) error {
		if _, dup := seen[e.URL]; dup {
			return &IntegrityError{Kind: DuplicateURL, Source: source, Field: "url", Value: e.URL}
		}
		seen[e.URL] = struct{}{}
		entries = append(entries, e)
		return nil
	}

	for _, r := range routes {
		err := add("routes", SitemapEntry{
			URL:             AbsoluteURL(baseURL, r.Path),
			LastModified:    now,
			ChangeFrequency: r.ChangeFrequency,
			Priority:        r.Priority,
		})
		if err != nil {
			return nil, err
		}
	}
	for _, p := range posts {
		if p.Draft {
			continue
		}
		err := add(p.Source, SitemapEntry{
			URL:             AbsoluteURL(baseURL, p.Path()),
			LastModified:    p.LastModified(),
			ChangeFrequency: postFrequency,
			Priority:        postPriority,
		})
		if err != nil {
			return nil, err
		}
	}
	for _, p := range projects {
		err := add(projectsFile, SitemapEntry{
			URL:             AbsoluteURL(baseURL, p.Path()),
			LastModified:    p.CompletedAt,
			ChangeFrequency: projectFrequency,
			Priority:        projectPriority,
		})
		if err != nil {
			return nil, err
		}
	}
	return entries, nil
}
