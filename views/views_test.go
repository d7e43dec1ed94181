package views

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/devopsite"
	"github.com/eringen/devopsite/content"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func samplePost() content.Post {
	return content.Post{
		Slug:        "zero-downtime",
		Title:       "Zero <downtime> deploys",
		Description: "Rolling updates",
		PublishedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Author:      content.Author{ID: "jane", Name: "Jane Doe", Bio: "SRE"},
		Category:    content.Category{ID: "kubernetes", Name: "Kubernetes", Slug: "kubernetes"},
		Tags:        []content.Tag{{ID: "k8s", Name: "K8s", Slug: "k8s"}},
		Body:        "## Rollout\n\nUse a `PodDisruptionBudget`.\n",
		ReadingTime: 3,
		Excerpt:     "Use a PodDisruptionBudget.",
		TOC:         []*content.TOCItem{{ID: "rollout", Title: "Rollout", Level: 2}},
	}
}

func TestPostEscapesAndRendersMarkdown(t *testing.T) {
	got := renderString(t, Post(devopsite.PostData{
		Meta: devopsite.PageMeta{SiteName: "Acme", Title: "Zero | Acme", OGType: "article", JSONLD: `{"@type":"BlogPosting"}`},
		Post: samplePost(),
	}))
	for _, want := range []string{
		"<h1>Zero &lt;downtime&gt; deploys</h1>",
		`<h2 id="rollout">Rollout</h2>`,
		`<a href="#rollout">Rollout</a>`,
		`<a href="/blog/tag/k8s">#K8s</a>`,
		`<script type="application/ld+json">{"@type":"BlogPosting"}</script>`,
		"3 min read",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Post output missing %q", want)
		}
	}
}

func TestBlogListPagination(t *testing.T) {
	d := devopsite.BlogIndexData{
		Page:     content.Page{Items: []content.Post{samplePost()}, Page: 2, TotalPages: 3},
		BasePath: "/blog",
		Params:   url.Values{"tag": {"k8s"}},
	}
	got := renderString(t, BlogList(d))
	for _, want := range []string{
		`<a href="/blog?tag=k8s">Newer</a>`,
		`<a href="/blog?page=3&amp;tag=k8s">Older</a>`,
		"Page 2 of 3",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BlogList output missing %q", want)
		}
	}
	if strings.Contains(got, "<html") {
		t.Error("BlogList must render a fragment")
	}
}

func TestBlogListEmpty(t *testing.T) {
	got := renderString(t, BlogList(devopsite.BlogIndexData{BasePath: "/blog"}))
	if !strings.Contains(got, "No articles match.") {
		t.Errorf("empty listing = %q", got)
	}
}

func TestLinkSanitizesUnsafeURLs(t *testing.T) {
	got := renderString(t, Project(devopsite.ProjectData{
		Project: content.Project{Slug: "p", Title: "P", LiveURL: "javascript:alert(1)"},
	}))
	if strings.Contains(got, "javascript:") {
		t.Errorf("unsafe URL rendered: %q", got)
	}
}

func TestAdminFormsCarryCSRFToken(t *testing.T) {
	login := renderString(t, AdminLogin(true, "tok123"))
	if !strings.Contains(login, `name="_csrf" value="tok123"`) {
		t.Error("login form missing CSRF token")
	}
	if !strings.Contains(login, "Invalid password") {
		t.Error("login form missing error message")
	}

	dash := renderString(t, AdminDashboard(devopsite.DashboardData{
		SiteName:  "Acme",
		CSRFToken: "tok456",
		Drafts:    []content.Post{{Title: "WIP", Source: "posts/wip.md"}},
		Status:    devopsite.CacheStatus{LastError: "bad yaml"},
	}))
	for _, want := range []string{`value="tok456"`, "posts/wip.md", "bad yaml", `action="/admin/reload"`} {
		if !strings.Contains(dash, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestDefaultIsComplete(t *testing.T) {
	v := Default()
	if v.Page == nil || v.BlogIndex == nil || v.BlogList == nil || v.Post == nil ||
		v.Projects == nil || v.Project == nil || v.AdminLogin == nil ||
		v.AdminDashboard == nil || v.NotFound == nil || v.ServerError == nil {
		t.Fatal("Default left a view unset")
	}
}
