package devopsite

import (
	"net/url"
	"strconv"

	"github.com/eringen/devopsite/analytics"
	"github.com/eringen/devopsite/content"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	SiteName    string
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
	JSONLD      string
}

// StaticPageData is passed to ViewFuncs.Page for marketing routes.
type StaticPageData struct {
	Meta     PageMeta
	Route    content.StaticRoute
	Featured []content.Post
	Recent   []content.Post
	Projects []content.Project
}

// BlogIndexData is passed to the blog listing views.
type BlogIndexData struct {
	Meta       PageMeta
	Heading    string
	Page       content.Page
	Filter     content.Filter
	Categories []content.Category
	Tags       []content.Tag
	BasePath   string
	Params     url.Values // active query parameters, without page
}

// PageURL links to page n of the current listing.
func (d BlogIndexData) PageURL(n int) string {
	q := url.Values{}
	for k, v := range d.Params {
		q[k] = v
	}
	if n > 1 {
		q.Set("page", strconv.Itoa(n))
	}
	if len(q) == 0 {
		return d.BasePath
	}
	return d.BasePath + "?" + q.Encode()
}

// PostData is passed to ViewFuncs.Post.
type PostData struct {
	Meta    PageMeta
	Post    content.Post
	Related []content.Post
}

// ProjectIndexData is passed to ViewFuncs.Projects.
type ProjectIndexData struct {
	Meta     PageMeta
	Projects []content.Project
}

// ProjectData is passed to ViewFuncs.Project.
type ProjectData struct {
	Meta    PageMeta
	Project content.Project
}

// DashboardData is passed to ViewFuncs.AdminDashboard.
type DashboardData struct {
	SiteName         string
	Stats            content.BlogStats
	Drafts           []content.Post
	AnalyticsEnabled bool
	TopPosts         []analytics.PostViews
	DailyViews       []analytics.DailyView
	Status           CacheStatus
	Message          string
	CSRFToken        string
}
