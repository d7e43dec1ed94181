package devopsite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/devopsite/analytics"
	"github.com/eringen/devopsite/content"
)

const (
	relatedCount   = 3
	featuredCount  = 3
	signalsTimeout = 2 * time.Second
)

func (a *App) meta(title, description, path, ogType string) PageMeta {
	if description == "" {
		description = a.Config.Description
	}
	full := a.Config.Name
	if title != "" && title != "Home" {
		full = title + " | " + a.Config.Name
	}
	return PageMeta{
		SiteName:    a.Config.Name,
		Title:       full,
		Description: description,
		URL:         BuildURL(a.Config.URL, path),
		OGType:      ogType,
	}
}

// signals returns the view-based ranking signals, or empty signals when view
// counting is disabled or unavailable.
func (a *App) signals(ctx context.Context) content.Signals {
	if a.recorder == nil {
		return content.Signals{}
	}
	ctx, cancel := context.WithTimeout(ctx, signalsTimeout)
	defer cancel()
	s, err := a.recorder.Signals(ctx, a.now(), a.Config.TrendingWindow)
	if err != nil {
		a.logger.Warn().Err(err).Msg("view signals unavailable")
		return content.Signals{}
	}
	return s
}

func (a *App) notFound(c echo.Context) error {
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
}

func (a *App) handleStaticPage(r content.StaticRoute) echo.HandlerFunc {
	return func(c echo.Context) error {
		lib := a.Content.Library()
		meta := a.meta(r.Title, "", r.Path, "website")
		if r.Path == "/" {
			meta.JSONLD = OrganizationJsonLD(a.Config)
		}
		var featured []content.Post
		for _, p := range lib.Posts() {
			if p.Featured {
				featured = append(featured, p)
			}
		}
		stats := lib.Stats(content.Signals{}, featuredCount)
		return Render(c, a.Views.Page(StaticPageData{
			Meta:     meta,
			Route:    r,
			Featured: featured[:min(featuredCount, len(featured))],
			Recent:   stats.Recent,
			Projects: lib.Projects(),
		}))
	}
}

// parseFilter reads listing parameters. Malformed values are ignored.
func parseFilter(c echo.Context, pageSize int) (content.Filter, url.Values) {
	f := content.Filter{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Tag:      strings.TrimSpace(c.QueryParam("tag")),
		Author:   strings.TrimSpace(c.QueryParam("author")),
		Query:    strings.TrimSpace(c.QueryParam("q")),
		Sort:     content.ParseSortOrder(c.QueryParam("sort")),
		PageSize: pageSize,
	}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		f.Page = n
	}
	if n, err := strconv.Atoi(c.QueryParam("size")); err == nil && n > 0 {
		f.PageSize = n
	}
	if v := c.QueryParam("from"); v != "" {
		if t, err := content.ParseDate(v); err == nil {
			f.From = t
		}
	}
	if v := strings.TrimSpace(c.QueryParam("to")); v != "" {
		if t, err := content.ParseDate(v); err == nil {
			if len(v) == len("2006-01-02") {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			f.To = t
		}
	}

	params := url.Values{}
	for _, k := range []string{"category", "tag", "author", "q", "sort", "size", "from", "to"} {
		if v := strings.TrimSpace(c.QueryParam(k)); v != "" {
			params.Set(k, v)
		}
	}
	return f, params
}

func (a *App) renderBlogIndex(c echo.Context, heading, basePath, description string, f content.Filter, params url.Values) error {
	lib := a.Content.Library()
	var s content.Signals
	if f.Sort == content.SortPopular || f.Sort == content.SortTrending {
		s = a.signals(c.Request().Context())
	}
	data := BlogIndexData{
		Meta:       a.meta(heading, description, basePath, "website"),
		Heading:    heading,
		Page:       lib.List(f, s),
		Filter:     f,
		Categories: lib.Categories(),
		Tags:       lib.Tags(),
		BasePath:   basePath,
		Params:     params,
	}
	if isHTMX(c) && c.QueryParam("partial") == "list" {
		return Render(c, a.Views.BlogList(data))
	}
	return Render(c, a.Views.BlogIndex(data))
}

func (a *App) handleBlog(c echo.Context) error {
	f, params := parseFilter(c, a.Config.PageSize)
	return a.renderBlogIndex(c, "Blog", "/blog", "", f, params)
}

func (a *App) handleBlogCategory(c echo.Context) error {
	cat, ok := a.Content.Library().Category(c.Param("slug"))
	if !ok {
		return a.notFound(c)
	}
	f, params := parseFilter(c, a.Config.PageSize)
	f.Category = cat.ID
	params.Del("category")
	return a.renderBlogIndex(c, cat.Name, "/blog/category/"+cat.Slug,
		fmt.Sprintf("Articles about %s.", cat.Name), f, params)
}

func (a *App) handleBlogTag(c echo.Context) error {
	tag, ok := a.Content.Library().Tag(c.Param("slug"))
	if !ok {
		return a.notFound(c)
	}
	f, params := parseFilter(c, a.Config.PageSize)
	f.Tag = tag.ID
	params.Del("tag")
	return a.renderBlogIndex(c, "#"+tag.Name, "/blog/tag/"+tag.Slug,
		fmt.Sprintf("Articles tagged %s.", tag.Name), f, params)
}

func (a *App) handlePost(c echo.Context) error {
	lib := a.Content.Library()
	post, err := lib.Post(c.Param("slug"))
	if errors.Is(err, content.ErrNotFound) {
		return a.notFound(c)
	}
	if err != nil {
		return err
	}
	a.recordView(c, post.Slug)

	meta := a.meta(post.Title, post.Excerpt, post.Path(), "article")
	meta.Image = post.CoverImage
	meta.JSONLD = BlogPostingJsonLD(post, a.Config)
	return Render(c, a.Views.Post(PostData{
		Meta:    meta,
		Post:    post,
		Related: lib.Related(post, relatedCount),
	}))
}

func (a *App) recordView(c echo.Context, slug string) {
	if a.recorder == nil || isHTMX(c) {
		return
	}
	req := c.Request()
	_, err := a.recorder.Record(req.Context(), analytics.Visit{
		Slug:      slug,
		IP:        c.RealIP(),
		UserAgent: req.UserAgent(),
		DNT:       req.Header.Get("DNT") == "1",
		At:        a.now(),
	})
	if err != nil {
		a.logger.Warn().Err(err).Str("slug", slug).Msg("record view failed")
	}
}

func (a *App) handleProjects(c echo.Context) error {
	return Render(c, a.Views.Projects(ProjectIndexData{
		Meta:     a.meta("Projects", "Selected client work and case studies.", "/projects", "website"),
		Projects: a.Content.Library().Projects(),
	}))
}

func (a *App) handleProject(c echo.Context) error {
	p, err := a.Content.Library().Project(c.Param("slug"))
	if errors.Is(err, content.ErrNotFound) {
		return a.notFound(c)
	}
	if err != nil {
		return err
	}
	meta := a.meta(p.Title, p.Description, p.Path(), "article")
	if len(p.Images) > 0 {
		meta.Image = p.Images[0]
	}
	meta.JSONLD = ProjectJsonLD(p, a.Config)
	return Render(c, a.Views.Project(ProjectData{Meta: meta, Project: p}))
}

func (a *App) handleBlogStats(c echo.Context) error {
	lib := a.Content.Library()
	return c.JSON(http.StatusOK, lib.Stats(a.signals(c.Request().Context()), a.Config.RecentCount))
}

func (a *App) handleBlogPosts(c echo.Context) error {
	f, _ := parseFilter(c, a.Config.PageSize)
	var s content.Signals
	if f.Sort == content.SortPopular || f.Sort == content.SortTrending {
		s = a.signals(c.Request().Context())
	}
	return c.JSON(http.StatusOK, a.Content.Library().List(f, s))
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	b.WriteString("Disallow: /admin\nDisallow: /api/\n\n")
	b.WriteString("Sitemap: " + BuildURL(a.Config.URL, "sitemap.xml") + "\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.notFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
