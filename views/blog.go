package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/devopsite"
	"github.com/eringen/devopsite/content"
	"github.com/eringen/devopsite/markdown"
)

var sortLabels = []struct {
	Order content.SortOrder
	Label string
}{
	{content.SortNewest, "Newest"},
	{content.SortOldest, "Oldest"},
	{content.SortPopular, "Popular"},
	{content.SortTrending, "Trending"},
}

// BlogIndex renders a full blog listing page with filters.
func BlogIndex(d devopsite.BlogIndexData) templ.Component {
	return layout(d.Meta, func(h *html) {
		h.raw(`<section class="blog">`)
		h.tag("h1", d.Heading)
		h.raw(`<form class="search" method="get" action="`)
		h.text(d.BasePath)
		h.raw(`" hx-get="`)
		h.text(d.BasePath)
		h.raw(`" hx-target="#post-list" hx-vals='{"partial":"list"}'>`)
		h.raw(`<input type="search" name="q" placeholder="Search articles" value="`)
		h.text(d.Filter.Query)
		h.raw(`"><select name="sort">`)
		for _, s := range sortLabels {
			h.raw(`<option value="` + string(s.Order) + `"`)
			if d.Filter.Sort == s.Order {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(s.Label)
			h.raw(`</option>`)
		}
		h.raw(`</select><button type="submit">Search</button></form>`)

		h.raw(`<aside><h2>Categories</h2><ul>`)
		for _, c := range d.Categories {
			h.raw(`<li>`)
			h.link("/blog/category/"+c.Slug, c.Name)
			h.raw(`</li>`)
		}
		h.raw(`</ul><h2>Tags</h2><ul class="tags">`)
		for _, t := range d.Tags {
			if t.Count == 0 {
				continue
			}
			h.raw(`<li>`)
			h.link("/blog/tag/"+t.Slug, "#"+t.Name)
			h.rawf(` <span>%d</span></li>`, t.Count)
		}
		h.raw(`</ul></aside>`)
		h.component(BlogList(d))
		h.raw(`</section>`)
	})
}

// BlogList renders only the post list and pagination. It is the HTMX swap
// target of BlogIndex.
func BlogList(d devopsite.BlogIndexData) templ.Component {
	return component(func(h *html) {
		h.raw(`<div id="post-list">`)
		if len(d.Page.Items) == 0 {
			h.raw(`<p class="empty">No articles match.</p>`)
		}
		for _, p := range d.Page.Items {
			postCard(h, p)
		}
		if d.Page.TotalPages > 1 {
			h.raw(`<nav class="pagination">`)
			if d.Page.HasPrev() {
				h.link(d.PageURL(d.Page.Page-1), "Newer")
			}
			h.rawf(` <span>Page %d of %d</span> `, d.Page.Page, d.Page.TotalPages)
			if d.Page.HasNext() {
				h.link(d.PageURL(d.Page.Page+1), "Older")
			}
			h.raw(`</nav>`)
		}
		h.raw(`</div>`)
	})
}

// Post renders a single article with its table of contents and related
// posts.
func Post(d devopsite.PostData) templ.Component {
	p := d.Post
	return layout(d.Meta, func(h *html) {
		h.raw(`<article class="post"><header>`)
		h.tag("h1", p.Title)
		h.raw(`<p class="meta">By `)
		h.text(p.Author.Name)
		h.raw(` · <time datetime="` + p.PublishedAt.Format("2006-01-02") + `">`)
		h.text(p.PublishedAt.Format("January 2, 2006"))
		h.raw(`</time>`)
		if !p.UpdatedAt.IsZero() {
			h.raw(` · Updated `)
			h.text(p.UpdatedAt.Format("January 2, 2006"))
		}
		h.rawf(` · %d min read</p>`, p.ReadingTime)
		if p.CoverImage != "" {
			h.raw(`<img class="cover" alt="" src="`)
			h.text(string(templ.URL(p.CoverImage)))
			h.raw(`">`)
		}
		h.raw(`</header>`)
		if len(p.TOC) > 0 {
			h.raw(`<nav class="toc"><h2>Contents</h2>`)
			toc(h, p.TOC)
			h.raw(`</nav>`)
		}
		h.raw(`<div class="prose">`)
		h.component(markdown.Markdown(p.Body))
		h.raw(`</div><footer>`)
		h.link("/blog/category/"+p.Category.Slug, p.Category.Name)
		for _, t := range p.Tags {
			h.raw(` `)
			h.link("/blog/tag/"+t.Slug, "#"+t.Name)
		}
		if p.Author.Bio != "" {
			h.raw(`<div class="author">`)
			h.tag("strong", p.Author.Name)
			h.tag("p", p.Author.Bio)
			h.raw(`</div>`)
		}
		h.raw(`</footer></article>`)
		if len(d.Related) > 0 {
			h.raw(`<section class="related"><h2>Related articles</h2>`)
			for _, r := range d.Related {
				postCard(h, r)
			}
			h.raw(`</section>`)
		}
	})
}

func toc(h *html, items []*content.TOCItem) {
	h.raw(`<ol>`)
	for _, it := range items {
		h.raw(`<li>`)
		h.link("#"+it.ID, it.Title)
		if len(it.Children) > 0 {
			toc(h, it.Children)
		}
		h.raw(`</li>`)
	}
	h.raw(`</ol>`)
}
