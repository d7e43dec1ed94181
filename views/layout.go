package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/devopsite"
	"github.com/eringen/devopsite/content"
)

var navigation = []struct{ Path, Label string }{
	{"/services", "Services"},
	{"/products", "Products"},
	{"/projects", "Projects"},
	{"/blog", "Blog"},
	{"/about", "About"},
	{"/contact", "Contact"},
}

func layout(meta devopsite.PageMeta, body func(h *html)) templ.Component {
	return component(func(h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.tag("title", meta.Title)
		h.raw(`<meta name="description" content="`)
		h.text(meta.Description)
		h.raw(`">`)
		if meta.URL != "" {
			h.raw(`<link rel="canonical" href="`)
			h.text(meta.URL)
			h.raw(`"><meta property="og:url" content="`)
			h.text(meta.URL)
			h.raw(`">`)
		}
		h.raw(`<meta property="og:title" content="`)
		h.text(meta.Title)
		h.raw(`"><meta property="og:type" content="`)
		h.text(meta.OGType)
		h.raw(`"><meta property="og:site_name" content="`)
		h.text(meta.SiteName)
		h.raw(`">`)
		if meta.Image != "" {
			h.raw(`<meta property="og:image" content="`)
			h.text(meta.Image)
			h.raw(`">`)
		}
		h.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml">`)
		h.raw(`<link rel="stylesheet" href="/public/site.css">`)
		if meta.JSONLD != "" {
			h.raw(`<script type="application/ld+json">`)
			h.raw(meta.JSONLD)
			h.raw(`</script>`)
		}
		h.raw(`</head><body><header><nav>`)
		h.link("/", meta.SiteName)
		h.raw(`<ul>`)
		for _, n := range navigation {
			h.raw(`<li>`)
			h.link(n.Path, n.Label)
			h.raw(`</li>`)
		}
		h.raw(`</ul></nav></header><main>`)
		body(h)
		h.raw(`</main><footer><p>`)
		h.text(meta.SiteName)
		h.raw(` · `)
		h.link("/feed.xml", "RSS")
		h.raw(` · `)
		h.link("/sitemap.xml", "Sitemap")
		h.raw(`</p></footer></body></html>`)
	})
}

func postCard(h *html, p content.Post) {
	h.raw(`<article class="post-card">`)
	h.raw(`<h3>`)
	h.link(p.Path(), p.Title)
	h.raw(`</h3><p class="meta">`)
	h.raw(`<time datetime="` + p.PublishedAt.Format("2006-01-02") + `">`)
	h.text(p.PublishedAt.Format("Jan 2, 2006"))
	h.raw(`</time> · `)
	h.rawf("%d min read", p.ReadingTime)
	h.raw(` · `)
	h.link("/blog/category/"+p.Category.Slug, p.Category.Name)
	h.raw(`</p>`)
	h.tag("p", p.Excerpt)
	if len(p.Tags) > 0 {
		h.raw(`<ul class="tags">`)
		for _, t := range p.Tags {
			h.raw(`<li>`)
			h.link("/blog/tag/"+t.Slug, "#"+t.Name)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	}
	h.raw(`</article>`)
}

func projectCard(h *html, p content.Project) {
	h.raw(`<article class="project-card"><h3>`)
	h.link(p.Path(), p.Title)
	h.raw(`</h3><p class="meta">`)
	h.text(p.Industry)
	if p.Client != "" {
		h.raw(` · `)
		h.text(p.Client)
	}
	h.raw(`</p>`)
	h.tag("p", p.Description)
	h.raw(`</article>`)
}
