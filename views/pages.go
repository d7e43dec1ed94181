package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/devopsite"
)

// Page renders a marketing route. The home page lists featured and recent
// posts and the portfolio; other routes render a titled placeholder section
// that the stylesheet and copy fill in.
func Page(d devopsite.StaticPageData) templ.Component {
	return layout(d.Meta, func(h *html) {
		if d.Route.Path != "/" {
			h.raw(`<section class="page">`)
			h.tag("h1", d.Route.Title)
			h.tag("p", d.Meta.Description)
			if strings.HasPrefix(d.Route.Path, "/contact") {
				contactForm(h)
			}
			h.raw(`</section>`)
			return
		}
		h.raw(`<section class="hero">`)
		h.tag("h1", d.Meta.SiteName)
		h.tag("p", d.Meta.Description)
		h.link("/contact", "Book a consultation")
		h.raw(`</section>`)
		if len(d.Featured) > 0 {
			h.raw(`<section class="featured"><h2>Featured</h2>`)
			for _, p := range d.Featured {
				postCard(h, p)
			}
			h.raw(`</section>`)
		}
		if len(d.Recent) > 0 {
			h.raw(`<section class="recent"><h2>Latest articles</h2>`)
			for _, p := range d.Recent {
				postCard(h, p)
			}
			h.raw(`</section>`)
		}
		if len(d.Projects) > 0 {
			h.raw(`<section class="projects"><h2>Recent work</h2>`)
			for _, p := range d.Projects[:min(3, len(d.Projects))] {
				projectCard(h, p)
			}
			h.raw(`</section>`)
		}
	})
}

func contactForm(h *html) {
	h.raw(`<form class="contact" method="post" action="/api/contact">`)
	h.raw(`<label>Name <input name="name" required></label>`)
	h.raw(`<label>Email <input type="email" name="email" required></label>`)
	h.raw(`<label>Company <input name="company"></label>`)
	h.raw(`<label>Message <textarea name="message" required></textarea></label>`)
	h.raw(`<button type="submit">Send</button></form>`)
}

// Projects renders the portfolio index.
func Projects(d devopsite.ProjectIndexData) templ.Component {
	return layout(d.Meta, func(h *html) {
		h.raw(`<section class="projects"><h1>Projects</h1>`)
		for _, p := range d.Projects {
			projectCard(h, p)
		}
		h.raw(`</section>`)
	})
}

// Project renders one case study.
func Project(d devopsite.ProjectData) templ.Component {
	p := d.Project
	return layout(d.Meta, func(h *html) {
		h.raw(`<article class="project">`)
		h.tag("h1", p.Title)
		h.raw(`<dl>`)
		for _, row := range [][2]string{
			{"Client", p.Client},
			{"Industry", p.Industry},
			{"Category", p.Category},
			{"Status", p.Status},
			{"Completed", p.CompletedAt.Format("January 2006")},
		} {
			if row[1] == "" {
				continue
			}
			h.tag("dt", row[0])
			h.tag("dd", row[1])
		}
		h.raw(`</dl>`)
		h.tag("p", p.Description)
		if len(p.Technologies) > 0 {
			h.raw(`<ul class="technologies">`)
			for _, t := range p.Technologies {
				h.tag("li", t)
			}
			h.raw(`</ul>`)
		}
		for _, img := range p.Images {
			h.raw(`<img loading="lazy" alt="" src="`)
			h.text(string(templ.URL(img)))
			h.raw(`">`)
		}
		if p.LiveURL != "" {
			h.raw(`<p>`)
			h.link(p.LiveURL, "Visit the live site")
			h.raw(`</p>`)
		}
		h.raw(`</article>`)
	})
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return layout(devopsite.PageMeta{Title: "Page not found", OGType: "website"}, func(h *html) {
		h.raw(`<section class="error"><h1>Page not found</h1>`)
		h.raw(`<p>The page you are looking for does not exist.</p>`)
		h.link("/", "Back to the home page")
		h.raw(`</section>`)
	})
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return layout(devopsite.PageMeta{Title: "Something went wrong", OGType: "website"}, func(h *html) {
		h.raw(`<section class="error"><h1>Something went wrong</h1>`)
		h.raw(`<p>Please try again in a moment.</p></section>`)
	})
}
