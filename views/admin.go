package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/devopsite"
)

func adminMeta(site, title string) devopsite.PageMeta {
	return devopsite.PageMeta{SiteName: site, Title: title, OGType: "website"}
}

func csrfField(h *html, token string) {
	h.raw(`<input type="hidden" name="_csrf" value="`)
	h.text(token)
	h.raw(`">`)
}

// AdminLogin renders the password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return layout(adminMeta("", "Admin login"), func(h *html) {
		h.raw(`<section class="admin-login"><h1>Admin</h1>`)
		if showError {
			h.raw(`<p class="error">Invalid password or too many attempts.</p>`)
		}
		h.raw(`<form method="post" action="/admin/login">`)
		csrfField(h, csrfToken)
		h.raw(`<label>Password <input type="password" name="password" required autofocus></label>`)
		h.raw(`<button type="submit">Sign in</button></form></section>`)
	})
}

// AdminDashboard renders content statistics, drafts, view counts and the
// content reload control.
func AdminDashboard(d devopsite.DashboardData) templ.Component {
	return layout(adminMeta(d.SiteName, "Dashboard"), func(h *html) {
		h.raw(`<section class="admin"><h1>Dashboard</h1>`)
		if d.Message != "" {
			h.raw(`<p class="notice">`)
			h.text(d.Message)
			h.raw(`</p>`)
		}

		h.raw(`<h2>Content</h2><dl>`)
		h.raw(`<dt>Posts</dt>`)
		h.rawf(`<dd>%d</dd>`, d.Stats.TotalPosts)
		h.raw(`<dt>Categories</dt>`)
		h.rawf(`<dd>%d</dd>`, d.Stats.TotalCategories)
		h.raw(`<dt>Tags</dt>`)
		h.rawf(`<dd>%d</dd>`, d.Stats.TotalTags)
		h.raw(`<dt>Authors</dt>`)
		h.rawf(`<dd>%d</dd>`, d.Stats.TotalAuthors)
		h.raw(`<dt>Loaded</dt><dd>`)
		h.text(d.Status.LoadedAt.Format("2006-01-02 15:04:05 MST"))
		h.rawf(` (%d reloads)</dd></dl>`, d.Status.Reloads)
		if d.Status.LastError != "" {
			h.raw(`<p class="error">Last reload failed at `)
			h.text(d.Status.FailedAt.Format("2006-01-02 15:04:05 MST"))
			h.raw(`: `)
			h.text(d.Status.LastError)
			h.raw(`</p>`)
		}
		h.raw(`<form method="post" action="/admin/reload">`)
		csrfField(h, d.CSRFToken)
		h.raw(`<button type="submit">Reload content</button></form>`)

		if len(d.Drafts) > 0 {
			h.raw(`<h2>Drafts</h2><ul>`)
			for _, p := range d.Drafts {
				h.raw(`<li>`)
				h.text(p.Title)
				h.raw(` <code>`)
				h.text(p.Source)
				h.raw(`</code></li>`)
			}
			h.raw(`</ul>`)
		}

		if d.AnalyticsEnabled {
			h.raw(`<h2>Top posts (30 days)</h2>`)
			if len(d.TopPosts) == 0 {
				h.raw(`<p>No views recorded yet.</p>`)
			} else {
				h.raw(`<table><thead><tr><th>Post</th><th>Views</th></tr></thead><tbody>`)
				for _, pv := range d.TopPosts {
					h.raw(`<tr><td>`)
					h.link("/blog/"+pv.Slug, pv.Slug)
					h.rawf(`</td><td>%d</td></tr>`, pv.Views)
				}
				h.raw(`</tbody></table>`)
			}
			if len(d.DailyViews) > 0 {
				h.raw(`<h2>Daily views</h2><table><tbody>`)
				for _, dv := range d.DailyViews {
					h.raw(`<tr><td>`)
					h.text(dv.Date)
					h.rawf(`</td><td>%d</td></tr>`, dv.Views)
				}
				h.raw(`</tbody></table>`)
			}
		}

		h.raw(`<form method="post" action="/admin/logout">`)
		csrfField(h, d.CSRFToken)
		h.raw(`<button type="submit">Sign out</button></form></section>`)
	})
}
