// Package views provides the default templ components for the site. They
// render plain semantic HTML; styling is left to the stylesheet under
// /public.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// html accumulates the first write error so components read top to bottom.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) rawf(format string, args ...any) {
	if h.err == nil {
		_, h.err = fmt.Fprintf(h.w, format, args...)
	}
}

// text writes s escaped for element content.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// tag writes <name>escaped text</name>.
func (h *html) tag(name, s string) {
	h.raw("<" + name + ">")
	h.text(s)
	h.raw("</" + name + ">")
}

// link writes an anchor with a sanitized href.
func (h *html) link(href, label string) {
	h.raw(`<a href="`)
	h.text(string(templ.URL(href)))
	h.raw(`">`)
	h.text(label)
	h.raw(`</a>`)
}

func (h *html) component(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}
