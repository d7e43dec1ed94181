// Package markdown renders post bodies to HTML and extracts the pieces the
// content layer derives from them: headings for the table of contents and
// plain text for word counts and excerpts.
package markdown

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// md is shared by rendering and extraction so heading IDs in the HTML match
// the IDs in the table of contents. Raw HTML in bodies is not rendered.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Heading is one heading occurrence in document order.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := Render(&buf, content); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of src to w.
func Render(w io.Writer, src string) error {
	return md.Convert([]byte(src), w)
}

// Headings returns every heading in src with its generated anchor ID.
func Headings(src string) []Heading {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		writeInline(h, source, &buf)
		out = append(out, Heading{
			Level: h.Level,
			ID:    headingID(h),
			Text:  strings.TrimSpace(buf.String()),
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// PlainText returns the prose of src with markdown syntax removed. Code
// blocks, raw HTML blocks and image alt text are dropped; inline code is
// kept as a word.
func PlainText(src string) string {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))
	var buf bytes.Buffer
	writeBlocks(doc, source, &buf)
	return strings.TrimSpace(buf.String())
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

func writeBlocks(n ast.Node, source []byte, buf *bytes.Buffer) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock, ast.KindThematicBreak:
			continue
		}
		if first := c.FirstChild(); first != nil && first.Type() == ast.TypeInline {
			writeInline(c, source, buf)
			buf.WriteByte('\n')
			continue
		}
		writeBlocks(c, source, buf)
	}
}

func writeInline(n ast.Node, source []byte, buf *bytes.Buffer) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.AutoLink:
			buf.Write(t.Label(source))
		case *ast.Image, *ast.RawHTML:
		default:
			writeInline(c, source, buf)
		}
	}
}
