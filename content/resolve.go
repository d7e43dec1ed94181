package content

import (
	"errors"
	"path"
	"strings"
	"time"

	"github.com/eringen/devopsite/markdown"
)

// Frontmatter is the metadata block at the top of a post file.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	PublishedAt string   `yaml:"publishedAt"`
	UpdatedAt   string   `yaml:"updatedAt"`
	Author      string   `yaml:"author"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	CoverImage  string   `yaml:"coverImage"`
	Featured    bool     `yaml:"featured"`
	Draft       bool     `yaml:"draft"`
}

// RawPost is a post as read from disk, before validation.
type RawPost struct {
	Source string // path within the content tree, e.g. "posts/hello.md"
	Frontmatter
	Body string
}

// Tables are the static lookup tables posts reference by id.
type Tables struct {
	Authors    map[string]Author
	Categories map[string]Category
	Tags       map[string]Tag
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var errDateFormat = errors.New("unrecognized date format; use YYYY-MM-DD or RFC 3339")

// ParseDate accepts the date formats allowed in frontmatter and YAML tables.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errDateFormat
}

// ResolvePost validates raw and resolves it against tables. Any missing
// required field or unknown reference yields an *IntegrityError; nothing is
// defaulted.
func ResolvePost(raw RawPost, tables Tables) (Post, error) {
	src := raw.Source
	if src == "" {
		src = "post"
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return Post{}, missing(src, "title")
	}
	if strings.TrimSpace(raw.PublishedAt) == "" {
		return Post{}, missing(src, "publishedAt")
	}
	published, err := ParseDate(raw.PublishedAt)
	if err != nil {
		return Post{}, invalid(src, "publishedAt", raw.PublishedAt)
	}
	var updated time.Time
	if strings.TrimSpace(raw.UpdatedAt) != "" {
		if updated, err = ParseDate(raw.UpdatedAt); err != nil {
			return Post{}, invalid(src, "updatedAt", raw.UpdatedAt)
		}
	}

	slug := postSlug(raw)
	if slug == "" {
		return Post{}, missing(src, "slug")
	}

	authorID := strings.TrimSpace(raw.Author)
	if authorID == "" {
		return Post{}, missing(src, "author")
	}
	author, ok := tables.Authors[authorID]
	if !ok {
		return Post{}, dangling(src, "author", authorID)
	}

	categoryID := strings.TrimSpace(raw.Category)
	if categoryID == "" {
		return Post{}, missing(src, "category")
	}
	category, ok := tables.Categories[categoryID]
	if !ok {
		return Post{}, dangling(src, "category", categoryID)
	}

	tags := make([]Tag, 0, len(raw.Tags))
	seen := make(map[string]struct{}, len(raw.Tags))
	for _, id := range raw.Tags {
		id = strings.TrimSpace(id)
		if id == "" {
			return Post{}, invalid(src, "tags", id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		tag, ok := tables.Tags[id]
		if !ok {
			return Post{}, dangling(src, "tags", id)
		}
		tags = append(tags, tag)
	}

	plain := markdown.PlainText(raw.Body)
	words := CountWords(plain)
	description := strings.TrimSpace(raw.Description)

	return Post{
		Slug:        slug,
		Title:       title,
		Description: description,
		PublishedAt: published,
		UpdatedAt:   updated,
		Author:      author,
		Category:    category,
		Tags:        tags,
		Body:        raw.Body,
		CoverImage:  strings.TrimSpace(raw.CoverImage),
		Featured:    raw.Featured,
		Draft:       raw.Draft,
		ReadingTime: ReadingTime(words),
		WordCount:   words,
		Excerpt:     Excerpt(description, plain, ExcerptLength),
		TOC:         BuildTOC(markdown.Headings(raw.Body)),
		Source:      raw.Source,
	}, nil
}

// postSlug prefers an explicit frontmatter slug, then the file name, then
// the title.
func postSlug(raw RawPost) string {
	if s := Slugify(raw.Slug); s != "" {
		return s
	}
	if raw.Source != "" {
		base := path.Base(raw.Source)
		if s := Slugify(strings.TrimSuffix(base, path.Ext(base))); s != "" {
			return s
		}
	}
	return Slugify(raw.Title)
}
