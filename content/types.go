// Package content loads the site's structured content (blog posts, authors,
// categories, tags and portfolio projects) and turns it into render-ready
// records: slugs, reading time, excerpts, tables of contents and resolved
// references. It also answers listing, statistics and sitemap queries.
//
// Everything in this package operates on an immutable snapshot built once by
// Load; nothing here mutates a record after it has been resolved.
package content

import "time"

// Author is a static author record referenced by posts.
type Author struct {
	ID     string            `yaml:"id" json:"id"`
	Name   string            `yaml:"name" json:"name"`
	Bio    string            `yaml:"bio" json:"bio"`
	Avatar string            `yaml:"avatar" json:"avatar"`
	Social map[string]string `yaml:"social" json:"social,omitempty"`
}

// Category is a static category record. Color is a design token name.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Slug  string `yaml:"slug" json:"slug"`
	Color string `yaml:"color" json:"color"`
}

// Tag is a static tag record. Count is derived from the non-draft posts
// referencing the tag.
type Tag struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Slug  string `yaml:"slug" json:"slug"`
	Count int    `yaml:"-" json:"count"`
}

// Post is a fully resolved blog post.
type Post struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PublishedAt time.Time  `json:"publishedAt"`
	UpdatedAt   time.Time  `json:"updatedAt,omitzero"`
	Author      Author     `json:"author"`
	Category    Category   `json:"category"`
	Tags        []Tag      `json:"tags"`
	Body        string     `json:"-"`
	CoverImage  string     `json:"coverImage,omitempty"`
	Featured    bool       `json:"featured"`
	Draft       bool       `json:"-"`
	ReadingTime int        `json:"readingTime"`
	WordCount   int        `json:"wordCount"`
	Excerpt     string     `json:"excerpt"`
	TOC         []*TOCItem `json:"toc,omitempty"`
	Source      string     `json:"-"`
}

// LastModified is the update timestamp when present, else the publish date.
func (p Post) LastModified() time.Time {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	return p.PublishedAt
}

// Path is the site-relative URL of the post.
func (p Post) Path() string {
	return "/blog/" + p.Slug
}

// HasTag reports whether the post references the tag by id or slug.
func (p Post) HasTag(key string) bool {
	for _, t := range p.Tags {
		if t.ID == key || t.Slug == key {
			return true
		}
	}
	return false
}

// Project is a portfolio case study.
type Project struct {
	Slug         string    `yaml:"slug" json:"slug"`
	Title        string    `yaml:"title" json:"title"`
	Description  string    `yaml:"description" json:"description"`
	Category     string    `yaml:"category" json:"category"`
	Industry     string    `yaml:"industry" json:"industry"`
	Technologies []string  `yaml:"technologies" json:"technologies"`
	PublishedAt  time.Time `yaml:"-" json:"publishedAt"`
	CompletedAt  time.Time `yaml:"-" json:"completedAt"`
	Status       string    `yaml:"status" json:"status"`
	Client       string    `yaml:"client" json:"client"`
	LiveURL      string    `yaml:"liveUrl" json:"liveUrl,omitempty"`
	Images       []string  `yaml:"images" json:"images"`
}

// Path is the site-relative URL of the project.
func (p Project) Path() string {
	return "/projects/" + p.Slug
}

// TOCItem is one node of a post's table of contents.
type TOCItem struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Level    int        `json:"level"`
	Children []*TOCItem `json:"children,omitempty"`
}

// BlogStats aggregates a set of posts.
type BlogStats struct {
	TotalPosts      int    `json:"totalPosts"`
	TotalCategories int    `json:"totalCategories"`
	TotalTags       int    `json:"totalTags"`
	TotalAuthors    int    `json:"totalAuthors"`
	Recent          []Post `json:"recent"`
	Popular         []Post `json:"popular"`
}

// Signals carries externally measured ranking data keyed by post slug.
// Views drives the popular ordering, Recent the trending one.
type Signals struct {
	Views  map[string]int
	Recent map[string]int
}
