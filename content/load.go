package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Layout of a content tree.
const (
	authorsFile    = "authors.yaml"
	categoriesFile = "categories.yaml"
	tagsFile       = "tags.yaml"
	projectsFile   = "projects.yaml"
	postsDir       = "posts"
)

const parseConcurrency = 8

type loadOptions struct {
	routes []StaticRoute
	now    func() time.Time
}

// Option configures Load.
type Option func(*loadOptions)

// WithRoutes replaces the default static route catalog.
func WithRoutes(routes []StaticRoute) Option {
	return func(o *loadOptions) {
		if len(routes) > 0 {
			o.routes = slices.Clone(routes)
		}
	}
}

// WithClock sets the clock used to stamp the snapshot.
func WithClock(now func() time.Time) Option {
	return func(o *loadOptions) {
		if now != nil {
			o.now = now
		}
	}
}

type projectRecord struct {
	Project     `yaml:",inline"`
	PublishedAt string `yaml:"publishedAt"`
	CompletedAt string `yaml:"completedAt"`
}

// Load reads a content tree and returns the resolved snapshot. Any
// integrity problem aborts the load; a partial library is never returned.
//
// The tree holds authors.yaml, categories.yaml, tags.yaml and projects.yaml
// (YAML sequences, each optional) and a posts/ directory of markdown files
// with YAML frontmatter.
func Load(fsys fs.FS, opts ...Option) (*Library, error) {
	o := loadOptions{routes: DefaultRoutes(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	tables, err := loadTables(fsys)
	if err != nil {
		return nil, err
	}
	projects, err := loadProjects(fsys)
	if err != nil {
		return nil, err
	}
	raws, err := loadRawPosts(fsys)
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(raws))
	bySlug := make(map[string]int, len(raws))
	for _, raw := range raws {
		p, err := ResolvePost(raw, tables)
		if err != nil {
			return nil, err
		}
		if prev, dup := bySlug[p.Slug]; dup {
			return nil, &IntegrityError{
				Kind:   DuplicateSlug,
				Source: raw.Source,
				Field:  "slug",
				Value:  p.Slug + " (also " + posts[prev].Source + ")",
			}
		}
		bySlug[p.Slug] = len(posts)
		posts = append(posts, p)
	}
	slices.SortFunc(posts, byNewest)

	now := o.now().UTC()
	lib := newLibrary(posts, projects, tables, o.routes, now)
	if _, err := lib.Sitemap("", now); err != nil {
		return nil, err
	}
	return lib, nil
}

func readTable[T any](fsys fs.FS, name string) ([]T, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", name, err)
	}
	var records []T
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", name, err)
	}
	return records, nil
}

func loadTables(fsys fs.FS) (Tables, error) {
	authors, err := readTable[Author](fsys, authorsFile)
	if err != nil {
		return Tables{}, err
	}
	categories, err := readTable[Category](fsys, categoriesFile)
	if err != nil {
		return Tables{}, err
	}
	tags, err := readTable[Tag](fsys, tagsFile)
	if err != nil {
		return Tables{}, err
	}

	t := Tables{
		Authors:    make(map[string]Author, len(authors)),
		Categories: make(map[string]Category, len(categories)),
		Tags:       make(map[string]Tag, len(tags)),
	}
	for _, a := range authors {
		a.ID = strings.TrimSpace(a.ID)
		if err := checkID(authorsFile, a.ID, t.Authors); err != nil {
			return Tables{}, err
		}
		if a.Name == "" {
			a.Name = titleFromID(a.ID)
		}
		t.Authors[a.ID] = a
	}
	for _, c := range categories {
		c.ID = strings.TrimSpace(c.ID)
		if err := checkID(categoriesFile, c.ID, t.Categories); err != nil {
			return Tables{}, err
		}
		if c.Name == "" {
			c.Name = titleFromID(c.ID)
		}
		c.Slug = Slugify(cmpOr(c.Slug, c.Name, c.ID))
		t.Categories[c.ID] = c
	}
	for _, tg := range tags {
		tg.ID = strings.TrimSpace(tg.ID)
		if err := checkID(tagsFile, tg.ID, t.Tags); err != nil {
			return Tables{}, err
		}
		if tg.Name == "" {
			tg.Name = titleFromID(tg.ID)
		}
		tg.Slug = Slugify(cmpOr(tg.Slug, tg.Name, tg.ID))
		t.Tags[tg.ID] = tg
	}
	return t, nil
}

func checkID[T any](source, id string, seen map[string]T) error {
	if id == "" {
		return missing(source, "id")
	}
	if _, dup := seen[id]; dup {
		return &IntegrityError{Kind: DuplicateSlug, Source: source, Field: "id", Value: id}
	}
	return nil
}

func cmpOr(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func loadProjects(fsys fs.FS) ([]Project, error) {
	records, err := readTable[projectRecord](fsys, projectsFile)
	if err != nil {
		return nil, err
	}
	projects := make([]Project, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		p := r.Project
		src := fmt.Sprintf("%s[%d]", projectsFile, i)
		p.Title = strings.TrimSpace(p.Title)
		if p.Title == "" {
			return nil, missing(src, "title")
		}
		p.Slug = Slugify(cmpOr(p.Slug, p.Title))
		if p.Slug == "" {
			return nil, missing(src, "slug")
		}
		if _, dup := seen[p.Slug]; dup {
			return nil, &IntegrityError{Kind: DuplicateSlug, Source: src, Field: "slug", Value: p.Slug}
		}
		seen[p.Slug] = struct{}{}

		if strings.TrimSpace(r.PublishedAt) != "" {
			if p.PublishedAt, err = ParseDate(r.PublishedAt); err != nil {
				return nil, invalid(src, "publishedAt", r.PublishedAt)
			}
		}
		if strings.TrimSpace(r.CompletedAt) != "" {
			if p.CompletedAt, err = ParseDate(r.CompletedAt); err != nil {
				return nil, invalid(src, "completedAt", r.CompletedAt)
			}
		}
		if p.CompletedAt.IsZero() {
			p.CompletedAt = p.PublishedAt
		}
		if p.CompletedAt.IsZero() {
			return nil, missing(src, "completedAt")
		}
		if p.PublishedAt.IsZero() {
			p.PublishedAt = p.CompletedAt
		}
		if p.Status == "" {
			p.Status = "completed"
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// loadRawPosts parses every post file concurrently. The result is ordered by
// file name so resolution errors are reported deterministically.
func loadRawPosts(fsys fs.FS) ([]RawPost, error) {
	var files []string
	for _, pattern := range []string{"*.md", "*.markdown"} {
		matches, err := fs.Glob(fsys, path.Join(postsDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("content: list posts: %w", err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)

	raws := make([]RawPost, len(files))
	var g errgroup.Group
	g.SetLimit(parseConcurrency)
	for i, name := range files {
		g.Go(func() error {
			raw, err := parsePostFile(fsys, name)
			if err != nil {
				return err
			}
			raws[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return raws, nil
}

func parsePostFile(fsys fs.FS, name string) (RawPost, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return RawPost{}, fmt.Errorf("content: read %s: %w", name, err)
	}
	raw := RawPost{Source: name}
	body, err := frontmatter.Parse(bytes.NewReader(data), &raw.Frontmatter)
	if err != nil {
		return RawPost{}, fmt.Errorf("content: parse frontmatter %s: %w", name, err)
	}
	raw.Body = string(body)
	return raw, nil
}
