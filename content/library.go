package content

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Library is an immutable, resolved content snapshot. It is safe for
// concurrent use. Accessors return copies of the snapshot's slices.
type Library struct {
	posts      []Post // newest first, drafts included
	public     []Post
	bySlug     map[string]int
	projects   []Project
	byProject  map[string]int
	authors    []Author
	categories []Category
	tags       []Tag
	routes     []StaticRoute
	loadedAt   time.Time
}

// NewLibrary builds a snapshot from already-resolved records. Load is the
// usual constructor; this one exists for callers assembling content in code.
func NewLibrary(posts []Post, projects []Project, tables Tables, routes []StaticRoute, loadedAt time.Time) *Library {
	posts = slices.Clone(posts)
	slices.SortFunc(posts, byNewest)
	if routes == nil {
		routes = DefaultRoutes()
	}
	return newLibrary(posts, slices.Clone(projects), tables, slices.Clone(routes), loadedAt)
}

func newLibrary(posts []Post, projects []Project, tables Tables, routes []StaticRoute, loadedAt time.Time) *Library {
	l := &Library{
		posts:     posts,
		bySlug:    make(map[string]int, len(posts)),
		projects:  projects,
		byProject: make(map[string]int, len(projects)),
		routes:    routes,
		loadedAt:  loadedAt,
	}

	counts := make(map[string]int, len(tables.Tags))
	for _, p := range posts {
		if p.Draft {
			continue
		}
		for _, t := range p.Tags {
			counts[t.ID]++
		}
	}
	for i := range posts {
		tags := make([]Tag, len(posts[i].Tags))
		for j, t := range posts[i].Tags {
			t.Count = counts[t.ID]
			tags[j] = t
		}
		posts[i].Tags = tags

		l.bySlug[posts[i].Slug] = i
		if !posts[i].Draft {
			l.public = append(l.public, posts[i])
		}
	}
	for i, p := range projects {
		l.byProject[p.Slug] = i
	}

	for _, a := range tables.Authors {
		l.authors = append(l.authors, a)
	}
	slices.SortFunc(l.authors, func(a, b Author) int { return strings.Compare(a.ID, b.ID) })

	for _, c := range tables.Categories {
		l.categories = append(l.categories, c)
	}
	slices.SortFunc(l.categories, func(a, b Category) int { return strings.Compare(a.Name, b.Name) })

	for _, t := range tables.Tags {
		t.Count = counts[t.ID]
		l.tags = append(l.tags, t)
	}
	slices.SortFunc(l.tags, func(a, b Tag) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return l
}

// Post returns the public post with the given slug, or ErrNotFound.
func (l *Library) Post(slug string) (Post, error) {
	i, ok := l.bySlug[slug]
	if !ok || l.posts[i].Draft {
		return Post{}, ErrNotFound
	}
	return l.posts[i], nil
}

// Project returns the project with the given slug, or ErrNotFound.
func (l *Library) Project(slug string) (Project, error) {
	i, ok := l.byProject[slug]
	if !ok {
		return Project{}, ErrNotFound
	}
	return l.projects[i], nil
}

// Posts returns the non-draft posts, newest first.
func (l *Library) Posts() []Post { return slices.Clone(l.public) }

// AllPosts returns every post including drafts, newest first.
func (l *Library) AllPosts() []Post { return slices.Clone(l.posts) }

// Projects returns the projects in file order.
func (l *Library) Projects() []Project { return slices.Clone(l.projects) }

func (l *Library) Authors() []Author { return slices.Clone(l.authors) }

func (l *Library) Categories() []Category { return slices.Clone(l.categories) }

// Tags returns every tag with its usage count, most used first.
func (l *Library) Tags() []Tag { return slices.Clone(l.tags) }

func (l *Library) Routes() []StaticRoute { return slices.Clone(l.routes) }

// LoadedAt is when the snapshot was built.
func (l *Library) LoadedAt() time.Time { return l.loadedAt }

// Category looks a category up by id or slug.
func (l *Library) Category(key string) (Category, bool) {
	for _, c := range l.categories {
		if c.ID == key || c.Slug == key {
			return c, true
		}
	}
	return Category{}, false
}

// Tag looks a tag up by id or slug.
func (l *Library) Tag(key string) (Tag, bool) {
	for _, t := range l.tags {
		if t.ID == key || t.Slug == key {
			return t, true
		}
	}
	return Tag{}, false
}

// Related returns up to n other public posts ranked by shared tags, with a
// shared category worth one tag. Posts with nothing in common are omitted.
func (l *Library) Related(p Post, n int) []Post {
	if n <= 0 {
		return nil
	}
	type scored struct {
		post  Post
		score int
	}
	var candidates []scored
	for _, other := range l.public {
		if other.Slug == p.Slug {
			continue
		}
		score := 0
		if other.Category.ID == p.Category.ID {
			score++
		}
		for _, t := range p.Tags {
			if other.HasTag(t.ID) {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{other, score})
		}
	}
	slices.SortFunc(candidates, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return byNewest(a.post, b.post)
	})
	out := make([]Post, 0, min(n, len(candidates)))
	for _, c := range candidates[:min(n, len(candidates))] {
		out = append(out, c.post)
	}
	return out
}

// List runs ListPosts over the snapshot.
func (l *Library) List(f Filter, s Signals) Page {
	return ListPosts(l.public, f, s)
}

// Stats runs ComputeStats over the snapshot.
func (l *Library) Stats(s Signals, n int) BlogStats {
	return ComputeStats(l.public, s, n)
}

// Sitemap runs GenerateSitemapEntries over the snapshot's public posts,
// projects and routes.
func (l *Library) Sitemap(baseURL string, now time.Time) ([]SitemapEntry, error) {
	return GenerateSitemapEntries(baseURL, l.public, l.projects, l.routes, now)
}
