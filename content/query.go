package content

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// SortOrder selects how ListPosts orders its results.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortPopular   SortOrder = "popular"
	SortTrending  SortOrder = "trending"
	SortRelevance SortOrder = "relevance"
)

// ParseSortOrder maps user input to a SortOrder, defaulting to newest.
func ParseSortOrder(s string) SortOrder {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortOldest, SortPopular, SortTrending, SortRelevance:
		return o
	default:
		return SortNewest
	}
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	maxQueryLen   = 256
	maxQueryTerms = 16
)

// Filter narrows and orders a post listing. Zero values mean "no constraint".
// Category, Tag and Author match either the record id or its slug.
type Filter struct {
	Category string
	Tag      string
	Author   string
	Query    string
	From     time.Time
	To       time.Time
	Sort     SortOrder
	Page     int
	PageSize int
}

// Page is one page of a post listing.
type Page struct {
	Items      []Post `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Page < p.TotalPages }

// ListPosts filters, sorts and paginates posts. Drafts are never returned.
// The order is total (ties fall back to newest first, then slug), so pages
// are disjoint and stable across calls. Malformed input only narrows the
// result; it never fails.
func ListPosts(posts []Post, f Filter, s Signals) Page {
	terms := queryTerms(f.Query)

	matched := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Draft || !f.matches(p, terms) {
			continue
		}
		matched = append(matched, p)
	}
	sortPosts(matched, f.Sort, terms, s)

	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	size = min(size, MaxPageSize)
	page := max(f.Page, 1)

	total := len(matched)
	out := Page{
		Items:      []Post{},
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: (total + size - 1) / size,
	}
	// page-1 is bounded before multiplying so huge page numbers cannot overflow.
	if page-1 < out.TotalPages {
		start := (page - 1) * size
		out.Items = matched[start:min(start+size, total)]
	}
	return out
}

func (f Filter) matches(p Post, terms []string) bool {
	if f.Category != "" && p.Category.ID != f.Category && p.Category.Slug != f.Category {
		return false
	}
	if f.Tag != "" && !p.HasTag(f.Tag) {
		return false
	}
	if f.Author != "" && p.Author.ID != f.Author && Slugify(p.Author.Name) != f.Author {
		return false
	}
	if !f.From.IsZero() && p.PublishedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && p.PublishedAt.After(f.To) {
		return false
	}
	if len(terms) > 0 {
		haystack := strings.ToLower(p.Title + " " + p.Description)
		for _, t := range terms {
			if !strings.Contains(haystack, t) {
				return false
			}
		}
	}
	return true
}

func queryTerms(q string) []string {
	if len(q) > maxQueryLen {
		q = q[:maxQueryLen]
	}
	terms := strings.Fields(strings.ToLower(q))
	if len(terms) > maxQueryTerms {
		terms = terms[:maxQueryTerms]
	}
	return terms
}

func byNewest(a, b Post) int {
	if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
		return c
	}
	return strings.Compare(a.Slug, b.Slug)
}

func sortPosts(posts []Post, order SortOrder, terms []string, s Signals) {
	switch order {
	case SortOldest:
		slices.SortFunc(posts, func(a, b Post) int {
			if c := a.PublishedAt.Compare(b.PublishedAt); c != 0 {
				return c
			}
			return strings.Compare(a.Slug, b.Slug)
		})
	case SortPopular:
		sortByScore(posts, func(p Post) int { return s.Views[p.Slug] })
	case SortTrending:
		sortByScore(posts, func(p Post) int { return s.Recent[p.Slug] })
	case SortRelevance:
		sortByScore(posts, func(p Post) int { return relevance(p, terms) })
	default:
		slices.SortFunc(posts, byNewest)
	}
}

// sortByScore orders by descending score, newest first among equals.
func sortByScore(posts []Post, score func(Post) int) {
	scores := make(map[string]int, len(posts))
	for _, p := range posts {
		scores[p.Slug] = score(p)
	}
	slices.SortFunc(posts, func(a, b Post) int {
		if c := cmp.Compare(scores[b.Slug], scores[a.Slug]); c != 0 {
			return c
		}
		return byNewest(a, b)
	})
}

// relevance weights title hits over tag hits over description hits.
func relevance(p Post, terms []string) int {
	title := strings.ToLower(p.Title)
	desc := strings.ToLower(p.Description)
	score := 0
	for _, t := range terms {
		if strings.Contains(title, t) {
			score += 3
		}
		if strings.Contains(desc, t) {
			score++
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag.Name), t) {
				score += 2
				break
			}
		}
	}
	return score
}
