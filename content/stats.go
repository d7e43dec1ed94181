package content

import "slices"

// ComputeStats aggregates the non-draft posts. Recent holds the n newest
// posts; Popular the n most-viewed posts according to s, omitting posts with
// no recorded views.
func ComputeStats(posts []Post, s Signals, n int) BlogStats {
	public := make([]Post, 0, len(posts))
	categories := make(map[string]struct{})
	tags := make(map[string]struct{})
	authors := make(map[string]struct{})
	for _, p := range posts {
		if p.Draft {
			continue
		}
		public = append(public, p)
		categories[p.Category.ID] = struct{}{}
		authors[p.Author.ID] = struct{}{}
		for _, t := range p.Tags {
			tags[t.ID] = struct{}{}
		}
	}

	stats := BlogStats{
		TotalPosts:      len(public),
		TotalCategories: len(categories),
		TotalTags:       len(tags),
		TotalAuthors:    len(authors),
		Recent:          []Post{},
		Popular:         []Post{},
	}
	if n <= 0 {
		return stats
	}

	recent := slices.Clone(public)
	slices.SortFunc(recent, byNewest)
	stats.Recent = recent[:min(n, len(recent))]

	var viewed []Post
	for _, p := range public {
		if s.Views[p.Slug] > 0 {
			viewed = append(viewed, p)
		}
	}
	sortByScore(viewed, func(p Post) int { return s.Views[p.Slug] })
	if len(viewed) > 0 {
		stats.Popular = viewed[:min(n, len(viewed))]
	}
	return stats
}
