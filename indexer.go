package pressgen

import "sort"

// SortPosts orders posts by publish date, most recent first, with ties
// broken by slug lexical order so output is deterministic.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})
}

// BuildIndex produces the listing entries for the full post sequence,
// ordered by date descending. The index is regenerated from scratch on
// every run.
func BuildIndex(posts []Post) []IndexEntry {
	sorted := append([]Post(nil), posts...)
	SortPosts(sorted)

	entries := make([]IndexEntry, 0, len(sorted))
	for _, p := range sorted {
		entries = append(entries, IndexEntry{
			Title:   p.Title,
			Slug:    p.Slug,
			Date:    p.Date,
			Summary: p.Summary,
			Tags:    p.Tags,
		})
	}
	return entries
}
