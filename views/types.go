package views

// Site holds the site-wide values every template needs. It mirrors the
// library's SiteConfig so the views package stays free of pipeline imports.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Post is the rendered post handed to the post page template.
type Post struct {
	Title   string
	Date    string // YYYY-MM-DD
	Tags    []string
	Summary string
	Slug    string
	HTML    string // rendered Markdown fragment
}

// Entry is one row of the index page.
type Entry struct {
	Title   string
	Date    string // YYYY-MM-DD
	Summary string
	Link    string
	Tags    []string
}

// StatsSummary feeds the analytics dashboard template.
type StatsSummary struct {
	TotalVisits    int
	UniqueVisitors int
	TopPages       []PathCount
	Days           []DayCount
}

// PathCount is a path with its visit count.
type PathCount struct {
	Path  string
	Count int
}

// DayCount is a calendar day with its visit count.
type DayCount struct {
	Day   string // YYYY-MM-DD
	Count int
}
