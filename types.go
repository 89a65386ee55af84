package pressgen

import "time"

// Post is one Markdown source file with its front-matter. Posts are
// immutable once loaded: the render stage fills HTML, and everything is
// discarded at the end of the run.
type Post struct {
	Title   string
	Date    time.Time
	Tags    []string
	Summary string
	Slug    string
	Draft   bool
	Body    string // raw Markdown with front-matter stripped
	HTML    string // rendered fragment, set by the render stage
	Path    string // source file path, kept for error messages
}

// Link returns the site-relative URL of the post's generated page.
func (p Post) Link() string {
	return "/" + p.Slug + "/"
}

// DateString returns the publish date in YYYY-MM-DD form.
func (p Post) DateString() string {
	return p.Date.Format("2006-01-02")
}

// IndexEntry is one row of the generated listing page. The full set is
// regenerated on every run; there is no incremental update.
type IndexEntry struct {
	Title   string
	Slug    string
	Date    time.Time
	Summary string
	Tags    []string
}

// Link returns the site-relative URL of the entry's post page.
func (e IndexEntry) Link() string {
	return "/" + e.Slug + "/"
}
