// Package pressgen is a static blog publishing tool built with Go, goldmark,
// and templ. It reads Markdown posts with YAML front-matter from an input
// directory and writes a complete static site: one HTML page per post, a
// date-ordered index, an RSS feed, and a sitemap.
//
// The pipeline is a single linear pass with no retries, no long-lived state,
// and no incremental mode: Loader, Renderer, Indexer, Publisher. All loading
// and rendering finishes before the first byte is written, so a parse failure
// never leaves output behind, and re-running on the same input produces
// byte-identical output.
package pressgen

import (
	"github.com/eringen/pressgen/markdown"
)

// Site runs the publishing pipeline for one site.
type Site struct {
	Config SiteConfig

	loader    *Loader
	renderer  *markdown.Renderer
	publisher *Publisher
}

// BuildResult summarizes one pipeline run.
type BuildResult struct {
	Posts int // posts loaded and rendered
	Files int // files written to the output directory
}

// New creates a Site with the given configuration.
func New(cfg SiteConfig, opts ...Option) *Site {
	cfg.setDefaults()
	s := &Site{Config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	s.loader = NewLoader(s.Config.InputDir, s.Config.IncludeDrafts)
	s.renderer = markdown.NewRenderer()
	s.publisher = NewPublisher(s.Config)
	return s
}

// Build runs the pipeline once: load, render, index, publish. It returns the
// first error encountered; nothing is retried or silently recovered.
func (s *Site) Build() (BuildResult, error) {
	posts, err := s.loader.Load()
	if err != nil {
		return BuildResult{}, err
	}

	for i := range posts {
		html, err := s.renderer.Render([]byte(posts[i].Body))
		if err != nil {
			return BuildResult{}, &ParseError{Path: posts[i].Path, Err: err}
		}
		posts[i].HTML = string(html)
	}

	SortPosts(posts)
	entries := BuildIndex(posts)

	files, err := s.publisher.Publish(posts, entries)
	if err != nil {
		return BuildResult{}, err
	}
	return BuildResult{Posts: len(posts), Files: files}, nil
}
