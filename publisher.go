package pressgen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pressgen/views"
)

// Publisher writes rendered pages, the index, the feed, and the sitemap to
// the output directory. Any write failure is an *IOError and aborts the run.
type Publisher struct {
	cfg SiteConfig
}

// NewPublisher creates a Publisher for the given site configuration.
func NewPublisher(cfg SiteConfig) *Publisher {
	return &Publisher{cfg: cfg}
}

// Publish writes the whole site and returns the number of files written.
// Posts must already carry their rendered HTML.
func (p *Publisher) Publish(posts []Post, entries []IndexEntry) (int, error) {
	out := p.cfg.OutputDir
	if err := os.MkdirAll(out, 0o755); err != nil {
		return 0, &IOError{Path: out, Err: err}
	}

	site := p.site()
	written := 0

	for _, post := range posts {
		dir := filepath.Join(out, post.Slug)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return written, &IOError{Path: dir, Err: err}
		}
		page := views.PostPage(site, views.Post{
			Title:   post.Title,
			Date:    post.DateString(),
			Tags:    post.Tags,
			Summary: post.Summary,
			Slug:    post.Slug,
			HTML:    post.HTML,
		})
		if err := p.writeComponent(filepath.Join(dir, "index.html"), page); err != nil {
			return written, err
		}
		written++
	}

	indexEntries := make([]views.Entry, 0, len(entries))
	for _, e := range entries {
		indexEntries = append(indexEntries, views.Entry{
			Title:   e.Title,
			Date:    e.Date.Format("2006-01-02"),
			Summary: e.Summary,
			Link:    e.Link(),
			Tags:    e.Tags,
		})
	}
	if err := p.writeComponent(filepath.Join(out, "index.html"), views.IndexPage(site, indexEntries)); err != nil {
		return written, err
	}
	written++

	var feed bytes.Buffer
	if err := WriteFeed(&feed, p.cfg, entries); err != nil {
		return written, fmt.Errorf("encode feed: %w", err)
	}
	if err := p.writeFile(filepath.Join(out, "feed.xml"), feed.Bytes()); err != nil {
		return written, err
	}
	written++

	var sitemap bytes.Buffer
	if err := WriteSitemap(&sitemap, p.cfg, entries); err != nil {
		return written, fmt.Errorf("encode sitemap: %w", err)
	}
	if err := p.writeFile(filepath.Join(out, "sitemap.xml"), sitemap.Bytes()); err != nil {
		return written, err
	}
	written++

	robots := "User-agent: *\nAllow: /\n\nSitemap: " + strings.TrimRight(p.cfg.URL, "/") + "/sitemap.xml\n"
	if err := p.writeFile(filepath.Join(out, "robots.txt"), []byte(robots)); err != nil {
		return written, err
	}
	written++

	if p.cfg.AssetsDir != "" {
		n, err := copyAssets(p.cfg.AssetsDir, out)
		written += n
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

func (p *Publisher) site() views.Site {
	return views.Site{
		Name:        p.cfg.Name,
		URL:         p.cfg.URL,
		Description: p.cfg.Description,
		Author:      p.cfg.Author,
	}
}

func (p *Publisher) writeComponent(path string, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(context.Background(), &buf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return p.writeFile(path, buf.Bytes())
}

func (p *Publisher) writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return nil
}
