package pressgen

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// frontMatter is the YAML block expected at the top of every post. Title and
// date are required; everything else is optional.
type frontMatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Slug    string   `yaml:"slug"`
	Tags    []string `yaml:"tags"`
	Summary string   `yaml:"summary"`
	Draft   bool     `yaml:"draft"`
}

// Loader turns a directory of Markdown files into Post records. It has no
// side effects beyond reads.
type Loader struct {
	dir           string
	includeDrafts bool
}

// NewLoader creates a Loader for the given input directory.
func NewLoader(dir string, includeDrafts bool) *Loader {
	return &Loader{dir: dir, includeDrafts: includeDrafts}
}

// Load discovers and parses every post under the input directory, in sorted
// path order so repeated runs see the same sequence. It returns a
// *NotFoundError when the directory does not exist and a *ParseError for the
// first file with missing or malformed front-matter.
func (l *Loader) Load() ([]Post, error) {
	info, err := os.Stat(l.dir)
	if err != nil || !info.IsDir() {
		return nil, &NotFoundError{Path: l.dir}
	}

	var paths []string
	err = filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if d.IsDir() {
			if path != l.dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return fs.SkipDir
			}
			return nil
		}
		// Only *.md files that follow the naming convention are posts;
		// hidden and underscore-prefixed files are working files.
		if !strings.HasSuffix(name, ".md") || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.dir, err)
	}
	sort.Strings(paths)

	posts := make([]Post, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		post, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}
		if post.Draft && !l.includeDrafts {
			continue
		}
		if prev, ok := seen[post.Slug]; ok {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("slug %q already used by %s", post.Slug, prev)}
		}
		seen[post.Slug] = path
		posts = append(posts, post)
	}
	return posts, nil
}

func (l *Loader) loadFile(path string) (Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Post{}, fmt.Errorf("read %s: %w", path, err)
	}

	var meta frontMatter
	body, err := frontmatter.MustParse(bytes.NewReader(data), &meta)
	if err != nil {
		return Post{}, &ParseError{Path: path, Err: fmt.Errorf("front-matter: %w", err)}
	}
	if strings.TrimSpace(meta.Title) == "" {
		return Post{}, &ParseError{Path: path, Err: fmt.Errorf("front-matter is missing required field %q", "title")}
	}
	if strings.TrimSpace(meta.Date) == "" {
		return Post{}, &ParseError{Path: path, Err: fmt.Errorf("front-matter is missing required field %q", "date")}
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(meta.Date))
	if err != nil {
		return Post{}, &ParseError{Path: path, Err: fmt.Errorf("invalid date %q, want YYYY-MM-DD", meta.Date)}
	}

	slug := strings.TrimSpace(meta.Slug)
	if slug == "" {
		base := strings.TrimSuffix(filepath.Base(path), ".md")
		slug = Slugify(base)
	} else {
		slug = Slugify(slug)
	}
	if slug == "" {
		return Post{}, &ParseError{Path: path, Err: fmt.Errorf("filename yields an empty slug")}
	}

	return Post{
		Title:   strings.TrimSpace(meta.Title),
		Date:    date,
		Tags:    FilterEmpty(meta.Tags),
		Summary: strings.TrimSpace(meta.Summary),
		Slug:    slug,
		Draft:   meta.Draft,
		Body:    string(body),
		Path:    path,
	}, nil
}
