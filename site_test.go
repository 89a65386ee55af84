package pressgen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testConfig(input, output string) SiteConfig {
	return SiteConfig{
		Name:        "Test Blog",
		URL:         "https://example.com",
		Description: "Posts about async programming and logging.",
		Author:      "Ada",
		InputDir:    input,
		OutputDir:   output,
	}
}

// snapshot reads every file under dir into a path → content map.
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot %s: %v", dir, err)
	}
	return files
}

func TestBuildWritesSite(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "public")
	writeFile(t, input, "async-logging.md", "---\ntitle: Async Logging\ndate: \"2016-10-13\"\nsummary: Correlation IDs.\n---\nPlain paragraph about **logging**.\n")
	writeFile(t, input, "newer.md", "---\ntitle: Newer Post\ndate: \"2017-01-31\"\n---\nAnother body.\n")

	res, err := New(testConfig(input, output)).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if res.Posts != 2 {
		t.Errorf("Posts = %d, want 2", res.Posts)
	}

	files := snapshot(t, output)
	for _, want := range []string{
		"index.html",
		"feed.xml",
		"sitemap.xml",
		"robots.txt",
		filepath.Join("async-logging", "index.html"),
		filepath.Join("newer", "index.html"),
	} {
		if _, ok := files[want]; !ok {
			t.Errorf("output is missing %s", want)
		}
	}

	post := files[filepath.Join("async-logging", "index.html")]
	if !strings.Contains(post, "<strong>logging</strong>") {
		t.Errorf("post page should contain rendered Markdown: %q", post)
	}
	if !strings.Contains(post, "<h1>Async Logging</h1>") {
		t.Errorf("post page should contain the title: %q", post)
	}
}

func TestBuildIndexListsNewestFirst(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "public")
	writeFile(t, input, "older.md", "---\ntitle: Older\ndate: \"2016-10-13\"\n---\nold\n")
	writeFile(t, input, "newer.md", "---\ntitle: Newer\ndate: \"2017-01-31\"\n---\nnew\n")

	if _, err := New(testConfig(input, output)).Build(); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	index, err := os.ReadFile(filepath.Join(output, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	s := string(index)
	newer := strings.Index(s, "/newer/")
	older := strings.Index(s, "/older/")
	if newer < 0 || older < 0 {
		t.Fatalf("index should link both posts: %q", s)
	}
	if newer > older {
		t.Errorf("the 2017 post must be listed before the 2016 post")
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	input := t.TempDir()
	writeFile(t, input, "a.md", "---\ntitle: A\ndate: \"2016-10-13\"\ntags: [async]\n---\nSome `code` and a [link](https://example.com).\n")
	writeFile(t, input, "b.md", "---\ntitle: B\ndate: \"2017-01-31\"\n---\n# Heading\n\n- one\n- two\n")

	out1 := filepath.Join(t.TempDir(), "public")
	out2 := filepath.Join(t.TempDir(), "public")
	if _, err := New(testConfig(input, out1)).Build(); err != nil {
		t.Fatalf("first Build() error: %v", err)
	}
	if _, err := New(testConfig(input, out2)).Build(); err != nil {
		t.Fatalf("second Build() error: %v", err)
	}

	first, second := snapshot(t, out1), snapshot(t, out2)
	if len(first) != len(second) {
		t.Fatalf("runs wrote different file sets: %d vs %d", len(first), len(second))
	}
	for path, content := range first {
		if second[path] != content {
			t.Errorf("%s differs between runs", path)
		}
	}
}

func TestBuildEmptyInput(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "public")

	res, err := New(testConfig(input, output)).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if res.Posts != 0 {
		t.Errorf("Posts = %d, want 0", res.Posts)
	}
	index, err := os.ReadFile(filepath.Join(output, "index.html"))
	if err != nil {
		t.Fatalf("empty input should still produce an index page: %v", err)
	}
	if !strings.Contains(string(index), "No posts yet.") {
		t.Errorf("empty index should say so: %q", index)
	}
}

func TestBuildParseErrorWritesNothing(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "public")
	writeFile(t, input, "good.md", "---\ntitle: Good\ndate: \"2016-10-13\"\n---\nfine\n")
	writeFile(t, input, "bad.md", "---\ntitle: Bad\n---\nmissing date\n")

	_, err := New(testConfig(input, output)).Build()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Build() error = %v, want *ParseError", err)
	}
	if !strings.Contains(err.Error(), "bad.md") {
		t.Errorf("error should name the offending file: %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Errorf("no output must be written on a parse failure")
	}
}

func TestBuildMissingInputDir(t *testing.T) {
	output := filepath.Join(t.TempDir(), "public")
	_, err := New(testConfig(filepath.Join(t.TempDir(), "missing"), output)).Build()
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Build() error = %v, want *NotFoundError", err)
	}
}

func TestBuildIOError(t *testing.T) {
	input := t.TempDir()
	writeFile(t, input, "a.md", "---\ntitle: A\ndate: \"2016-10-13\"\n---\nbody\n")

	// Output path nested under a regular file cannot be created.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New(testConfig(input, filepath.Join(blocker, "public"))).Build()
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Build() error = %v, want *IOError", err)
	}
}

func TestBuildWithOptions(t *testing.T) {
	input := t.TempDir()
	assets := t.TempDir()
	output := filepath.Join(t.TempDir(), "public")
	writeFile(t, input, "live.md", "---\ntitle: Live\ndate: \"2016-10-13\"\n---\nbody\n")
	writeFile(t, input, "wip.md", "---\ntitle: WIP\ndate: \"2017-01-31\"\ndraft: true\n---\nbody\n")
	writeFile(t, assets, "style.css", "body{}")

	res, err := New(testConfig(input, output), WithDrafts(), WithAssetsDir(assets)).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if res.Posts != 2 {
		t.Errorf("Posts = %d, want the draft included", res.Posts)
	}
	if _, err := os.Stat(filepath.Join(output, "wip", "index.html")); err != nil {
		t.Errorf("draft page missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "style.css")); err != nil {
		t.Errorf("asset not copied: %v", err)
	}
}

func TestBuildFeedAndSitemap(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "public")
	writeFile(t, input, "a.md", "---\ntitle: A Post\ndate: \"2016-10-13\"\nsummary: Sum.\n---\nbody\n")

	if _, err := New(testConfig(input, output)).Build(); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	feed, err := os.ReadFile(filepath.Join(output, "feed.xml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`<rss version="2.0">`, "<title>A Post</title>", "https://example.com/a/", "13 Oct 2016"} {
		if !strings.Contains(string(feed), want) {
			t.Errorf("feed.xml missing %q:\n%s", want, feed)
		}
	}

	sitemap, err := os.ReadFile(filepath.Join(output, "sitemap.xml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"http://www.sitemaps.org/schemas/sitemap/0.9", "<loc>https://example.com/a/</loc>", "<lastmod>2016-10-13</lastmod>"} {
		if !strings.Contains(string(sitemap), want) {
			t.Errorf("sitemap.xml missing %q:\n%s", want, sitemap)
		}
	}
}
