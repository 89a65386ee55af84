package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eringen/pressgen"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	out := t.TempDir()
	mustWrite := func(rel, content string) {
		t.Helper()
		path := filepath.Join(out, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("index.html", "<html><body>home</body></html>")
	mustWrite("async-logging/index.html", "<html><body>post</body></html>")
	mustWrite("feed.xml", "<rss/>")

	return New(pressgen.SiteConfig{
		Name:      "Test Blog",
		URL:       "https://example.com",
		OutputDir: out,
	})
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := s.Echo.NewContext(req, rec)
	c.SetPath("/*")
	if err := s.handleStatic(c); err != nil {
		t.Fatalf("handleStatic(%s): %v", path, err)
	}
	return rec
}

func TestHandleStaticServesIndex(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "home") {
		t.Errorf("GET / body = %q", rec.Body.String())
	}
}

func TestHandleStaticServesPostDirectory(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/async-logging/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "post") {
		t.Errorf("GET /async-logging/ = %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandleStaticRedirectsBareDirectory(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/async-logging")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("GET /async-logging = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/async-logging/" {
		t.Errorf("Location = %q", loc)
	}
}

func TestHandleStaticNotFound(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/missing/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /missing/ = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page not found") {
		t.Errorf("404 body = %q", rec.Body.String())
	}
}

func TestHandleStaticBlocksTraversal(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/../../etc/passwd")
	if rec.Code == http.StatusOK && strings.Contains(rec.Body.String(), "root:") {
		t.Error("path traversal must not escape the output directory")
	}
}

func TestInjectReloadScript(t *testing.T) {
	page := []byte("<html><body>hi</body></html>")
	out := string(injectReloadScript(page))
	if !strings.Contains(out, "/__reload") {
		t.Errorf("script not injected: %q", out)
	}
	if !strings.HasSuffix(out, "</body></html>") {
		t.Errorf("script must land before </body>: %q", out)
	}

	bare := string(injectReloadScript([]byte("no body tag")))
	if !strings.Contains(bare, "/__reload") {
		t.Errorf("script should be appended when no body tag exists: %q", bare)
	}
}

func TestInjectReloadScriptServed(t *testing.T) {
	s := testServer(t)
	s.hub = newReloadHub()
	rec := get(t, s, "/")
	if !strings.Contains(rec.Body.String(), "/__reload") {
		t.Errorf("watch mode should inject the reload script: %q", rec.Body.String())
	}
}
