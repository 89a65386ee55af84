package pressgen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyAssets(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "style.css", "body{}")
	writeFile(t, src, "fonts/mono.txt", "fake font")

	n, err := copyAssets(src, dst)
	if err != nil {
		t.Fatalf("copyAssets error: %v", err)
	}
	if n != 2 {
		t.Errorf("copied %d files, want 2", n)
	}
	got, err := os.ReadFile(filepath.Join(dst, "fonts", "mono.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "fake font" {
		t.Errorf("copied content = %q", got)
	}
}

func TestCopyAssetsMissingDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), "missing")
	_, err := copyAssets(src, t.TempDir())
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("copyAssets error = %v, want *NotFoundError", err)
	}
	want := fmt.Sprintf("directory %q does not exist", src)
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestCopyAssetsEmptySrcIsNoop(t *testing.T) {
	n, err := copyAssets("", t.TempDir())
	if err != nil || n != 0 {
		t.Fatalf("copyAssets(\"\") = %d, %v, want 0, nil", n, err)
	}
}

func encodeTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode test jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestProcessJPEGResizesWideImages(t *testing.T) {
	data, err := processJPEG(encodeTestJPEG(t, 1600, 400))
	if err != nil {
		t.Fatalf("processJPEG error: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode processed image: %v", err)
	}
	if got := img.Bounds().Dx(); got != maxImageWidth {
		t.Errorf("width = %d, want %d", got, maxImageWidth)
	}
	if got := img.Bounds().Dy(); got != 200 {
		t.Errorf("height = %d, want 200", got)
	}
}

func TestProcessJPEGKeepsNarrowImages(t *testing.T) {
	data, err := processJPEG(encodeTestJPEG(t, 400, 300))
	if err != nil {
		t.Fatalf("processJPEG error: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode processed image: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 300 {
		t.Errorf("bounds = %v, want 400x300", img.Bounds())
	}
}

func TestCopyAssetsProcessesJPEGs(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "wide.jpg"), encodeTestJPEG(t, 1600, 400), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := copyAssets(src, dst); err != nil {
		t.Fatalf("copyAssets error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "wide.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode copied image: %v", err)
	}
	if img.Bounds().Dx() != maxImageWidth {
		t.Errorf("copied image width = %d, want %d", img.Bounds().Dx(), maxImageWidth)
	}
}
