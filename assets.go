package pressgen

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
)

// processJPEG decodes an image, scales it down to maxImageWidth when wider,
// and re-encodes it as JPEG. Encoding is deterministic, so re-processing the
// same source yields the same bytes.
func processJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// copyAssets mirrors srcDir into dstDir. JPEG images are resized and
// re-encoded; everything else is copied verbatim. Files are visited in
// sorted order and the count of files written is returned.
func copyAssets(srcDir, dstDir string) (int, error) {
	if srcDir == "" {
		return 0, nil
	}
	if _, err := os.Stat(srcDir); err != nil {
		return 0, &NotFoundError{Path: srcDir}
	}

	var paths []string
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", srcDir, err)
	}
	sort.Strings(paths)

	written := 0
	for _, path := range paths {
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return written, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return written, fmt.Errorf("read %s: %w", path, err)
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".jpg" || ext == ".jpeg" {
			processed, err := processJPEG(data)
			if err != nil {
				return written, fmt.Errorf("process %s: %w", path, err)
			}
			data = processed
		}

		out := filepath.Join(dstDir, rel)
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return written, &IOError{Path: filepath.Dir(out), Err: err}
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return written, &IOError{Path: out, Err: err}
		}
		written++
	}
	return written, nil
}
