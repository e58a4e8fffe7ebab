// Image and font fixtures for tests that exercise cover extraction and
// rendering without touching system fonts or real scans.

package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
)

// SolidImage returns a uniformly colored image of the given size.
func SolidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// PNGBytes encodes a solid-colored PNG and returns its bytes.
func PNGBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, SolidImage(w, h, c)); err != nil {
		t.Fatalf("Failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

// JPEGBytes encodes a solid-colored JPEG and returns its bytes.
func JPEGBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, SolidImage(w, h, c), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Failed to encode test jpeg: %v", err)
	}
	return buf.Bytes()
}

// WriteTestImage writes a solid-colored image file, choosing the format
// from the file extension (.png or anything JPEG otherwise).
func WriteTestImage(t *testing.T, path string, w, h int, c color.Color) string {
	t.Helper()
	var data []byte
	if filepath.Ext(path) == ".png" {
		data = PNGBytes(t, w, h, c)
	} else {
		data = JPEGBytes(t, w, h, c)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write test image %s: %v", path, err)
	}
	return path
}

// TestFontPath writes a bundled bold font to a temp file and returns its
// path, so rendering tests never depend on fonts installed on the host.
func TestFontPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-bold.ttf")
	if err := os.WriteFile(path, gobold.TTF, 0644); err != nil {
		t.Fatalf("Failed to write test font: %v", err)
	}
	return path
}
