// This file draws a batch number dead-center on a cover image. The
// typographic anchor of a string is not the middle of its ink, so the
// renderer probes on a scratch canvas and corrects the draw origin until
// the ink bounding box is centered on the image center.

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const probeRounds = 4

// Renderer stamps centered text onto cover images and encodes the
// results as JPEG.
type Renderer struct {
	Fonts      *Locator
	MarginFrac float64
	Scale      float64
	Opacity    uint8
	Quality    int
	MaxEdge    int // 0 keeps rendered covers at full size
}

// New creates a Renderer with the standard cover settings.
func New(fonts *Locator) *Renderer {
	return &Renderer{
		Fonts:      fonts,
		MarginFrac: 0.06,
		Scale:      0.90,
		Opacity:    255,
		Quality:    95,
	}
}

// DrawCenteredText renders text onto a copy of base so that the ink
// bounding box of the glyphs is centered on the image's geometric
// center. The result is opaque.
func (r *Renderer) DrawCenteredText(base image.Image, text string) (image.Image, error) {
	f, err := r.Fonts.Font()
	if err != nil {
		return nil, err
	}

	b := base.Bounds()
	w, h := b.Dx(), b.Dy()

	size := float64(FitSize(f, text, w, h, r.MarginFrac)) * r.Scale
	if size < 10 {
		size = 10
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	// Probe-and-correct placement on a full-size transparent canvas
	// until the rendered ink box centers on the image center.
	x := int(math.Round(float64(w) / 2.0))
	y := int(math.Round(float64(h) / 2.0))
	cx := float64(w) / 2.0
	cy := float64(h) / 2.0

	for i := 0; i < probeRounds; i++ {
		probe := image.NewNRGBA(image.Rect(0, 0, w, h))
		drawString(probe, face, text, x, y, color.NRGBA{A: 255})

		minX, minY, maxX, maxY, ok := inkBounds(probe)
		if !ok {
			break // nothing to center
		}

		bcx := (float64(minX) + float64(maxX)) / 2.0
		bcy := (float64(minY) + float64(maxY)) / 2.0
		dx := int(math.Round(cx - bcx))
		dy := int(math.Round(cy - bcy))

		if dx == 0 && dy == 0 {
			break
		}
		x += dx
		y += dy
	}

	out := image.NewNRGBA(b)
	draw.Draw(out, b, base, b.Min, draw.Src)
	drawString(out, face, text, x, y, color.NRGBA{A: r.Opacity})
	return out, nil
}

// WriteCover encodes a rendered cover as JPEG, downscaling first when
// MaxEdge is set and the image is larger.
func (r *Renderer) WriteCover(img image.Image, outPath string) error {
	if r.MaxEdge > 0 {
		b := img.Bounds()
		if w, h := b.Dx(), b.Dy(); max(w, h) > r.MaxEdge {
			if h >= w {
				img = resize.Resize(0, uint(r.MaxEdge), img, resize.Lanczos3)
			} else {
				img = resize.Resize(uint(r.MaxEdge), 0, img, resize.Lanczos3)
			}
		}
	}
	return SaveJPEG(img, outPath, r.Quality)
}

// SaveJPEG writes an image to disk as an opaque JPEG, creating parent
// directories as needed.
func SaveJPEG(img image.Image, outPath string, quality int) error {
	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create image file %s: %w", outPath, err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("failed to encode JPEG %s: %w", outPath, err)
	}
	return nil
}

// drawString draws text with its baseline origin at (x, y). The probe
// loop corrects for the baseline-to-ink offset, so the anchor choice
// here doesn't matter as long as it is consistent.
func drawString(dst draw.Image, face font.Face, text string, x, y int, col color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// inkBounds returns the inclusive bounding box of pixels with non-zero
// alpha.
func inkBounds(img *image.NRGBA) (minX, minY, maxX, maxY int, ok bool) {
	b := img.Bounds()
	minX, minY = b.Max.X, b.Max.Y
	maxX, maxY = b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride : (y-b.Min.Y)*img.Stride+b.Dx()*4]
		for x := 0; x < b.Dx(); x++ {
			if row[x*4+3] == 0 {
				continue
			}
			ok = true
			px := b.Min.X + x
			if px < minX {
				minX = px
			}
			if px > maxX {
				maxX = px
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	return minX, minY, maxX, maxY, ok
}
