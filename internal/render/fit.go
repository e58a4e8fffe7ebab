// This file computes the largest font size whose rendered text fits
// inside a target rectangle with a margin on every side.

package render

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// measureText returns the pixel extent of text rendered at the given
// point size.
func measureText(f *opentype.Font, text string, size int) (int, int, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return 0, 0, err
	}
	defer face.Close()

	bounds, _ := font.BoundString(face, text)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	return w, h, nil
}

// FitSize binary-searches the largest integer font size in
// [10, max(w,h)*5] whose text extent stays within (1-2*marginFrac) of
// both dimensions. Text extent is monotonic in font size. When nothing
// fits the floor of 10 is returned.
func FitSize(f *opentype.Font, text string, w, h int, marginFrac float64) int {
	maxW := int(float64(w) * (1.0 - 2.0*marginFrac))
	if maxW < 1 {
		maxW = 1
	}
	maxH := int(float64(h) * (1.0 - 2.0*marginFrac))
	if maxH < 1 {
		maxH = 1
	}

	lo := 10
	hi := max(w, h) * 5
	if hi < lo {
		hi = lo
	}
	best := lo

	for lo <= hi {
		mid := (lo + hi) / 2
		tw, th, err := measureText(f, text, mid)
		if err == nil && tw <= maxW && th <= maxH {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	return best
}
