// This file locates a usable display typeface for cover rendering. A
// ranked list of candidate paths is probed in order; the first file that
// exists and parses as an OpenType/TrueType font wins.

package render

import (
	"errors"
	"os"
	"sync"

	"golang.org/x/image/font/opentype"
)

// ErrFontUnavailable is returned when none of the candidate font paths
// exist or parse.
var ErrFontUnavailable = errors.New("no usable font found for cover rendering")

// Locator resolves a font once and caches the parsed result. Resolution
// is deterministic: the same candidate list and machine state always
// yield the same font or the same failure.
type Locator struct {
	paths []string

	once sync.Once
	font *opentype.Font
	err  error
}

// NewLocator creates a Locator that probes the given paths in order.
func NewLocator(paths []string) *Locator {
	return &Locator{paths: paths}
}

// Font returns the resolved font, probing the candidate paths on first
// use. Candidates that are missing or fail to parse are skipped.
func (l *Locator) Font() (*opentype.Font, error) {
	l.once.Do(func() {
		l.font, l.err = locate(l.paths)
	})
	return l.font, l.err
}

func locate(paths []string) (*opentype.Font, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		return f, nil
	}
	return nil, ErrFontUnavailable
}
