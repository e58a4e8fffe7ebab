package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mangabatch/internal/testutil"
)

func TestLocator(t *testing.T) {
	t.Run("No candidates exist", func(t *testing.T) {
		l := NewLocator([]string{"/nonexistent/font-a.ttf", "/nonexistent/font-b.ttf"})
		_, err := l.Font()
		if !errors.Is(err, ErrFontUnavailable) {
			t.Errorf("Expected ErrFontUnavailable, got %v", err)
		}
	})

	t.Run("Skips unparsable candidates", func(t *testing.T) {
		dir := t.TempDir()
		garbage := filepath.Join(dir, "garbage.ttf")
		if err := os.WriteFile(garbage, []byte("not a font"), 0644); err != nil {
			t.Fatalf("Failed to write garbage font: %v", err)
		}

		l := NewLocator([]string{"/nonexistent/font.ttf", garbage, testutil.TestFontPath(t)})
		f, err := l.Font()
		if err != nil {
			t.Fatalf("Font() failed: %v", err)
		}
		if f == nil {
			t.Fatal("Font() returned nil font")
		}
	})

	t.Run("Resolution is memoized", func(t *testing.T) {
		fontPath := testutil.TestFontPath(t)
		l := NewLocator([]string{fontPath})

		first, err := l.Font()
		if err != nil {
			t.Fatalf("Font() failed: %v", err)
		}

		// Deleting the file must not matter; the parsed font is cached.
		os.Remove(fontPath)
		second, err := l.Font()
		if err != nil {
			t.Fatalf("Second Font() call failed: %v", err)
		}
		if first != second {
			t.Error("Expected the same cached font instance on the second call")
		}
	})

	t.Run("Only unparsable candidates", func(t *testing.T) {
		dir := t.TempDir()
		garbage := filepath.Join(dir, "garbage.ttf")
		if err := os.WriteFile(garbage, []byte("still not a font"), 0644); err != nil {
			t.Fatalf("Failed to write garbage font: %v", err)
		}

		l := NewLocator([]string{garbage})
		_, err := l.Font()
		if !errors.Is(err, ErrFontUnavailable) {
			t.Errorf("Expected ErrFontUnavailable, got %v", err)
		}
	})
}
