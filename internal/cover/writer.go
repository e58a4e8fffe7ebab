// This file writes the numbered cover for a batch folder. The pristine
// series cover is kept at cover_old.jpg and every render starts from
// that baseline, so re-running over an already processed folder never
// stacks numbers on top of numbers.

package cover

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"mangabatch/internal/render"
	"mangabatch/internal/util"
)

// Writer renders numbered batch covers from a series cover baseline.
type Writer struct {
	Renderer *render.Renderer
}

// NewWriter creates a Writer that renders with r.
func NewWriter(r *render.Renderer) *Writer {
	return &Writer{Renderer: r}
}

// WriteNumberedCover stamps number onto the batch folder's cover.jpg.
// Any cover.jpg already there is archived to a free cover_old slot
// first, and the render always starts from the cover_old.jpg baseline.
func (w *Writer) WriteNumberedCover(batchDir string, number int, seriesCover string) error {
	if err := os.MkdirAll(batchDir, 0755); err != nil {
		return fmt.Errorf("failed to create batch directory %s: %w", batchDir, err)
	}

	if _, err := ArchiveExistingCover(batchDir); err != nil {
		return err
	}
	baseCover, err := EnsureCoverOld(batchDir, seriesCover)
	if err != nil {
		return err
	}

	img, err := render.DecodeFile(baseCover)
	if err != nil {
		return fmt.Errorf("failed to decode base cover image %s: %w", baseCover, err)
	}

	rendered, err := w.Renderer.DrawCenteredText(img, strconv.Itoa(number))
	if err != nil {
		return fmt.Errorf("failed to render cover for batch %d: %w", number, err)
	}
	return w.Renderer.WriteCover(rendered, filepath.Join(batchDir, "cover.jpg"))
}

// UniqueCoverOldPath returns the first free cover_old slot in dir:
// cover_old.jpg, then cover_old_2.jpg, cover_old_3.jpg and so on.
func UniqueCoverOldPath(dir string) string {
	first := filepath.Join(dir, "cover_old.jpg")
	if _, err := os.Stat(first); os.IsNotExist(err) {
		return first
	}

	for idx := 2; ; idx++ {
		candidate := filepath.Join(dir, fmt.Sprintf("cover_old_%d.jpg", idx))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// ArchiveExistingCover moves an existing cover.jpg out of the way into
// the next free cover_old slot. Nothing to archive returns "".
func ArchiveExistingCover(batchDir string) (string, error) {
	coverPath := filepath.Join(batchDir, "cover.jpg")
	if _, err := os.Stat(coverPath); os.IsNotExist(err) {
		return "", nil
	}

	destination := UniqueCoverOldPath(batchDir)
	if err := os.Rename(coverPath, destination); err != nil {
		return "", fmt.Errorf("failed to archive cover from %s to %s: %w", coverPath, destination, err)
	}
	return destination, nil
}

// EnsureCoverOld guarantees a cover_old.jpg baseline in batchDir,
// copying the series cover bytes in when the folder has none yet.
func EnsureCoverOld(batchDir, seriesCover string) (string, error) {
	primary := filepath.Join(batchDir, "cover_old.jpg")
	if _, err := os.Stat(primary); err == nil {
		return primary, nil
	}

	target := UniqueCoverOldPath(batchDir)
	if err := util.CopyFile(seriesCover, target); err != nil {
		return "", fmt.Errorf("failed to copy series cover from %s to %s: %w", seriesCover, target, err)
	}
	return target, nil
}
