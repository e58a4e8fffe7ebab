// This file carries out a batch plan: directories are created, volumes
// are moved and each batch gets its numbered cover. Execution is
// strictly sequential and stops at the first failure.

package series

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"mangabatch/internal/cover"
	"mangabatch/internal/models"
	"mangabatch/internal/util"
)

// Execute performs the plan's moves and cover renders in order. writer
// may be nil when the plan has no cover to render. Progress lines go
// through sink.
func Execute(plan *models.Plan, writer *cover.Writer, sink func(string)) error {
	if sink == nil {
		sink = func(string) {}
	}

	for _, batch := range plan.Batches {
		if err := os.MkdirAll(batch.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create batch directory %s: %w", batch.Dir, err)
		}

		sink("")
		sink(strings.Repeat("-", bannerWidth))
		sink(fmt.Sprintf("[DO] Batch %d: %s", batch.Index, filepath.Base(batch.Dir)))
		sink(strings.Repeat("-", bannerWidth))

		for i, mv := range batch.Moves {
			sink(fmt.Sprintf("[MOVE] (%d/%d) %s -> %s",
				i+1, len(batch.Moves), filepath.Base(mv.Src), filepath.Base(mv.Dst)))
			if err := moveFile(mv.Src, mv.Dst); err != nil {
				return err
			}
		}

		if batch.MakeCover && plan.CoverPath != "" {
			sink(fmt.Sprintf("[COVER] Rendering cover.jpg (batch number %d)", batch.Index))
			if err := writer.WriteNumberedCover(batch.Dir, batch.Index, plan.CoverPath); err != nil {
				return err
			}
		}
	}

	sink("[COMPLETE] Done.")
	return nil
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// two paths live on different filesystems.
func moveFile(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("failed to move file from %s to %s: %w", src, dst, err)
	}

	if err := util.CopyFile(src, dst); err != nil {
		return fmt.Errorf("cross-device copy failed from %s to %s: %w", src, dst, err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source file %s: %w", src, err)
	}
	return nil
}
