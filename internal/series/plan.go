// This file turns a series folder into a batch plan: fixed-size groups
// of volumes, each with a destination folder named "<Series> <N>" next
// to the series folder, cleaned destination names and collision-free
// paths. Planning never touches the filesystem beyond reading.

package series

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mangabatch/internal/archive"
	"mangabatch/internal/models"
)

// DefaultBatchSize is the number of volumes per batch folder.
const DefaultBatchSize = 20

const bannerWidth = 98

// ScanVolumes lists the volume archives in seriesDir in natural order.
func ScanVolumes(seriesDir string) ([]string, error) {
	return archive.ListVolumeFiles(seriesDir)
}

// BuildPlan chunks the series' volumes into numbered batch folders and
// assigns every volume a cleaned, collision-free destination name.
// coverPath is the resolved series cover, or empty when there is none.
func BuildPlan(seriesDir string, batchSize int, coverPath string) (*models.Plan, error) {
	volumes, err := ScanVolumes(seriesDir)
	if err != nil {
		return nil, err
	}
	if len(volumes) == 0 {
		return nil, fmt.Errorf("no volume files found in %s", seriesDir)
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	parent := filepath.Dir(seriesDir)
	seriesName := filepath.Base(seriesDir)

	plan := &models.Plan{
		SeriesName: seriesName,
		SeriesDir:  seriesDir,
		CoverPath:  coverPath,
		BatchSize:  batchSize,
	}

	for start := 0; start < len(volumes); start += batchSize {
		end := min(start+batchSize, len(volumes))
		index := start/batchSize + 1
		batchDir := filepath.Join(parent, fmt.Sprintf("%s %d", seriesName, index))

		reserved := make(map[string]bool)
		moves := make([]models.FileMove, 0, end-start)
		for _, src := range volumes[start:end] {
			cleaned := CleanVolumeFilename(filepath.Base(src), true)
			moves = append(moves, models.FileMove{
				Src: src,
				Dst: uniquePathReserved(batchDir, cleaned, reserved),
			})
		}

		plan.Batches = append(plan.Batches, models.Batch{
			Index:     index,
			Dir:       batchDir,
			Moves:     moves,
			MakeCover: coverPath != "",
		})
	}

	return plan, nil
}

// uniquePathReserved picks a destination path for filename in destDir
// that collides neither with files already on disk nor with names
// reserved earlier in the same batch. Collisions get a " (2)", " (3)"
// suffix before the extension.
func uniquePathReserved(destDir, filename string, reserved map[string]bool) string {
	candidate := filepath.Join(destDir, filename)
	if !pathExists(candidate) && !reserved[filename] {
		reserved[filename] = true
		return candidate
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for idx := 2; ; idx++ {
		name := fmt.Sprintf("%s (%d)%s", stem, idx, ext)
		candidate := filepath.Join(destDir, name)
		if !pathExists(candidate) && !reserved[name] {
			reserved[name] = true
			return candidate
		}
	}
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FormatPlan renders the plan as the banner text shown before any file
// is touched.
func FormatPlan(plan *models.Plan) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", bannerWidth) + "\n")
	b.WriteString("[PLAN] mangabatch\n")
	fmt.Fprintf(&b, "[PLAN] Series folder: %s\n", plan.SeriesDir)
	fmt.Fprintf(&b, "[PLAN] Volumes found: %d\n", plan.TotalMoves())
	fmt.Fprintf(&b, "[PLAN] Batch size: %d\n", plan.BatchSize)

	if plan.CoverPath != "" {
		fmt.Fprintf(&b, "[PLAN] Series cover source: %s\n", plan.CoverPath)
		b.WriteString("[PLAN] Each batch will have:\n")
		b.WriteString("       - cover_old.jpg (copied once from series cover, preserved)\n")
		b.WriteString("       - cover.jpg (rendered with batch number DEAD-CENTER)\n")
		b.WriteString("       - any existing cover.jpg archived to cover_old_*.jpg\n")
	} else {
		b.WriteString("[PLAN] Covers: skipped (no cover image found/downloaded)\n")
	}
	b.WriteString(strings.Repeat("=", bannerWidth) + "\n")

	next := 1
	for _, batch := range plan.Batches {
		startIdx := next
		endIdx := startIdx + len(batch.Moves) - 1
		next = endIdx + 1

		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %d  (volumes %d-%d)\n", plan.SeriesName, batch.Index, startIdx, endIdx)
		fmt.Fprintf(&b, "  [DIR] %s\n", batch.Dir)
		if batch.MakeCover {
			fmt.Fprintf(&b, "  [COVER] cover_old.jpg + cover.jpg (number %d)\n", batch.Index)
		}

		for i, mv := range batch.Moves {
			n := startIdx + i
			srcName := filepath.Base(mv.Src)
			dstName := filepath.Base(mv.Dst)
			if srcName == dstName {
				fmt.Fprintf(&b, "  %4d. %s\n", n, srcName)
			} else {
				fmt.Fprintf(&b, "  %4d. %s  (rename: %s -> %s)\n", n, srcName, srcName, dstName)
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", bannerWidth) + "\n")
	return b.String()
}
