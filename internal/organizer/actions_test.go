// This file tests the organizer actions end to end on temp series
// folders: cover-only, dry-run preview and full processing.

package organizer_test

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"mangabatch/internal/cover"
	"mangabatch/internal/models"
	"mangabatch/internal/organizer"
	"mangabatch/internal/render"
	"mangabatch/internal/testutil"
)

func newTestOrganizer(t *testing.T, batchSize int) *organizer.Organizer {
	t.Helper()
	locator := render.NewLocator([]string{testutil.TestFontPath(t)})
	writer := cover.NewWriter(render.New(locator))
	return organizer.New(cover.NewResolver(nil), writer, batchSize)
}

// newTestSeries builds a series folder with three volumes where only
// the first contains a decodable page, plus the parent dir for batch
// folders.
func newTestSeries(t *testing.T) string {
	t.Helper()
	seriesDir := filepath.Join(t.TempDir(), "Berserk")
	if err := os.MkdirAll(seriesDir, 0755); err != nil {
		t.Fatalf("Failed to create series dir: %v", err)
	}

	page := testutil.PNGBytes(t, 200, 300, color.White)
	testutil.CreateTestCBZWithPages(t, seriesDir, "Berserk v1.cbz",
		[]string{"page1.png"}, map[string][]byte{"page1.png": page})
	testutil.CreateTestCBZ(t, seriesDir, "Berserk v2.cbz", []string{"page1.png"})
	testutil.CreateTestCBZ(t, seriesDir, "Berserk v3.cbz", []string{"page1.png"})
	return seriesDir
}

func runAction(t *testing.T, o *organizer.Organizer, action organizer.Action, dir string) (*organizer.Result, []string, error) {
	t.Helper()
	var lines []string
	result, err := o.Run(action, dir, func(line string) { lines = append(lines, line) })
	return result, lines, err
}

func TestRunShowCover(t *testing.T) {
	seriesDir := newTestSeries(t)
	o := newTestOrganizer(t, 2)

	result, lines, err := runAction(t, o, organizer.ActionShowCover, seriesDir)
	if err != nil {
		t.Fatalf("ShowCover failed: %v", err)
	}

	wantCover := filepath.Join(seriesDir, "cover.jpg")
	if result.CoverPath != wantCover {
		t.Errorf("CoverPath = %q; want %q", result.CoverPath, wantCover)
	}
	if _, err := os.Stat(wantCover); err != nil {
		t.Errorf("cover.jpg was not written: %v", err)
	}
	if len(lines) == 0 || lines[len(lines)-1] != wantCover {
		t.Errorf("Last log line = %v; want the cover path", lines)
	}
}

func TestRunShowCoverNoCover(t *testing.T) {
	seriesDir := filepath.Join(t.TempDir(), "Empty")
	if err := os.MkdirAll(seriesDir, 0755); err != nil {
		t.Fatalf("Failed to create series dir: %v", err)
	}
	o := newTestOrganizer(t, 2)

	_, _, err := runAction(t, o, organizer.ActionShowCover, seriesDir)
	if err == nil {
		t.Fatal("Expected an error when no cover exists anywhere, but got nil")
	}
	if !strings.Contains(err.Error(), "[COVER-CHECK] No cover found") {
		t.Errorf("Error = %q; want the cover-check message", err)
	}
}

func TestRunShowCoverReencodesSelection(t *testing.T) {
	seriesDir := filepath.Join(t.TempDir(), "Berserk")
	if err := os.MkdirAll(seriesDir, 0755); err != nil {
		t.Fatalf("Failed to create series dir: %v", err)
	}
	testutil.WriteTestImage(t, filepath.Join(seriesDir, "poster.png"), 100, 150, color.White)
	o := newTestOrganizer(t, 2)

	result, _, err := runAction(t, o, organizer.ActionShowCover, seriesDir)
	if err != nil {
		t.Fatalf("ShowCover failed: %v", err)
	}
	if filepath.Base(result.CoverPath) != "cover.jpg" {
		t.Errorf("CoverPath = %q; want a cover.jpg", result.CoverPath)
	}
	if _, err := render.DecodeFile(result.CoverPath); err != nil {
		t.Errorf("Re-encoded cover does not decode: %v", err)
	}
}

func TestRunPreviewDoesNotMove(t *testing.T) {
	seriesDir := newTestSeries(t)
	o := newTestOrganizer(t, 2)

	_, lines, err := runAction(t, o, organizer.ActionPreview, seriesDir)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "[PLAN] mangabatch") {
		t.Errorf("Preview output missing the plan banner:\n%s", joined)
	}
	if !strings.Contains(joined, "[DRY-RUN] Plan printed only. No changes were made.") {
		t.Errorf("Preview output missing the dry-run line:\n%s", joined)
	}

	for _, name := range []string{"Berserk v1.cbz", "Berserk v2.cbz", "Berserk v3.cbz"} {
		if _, err := os.Stat(filepath.Join(seriesDir, name)); err != nil {
			t.Errorf("Preview moved %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(seriesDir), "Berserk 1")); !os.IsNotExist(err) {
		t.Error("Preview created a batch folder")
	}
}

func TestRunProcess(t *testing.T) {
	seriesDir := newTestSeries(t)
	o := newTestOrganizer(t, 2)

	_, lines, err := runAction(t, o, organizer.ActionProcess, seriesDir)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	parent := filepath.Dir(seriesDir)
	expected := map[string][]string{
		filepath.Join(parent, "Berserk 1"): {"Berserk v001.cbz", "Berserk v002.cbz"},
		filepath.Join(parent, "Berserk 2"): {"Berserk v003.cbz"},
	}
	for batchDir, files := range expected {
		for _, name := range files {
			if _, err := os.Stat(filepath.Join(batchDir, name)); err != nil {
				t.Errorf("Missing %s in %s: %v", name, batchDir, err)
			}
		}
		for _, name := range []string{"cover.jpg", "cover_old.jpg"} {
			if _, err := os.Stat(filepath.Join(batchDir, name)); err != nil {
				t.Errorf("Missing %s in %s: %v", name, batchDir, err)
			}
		}
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "[COMPLETE] Done.") {
		t.Errorf("Process output missing the completion line:\n%s", joined)
	}
	if strings.Contains(joined, "[DRY-RUN]") {
		t.Errorf("Process output contains the dry-run line:\n%s", joined)
	}

	// The run lock is removed once processing finishes.
	if _, err := os.Stat(filepath.Join(seriesDir, ".mangabatch.lock")); !os.IsNotExist(err) {
		t.Error("Lock file left behind after processing")
	}
}

func TestRunProcessConfirmDeclined(t *testing.T) {
	seriesDir := newTestSeries(t)
	o := newTestOrganizer(t, 2)
	o.Confirm = func(*models.Plan) bool { return false }

	result, lines, err := runAction(t, o, organizer.ActionProcess, seriesDir)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.Plan == nil {
		t.Error("Result.Plan not set on a declined run")
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "[SKIP] Aborted by user.") {
		t.Errorf("Declined run output missing the skip line:\n%s", joined)
	}
	if strings.Contains(joined, "[COMPLETE]") {
		t.Errorf("Declined run still completed:\n%s", joined)
	}

	for _, name := range []string{"Berserk v1.cbz", "Berserk v2.cbz", "Berserk v3.cbz"} {
		if _, err := os.Stat(filepath.Join(seriesDir, name)); err != nil {
			t.Errorf("Declined run moved %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(seriesDir), "Berserk 1")); !os.IsNotExist(err) {
		t.Error("Declined run created a batch folder")
	}
}

func TestRunProcessRefusedWhileLocked(t *testing.T) {
	seriesDir := newTestSeries(t)
	o := newTestOrganizer(t, 2)

	fl := flock.New(filepath.Join(seriesDir, ".mangabatch.lock"))
	locked, err := fl.TryLock()
	if err != nil || !locked {
		t.Fatalf("Failed to pre-acquire lock: %v", err)
	}
	defer fl.Unlock()

	_, _, err = runAction(t, o, organizer.ActionProcess, seriesDir)
	if err == nil {
		t.Fatal("Expected the locked folder to refuse processing, but got nil")
	}
	if !strings.Contains(err.Error(), "already processing") {
		t.Errorf("Error = %q; want the already-processing message", err)
	}

	// Nothing may have moved.
	if _, err := os.Stat(filepath.Join(seriesDir, "Berserk v1.cbz")); err != nil {
		t.Errorf("Volume moved despite the lock: %v", err)
	}
}

func TestRunNotADirectory(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "not-a-dir.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	o := newTestOrganizer(t, 2)

	_, _, err := runAction(t, o, organizer.ActionProcess, filePath)
	if err == nil {
		t.Fatal("Expected an error for a non-directory, but got nil")
	}
	if !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("Error = %q; want a not-a-directory message", err)
	}
}
