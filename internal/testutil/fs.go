package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// CreateTestCBZ is a helper function that creates a temporary CBZ file with
// a given set of page names. Entries are empty; use CreateTestCBZWithPages
// when the test needs decodable image bytes.
func CreateTestCBZ(t *testing.T, dir, name string, pages []string) string {
	t.Helper()
	content := make(map[string][]byte, len(pages))
	for _, page := range pages {
		content[page] = nil
	}
	return CreateTestCBZWithPages(t, dir, name, pages, content)
}

// CreateTestCBZWithPages creates a CBZ whose entries carry the given
// bytes. The pages slice fixes the entry order inside the archive.
func CreateTestCBZWithPages(t *testing.T, dir, name string, pages []string, content map[string][]byte) string {
	t.Helper()
	filePath := filepath.Join(dir, name)
	file, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("Failed to create temp cbz file: %v", err)
	}
	t.Cleanup(func() { file.Close() }) // Ensure file is closed after test

	zipWriter := zip.NewWriter(file)
	defer zipWriter.Close()

	for _, page := range pages {
		w, err := zipWriter.Create(page)
		if err != nil {
			t.Fatalf("Failed to create entry '%s' in zip: %v", page, err)
		}
		if data := content[page]; len(data) > 0 {
			if _, err := w.Write(data); err != nil {
				t.Fatalf("Failed to write entry '%s' in zip: %v", page, err)
			}
		}
	}
	return filePath
}
