// This file is responsible for reading .cbz (ZIP) volume archives to
// list and extract the image files they contain. Only the zip family is
// ever opened; .cbr and .cb7 volumes are recognized so they can be
// organized, but their contents are never read.

package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mangabatch/internal/util"
)

// ErrUnsupportedArchive is returned when an operation needs to open an
// archive that is not in the zip family.
var ErrUnsupportedArchive = errors.New("unsupported archive type")

var volumeExts = map[string]bool{
	".cbz": true,
	".cbr": true,
	".cb7": true,
	".zip": true,
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
	".gif":  true,
}

// IsVolumeFile checks if a filename has a recognized volume archive extension.
func IsVolumeFile(name string) bool {
	return volumeExts[strings.ToLower(filepath.Ext(name))]
}

// IsImageFile checks if a filename has a common image file extension.
func IsImageFile(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// IsZipFamily checks if a filename is a zip-based archive that can
// actually be opened.
func IsZipFamily(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".cbz" || ext == ".zip"
}

// listFiles returns the full paths of the regular files directly under
// dir whose names pass keep, sorted naturally by file name. Hidden and
// macOS junk files are skipped. Subdirectories are never descended into.
func listFiles(dir string, keep func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if util.IsJunkName(name) || !keep(name) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	sort.SliceStable(paths, func(i, j int) bool {
		return util.NaturalSortLess(filepath.Base(paths[i]), filepath.Base(paths[j]))
	})
	return paths, nil
}

// ListVolumeFiles returns the volume archives directly under dir in
// natural order. An empty directory yields an empty slice, not an error.
func ListVolumeFiles(dir string) ([]string, error) {
	return listFiles(dir, IsVolumeFile)
}

// ListImageFiles returns the loose image files directly under dir in
// natural order.
func ListImageFiles(dir string) ([]string, error) {
	return listFiles(dir, IsImageFile)
}

// ListImageEntries reads a zip-family archive and returns its image
// entry names in natural order. Directories, macOS junk and non-image
// entries are skipped.
func ListImageEntries(filePath string) ([]string, error) {
	if !IsZipFamily(filePath) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedArchive, strings.ToLower(filepath.Ext(filePath)))
	}

	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", filepath.Base(filePath), err)
	}
	defer r.Close()

	var entries []string
	for _, f := range r.File {
		// Skip directories, zip-tool junk and non-image files
		if f.FileInfo().IsDir() {
			continue
		}
		if util.HasJunkPathComponent(f.Name) || !IsImageFile(f.Name) {
			continue
		}
		entries = append(entries, f.Name)
	}

	// Sort entries naturally so "page2" comes before "page10".
	util.SortNatural(entries)
	return entries, nil
}

// ReadEntry returns the raw bytes of a named entry in a zip-family archive.
func ReadEntry(filePath, entryName string) ([]byte, error) {
	if !IsZipFamily(filePath) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedArchive, strings.ToLower(filepath.Ext(filePath)))
	}

	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", filepath.Base(filePath), err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open entry %q: %w", entryName, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %q: %w", entryName, err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("entry %q not found in %s", entryName, filepath.Base(filePath))
}
