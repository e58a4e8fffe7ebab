// This file resolves the series cover image that seeds every numbered
// batch cover. Three sources are tried in strict order: the first page
// of the first volume archive, a conventional loose image already in
// the series folder, and finally the remote providers. The first two
// tiers fail soft so a bad archive never blocks a download.

package cover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mangabatch/internal/archive"
	"mangabatch/internal/models"
	"mangabatch/internal/render"
)

// coverCandidates are the conventional cover file names checked before
// falling back to an arbitrary image file, most specific first.
var coverCandidates = []string{
	"cover.jpg",
	"cover.jpeg",
	"cover.png",
	"poster.jpg",
	"poster.png",
	"cover_old.jpg",
}

// Resolver locates or produces cover.jpg for a series folder.
type Resolver struct {
	Providers       []models.CoverProvider
	UserAgent       string
	DownloadTimeout time.Duration
	Quality         int
}

// NewResolver creates a Resolver with the standard download settings.
func NewResolver(providers []models.CoverProvider) *Resolver {
	return &Resolver{
		Providers:       providers,
		UserAgent:       "mangabatch/1.0 (+https://example.invalid)",
		DownloadTimeout: 30 * time.Second,
		Quality:         95,
	}
}

// Ensure resolves the series cover for seriesDir, producing cover.jpg
// in the series root when the cover has to be extracted or downloaded.
// It returns nil with no error when every source comes up empty; only a
// failure to read the series folder itself is reported as an error.
// Progress and warnings go through sink, one line per call.
func (r *Resolver) Ensure(seriesDir, title string, sink func(string)) (*models.ResolvedCover, error) {
	if sink == nil {
		sink = func(string) {}
	}

	resolved, firstVolErr := r.firstVolumeCover(seriesDir)
	if resolved != nil {
		sink(fmt.Sprintf("[COVER] Extracted series cover from first volume: %s (source=%s:%s)",
			resolved.Path, resolved.Archive, resolved.Entry))
		return resolved, nil
	}

	existing, err := ChooseExistingCover(seriesDir)
	if err != nil {
		return nil, err
	}
	if existing != "" {
		return &models.ResolvedCover{Path: existing, Origin: models.CoverOriginExistingFile}, nil
	}

	outFile := filepath.Join(seriesDir, "cover.jpg")
	result, lastErr := r.findRemoteCover(title, sink)
	if result != nil {
		if err := downloadFile(result.URL, outFile, r.downloadTimeout(), r.UserAgent); err != nil {
			lastErr = err
		} else {
			sink(fmt.Sprintf("[COVER] Downloaded series cover: %s (source=%s)", outFile, result.Source))
			return &models.ResolvedCover{
				Path:     outFile,
				Origin:   models.CoverOriginRemote,
				Provider: result.Source,
			}, nil
		}
	}

	if firstVolErr != nil {
		sink(fmt.Sprintf("[WARN] Failed to extract first-volume cover. Last error: %s", firstVolErr))
	}
	if lastErr != nil {
		sink(fmt.Sprintf("[WARN] Failed to download series cover. Last error: %s", lastErr))
	} else {
		sink("[WARN] Failed to download series cover (no results).")
	}
	return nil, nil
}

// firstVolumeCover extracts the first image of the natural-order first
// volume archive into cover.jpg. A folder with no volumes is nil, nil;
// everything else that goes wrong is an error the caller may treat as
// soft.
func (r *Resolver) firstVolumeCover(seriesDir string) (*models.ResolvedCover, error) {
	volumes, err := archive.ListVolumeFiles(seriesDir)
	if err != nil {
		return nil, err
	}
	if len(volumes) == 0 {
		return nil, nil
	}

	first := volumes[0]
	if !archive.IsZipFamily(first) {
		ext := strings.ToLower(filepath.Ext(first))
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("first volume is %s (local extraction currently supports .cbz/.zip only)", ext)
	}

	entries, err := archive.ListImageEntries(first)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no image files found in first volume archive: %s", filepath.Base(first))
	}

	entry := entries[0]
	data, err := archive.ReadEntry(first, entry)
	if err != nil {
		return nil, err
	}
	img, err := render.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image from archive: %w", err)
	}

	out := filepath.Join(seriesDir, "cover.jpg")
	if err := render.SaveJPEG(img, out, r.quality()); err != nil {
		return nil, err
	}

	return &models.ResolvedCover{
		Path:    out,
		Origin:  models.CoverOriginFirstVolume,
		Archive: filepath.Base(first),
		Entry:   entry,
	}, nil
}

// ChooseExistingCover returns a cover image already present in the
// series folder: a conventional name first, otherwise the first image
// file in natural order. Empty when the folder holds no images.
func ChooseExistingCover(seriesDir string) (string, error) {
	for _, name := range coverCandidates {
		candidate := filepath.Join(seriesDir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}

	images, err := archive.ListImageFiles(seriesDir)
	if err != nil {
		return "", err
	}
	if len(images) == 0 {
		return "", nil
	}
	return images[0], nil
}

// findRemoteCover asks each provider in order and returns the first
// hit. Provider errors are recorded and the next provider is tried; the
// last error comes back alongside a nil result when all of them miss.
func (r *Resolver) findRemoteCover(title string, sink func(string)) (*models.CoverResult, error) {
	var lastErr error
	for _, p := range r.Providers {
		info := p.GetInfo()
		sink(fmt.Sprintf("[COVER] Searching %s for %q", info.Name, title))
		result, err := p.FindCover(title)
		if err != nil {
			lastErr = err
			continue
		}
		if result != nil {
			return result, nil
		}
	}
	return nil, lastErr
}

// EnsureCoverJPG guarantees the series cover exists at cover.jpg in the
// series root, re-encoding the selected file there when it is anything
// else.
func EnsureCoverJPG(seriesDir, selected string, quality int) (string, error) {
	coverJPG := filepath.Join(seriesDir, "cover.jpg")
	if samePath(selected, coverJPG) {
		return coverJPG, nil
	}

	img, err := render.DecodeFile(selected)
	if err != nil {
		return "", fmt.Errorf("failed to decode selected cover image: %w", err)
	}
	if err := render.SaveJPEG(img, coverJPG, quality); err != nil {
		return "", err
	}
	return coverJPG, nil
}

func samePath(a, b string) bool {
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		ra = a
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		rb = b
	}
	return filepath.Clean(ra) == filepath.Clean(rb)
}

func (r *Resolver) downloadTimeout() time.Duration {
	if r.DownloadTimeout > 0 {
		return r.DownloadTimeout
	}
	return 30 * time.Second
}

func (r *Resolver) quality() int {
	if r.Quality > 0 {
		return r.Quality
	}
	return 95
}
