// This file defines the core data structures for cover resolution:
// where a series cover came from and how it was located.

package models

// CoverOrigin identifies which tier of the resolution cascade produced
// a series cover.
type CoverOrigin string

const (
	CoverOriginFirstVolume  CoverOrigin = "first-volume"
	CoverOriginExistingFile CoverOrigin = "existing-file"
	CoverOriginRemote       CoverOrigin = "remote"
)

// ResolvedCover is the outcome of cover resolution: a usable image on
// local disk plus provenance. At most one cover is active per series.
type ResolvedCover struct {
	Path   string // local path of the cover image
	Origin CoverOrigin

	// Origin details. Archive and Entry are set for first-volume
	// extraction, Provider for remote downloads.
	Archive  string
	Entry    string
	Provider string
}
