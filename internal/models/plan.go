// This file defines the structures describing a batch reorganization
// plan before it is executed.

package models

// FileMove is a single planned rename of a volume file into a batch
// folder. Src and Dst are full paths.
type FileMove struct {
	Src string
	Dst string
}

// Batch is one numbered folder of volumes. Index is 1-based and doubles
// as the number rendered onto the batch cover.
type Batch struct {
	Index     int
	Dir       string
	Moves     []FileMove
	MakeCover bool
}

// Plan describes the full reorganization of one series folder. CoverPath
// is empty when no series cover could be resolved; batches then skip
// cover generation.
type Plan struct {
	SeriesName string
	SeriesDir  string
	CoverPath  string
	BatchSize  int
	Batches    []Batch
}

// TotalMoves counts the file moves across all batches.
func (p *Plan) TotalMoves() int {
	n := 0
	for _, b := range p.Batches {
		n += len(b.Moves)
	}
	return n
}
