package audio

import (
	"context"
	"os"
)

// Segment is one time-ordered slice of a normalized recording.
// Segments from one source are order-total by Index; the overlap between
// consecutive segments is constant except possibly before the final one.
type Segment struct {
	Index int
	Path  string
	Start float64 // seconds from the start of the source
	End   float64
}

// Segmenter slices a normalized mono recording into overlapping windows,
// writing one file per segment next to the source.
type Segmenter interface {
	// Split covers the whole recording at path with windows of length
	// window seconds overlapping by overlap seconds, returning the
	// segments in index order.
	Split(ctx context.Context, path string, window, overlap float64) ([]Segment, error)
}

// removePartial deletes segment files left behind when a split aborts
// midway. current is the output the failed write may have created.
func removePartial(segments []Segment, current string) {
	for _, seg := range segments {
		os.Remove(seg.Path)
	}
	if current != "" {
		os.Remove(current)
	}
}
