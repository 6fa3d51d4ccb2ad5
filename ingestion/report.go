package ingestion

import "fmt"

// StoreKind names one of the persistence targets in store write records.
type StoreKind string

const (
	StoreRelational StoreKind = "relational"
	StoreVector     StoreKind = "vector"
	StoreGraph      StoreKind = "graph"
)

// StoreWrite records one failed store operation. Successful writes are
// counted, not itemized.
type StoreWrite struct {
	Store   StoreKind
	DocID   string
	ChunkID string // empty for document-level writes
	Err     error
}

// Report summarizes one document's run. A report with a non-empty
// warning list still counts as a successful ingestion; the pipeline
// persists whatever it could.
type Report struct {
	DocID string
	Title string
	Stage Stage

	Segments      int
	SegmentErrors int

	Chunks           int
	ExtractionErrors int
	TriplesExtracted int
	TriplesMerged    int
	AuditRows        int

	FailedWrites []StoreWrite
}

// Warnings renders the fail-soft incidents as human-readable strings.
func (r *Report) Warnings() []string {
	var warnings []string
	if r.SegmentErrors > 0 {
		warnings = append(warnings, fmt.Sprintf("%d of %d segments failed transcription", r.SegmentErrors, r.Segments))
	}
	if r.ExtractionErrors > 0 {
		warnings = append(warnings, fmt.Sprintf("%d of %d chunks failed extraction", r.ExtractionErrors, r.Chunks))
	}
	for _, w := range r.FailedWrites {
		target := string(w.Store)
		if w.ChunkID != "" {
			target += " " + w.ChunkID
		}
		warnings = append(warnings, fmt.Sprintf("%s write failed: %v", target, w.Err))
	}
	return warnings
}
