package ingestion

import (
	"strings"

	"github.com/perceptic/audiograph/core"
)

// mergeTranscripts joins segment texts in segment order, one per line.
// Failed and empty segments are skipped; the surviving text keeps its
// relative order, so the merged transcript reads in recording order
// even with holes.
func mergeTranscripts(results []core.TranscriptionResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n")
}
