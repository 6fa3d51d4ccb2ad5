package ingestion

import (
	"errors"
	"testing"

	"github.com/perceptic/audiograph/core"
	"github.com/stretchr/testify/assert"
)

func TestMergeTranscripts(t *testing.T) {
	tests := []struct {
		name    string
		results []core.TranscriptionResult
		want    string
	}{
		{
			name: "all segments in order",
			results: []core.TranscriptionResult{
				{SegmentIndex: 0, Text: "first part."},
				{SegmentIndex: 1, Text: "second part."},
				{SegmentIndex: 2, Text: "third part."},
			},
			want: "first part.\nsecond part.\nthird part.",
		},
		{
			name: "failed segment leaves a hole, order kept",
			results: []core.TranscriptionResult{
				{SegmentIndex: 0, Text: "first part."},
				{SegmentIndex: 1, Err: errors.New("timeout")},
				{SegmentIndex: 2, Text: "third part."},
			},
			want: "first part.\nthird part.",
		},
		{
			name: "whitespace-only text is skipped",
			results: []core.TranscriptionResult{
				{SegmentIndex: 0, Text: "  \n\t "},
				{SegmentIndex: 1, Text: " kept "},
			},
			want: "kept",
		},
		{
			name:    "no results",
			results: nil,
			want:    "",
		},
		{
			name: "all failed",
			results: []core.TranscriptionResult{
				{SegmentIndex: 0, Err: errors.New("a")},
				{SegmentIndex: 1, Err: errors.New("b")},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeTranscripts(tt.results))
		})
	}
}
