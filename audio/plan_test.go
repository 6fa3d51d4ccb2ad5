package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSegments(t *testing.T) {
	t.Run("75s source with 30s window and 2s overlap", func(t *testing.T) {
		spans := PlanSegments(75, 30, 2)

		require.Len(t, spans, 3)
		assert.Equal(t, Span{0, 30}, spans[0])
		assert.Equal(t, Span{28, 58}, spans[1])
		assert.Equal(t, Span{56, 75}, spans[2])
	})

	t.Run("source shorter than window", func(t *testing.T) {
		spans := PlanSegments(10, 30, 2)
		require.Len(t, spans, 1)
		assert.Equal(t, Span{0, 10}, spans[0])
	})

	t.Run("exact multiple of step", func(t *testing.T) {
		spans := PlanSegments(60, 30, 0)
		require.Len(t, spans, 2)
		assert.Equal(t, Span{0, 30}, spans[0])
		assert.Equal(t, Span{30, 60}, spans[1])
	})

	t.Run("zero duration", func(t *testing.T) {
		assert.Empty(t, PlanSegments(0, 30, 2))
	})

	t.Run("negative duration", func(t *testing.T) {
		assert.Empty(t, PlanSegments(-5, 30, 2))
	})

	t.Run("zero window", func(t *testing.T) {
		assert.Empty(t, PlanSegments(75, 0, 0))
	})

	t.Run("overlap equal to window falls back to no overlap", func(t *testing.T) {
		spans := PlanSegments(90, 30, 30)
		require.Len(t, spans, 3)
		for i, span := range spans {
			assert.Equal(t, float64(i*30), span.Start)
		}
	})

	t.Run("overlap greater than window falls back to no overlap", func(t *testing.T) {
		spans := PlanSegments(90, 30, 45)
		require.Len(t, spans, 3)
	})

	t.Run("negative overlap falls back to no overlap", func(t *testing.T) {
		spans := PlanSegments(60, 30, -1)
		require.Len(t, spans, 2)
	})
}

// TestPlanSegmentsCoverage checks the closed-form count and the coverage
// invariant across a sweep of durations.
func TestPlanSegmentsCoverage(t *testing.T) {
	const window, overlap = 30.0, 2.0
	step := window - overlap

	for duration := 0.5; duration <= 300; duration += 7.3 {
		spans := PlanSegments(duration, window, overlap)

		wantCount := int(math.Ceil(math.Max(duration-overlap, 0) / step))
		if wantCount == 0 {
			wantCount = 1 // any positive duration yields at least one segment
		}
		require.Len(t, spans, wantCount, "duration %.1f", duration)

		// Full coverage of [0, duration) with no gaps
		assert.Equal(t, 0.0, spans[0].Start)
		assert.InDelta(t, duration, spans[len(spans)-1].End, 1e-9)
		for i := 1; i < len(spans); i++ {
			assert.LessOrEqual(t, spans[i].Start, spans[i-1].End, "gap before segment %d at duration %.1f", i, duration)
		}

		// Constant overlap between consecutive segments except the last
		for i := 1; i < len(spans)-1; i++ {
			assert.InDelta(t, overlap, spans[i-1].End-spans[i].Start, 1e-9)
		}

		// No segment exceeds the window
		for _, span := range spans {
			assert.LessOrEqual(t, span.Duration(), window+1e-9)
		}
	}
}
