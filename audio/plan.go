package audio

// Span is a half-open time range [Start, End) in seconds.
type Span struct {
	Start float64
	End   float64
}

// Duration returns the span length in seconds.
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// PlanSegments computes the cut points for slicing a recording of the
// given duration into windows of length window seconds with the given
// overlap between consecutive windows, all in seconds.
//
// Segment i starts at i*(window-overlap) and spans at most window seconds;
// the final segment may be shorter, it is never padded. When overlap is
// negative or at least the window length, the step falls back to the full
// window (no overlap). A non-positive duration yields no segments.
//
// The resulting spans fully cover [0, duration) with no gaps.
func PlanSegments(duration, window, overlap float64) []Span {
	if duration <= 0 || window <= 0 {
		return nil
	}

	step := window - overlap
	if overlap < 0 || overlap >= window {
		step = window
	}

	var spans []Span
	for start := 0.0; start < duration; start += step {
		end := start + window
		if end > duration {
			end = duration
		}
		spans = append(spans, Span{Start: start, End: end})
		if end >= duration {
			break
		}
	}
	return spans
}
