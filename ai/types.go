package ai

// Transcription is the output of one speech-to-text call.
type Transcription struct {
	// Text is the full transcript of the segment.
	Text string

	// Spans holds per-phrase timing when the backend returns it.
	// May be empty; the pipeline does not depend on it.
	Spans []TimedSpan
}

// TimedSpan is a piece of transcript with its position in the segment,
// in seconds relative to the segment start.
type TimedSpan struct {
	Start float64
	End   float64
	Text  string
}
