package mock

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/perceptic/audiograph/ai"
	"github.com/perceptic/audiograph/core"
)

// MockTranscriber is a test double for ai.Transcriber.
// It is safe for concurrent use, matching the contract the pipeline's
// worker pool relies on.
type MockTranscriber struct {
	// TranscribeFunc is called by Transcribe if set.
	// If nil, the default returns a transcript derived from the file name.
	TranscribeFunc func(ctx context.Context, path string, language core.Language) (*ai.Transcription, error)

	callCount atomic.Int64
}

// NewMockTranscriber creates a mock transcriber with default behavior.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Transcribe returns a deterministic transcript for the given path.
func (m *MockTranscriber) Transcribe(ctx context.Context, path string, language core.Language) (*ai.Transcription, error) {
	m.callCount.Add(1)
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, path, language)
	}
	return &ai.Transcription{Text: "transcript of " + filepath.Base(path)}, nil
}

// CallCount returns how many times Transcribe has been called.
func (m *MockTranscriber) CallCount() int {
	return int(m.callCount.Load())
}
