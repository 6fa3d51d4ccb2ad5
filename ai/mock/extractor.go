package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/perceptic/audiograph/core"
)

// MockExtractor is a test double for ai.Extractor.
// It is safe for concurrent use.
type MockExtractor struct {
	// ExtractFunc is called by Extract if set.
	// If nil, the default derives one triple from the first three words.
	ExtractFunc func(ctx context.Context, chunkText string) (*core.ExtractionResult, error)

	mu        sync.Mutex
	callCount int
}

// NewMockExtractor creates a mock extractor with default behavior.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

// Extract derives a simple deterministic extraction from the chunk text.
// Default behavior: the first three words become a (subject, predicate,
// object) triple with confidence 0.9; fewer than three words yields an
// empty result.
func (m *MockExtractor) Extract(ctx context.Context, chunkText string) (*core.ExtractionResult, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, chunkText)
	}

	words := strings.Fields(chunkText)
	if len(words) < 3 {
		return &core.ExtractionResult{}, nil
	}
	return &core.ExtractionResult{
		Entities: []core.Entity{{Name: strings.ToLower(words[0])}},
		Triples: []core.Triple{
			{Subject: words[0], Predicate: words[1], Object: words[2], Confidence: 0.9},
		},
	}, nil
}

// CallCount returns how many times Extract has been called.
func (m *MockExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
