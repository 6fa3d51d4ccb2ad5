package mock

import (
	"context"
	"strings"
)

// MockCleaner is a test double for ai.Cleaner.
type MockCleaner struct {
	// CleanFunc is called by Clean if set.
	// If nil, the default trims whitespace from each line.
	CleanFunc func(ctx context.Context, raw string) (string, error)

	callCount int
}

// NewMockCleaner creates a mock cleaner with default behavior.
func NewMockCleaner() *MockCleaner {
	return &MockCleaner{}
}

// Clean trims each line of the raw transcript.
func (m *MockCleaner) Clean(ctx context.Context, raw string) (string, error) {
	m.callCount++
	if m.CleanFunc != nil {
		return m.CleanFunc(ctx, raw)
	}
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n"), nil
}

// CallCount returns how many times Clean has been called.
func (m *MockCleaner) CallCount() int {
	return m.callCount
}
