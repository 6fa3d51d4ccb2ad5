// Copyright 2025 Perceptic
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/perceptic/audiograph/ai"

// MockProvider is a test double for ai.Provider bundling the four
// capability mocks. The concrete mocks are exported so tests can reach
// their function fields directly.
type MockProvider struct {
	MockTranscriber *MockTranscriber
	MockCleaner     *MockCleaner
	MockExtractor   *MockExtractor
	MockEmbedder    *MockEmbedder
}

// NewMockProvider creates a provider wired with default mocks.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		MockTranscriber: NewMockTranscriber(),
		MockCleaner:     NewMockCleaner(),
		MockExtractor:   NewMockExtractor(),
		MockEmbedder:    NewMockEmbedder(),
	}
}

// Transcriber returns the mock speech-to-text service.
func (p *MockProvider) Transcriber() ai.Transcriber {
	return p.MockTranscriber
}

// Cleaner returns the mock cleaning service.
func (p *MockProvider) Cleaner() ai.Cleaner {
	return p.MockCleaner
}

// Extractor returns the mock extraction service.
func (p *MockProvider) Extractor() ai.Extractor {
	return p.MockExtractor
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.MockEmbedder
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}
