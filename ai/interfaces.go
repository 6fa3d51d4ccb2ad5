package ai

import (
	"context"

	"github.com/perceptic/audiograph/core"
)

// Transcriber converts one audio segment into text.
// Implementations must be thread-safe: the pipeline calls Transcribe
// concurrently from its worker pool.
type Transcriber interface {
	// Transcribe transcribes the audio file at path. The language hint is
	// passed through to the model unless it is core.LanguageAuto.
	// A failed call affects only the segment it was made for.
	Transcribe(ctx context.Context, path string, language core.Language) (*Transcription, error)
}

// Cleaner normalizes a raw merged transcript: fillers removed, casing and
// punctuation fixed, meaning preserved.
type Cleaner interface {
	// Clean returns the cleaned transcript. A failure here is fatal for
	// the document being ingested; no partial transcript is persisted.
	Clean(ctx context.Context, raw string) (string, error)
}

// Extractor produces structured knowledge from one chunk of cleaned text.
// Implementations must be thread-safe.
type Extractor interface {
	// Extract returns the entities and confidence-scored relation triples
	// grounded in the chunk text. Returns an empty result, not an error,
	// when the text contains no extractable facts.
	Extract(ctx context.Context, chunkText string) (*core.ExtractionResult, error)
}

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch, returned in input order. Batch processing is more efficient
	// than calling EmbedText repeatedly.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates the model capabilities for convenient initialization
// and lifecycle management. A provider is constructed once and shares
// configuration and underlying clients across its services.
type Provider interface {
	// Transcriber returns the speech-to-text service.
	Transcriber() Transcriber

	// Cleaner returns the transcript cleaning service.
	Cleaner() Cleaner

	// Extractor returns the knowledge extraction service.
	Extractor() Extractor

	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	Close() error
}
