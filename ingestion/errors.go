package ingestion

import "errors"

var (
	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrNormalization is returned when the source cannot be normalized.
	ErrNormalization = errors.New("audio normalization failed")

	// ErrCleaning is returned when transcript cleaning fails. Cleaning
	// failures abort the document; nothing is persisted.
	ErrCleaning = errors.New("transcript cleaning failed")

	// ErrEmptyTranscript is returned when no segment produced any text,
	// leaving nothing to clean or persist.
	ErrEmptyTranscript = errors.New("merged transcript is empty")
)
