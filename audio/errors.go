package audio

import "errors"

var (
	// ErrDecode indicates the input could not be parsed as audio.
	// Fatal for the document being ingested.
	ErrDecode = errors.New("cannot decode audio")

	// ErrSegmentation indicates segmenting the normalized audio failed.
	// Fatal for the document being ingested.
	ErrSegmentation = errors.New("cannot segment audio")

	// ErrInvalidWindow indicates a non-positive window length.
	ErrInvalidWindow = errors.New("window length must be positive")
)
