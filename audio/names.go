package audio

import (
	"fmt"
	"regexp"
)

// Intermediate artifacts are recognizable by filename so that discovery
// can skip them and cleanup can refuse to delete anything else.
var (
	normalizedPattern = regexp.MustCompile(`\.\d+k\.wav$`)
	segmentPattern    = regexp.MustCompile(`\.seg\d{3}\.wav$`)
)

// NormalizedName derives the output path for the normalized rendition of
// src at the given sample rate, e.g. "talk.mp3" -> "talk.mp3.16k.wav".
func NormalizedName(src string, sampleRate int) string {
	return fmt.Sprintf("%s.%dk.wav", src, sampleRate/1000)
}

// SegmentName derives the path for segment idx of the normalized file.
// The zero-padded index keeps lexical order equal to temporal order,
// so segment order is recoverable from a directory listing.
func SegmentName(normalized string, idx int) string {
	return fmt.Sprintf("%s.seg%03d.wav", normalized, idx)
}

// IsIntermediate reports whether the file name denotes a normalized
// rendition or a segment file rather than an original source.
func IsIntermediate(name string) bool {
	return normalizedPattern.MatchString(name) || segmentPattern.MatchString(name)
}
