// Package chunking splits cleaned transcripts into overlapping,
// size-bounded chunks with stable identifiers and provenance metadata.
//
// One strategy exists per modality behind the common Strategy contract;
// ForModality is the single dispatch point. The splitting itself is
// recursive and boundary-aware: paragraph breaks first, then lines,
// sentence-ending punctuation, whitespace, and finally arbitrary
// character boundaries.
package chunking
