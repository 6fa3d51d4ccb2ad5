package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Modality identifies the kind of source a document was ingested from.
// It selects the chunking strategy and is embedded in chunk identifiers.
type Modality string

const (
	ModalityAudio    Modality = "audio"
	ModalityVideo    Modality = "video"
	ModalityDocument Modality = "document"
	ModalityImage    Modality = "image"
)

// ParseModality converts a string into a Modality.
// Unknown values are a configuration error, never a silent fallback.
func ParseModality(s string) (Modality, error) {
	switch Modality(s) {
	case ModalityAudio, ModalityVideo, ModalityDocument, ModalityImage:
		return Modality(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModality, s)
}

// Source returns the ingestion source label persisted with documents
// and chunks, e.g. "audio_ingestion".
func (m Modality) Source() string {
	return string(m) + "_ingestion"
}

// Language is a language tag for a document, or LanguageAuto when the
// language should be detected downstream.
type Language string

// LanguageAuto requests automatic language detection.
const LanguageAuto Language = "auto"

// Role restricts who may read a chunk or document.
type Role string

const (
	RolePublicRead Role = "public_read"
	RoleInternal   Role = "internal"
	RoleRestricted Role = "restricted"
)

// NewDocID generates a globally unique document identifier.
// Generated once at ingestion start and carried through every store.
func NewDocID() string {
	id := uuid.New()
	return fmt.Sprintf("doc_%x", id[:4])
}

// ChunkID derives the deterministic identifier for the seq-th chunk
// (1-based) of a document. Identical inputs always produce the same id,
// which is what makes chunk upserts idempotent across repeated runs.
func ChunkID(docID string, modality Modality, seq int) string {
	return fmt.Sprintf("ch_%s_%s_%03d", docID, modality, seq)
}

// TranscriptionResult is the outcome of transcribing one audio segment.
// Exactly one result exists per input segment, keyed by the segment's
// original index regardless of completion order.
type TranscriptionResult struct {
	SegmentIndex int
	Text         string
	Err          error // non-nil when this segment failed; siblings are unaffected
}

// Chunk is a bounded unit of cleaned text with persistence identity.
// Chunks are immutable once created by the chunker.
type Chunk struct {
	ID              string
	DocID           string
	FileName        string
	Language        Language
	Modality        Modality
	RoleRestriction []Role
	CreatedAt       time.Time
	Strategy        string
	Text            string
}

// TokenEstimate is a cheap whitespace-based token count used for the
// relational chunk row. It is an estimate, not a tokenizer.
func (c *Chunk) TokenEstimate() int {
	n := 0
	inWord := false
	for _, r := range c.Text {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWord = false
		default:
			if !inWord {
				n++
			}
			inWord = true
		}
	}
	return n
}

// Entity is a canonical name plus known alternate surface forms.
type Entity struct {
	Name    string
	Aliases []string
}

// Triple is a subject-predicate-object relation fact extracted from a
// chunk, scored with an extraction confidence in [0,1].
type Triple struct {
	Subject    string
	Predicate  string
	Object     string
	Confidence float64
}

// ExtractionResult bundles the structured knowledge extracted from one chunk.
type ExtractionResult struct {
	Entities []Entity
	Triples  []Triple
}

// AboveThreshold returns the triples whose confidence is at least min.
func (r *ExtractionResult) AboveThreshold(min float64) []Triple {
	out := make([]Triple, 0, len(r.Triples))
	for _, t := range r.Triples {
		if t.Confidence >= min {
			out = append(out, t)
		}
	}
	return out
}

// DocumentMeta is the document-level metadata row persisted to the
// relational store.
type DocumentMeta struct {
	DocID           string
	Title           string
	Language        Language
	Modality        Modality
	FileName        string
	Author          string
	CreatedAt       time.Time
	KnowledgeTags   []string
	RoleRestriction []Role
	Lineage         map[string]string // model provenance, e.g. stt/embed model names
}
