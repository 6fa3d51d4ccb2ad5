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


package storage

import (
	"context"
	"time"

	"github.com/perceptic/audiograph/core"
)

// MetadataStore persists document and chunk metadata relationally.
// All writes are transactional, one transaction per logical insert, and
// the document/chunk/vector-ref writes are idempotent upserts keyed by
// their natural primary keys.
type MetadataStore interface {
	// UpsertDocument writes the document row, keyed by DocID.
	// Re-ingesting the same document updates the row in place.
	UpsertDocument(ctx context.Context, meta *core.DocumentMeta) error

	// UpsertChunk writes one chunk row, keyed by the chunk's ID.
	UpsertChunk(ctx context.Context, chunk *core.Chunk) error

	// UpsertVectorRef records that the chunk's embedding lives in the
	// named vector collection with the given dimensionality.
	UpsertVectorRef(ctx context.Context, chunkID, collection string, dim int) error

	// AppendTripleAudit appends one triple observation to the audit log.
	// Every call writes a fresh row with a new unique id; the audit is
	// append-only and never deduplicated, unlike the graph store.
	AppendTripleAudit(ctx context.Context, docID, chunkID string, triple core.Triple) error

	// Close closes the store and releases resources.
	Close() error
}

// VectorStore persists chunk embeddings for similarity search.
type VectorStore interface {
	// Upsert embeds the chunk texts and writes them keyed by chunk id.
	// Embedding happens inside the store. A no-op on an empty slice.
	Upsert(ctx context.Context, chunks []core.Chunk) error

	// Close closes the store and releases resources.
	Close() error
}

// GraphStore persists relation triples as graph edges keyed by
// (subject, predicate, object).
type GraphStore interface {
	// MergeTriples merge-upserts the triples observed in one chunk:
	// an edge is created on first observation; a re-observed edge
	// accumulates the (docID, chunkID) provenance pair without
	// duplicates and raises its confidence to the maximum seen, never
	// lowering it. The merge is atomic per triple. Returns the number
	// of triples written.
	MergeTriples(ctx context.Context, docID, chunkID string, triples []core.Triple) (int, error)

	// Close closes the store and releases resources.
	Close() error
}

// LedgerEntry records one completed ingestion of a source file.
type LedgerEntry struct {
	DocID      string    `json:"doc_id"`
	Path       string    `json:"path"`
	Title      string    `json:"title"`
	Modality   string    `json:"modality"`
	Language   string    `json:"language"`
	IngestedAt time.Time `json:"ingested_at"`
	Chunks     int       `json:"chunks"`
	Warnings   int       `json:"warnings"`
}

// Ledger is local bookkeeping of which sources have been ingested,
// letting discovery skip files that were already processed.
type Ledger interface {
	// Seen reports whether the source path has a recorded ingestion.
	Seen(path string) (bool, error)

	// Record stores the entry for a completed ingestion, replacing any
	// previous entry for the same path.
	Record(entry LedgerEntry) error

	// List returns all recorded ingestions, most recent first.
	List() ([]LedgerEntry, error)

	// Close closes the ledger and releases resources.
	Close() error
}
