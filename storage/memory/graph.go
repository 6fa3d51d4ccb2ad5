package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/perceptic/audiograph/core"
	"github.com/perceptic/audiograph/storage"
)

// EdgeKey identifies one subject-predicate-object edge.
type EdgeKey struct {
	Subject   string
	Predicate string
	Object    string
}

// Provenance is one (doc, chunk) sighting of an edge.
type Provenance struct {
	DocID   string
	ChunkID string
}

// Edge is the stored state of one graph edge.
type Edge struct {
	Confidence float64
	DocIDs     []string
	ChunkIDs   []string
}

// GraphStore is an in-memory storage.GraphStore with the same merge
// semantics as the Neo4j backend: provenance lists are unioned and
// confidence only ever increases.
type GraphStore struct {
	mu sync.Mutex

	Edges map[EdgeKey]*Edge

	// FailMerges makes MergeTriples return storage.ErrWriteFailed.
	FailMerges bool

	closed bool
}

var _ storage.GraphStore = (*GraphStore)(nil)

// NewGraphStore returns an empty in-memory graph store.
func NewGraphStore() *GraphStore {
	return &GraphStore{Edges: make(map[EdgeKey]*Edge)}
}

func appendUnique(list []string, v string) []string {
	for _, have := range list {
		if have == v {
			return list
		}
	}
	return append(list, v)
}

func (s *GraphStore) MergeTriples(ctx context.Context, docID, chunkID string, triples []core.Triple) (int, error) {
	if len(triples) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, storage.ErrStoreClosed
	}
	if s.FailMerges {
		return 0, fmt.Errorf("%w: injected failure", storage.ErrWriteFailed)
	}

	wrote := 0
	for _, t := range triples {
		key := EdgeKey{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object}
		edge, ok := s.Edges[key]
		if !ok {
			s.Edges[key] = &Edge{
				Confidence: t.Confidence,
				DocIDs:     []string{docID},
				ChunkIDs:   []string{chunkID},
			}
		} else {
			edge.DocIDs = appendUnique(edge.DocIDs, docID)
			edge.ChunkIDs = appendUnique(edge.ChunkIDs, chunkID)
			if t.Confidence > edge.Confidence {
				edge.Confidence = t.Confidence
			}
		}
		wrote++
	}
	return wrote, nil
}

func (s *GraphStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
