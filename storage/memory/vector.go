package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/perceptic/audiograph/core"
	"github.com/perceptic/audiograph/storage"
)

// VectorStore is an in-memory storage.VectorStore keyed by chunk id.
// It records texts rather than embeddings; tests only care about which
// chunks reached the store.
type VectorStore struct {
	mu sync.Mutex

	Records     map[string]string
	UpsertCalls int

	// FailUpserts makes Upsert return storage.ErrWriteFailed.
	FailUpserts bool

	closed bool
}

var _ storage.VectorStore = (*VectorStore)(nil)

// NewVectorStore returns an empty in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{Records: make(map[string]string)}
}

func (s *VectorStore) Upsert(ctx context.Context, chunks []core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStoreClosed
	}
	s.UpsertCalls++
	if s.FailUpserts {
		return fmt.Errorf("%w: injected failure", storage.ErrWriteFailed)
	}
	for _, c := range chunks {
		s.Records[c.ID] = c.Text
	}
	return nil
}

func (s *VectorStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
