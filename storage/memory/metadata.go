package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/perceptic/audiograph/core"
	"github.com/perceptic/audiograph/storage"
)

// TripleAuditRow is one appended audit record.
type TripleAuditRow struct {
	DocID   string
	ChunkID string
	Triple  core.Triple
}

// VectorRef mirrors the relational vdb_refs row.
type VectorRef struct {
	Collection string
	Dim        int
}

// MetadataStore is an in-memory storage.MetadataStore.
type MetadataStore struct {
	mu sync.Mutex

	Documents  map[string]core.DocumentMeta
	Chunks     map[string]core.Chunk
	VectorRefs map[string]VectorRef
	Audit      []TripleAuditRow

	// FailWrites makes every write return storage.ErrWriteFailed.
	FailWrites bool

	closed bool
}

var _ storage.MetadataStore = (*MetadataStore)(nil)

// NewMetadataStore returns an empty in-memory metadata store.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{
		Documents:  make(map[string]core.DocumentMeta),
		Chunks:     make(map[string]core.Chunk),
		VectorRefs: make(map[string]VectorRef),
	}
}

func (s *MetadataStore) check() error {
	if s.closed {
		return storage.ErrStoreClosed
	}
	if s.FailWrites {
		return fmt.Errorf("%w: injected failure", storage.ErrWriteFailed)
	}
	return nil
}

func (s *MetadataStore) UpsertDocument(ctx context.Context, meta *core.DocumentMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	s.Documents[meta.DocID] = *meta
	return nil
}

func (s *MetadataStore) UpsertChunk(ctx context.Context, chunk *core.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	s.Chunks[chunk.ID] = *chunk
	return nil
}

func (s *MetadataStore) UpsertVectorRef(ctx context.Context, chunkID, collection string, dim int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	s.VectorRefs[chunkID] = VectorRef{Collection: collection, Dim: dim}
	return nil
}

func (s *MetadataStore) AppendTripleAudit(ctx context.Context, docID, chunkID string, triple core.Triple) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	s.Audit = append(s.Audit, TripleAuditRow{DocID: docID, ChunkID: chunkID, Triple: triple})
	return nil
}

// ListChunks returns the stored chunks sorted by id.
func (s *MetadataStore) ListChunks(ctx context.Context) ([]core.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, storage.ErrStoreClosed
	}

	chunks := make([]core.Chunk, 0, len(s.Chunks))
	for _, c := range s.Chunks {
		chunks = append(chunks, c)
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ID < chunks[j].ID })
	return chunks, nil
}

func (s *MetadataStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
