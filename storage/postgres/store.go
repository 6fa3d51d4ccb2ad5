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


// Package postgres implements the relational metadata store on PostgreSQL.
//
// Schema creation is idempotent; document, chunk and vector-ref writes are
// primary-key upserts so repeated ingestion of the same document never
// duplicates rows. The triple audit table is append-only by design.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/perceptic/audiograph/core"
	"github.com/perceptic/audiograph/storage"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Store implements storage.MetadataStore on PostgreSQL via gorm.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewStore connects to PostgreSQL and creates the four tables if absent.
//
// Returns storage.MetadataStore interface to enforce abstraction.
func NewStore(dsn string) (storage.MetadataStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
	}

	if err := db.AutoMigrate(&documentRow{}, &chunkRow{}, &vectorRefRow{}, &tripleRow{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", storage.ErrStoreUnavailable, err)
	}

	return &Store{
		db:     db,
		logger: slog.Default().With("component", "postgres-store"),
	}, nil
}

// UpsertDocument writes the document row, replacing an existing row with
// the same docID.
func (s *Store) UpsertDocument(ctx context.Context, meta *core.DocumentMeta) error {
	if err := meta.Validate(); err != nil {
		return err
	}

	row := documentRow{
		DocID:           meta.DocID,
		Title:           meta.Title,
		Language:        string(meta.Language),
		Source:          meta.Modality.Source(),
		File:            meta.FileName,
		Author:          meta.Author,
		CreatedAt:       meta.CreatedAt,
		KnowledgeTags:   asJSON(meta.KnowledgeTags),
		RoleRestriction: asJSON(meta.RoleRestriction),
		Lineage:         asJSON(meta.Lineage),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doc_id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("%w: document %s: %v", storage.ErrWriteFailed, meta.DocID, err)
	}
	return nil
}

// UpsertChunk writes one chunk row, replacing an existing row with the
// same chunk id.
func (s *Store) UpsertChunk(ctx context.Context, chunk *core.Chunk) error {
	if err := chunk.Validate(); err != nil {
		return err
	}

	row := chunkRow{
		ChunkID:       chunk.ID,
		DocID:         chunk.DocID,
		Strategy:      chunk.Strategy,
		TokenEstimate: chunk.TokenEstimate(),
		CreatedAt:     chunk.CreatedAt,
		Text:          chunk.Text,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chunk_id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("%w: chunk %s: %v", storage.ErrWriteFailed, chunk.ID, err)
	}
	return nil
}

// UpsertVectorRef records the vector collection holding a chunk's embedding.
func (s *Store) UpsertVectorRef(ctx context.Context, chunkID, collection string, dim int) error {
	row := vectorRefRow{
		ChunkID:    chunkID,
		Collection: collection,
		VectorDim:  dim,
		InsertedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chunk_id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("%w: vector ref %s: %v", storage.ErrWriteFailed, chunkID, err)
	}
	return nil
}

// AppendTripleAudit appends one observed triple with a fresh unique id.
// Unlike the graph store, repeated runs append rather than merge.
func (s *Store) AppendTripleAudit(ctx context.Context, docID, chunkID string, triple core.Triple) error {
	if err := triple.Validate(); err != nil {
		return err
	}

	row := tripleRow{
		TripleID:   uuid.NewString(),
		Subject:    triple.Subject,
		Predicate:  triple.Predicate,
		Object:     triple.Object,
		DocID:      docID,
		ChunkID:    chunkID,
		Confidence: int(triple.Confidence * 100),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("%w: triple audit %s: %v", storage.ErrWriteFailed, row.TripleID, err)
	}
	return nil
}

// ListChunks returns every stored chunk, ordered by chunk id. Reembedding
// uses it to replay chunk text through the vector store.
func (s *Store) ListChunks(ctx context.Context) ([]core.Chunk, error) {
	var rows []chunkRow
	if err := s.db.WithContext(ctx).Order("chunk_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: list chunks: %v", storage.ErrWriteFailed, err)
	}

	chunks := make([]core.Chunk, len(rows))
	for i, row := range rows {
		chunks[i] = core.Chunk{
			ID:        row.ChunkID,
			DocID:     row.DocID,
			Strategy:  row.Strategy,
			CreatedAt: row.CreatedAt,
			Text:      row.Text,
		}
	}
	return chunks, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
