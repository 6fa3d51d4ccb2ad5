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


// Package vectorpg implements the vector store on PostgreSQL with the
// pgvector extension.
//
// Chunk texts are embedded inside the store via the configured ai.Embedder
// and upserted keyed by chunk id, so re-ingesting a document overwrites
// its embeddings instead of duplicating them.
package vectorpg

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/perceptic/audiograph/ai"
	"github.com/perceptic/audiograph/core"
	"github.com/perceptic/audiograph/storage"
	"github.com/pgvector/pgvector-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Collection is the table chunk embeddings are written to; recorded in
// the relational vdb_refs rows.
const Collection = "chunk_embeddings"

// Dim is the embedding dimensionality of the collection. The configured
// embedding model must produce vectors of this size.
const Dim = 1024

// chunkEmbedding is one embedded chunk.
type chunkEmbedding struct {
	ChunkID   string `gorm:"column:chunk_id;primaryKey"`
	DocID     string `gorm:"column:doc_id;index"`
	Document  string `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(1024)"`
	UpdatedAt time.Time
}

func (chunkEmbedding) TableName() string {
	return Collection
}

// Store implements storage.VectorStore on pgvector.
type Store struct {
	db       *gorm.DB
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewStore connects to PostgreSQL, ensures the vector extension and the
// embeddings table exist, and binds the embedder used for upserts.
//
// Returns storage.VectorStore interface to enforce abstraction.
func NewStore(dsn string, embedder ai.Embedder) (storage.VectorStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("%w: vector extension: %v", storage.ErrStoreUnavailable, err)
	}
	if err := db.AutoMigrate(&chunkEmbedding{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", storage.ErrStoreUnavailable, err)
	}

	return &Store{
		db:       db,
		embedder: embedder,
		logger:   slog.Default().With("component", "vectorpg-store"),
	}, nil
}

// Upsert embeds the chunk texts in one batch and writes them keyed by
// chunk id. A no-op on an empty chunk list.
func (s *Store) Upsert(ctx context.Context, chunks []core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embedding: %v", storage.ErrWriteFailed, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: embedder returned %d vectors for %d chunks", storage.ErrWriteFailed, len(vectors), len(chunks))
	}

	now := time.Now().UTC()
	rows := make([]chunkEmbedding, len(chunks))
	for i, c := range chunks {
		rows[i] = chunkEmbedding{
			ChunkID:   c.ID,
			DocID:     c.DocID,
			Document:  c.Text,
			Embedding: pgvector.NewVector(vectors[i]),
			UpdatedAt: now,
		}
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chunk_id"}},
		UpdateAll: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrWriteFailed, err)
	}

	s.logger.Debug("upserted embeddings", "chunks", len(chunks))
	return nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
