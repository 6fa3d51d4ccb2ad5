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

package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/perceptic/audiograph/core"
	"github.com/perceptic/audiograph/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of chunks to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of chunks)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder replays every stored chunk through the vector store so all
// embeddings reflect the currently configured embedding model.
type Reembedder struct {
	source   ChunkSource
	vector   storage.VectorStore
	config   *Config
	progress io.Writer
	iterator *ChunkIterator
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(source ChunkSource, vector storage.VectorStore, config *Config, progress io.Writer) (*Reembedder, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if vector == nil {
		return nil, ErrVectorStoreRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		source:   source,
		vector:   vector,
		config:   config,
		progress: progress,
		iterator: NewChunkIterator(source, config.BatchSize),
	}, nil
}

// Run executes the reembedding operation. Every chunk in the source is
// re-upserted into the vector store; the chunk-keyed upsert makes the
// operation idempotent. Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context) error {
	chunks, err := r.source.ListChunks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list chunks: %w", err)
	}

	total := len(chunks)
	if total == 0 {
		fmt.Fprintf(r.progress, "No chunks found (0 chunks)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d chunks (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = r.iterator.ForEach(ctx, func(batch []core.Chunk) error {
		retryErr := RetryWithBackoff(ctx, func() error {
			return r.vector.Upsert(ctx, batch)
		}, r.config.MaxRetries, r.config.RetryDelay)
		if retryErr != nil {
			return fmt.Errorf("failed to reembed batch after %d attempts: %w", r.config.MaxRetries, retryErr)
		}

		processed += len(batch)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d chunks in %v (%.1f chunks/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
