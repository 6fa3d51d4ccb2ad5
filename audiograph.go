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

// Package audiograph turns audio recordings into queryable knowledge:
// relational metadata, vector embeddings, and a provenance-carrying
// knowledge graph.
package audiograph

import (
	"context"
	"log/slog"

	"github.com/perceptic/audiograph/ai"
	"github.com/perceptic/audiograph/ai/openai"
	"github.com/perceptic/audiograph/ingestion"
	"github.com/perceptic/audiograph/storage"
	"github.com/perceptic/audiograph/storage/graph"
	"github.com/perceptic/audiograph/storage/ledger"
	"github.com/perceptic/audiograph/storage/postgres"
	"github.com/perceptic/audiograph/storage/vectorpg"
)

// System wires the AI provider, the persistence stores, and the ingest
// ledger into one handle. Stores not configured stay nil and the
// pipeline skips them.
type System struct {
	provider ai.Provider
	meta     storage.MetadataStore
	vector   storage.VectorStore
	graph    storage.GraphStore
	ledger   storage.Ledger
	logger   *slog.Logger

	pipelineOpts []ingestion.Option
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig     *ai.Config
	postgresDSN  string
	neo4jURL     string
	neo4jUser    string
	neo4jPass    string
	ledgerPath   string
	pipelineOpts []ingestion.Option
}

// WithAIConfig sets the model endpoints and identifiers.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithPostgresDSN enables the relational and vector stores on the given
// PostgreSQL instance. An empty DSN leaves both disabled.
func WithPostgresDSN(dsn string) SystemOption {
	return func(o *systemOptions) {
		o.postgresDSN = dsn
	}
}

// WithNeo4j enables the knowledge graph store. An empty URL leaves it
// disabled.
func WithNeo4j(url, username, password string) SystemOption {
	return func(o *systemOptions) {
		o.neo4jURL = url
		o.neo4jUser = username
		o.neo4jPass = password
	}
}

// WithLedgerPath enables the ingest ledger at the given directory.
func WithLedgerPath(path string) SystemOption {
	return func(o *systemOptions) {
		o.ledgerPath = path
	}
}

// WithPipelineOptions forwards options to every pipeline the system
// creates, after the store wiring the system does itself.
func WithPipelineOptions(opts ...ingestion.Option) SystemOption {
	return func(o *systemOptions) {
		o.pipelineOpts = append(o.pipelineOpts, opts...)
	}
}

// NewSystem constructs the system, connecting to every configured
// backend. Construction fails if any configured backend is unreachable;
// leaving a backend unconfigured is not an error.
func NewSystem(ctx context.Context, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		return nil, err
	}

	s := &System{
		provider: provider,
		logger:   slog.Default().With("component", "audiograph"),
	}

	if options.postgresDSN != "" {
		meta, err := postgres.NewStore(options.postgresDSN)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.meta = meta

		vector, err := vectorpg.NewStore(options.postgresDSN, provider.Embedder())
		if err != nil {
			s.Close()
			return nil, err
		}
		s.vector = vector
	}

	if options.neo4jURL != "" {
		g, err := graph.NewStore(ctx, options.neo4jURL, options.neo4jUser, options.neo4jPass)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.graph = g
	}

	if options.ledgerPath != "" {
		led, err := ledger.Open(options.ledgerPath)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.ledger = led
	}

	lineage := map[string]string{
		"stt_model":       options.aiConfig.STTModel,
		"clean_model":     options.aiConfig.CleanModel,
		"extract_model":   options.aiConfig.ExtractModel,
		"embedding_model": options.aiConfig.EmbeddingModel,
	}
	s.pipelineOpts = append([]ingestion.Option{
		ingestion.WithMetadataStore(s.meta),
		ingestion.WithVectorStore(s.vector),
		ingestion.WithGraphStore(s.graph),
		ingestion.WithLineage(lineage),
	}, options.pipelineOpts...)

	return s, nil
}

// Ledger returns the ingest ledger, or nil when not configured.
func (s *System) Ledger() storage.Ledger {
	return s.ledger
}

// NewPipeline creates an ingestion pipeline wired to the system's
// provider and stores. Additional options apply after the system's own.
func (s *System) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(s.provider, append(s.pipelineOpts, opts...)...)
}

// Close releases every backend the system opened.
func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	var firstErr error
	closeStore := func(name string, fn func() error) {
		if err := fn(); err != nil {
			s.logger.Error("error closing "+name, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if s.ledger != nil {
		closeStore("ledger", s.ledger.Close)
	}
	if s.graph != nil {
		closeStore("graph store", s.graph.Close)
	}
	if s.vector != nil {
		closeStore("vector store", s.vector.Close)
	}
	if s.meta != nil {
		closeStore("metadata store", s.meta.Close)
	}
	return firstErr
}
