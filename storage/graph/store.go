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

// Package graph implements the knowledge graph store on Neo4j.
package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/perceptic/audiograph/core"
	"github.com/perceptic/audiograph/storage"
)

// mergeTripleCypher upserts one subject-predicate-object edge. Provenance
// doc and chunk ids accumulate as deduplicated lists; confidence only
// ever moves up, so a later low-confidence sighting cannot degrade an
// edge established with high confidence.
const mergeTripleCypher = `
MERGE (s:Entity {name: $subject})
MERGE (o:Entity {name: $object})
MERGE (s)-[r:REL {predicate: $predicate}]->(o)
ON CREATE SET
    r.doc_ids = [$doc_id],
    r.chunk_ids = [$chunk_id],
    r.confidence = $confidence,
    r.created_at = datetime()
ON MATCH SET
    r.doc_ids = CASE WHEN $doc_id IN r.doc_ids THEN r.doc_ids ELSE r.doc_ids + $doc_id END,
    r.chunk_ids = CASE WHEN $chunk_id IN r.chunk_ids THEN r.chunk_ids ELSE r.chunk_ids + $chunk_id END,
    r.confidence = CASE WHEN $confidence > r.confidence THEN $confidence ELSE r.confidence END,
    r.updated_at = datetime()
`

// Store implements storage.GraphStore on a Neo4j driver.
type Store struct {
	driver neo4j.DriverWithContext
	logger *slog.Logger
}

// NewStore connects to Neo4j and verifies connectivity.
//
// Returns storage.GraphStore interface to enforce abstraction.
func NewStore(ctx context.Context, url, username, password string) (storage.GraphStore, error) {
	driver, err := neo4j.NewDriverWithContext(url, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
	}

	return &Store{
		driver: driver,
		logger: slog.Default().With("component", "graph-store"),
	}, nil
}

// MergeTriples upserts the triples into the graph with docID/chunkID
// provenance and returns how many edges were written. Confidence
// filtering is the caller's responsibility.
func (s *Store) MergeTriples(ctx context.Context, docID, chunkID string, triples []core.Triple) (int, error) {
	if len(triples) == 0 {
		return 0, nil
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	wrote := 0
	for _, t := range triples {
		params := map[string]any{
			"subject":    t.Subject,
			"predicate":  t.Predicate,
			"object":     t.Object,
			"doc_id":     docID,
			"chunk_id":   chunkID,
			"confidence": t.Confidence,
		}
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return tx.Run(ctx, mergeTripleCypher, params)
		})
		if err != nil {
			return wrote, fmt.Errorf("%w: merge %q-[%s]->%q: %v", storage.ErrWriteFailed, t.Subject, t.Predicate, t.Object, err)
		}
		wrote++
	}

	s.logger.Debug("merged triples", "doc_id", docID, "chunk_id", chunkID, "count", wrote)
	return wrote, nil
}

// Close shuts down the driver and its connection pool.
func (s *Store) Close() error {
	return s.driver.Close(context.Background())
}
