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


package ingestion

import (
	"context"

	"github.com/perceptic/audiograph/core"
)

// Vector collection identity recorded in the relational vdb_refs rows.
const (
	vectorCollection = "chunk_embeddings"
	vectorDim        = 1024
)

// persist writes the document to every configured store. Each store is
// failure-isolated: a failing relational write disables further
// relational writes for this document but leaves the vector and graph
// writes untouched, and vice versa. Every failure lands in the report.
func (p *Pipeline) persist(ctx context.Context, meta core.DocumentMeta, chunks []core.Chunk, report *Report) {
	logger := p.logger.With("doc_id", meta.DocID)

	metaOK := p.meta != nil
	if metaOK {
		if err := p.meta.UpsertDocument(ctx, &meta); err != nil {
			logger.Error("document upsert failed, skipping relational writes", "err", err)
			report.FailedWrites = append(report.FailedWrites, StoreWrite{
				Store: StoreRelational, DocID: meta.DocID, Err: err,
			})
			metaOK = false
		}
	}

	vectorOK := p.vector != nil
	if vectorOK && len(chunks) > 0 {
		if err := p.vector.Upsert(ctx, chunks); err != nil {
			logger.Error("vector upsert failed, skipping vector refs", "err", err)
			report.FailedWrites = append(report.FailedWrites, StoreWrite{
				Store: StoreVector, DocID: meta.DocID, Err: err,
			})
			vectorOK = false
		}
	}

	extractor := p.provider.Extractor()

	for i := range chunks {
		chunk := chunks[i]
		if metaOK {
			if err := p.meta.UpsertChunk(ctx, &chunk); err != nil {
				logger.Error("chunk upsert failed", "chunk_id", chunk.ID, "err", err)
				report.FailedWrites = append(report.FailedWrites, StoreWrite{
					Store: StoreRelational, DocID: meta.DocID, ChunkID: chunk.ID, Err: err,
				})
			} else if vectorOK {
				if err := p.meta.UpsertVectorRef(ctx, chunk.ID, vectorCollection, vectorDim); err != nil {
					logger.Error("vector ref upsert failed", "chunk_id", chunk.ID, "err", err)
					report.FailedWrites = append(report.FailedWrites, StoreWrite{
						Store: StoreRelational, DocID: meta.DocID, ChunkID: chunk.ID, Err: err,
					})
				}
			}
		}

		result, err := extractor.Extract(ctx, chunk.Text)
		if err != nil {
			logger.Warn("extraction failed", "chunk_id", chunk.ID, "err", err)
			report.ExtractionErrors++
			continue
		}
		report.TriplesExtracted += len(result.Triples)

		kept := result.AboveThreshold(p.minConfidence)
		if len(kept) == 0 {
			continue
		}

		if p.graph != nil {
			wrote, err := p.graph.MergeTriples(ctx, meta.DocID, chunk.ID, kept)
			report.TriplesMerged += wrote
			if err != nil {
				logger.Error("graph merge failed", "chunk_id", chunk.ID, "err", err)
				report.FailedWrites = append(report.FailedWrites, StoreWrite{
					Store: StoreGraph, DocID: meta.DocID, ChunkID: chunk.ID, Err: err,
				})
			}
		}

		if metaOK {
			for _, triple := range kept {
				if err := p.meta.AppendTripleAudit(ctx, meta.DocID, chunk.ID, triple); err != nil {
					logger.Error("triple audit append failed", "chunk_id", chunk.ID, "err", err)
					report.FailedWrites = append(report.FailedWrites, StoreWrite{
						Store: StoreRelational, DocID: meta.DocID, ChunkID: chunk.ID, Err: err,
					})
					continue
				}
				report.AuditRows++
			}
		}
	}
}
