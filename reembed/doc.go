// Package reembed refreshes stored chunk embeddings after an embedding
// model change.
//
// Chunk text is the source of truth in the relational store; reembedding
// replays it through the vector store in batches, with progress tracking
// and retry logic with exponential backoff.
package reembed
