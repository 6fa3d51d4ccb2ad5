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


// Package storage defines the persistence contracts for ingested knowledge.
//
// Three heterogeneous stores back one ingested document: a relational
// metadata store (documents, chunks, vector references, triple audit), a
// vector store (chunk embeddings), and a graph store (relation triples
// with merged provenance). Each store is independently enabled and
// independently failure-isolated; the pipeline treats a nil store as a
// disabled one.
//
// Public constructors in the backend subpackages return these interfaces
// rather than concrete types, so stores can be swapped per deployment and
// tests can substitute the in-memory implementations from storage/memory.
package storage
