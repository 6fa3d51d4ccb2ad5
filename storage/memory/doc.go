// Package memory provides in-memory implementations of the storage
// interfaces. They mirror the persistence semantics of the real
// backends (upsert-by-key, provenance union, raise-only confidence)
// and support write-failure injection, which makes them the store
// implementations of choice in pipeline tests.
package memory
