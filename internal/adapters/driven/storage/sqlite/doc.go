// Package sqlite provides a SQLite-backed CorpusStore as an
// alternative to the JSON snapshot, selected by the storage backend
// config. Sparse vectors are stored as JSON text columns.
package sqlite
