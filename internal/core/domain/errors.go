package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown embedder or strategy kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// Consistency errors. These mean the corpus and index are out of
	// sync and must never be recovered from silently.

	// ErrDanglingChunk indicates an index entry references a chunk
	// that no longer resolves.
	ErrDanglingChunk = errors.New("index entry references missing chunk")

	// ErrDanglingDocument indicates an index entry references a
	// document that no longer resolves.
	ErrDanglingDocument = errors.New("index entry references missing document")

	// ErrEntryOutOfRange indicates a search result points outside
	// the index entry slice.
	ErrEntryOutOfRange = errors.New("search result index out of range")

	// Resource errors.

	// ErrNoModelVersions indicates a custom model directory contains
	// no trained versions.
	ErrNoModelVersions = errors.New("no model versions found")
)
