// Package domain defines the core business entities for Skim.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: an ingested source file with metadata
//   - Chunk: a bounded, normalised passage of a document, the unit of retrieval
//   - SparseVector: a token-to-weight mapping for a chunk or query
//   - IndexEntry: the persisted link between a chunk and its embedding
//   - SearchHit / RerankedHit: materialised retrieval results
//   - EvaluationQuery / QueryReport / AggregatedMetrics: retrieval quality
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
