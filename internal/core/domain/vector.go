package domain

// SparseVector maps tokens to non-negative weights.
// Absent tokens have weight zero. An empty map is the zero vector.
type SparseVector map[string]float64

// IndexEntry is the persisted link between a chunk and its embedding.
// Exactly one entry exists per chunk ID; many entries may share a doc ID.
type IndexEntry struct {
	// ChunkID references the embedded chunk.
	ChunkID string `json:"chunk_id"`

	// DocID references the chunk's parent document.
	DocID string `json:"doc_id"`

	// Vector is the sparse embedding of the chunk text.
	Vector SparseVector `json:"vector"`
}
