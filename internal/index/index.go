// Package index provides the in-memory sparse vector index and its
// cosine similarity search.
package index

import (
	"math"
	"sort"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

// Match is one search result: the position of the matched entry in
// the index plus its similarity score.
type Match struct {
	// Entry is the index of the matched entry.
	Entry int

	// Score is the cosine similarity against the query vector.
	Score float64
}

// VectorIndex stores embedded chunks and ranks them against a query
// vector by cosine similarity. It is an append-only in-memory
// structure owned by a single command invocation.
type VectorIndex struct {
	entries []domain.IndexEntry
}

// New creates an empty index.
func New() *VectorIndex {
	return &VectorIndex{}
}

// FromEntries creates an index over previously persisted entries.
func FromEntries(entries []domain.IndexEntry) *VectorIndex {
	return &VectorIndex{entries: entries}
}

// AddChunk appends an entry for an embedded chunk.
func (x *VectorIndex) AddChunk(chunkID, docID string, vector domain.SparseVector) {
	x.entries = append(x.entries, domain.IndexEntry{
		ChunkID: chunkID,
		DocID:   docID,
		Vector:  vector,
	})
}

// Entries exposes the stored entries for persistence and result
// resolution. Callers must not mutate the returned slice.
func (x *VectorIndex) Entries() []domain.IndexEntry {
	return x.entries
}

// Len returns the number of stored entries.
func (x *VectorIndex) Len() int {
	return len(x.entries)
}

// Search ranks every stored entry against the query vector and
// returns at most topK matches, strictly descending by score. Only
// positive-similarity entries are candidates; an empty query vector
// can never be meaningfully compared and yields no results.
func (x *VectorIndex) Search(query domain.SparseVector, topK int) []Match {
	if len(query) == 0 {
		return nil
	}

	var scored []Match
	for i := range x.entries {
		score := CosineSimilarity(query, x.entries[i].Vector)
		if score > 0 {
			scored = append(scored, Match{Entry: i, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK >= 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// CosineSimilarity computes dot(a,b) / (‖a‖·‖b‖) over sparse maps,
// multiplying matching keys only. Either norm being zero yields zero.
func CosineSimilarity(a, b domain.SparseVector) float64 {
	normA := 0.0
	for _, v := range a {
		normA += v * v
	}
	normB := 0.0
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	// Iterate the smaller map for the sparse dot product.
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	dot := 0.0
	for token, sv := range small {
		if lv, ok := large[token]; ok {
			dot += sv * lv
		}
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
