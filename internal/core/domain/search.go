package domain

// SearchOptions configures one search-hit assembly pass.
type SearchOptions struct {
	// TopK is the maximum number of index matches to consider.
	TopK int

	// ScoreThreshold drops matches scoring below it (inclusive
	// boundary: score >= threshold survives).
	ScoreThreshold float64

	// NormalizeQuery re-runs the text normaliser on the query
	// before embedding.
	NormalizeQuery bool
}

// SearchHit is a materialised join of an index match with its full
// chunk and document records. Hits are ephemeral, built per query.
type SearchHit struct {
	// Chunk is the matched chunk.
	Chunk Chunk `json:"chunk"`

	// Document is the chunk's parent document.
	Document Document `json:"document"`

	// Score is the cosine similarity at search time.
	Score float64 `json:"score"`
}
