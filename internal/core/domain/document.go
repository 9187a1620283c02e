package domain

import "fmt"

// Document represents an ingested source file.
// It is the canonical record after normalisation.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// Path is the resolved filesystem location of the source.
	Path string `json:"path"`

	// Hash is the SHA-256 digest of the normalised content,
	// used for duplicate detection at ingest time.
	Hash string `json:"hash"`

	// TokenCount is the number of tokens in the normalised content.
	TokenCount int `json:"token_count"`
}

// ChunkStrategy selects how a document is split into chunks.
type ChunkStrategy string

const (
	// StrategyStructured splits on configured separator strings.
	StrategyStructured ChunkStrategy = "structured"

	// StrategyFixed slides a fixed-size token window with overlap.
	StrategyFixed ChunkStrategy = "fixed"
)

// ParseChunkStrategy converts a config or flag value into a ChunkStrategy.
func ParseChunkStrategy(s string) (ChunkStrategy, error) {
	switch ChunkStrategy(s) {
	case StrategyStructured:
		return StrategyStructured, nil
	case StrategyFixed:
		return StrategyFixed, nil
	default:
		return "", fmt.Errorf("%w: chunk strategy %q", ErrInvalidInput, s)
	}
}

// String returns the canonical lowercase name.
func (s ChunkStrategy) String() string {
	return string(s)
}

// Chunk represents a bounded, normalised passage of a document.
// It is the unit of retrieval. Chunks are immutable once created.
//
// The serialised field names (id, doc_id, text, start, end, strategy)
// are a contract with external tooling such as the embedder trainer;
// do not rename them.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string `json:"id"`

	// DocID links to the parent Document.
	DocID string `json:"doc_id"`

	// Text is the normalised chunk text.
	Text string `json:"text"`

	// Start is the byte offset of the chunk within the source text.
	Start int `json:"start"`

	// End is the byte offset one past the chunk within the source text.
	End int `json:"end"`

	// Strategy records which chunking strategy produced this chunk.
	Strategy ChunkStrategy `json:"strategy"`
}
