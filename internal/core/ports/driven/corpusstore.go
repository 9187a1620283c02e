package driven

import (
	"context"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

// CorpusStore persists the corpus snapshot: documents, chunks and
// index entries. The snapshot is read whole at startup and written
// whole after ingest; a single process owns it for the duration of
// one command.
type CorpusStore interface {
	// Load reads the snapshot. A missing snapshot yields an empty
	// corpus, not an error.
	Load(ctx context.Context) (*domain.Corpus, error)

	// Save writes the snapshot atomically (temp file + rename).
	Save(ctx context.Context, corpus *domain.Corpus) error
}

// ChunkLog reads and writes the chunk line-record file consumed by
// external tooling such as the embedder trainer. One JSON object per
// line with the fields id, doc_id, text, start, end, strategy.
type ChunkLog interface {
	// Write replaces the log with the given chunks.
	Write(ctx context.Context, chunks []domain.Chunk) error

	// Read returns all chunks in the log.
	Read(ctx context.Context) ([]domain.Chunk, error)
}
