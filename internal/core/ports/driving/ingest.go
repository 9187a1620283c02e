package driving

import (
	"context"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

// IngestOptions configures one ingest pass.
type IngestOptions struct {
	// EmitWordTally writes a CSV tally of normalised word counts to
	// the artifact directory.
	EmitWordTally bool

	// EmitNormalized writes the fully normalised text of every
	// ingested file to the artifact directory.
	EmitNormalized bool
}

// IngestSummary reports what one ingest pass did.
type IngestSummary struct {
	// Documents is the corpus document count after the pass.
	Documents int

	// Chunks is the corpus chunk count after the pass.
	Chunks int

	// Skipped counts files skipped as already-ingested duplicates.
	Skipped int
}

// IngestService runs the write path: discover files, normalise,
// chunk, embed, index and persist.
type IngestService interface {
	Ingest(ctx context.Context, root string, strategy domain.ChunkStrategy, opts IngestOptions) (*IngestSummary, error)
}
