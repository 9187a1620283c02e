package driving

import (
	"context"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

// ChunkSource yields the chunks a training run reads. The chunk log
// adapters satisfy it.
type ChunkSource interface {
	Read(ctx context.Context) ([]domain.Chunk, error)
}

// TrainOptions configures one training run.
type TrainOptions struct {
	// Chunks overrides the configured chunk log as the training
	// source. Nil reads the service's default log.
	Chunks ChunkSource
}

// TrainOutcome reports a completed training job.
type TrainOutcome struct {
	// Manifest is the trained model manifest.
	Manifest domain.ModelManifest

	// ManifestPath is where the manifest was written.
	ManifestPath string
}

// TrainService builds a custom embedder token-weight table from a
// chunk source and persists it as a new model version.
type TrainService interface {
	// Train builds a model. An empty version derives one from the
	// current time; an empty name is invalid input.
	Train(ctx context.Context, name, version string, opts TrainOptions) (*TrainOutcome, error)
}
