package driven

import (
	"context"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

// ModelStore reads and writes trained custom embedder models under a
// models root directory, laid out as <root>/<name>/<version>/.
type ModelStore interface {
	// Load reads the manifest for the given model. An empty version
	// selects the lexicographically greatest version subdirectory;
	// a model with no versions is a resource error.
	Load(ctx context.Context, name, version string) (*domain.ModelManifest, error)

	// Save writes the manifest and the sampled training chunks for a
	// new model version and returns the manifest path.
	Save(ctx context.Context, manifest *domain.ModelManifest, sample []domain.Chunk) (string, error)
}
