package driven

import (
	"context"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

// RunLog records evaluation runs, one serialised record per
// (embedder, evaluation pass).
type RunLog interface {
	// Append writes a run record and returns the path it was
	// written to.
	Append(ctx context.Context, run *domain.EvaluationRun) (string, error)
}
