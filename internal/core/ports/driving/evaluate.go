package driving

import (
	"context"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

// EvaluationOutcome is one completed evaluation pass for one
// embedder variant.
type EvaluationOutcome struct {
	// Run is the full run record, including per-query reports.
	Run domain.EvaluationRun

	// LogPath is where the run was persisted, empty when run
	// logging is disabled.
	LogPath string
}

// EvaluationService runs the labelled query set against each
// configured embedder variant and aggregates retrieval metrics.
type EvaluationService interface {
	Run(ctx context.Context) ([]EvaluationOutcome, error)
}
