package driving

import (
	"context"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

// StrategyResult is the output of one rerank strategy: its ranked
// hits, the assembled context block and the filled prompt.
type StrategyResult struct {
	// Strategy is the strategy name.
	Strategy string

	// Hits is the deduplicated hit slice the strategy ranked;
	// RerankedHit.HitIndex points into it.
	Hits []domain.SearchHit

	// Ranked is the strategy's ordering, descending by score.
	Ranked []domain.RerankedHit

	// Context is the length-bounded context block.
	Context string

	// Prompt is the template with query and context substituted.
	Prompt string
}

// RagService reranks search hits under each configured strategy and
// assembles a bounded context block plus prompt per strategy.
type RagService interface {
	Run(ctx context.Context, query string, topK int) ([]StrategyResult, error)
}
