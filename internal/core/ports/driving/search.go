package driving

import (
	"context"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

// SearchService runs the read path: embed the query, rank index
// entries by cosine similarity, filter by score threshold and join
// matches back to chunk and document records.
type SearchService interface {
	// SearchHits returns ranked hits for the query. A topK of zero
	// or less falls back to the configured default.
	SearchHits(ctx context.Context, query string, topK int) ([]domain.SearchHit, error)
}
