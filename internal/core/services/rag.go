package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driving"
	"github.com/millrace-labs/skim-cli/internal/logger"
)

// Ensure RagService implements the interface.
var _ driving.RagService = (*RagService)(nil)

// contextSeparator delimits hit texts inside the assembled context
// block. It counts toward the context budget.
const contextSeparator = "\n---\n"

// RagService reranks search hits under each configured strategy and
// assembles a length-bounded context block plus a filled prompt.
type RagService struct {
	search         driving.SearchService
	strategies     []domain.RerankStrategy
	contextBudget  int
	promptTemplate string
}

// NewRagService creates a rerank/context-assembly service on top of
// the search pipeline.
func NewRagService(
	search driving.SearchService,
	strategies []domain.RerankStrategy,
	contextBudget int,
	promptTemplate string,
) *RagService {
	return &RagService{
		search:         search,
		strategies:     strategies,
		contextBudget:  contextBudget,
		promptTemplate: promptTemplate,
	}
}

// Run retrieves hits for the query and applies every strategy
// independently. Hits are deduplicated once, before any strategy.
func (s *RagService) Run(ctx context.Context, query string, topK int) ([]driving.StrategyResult, error) {
	hits, err := s.search.SearchHits(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve hits: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	deduped := DedupeHits(hits)
	logger.Debug("Rerank input: %d hits (%d after dedupe)", len(hits), len(deduped))

	results := make([]driving.StrategyResult, 0, len(s.strategies))
	for _, strategy := range s.strategies {
		ranked := RerankHits(deduped, strategy)
		logger.Debug("Strategy %s: %d hits above threshold %.3f", strategy.Name, len(ranked), strategy.Threshold)

		context := BuildContext(deduped, ranked, s.contextBudget)
		results = append(results, driving.StrategyResult{
			Strategy: strategy.Name,
			Hits:     deduped,
			Ranked:   ranked,
			Context:  context,
			Prompt:   FormatPrompt(s.promptTemplate, query, context),
		})
	}
	return results, nil
}

// DedupeHits drops hits whose chunk text matches an earlier hit
// case-insensitively; the first occurrence wins.
func DedupeHits(hits []domain.SearchHit) []domain.SearchHit {
	seen := make(map[string]struct{}, len(hits))
	deduped := make([]domain.SearchHit, 0, len(hits))
	for _, hit := range hits {
		fingerprint := strings.ToLower(hit.Chunk.Text)
		if _, dup := seen[fingerprint]; dup {
			continue
		}
		seen[fingerprint] = struct{}{}
		deduped = append(deduped, hit)
	}
	return deduped
}

// RerankHits scores every hit under one strategy and returns the
// surviving hits descending by combined score. Hits scoring strictly
// below the strategy threshold are dropped.
func RerankHits(hits []domain.SearchHit, strategy domain.RerankStrategy) []domain.RerankedHit {
	boostTerms := make([]string, len(strategy.BoostTerms))
	for i, term := range strategy.BoostTerms {
		boostTerms[i] = strings.ToLower(term)
	}

	var ranked []domain.RerankedHit
	for i := range hits {
		base := hits[i].Score
		text := strings.ToLower(hits[i].Chunk.Text)

		termScore := 0.0
		for _, term := range boostTerms {
			if term != "" && strings.Contains(text, term) {
				termScore++
			}
		}
		boost := termScore * strategy.BoostFactor

		var total float64
		switch strategy.Mode {
		case domain.RerankTermOverlap:
			total = base + boost
		case domain.RerankHybrid:
			total = base*(1-strategy.HybridWeight) + boost*strategy.HybridWeight
		default:
			total = base
		}

		if total >= strategy.Threshold {
			ranked = append(ranked, domain.RerankedHit{HitIndex: i, Score: total})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// BuildContext concatenates ranked hit texts, trimmed and separated
// by the context separator, until the character budget is reached.
// The overflowing text is truncated to exactly fill the remaining
// budget; empty hit texts are skipped without consuming a separator.
func BuildContext(hits []domain.SearchHit, ranked []domain.RerankedHit, budget int) string {
	var out strings.Builder
	used := 0

	for _, entry := range ranked {
		if used >= budget {
			break
		}
		addition := strings.TrimSpace(hits[entry.HitIndex].Chunk.Text)
		if addition == "" {
			continue
		}
		if out.Len() > 0 {
			sep := truncateRunes(contextSeparator, budget-used)
			out.WriteString(sep)
			used += utf8.RuneCountInString(sep)
			if used >= budget {
				break
			}
		}
		truncated := truncateRunes(addition, budget-used)
		out.WriteString(truncated)
		used += utf8.RuneCountInString(truncated)
	}
	return out.String()
}

// FormatPrompt substitutes the query and assembled context into the
// template by literal placeholder replacement.
func FormatPrompt(template, query, context string) string {
	prompt := strings.ReplaceAll(template, "{query}", query)
	return strings.ReplaceAll(prompt, "{context}", context)
}

// truncateRunes cuts text to at most max characters, never splitting
// a multi-byte rune.
func truncateRunes(text string, max int) string {
	if max <= 0 {
		return ""
	}
	count := 0
	for i := range text {
		if count == max {
			return text[:i]
		}
		count++
	}
	return text
}
