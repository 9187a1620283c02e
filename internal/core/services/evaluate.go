package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driving"
	"github.com/millrace-labs/skim-cli/internal/embedder"
	"github.com/millrace-labs/skim-cli/internal/index"
	"github.com/millrace-labs/skim-cli/internal/logger"
)

// Ensure EvaluationService implements the interface.
var _ driving.EvaluationService = (*EvaluationService)(nil)

// EvaluationService runs the labelled query set against each
// configured embedder variant, scores the hits against expected
// terms and aggregates recall, MRR, nDCG and latency.
type EvaluationService struct {
	corpus     *domain.Corpus
	index      *index.VectorIndex
	normaliser driven.Normaliser
	models     driven.ModelStore
	runLog     driven.RunLog
	embedders  []embedder.Config
	queries    []domain.EvaluationQuery
	searchOpts domain.SearchOptions
	logRuns    bool
}

// NewEvaluationService creates an evaluation harness. The run log is
// consulted only when logRuns is set.
func NewEvaluationService(
	corpus *domain.Corpus,
	idx *index.VectorIndex,
	normaliser driven.Normaliser,
	models driven.ModelStore,
	runLog driven.RunLog,
	embedders []embedder.Config,
	queries []domain.EvaluationQuery,
	searchOpts domain.SearchOptions,
	logRuns bool,
) *EvaluationService {
	return &EvaluationService{
		corpus:     corpus,
		index:      idx,
		normaliser: normaliser,
		models:     models,
		runLog:     runLog,
		embedders:  embedders,
		queries:    queries,
		searchOpts: searchOpts,
		logRuns:    logRuns,
	}
}

// Run executes every evaluation query against every configured
// embedder variant. All-zero metrics on a query are not an error;
// only configuration, resource and consistency failures abort.
func (s *EvaluationService) Run(ctx context.Context) ([]driving.EvaluationOutcome, error) {
	logger.Section("Evaluation")
	if len(s.queries) == 0 {
		logger.Warn("No evaluation queries configured")
		return nil, nil
	}

	outcomes := make([]driving.EvaluationOutcome, 0, len(s.embedders))
	for _, cfg := range s.embedders {
		emb, err := embedder.Build(ctx, cfg, s.models)
		if err != nil {
			return nil, fmt.Errorf("build embedder %q: %w", cfg.Kind, err)
		}
		logger.Info("Evaluating embedder %s over %d queries", emb.Name(), len(s.queries))

		ranker := NewSearchService(s.corpus, s.index, emb, s.normaliser, s.searchOpts)

		reports := make([]domain.QueryReport, 0, len(s.queries))
		for _, query := range s.queries {
			topK := query.TopK
			if topK <= 0 {
				topK = s.searchOpts.TopK
			}

			start := time.Now()
			hits, err := ranker.SearchHits(ctx, query.Query, topK)
			if err != nil {
				return nil, fmt.Errorf("evaluate query %q: %w", query.Name, err)
			}
			elapsed := time.Since(start)

			report := evaluateQuery(query, hits, topK)
			report.LatencyMS = float64(elapsed) / float64(time.Millisecond)
			reports = append(reports, report)
		}

		run := domain.EvaluationRun{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Embedder:  emb.Name(),
			Metrics:   aggregateMetrics(reports, s.index.Len()),
			Queries:   reports,
		}

		outcome := driving.EvaluationOutcome{Run: run}
		if s.logRuns && s.runLog != nil {
			path, err := s.runLog.Append(ctx, &run)
			if err != nil {
				return nil, fmt.Errorf("log evaluation run: %w", err)
			}
			outcome.LogPath = path
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// evaluateQuery scores one query's hits against its expected terms.
// A hit is relevant when it satisfies at least one not-yet-satisfied
// expected term, scanned in rank order; a satisfied term cannot be
// satisfied again by a later hit.
func evaluateQuery(query domain.EvaluationQuery, hits []domain.SearchHit, topK int) domain.QueryReport {
	terms := make([]string, len(query.ExpectedTerms))
	for i, term := range query.ExpectedTerms {
		terms[i] = strings.ToLower(term)
	}

	satisfied := make([]bool, len(terms))
	relevance := make([]bool, 0, len(hits))
	firstRelevantRank := 0

	for rank, hit := range hits {
		text := strings.ToLower(hit.Chunk.Text)
		relevant := false
		for i, term := range terms {
			if !satisfied[i] && strings.Contains(text, term) {
				satisfied[i] = true
				relevant = true
			}
		}
		if relevant && firstRelevantRank == 0 {
			firstRelevantRank = rank + 1
		}
		relevance = append(relevance, relevant)
	}

	matched := 0
	for _, ok := range satisfied {
		if ok {
			matched++
		}
	}

	recall := 0.0
	if len(terms) > 0 {
		recall = float64(matched) / float64(len(terms))
	}
	mrr := 0.0
	if firstRelevantRank > 0 {
		mrr = 1.0 / float64(firstRelevantRank)
	}

	return domain.QueryReport{
		Name:     query.Name,
		TopK:     topK,
		Recall:   recall,
		MRR:      mrr,
		NDCG:     computeNDCG(relevance, matched),
		Hits:     len(hits),
		Expected: len(terms),
	}
}

// computeNDCG discounts each relevant rank r by 1/log2(r+1) and
// divides by the ideal ordering's gain for the number of satisfied
// terms. Zero satisfied terms define nDCG as zero.
func computeNDCG(relevance []bool, satisfied int) float64 {
	if satisfied == 0 {
		return 0
	}

	actual := 0.0
	for i, relevant := range relevance {
		if relevant {
			actual += 1.0 / math.Log2(float64(i)+2)
		}
	}
	ideal := 0.0
	for i := 0; i < satisfied; i++ {
		ideal += 1.0 / math.Log2(float64(i)+2)
	}
	if ideal == 0 {
		return 0
	}
	return actual / ideal
}

// aggregateMetrics averages the per-query metrics arithmetically.
func aggregateMetrics(reports []domain.QueryReport, indexSize int) domain.AggregatedMetrics {
	metrics := domain.AggregatedMetrics{IndexSize: indexSize}
	if len(reports) == 0 {
		return metrics
	}

	total := float64(len(reports))
	for _, report := range reports {
		metrics.Recall += report.Recall
		metrics.MRR += report.MRR
		metrics.NDCG += report.NDCG
		metrics.AvgLatencyMS += report.LatencyMS
	}
	metrics.Recall /= total
	metrics.MRR /= total
	metrics.NDCG /= total
	metrics.AvgLatencyMS /= total
	return metrics
}
