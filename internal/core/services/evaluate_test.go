package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/embedder"
	"github.com/millrace-labs/skim-cli/internal/normalisers/text"
)

func evalHits(texts ...string) []domain.SearchHit {
	hits := make([]domain.SearchHit, 0, len(texts))
	for i, t := range texts {
		hits = append(hits, hitWithText(t, 1.0-float64(i)*0.1))
	}
	return hits
}

func TestEvaluateQuery_PerfectRetrieval(t *testing.T) {
	query := domain.EvaluationQuery{
		Name:          "single-term",
		Query:         "alpha",
		ExpectedTerms: []string{"alpha"},
	}

	report := evaluateQuery(query, evalHits("the alpha entry"), 5)

	assert.Equal(t, 1.0, report.Recall)
	assert.Equal(t, 1.0, report.MRR)
	assert.Equal(t, 1.0, report.NDCG)
	assert.Equal(t, 1, report.Hits)
	assert.Equal(t, 1, report.Expected)
}

func TestEvaluateQuery_TermMatchingIsCaseInsensitive(t *testing.T) {
	query := domain.EvaluationQuery{
		Name:          "case",
		Query:         "alpha",
		ExpectedTerms: []string{"ALPHA"},
	}

	report := evaluateQuery(query, evalHits("an Alpha entry"), 5)

	assert.Equal(t, 1.0, report.Recall)
}

func TestEvaluateQuery_SatisfiedTermNotCountedTwice(t *testing.T) {
	query := domain.EvaluationQuery{
		Name:          "repeat",
		Query:         "alpha beta",
		ExpectedTerms: []string{"alpha", "beta"},
	}

	// The second hit repeats a satisfied term and is not relevant.
	report := evaluateQuery(query, evalHits("alpha one", "alpha two", "beta three"), 5)

	assert.Equal(t, 1.0, report.Recall)
	assert.Equal(t, 1.0, report.MRR)
	// Relevant at ranks 1 and 3; ideal places both at ranks 1 and 2.
	actual := 1.0 + 1.0/math.Log2(4)
	ideal := 1.0 + 1.0/math.Log2(3)
	assert.InDelta(t, actual/ideal, report.NDCG, 1e-9)
}

func TestEvaluateQuery_NoExpectedTerms(t *testing.T) {
	query := domain.EvaluationQuery{Name: "empty", Query: "alpha"}

	report := evaluateQuery(query, evalHits("alpha"), 5)

	assert.Zero(t, report.Recall)
	assert.Zero(t, report.MRR)
	assert.Zero(t, report.NDCG)
}

func TestEvaluateQuery_NoRelevantHits(t *testing.T) {
	query := domain.EvaluationQuery{
		Name:          "miss",
		Query:         "alpha",
		ExpectedTerms: []string{"zeta"},
	}

	report := evaluateQuery(query, evalHits("alpha", "beta"), 5)

	assert.Zero(t, report.Recall)
	assert.Zero(t, report.MRR)
	assert.Zero(t, report.NDCG)
}

func TestAggregateMetrics(t *testing.T) {
	reports := []domain.QueryReport{
		{Recall: 1.0, MRR: 1.0, NDCG: 1.0, LatencyMS: 2.0},
		{Recall: 0.5, MRR: 0.0, NDCG: 0.5, LatencyMS: 4.0},
	}

	metrics := aggregateMetrics(reports, 42)

	assert.InDelta(t, 0.75, metrics.Recall, 1e-9)
	assert.InDelta(t, 0.5, metrics.MRR, 1e-9)
	assert.InDelta(t, 0.75, metrics.NDCG, 1e-9)
	assert.InDelta(t, 3.0, metrics.AvgLatencyMS, 1e-9)
	assert.Equal(t, 42, metrics.IndexSize)
}

func TestAggregateMetrics_NoReports(t *testing.T) {
	metrics := aggregateMetrics(nil, 7)

	assert.Zero(t, metrics.Recall)
	assert.Equal(t, 7, metrics.IndexSize)
}

func TestEvaluationService_Run(t *testing.T) {
	corpus, idx := buildFixture("alpha beta", "gamma delta")
	runLog := &mockRunLog{path: "data/runs/2026-08-29/run-x-tf.json"}

	svc := NewEvaluationService(
		corpus, idx, text.New(), nil, runLog,
		[]embedder.Config{{Kind: embedder.KindTF, TFMinFreq: 1}},
		[]domain.EvaluationQuery{
			{Name: "hit", Query: "alpha", ExpectedTerms: []string{"alpha"}},
			{Name: "miss", Query: "omega", ExpectedTerms: []string{"omega"}},
		},
		domain.SearchOptions{TopK: 5},
		true,
	)

	outcomes, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	run := outcomes[0].Run
	assert.Equal(t, "tf", run.Embedder)
	require.Len(t, run.Queries, 2)
	assert.Equal(t, 1.0, run.Queries[0].Recall)
	assert.Zero(t, run.Queries[1].Recall)
	assert.InDelta(t, 0.5, run.Metrics.Recall, 1e-9)
	assert.Equal(t, idx.Len(), run.Metrics.IndexSize)
	assert.NotEmpty(t, run.Timestamp)

	assert.Equal(t, runLog.path, outcomes[0].LogPath)
	require.Len(t, runLog.runs, 1)
}

func TestEvaluationService_RunWithoutLogging(t *testing.T) {
	corpus, idx := buildFixture("alpha")
	runLog := &mockRunLog{path: "unused"}

	svc := NewEvaluationService(
		corpus, idx, text.New(), nil, runLog,
		[]embedder.Config{{Kind: embedder.KindTF, TFMinFreq: 1}},
		[]domain.EvaluationQuery{{Name: "q", Query: "alpha", ExpectedTerms: []string{"alpha"}}},
		domain.SearchOptions{TopK: 5},
		false,
	)

	outcomes, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Empty(t, outcomes[0].LogPath)
	assert.Empty(t, runLog.runs)
}

func TestEvaluationService_NoQueries(t *testing.T) {
	corpus, idx := buildFixture("alpha")
	svc := NewEvaluationService(
		corpus, idx, text.New(), nil, nil,
		[]embedder.Config{{Kind: embedder.KindTF}},
		nil,
		domain.SearchOptions{TopK: 5},
		false,
	)

	outcomes, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestEvaluationService_QueryTopKOverride(t *testing.T) {
	corpus, idx := buildFixture("alpha one", "alpha two", "alpha three")
	svc := NewEvaluationService(
		corpus, idx, text.New(), nil, nil,
		[]embedder.Config{{Kind: embedder.KindTF, TFMinFreq: 1}},
		[]domain.EvaluationQuery{{Name: "narrow", Query: "alpha", ExpectedTerms: []string{"alpha"}, TopK: 1}},
		domain.SearchOptions{TopK: 5},
		false,
	)

	outcomes, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.Len(t, outcomes[0].Run.Queries, 1)
	assert.Equal(t, 1, outcomes[0].Run.Queries[0].Hits)
	assert.Equal(t, 1, outcomes[0].Run.Queries[0].TopK)
}
