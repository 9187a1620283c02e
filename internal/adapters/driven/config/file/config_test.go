package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, []string{"txt", "md"}, cfg.Ingest.Extensions)
	assert.Equal(t, 200, cfg.Chunk.MaxTokens)
	assert.Equal(t, 32, cfg.Chunk.Overlap)
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.Equal(t, 1024, cfg.Rerank.ContextBudget)
	assert.True(t, cfg.Ingest.SkipDuplicates)
	assert.True(t, cfg.Embedder.NormalizeQuery)
	assert.Equal(t, "data", cfg.Storage.ArtifactDir)
}

func TestLoad_ArtifactDirOverride(t *testing.T) {
	path := writeConfig(t, `
[storage]
artifact_dir = "out/artifacts"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out/artifacts", cfg.Storage.ArtifactDir)
	assert.Equal(t, "data/state.json", cfg.Storage.StateFile)
}

func TestLoad_OverridesLayerOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[chunk]
max_tokens = 64

[search]
top_k = 10
score_threshold = 0.25

[embedder]
kind = "bow"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Chunk.MaxTokens)
	assert.Equal(t, 10, cfg.Search.TopK)
	assert.Equal(t, 0.25, cfg.Search.ScoreThreshold)
	assert.Equal(t, "bow", cfg.Embedder.Kind)

	// Untouched sections keep their defaults.
	assert.Equal(t, 32, cfg.Chunk.Overlap)
	assert.Equal(t, "data/state.json", cfg.Storage.StateFile)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "[chunk\nmax_tokens = ")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RerankStrategies(t *testing.T) {
	path := writeConfig(t, `
[[rerank.strategies]]
name = "boosted"
mode = "term_overlap"
boost_terms = ["kernel", "driver"]
boost_factor = 0.5

[[rerank.strategies]]
name = "blend"
mode = "hybrid"
hybrid_weight = 0.3
threshold = 0.2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	strategies, err := cfg.RerankStrategies()
	require.NoError(t, err)
	require.Len(t, strategies, 2)

	assert.Equal(t, domain.RerankTermOverlap, strategies[0].Mode)
	assert.Equal(t, []string{"kernel", "driver"}, strategies[0].BoostTerms)
	assert.Equal(t, domain.RerankHybrid, strategies[1].Mode)
	assert.Equal(t, 0.2, strategies[1].Threshold)
}

func TestRerankStrategies_UnknownMode(t *testing.T) {
	cfg := Default()
	cfg.Rerank.Strategies = []RerankStrategyConfig{{Name: "bad", Mode: "inverted"}}

	_, err := cfg.RerankStrategies()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_EvaluationQueries(t *testing.T) {
	path := writeConfig(t, `
[evaluation]
embedder_kinds = ["tf"]
log_runs = false

[[evaluation.queries]]
name = "kernel-basics"
query = "what is a kernel"
expected_terms = ["kernel"]
top_k = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"tf"}, cfg.Evaluation.EmbedderKinds)
	assert.False(t, cfg.Evaluation.LogRuns)
	require.Len(t, cfg.Evaluation.Queries, 1)
	assert.Equal(t, "kernel-basics", cfg.Evaluation.Queries[0].Name)
	assert.Equal(t, []string{"kernel"}, cfg.Evaluation.Queries[0].ExpectedTerms)
	assert.Equal(t, 3, cfg.Evaluation.Queries[0].TopK)
}
