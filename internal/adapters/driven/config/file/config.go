package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

// Config is the full pipeline configuration.
type Config struct {
	Ingest     IngestConfig     `toml:"ingest"`
	Chunk      ChunkConfig      `toml:"chunk"`
	Embedder   EmbedderConfig   `toml:"embedder"`
	Search     SearchConfig     `toml:"search"`
	Storage    StorageConfig    `toml:"storage"`
	Rerank     RerankConfig     `toml:"rerank"`
	Evaluation EvaluationConfig `toml:"evaluation"`
	Models     ModelsConfig     `toml:"models"`
}

// IngestConfig controls source collection.
type IngestConfig struct {
	// Extensions lists allowed file extensions without the dot.
	Extensions     []string `toml:"extensions"`
	SkipDuplicates bool     `toml:"skip_duplicates"`
}

// ChunkConfig parameterises both chunking strategies.
type ChunkConfig struct {
	MaxTokens        int      `toml:"max_tokens"`
	Overlap          int      `toml:"overlap"`
	SplitOnSeparator bool     `toml:"split_on_separator"`
	DedupeSegments   bool     `toml:"dedupe_segments"`
	Separators       []string `toml:"separators"`
}

// EmbedderConfig selects and parameterises the embedder.
type EmbedderConfig struct {
	// Kind is one of tf, bow or custom.
	Kind           string `toml:"kind"`
	TFMinFreq      int    `toml:"tf_min_freq"`
	CustomName     string `toml:"custom_name"`
	CustomVersion  string `toml:"custom_version"`
	NormalizeQuery bool   `toml:"normalize_query"`
}

// SearchConfig controls the retrieval stage.
type SearchConfig struct {
	TopK           int     `toml:"top_k"`
	ScoreThreshold float64 `toml:"score_threshold"`
}

// StorageConfig names the persistence locations.
type StorageConfig struct {
	// Backend is "file" or "sqlite".
	Backend     string `toml:"backend"`
	StateFile   string `toml:"state_file"`
	ChunksFile  string `toml:"chunks_file"`
	SqliteFile  string `toml:"sqlite_file"`
	RunsDir     string `toml:"runs_dir"`
	ArtifactDir string `toml:"artifact_dir"`
}

// RerankStrategyConfig is one named reranking strategy.
type RerankStrategyConfig struct {
	Name         string   `toml:"name"`
	Mode         string   `toml:"mode"`
	BoostTerms   []string `toml:"boost_terms"`
	BoostFactor  float64  `toml:"boost_factor"`
	HybridWeight float64  `toml:"hybrid_weight"`
	Threshold    float64  `toml:"threshold"`
}

// RerankConfig controls the rerank/context stage.
type RerankConfig struct {
	ContextBudget  int                    `toml:"context_budget"`
	PromptTemplate string                 `toml:"prompt_template"`
	Strategies     []RerankStrategyConfig `toml:"strategies"`
}

// EvaluationConfig controls the evaluation harness.
type EvaluationConfig struct {
	// EmbedderKinds lists the embedder variants to evaluate.
	EmbedderKinds []string                 `toml:"embedder_kinds"`
	LogRuns       bool                     `toml:"log_runs"`
	Queries       []domain.EvaluationQuery `toml:"queries"`
}

// ModelsConfig controls custom model training and resolution.
type ModelsConfig struct {
	Dir         string `toml:"dir"`
	SampleLimit int    `toml:"sample_limit"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Ingest: IngestConfig{
			Extensions:     []string{"txt", "md"},
			SkipDuplicates: true,
		},
		Chunk: ChunkConfig{
			MaxTokens:        200,
			Overlap:          32,
			SplitOnSeparator: true,
			DedupeSegments:   true,
			Separators:       []string{"\n\n", "\r\n\r\n", "\n-\n", "\n*\n"},
		},
		Embedder: EmbedderConfig{
			Kind:           "tf",
			TFMinFreq:      1,
			NormalizeQuery: true,
		},
		Search: SearchConfig{
			TopK:           5,
			ScoreThreshold: 0,
		},
		Storage: StorageConfig{
			Backend:     "file",
			StateFile:   "data/state.json",
			ChunksFile:  "data/chunks.jsonl",
			SqliteFile:  "data/state.db",
			RunsDir:     "data/runs",
			ArtifactDir: "data",
		},
		Rerank: RerankConfig{
			ContextBudget: 1024,
			PromptTemplate: "Answer the question using only the provided context.\n\n" +
				"Context:\n{context}\n\nQuestion: {query}\nAnswer:",
			Strategies: []RerankStrategyConfig{
				{Name: "baseline", Mode: "none"},
			},
		},
		Evaluation: EvaluationConfig{
			EmbedderKinds: []string{"tf", "bow"},
			LogRuns:       true,
		},
		Models: ModelsConfig{
			Dir:         "models",
			SampleLimit: 1000,
		},
	}
}

// Load reads path into a Config layered over the defaults. A missing
// file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// RerankStrategies converts the configured strategies into domain
// values, validating the mode names.
func (c Config) RerankStrategies() ([]domain.RerankStrategy, error) {
	strategies := make([]domain.RerankStrategy, 0, len(c.Rerank.Strategies))
	for _, sc := range c.Rerank.Strategies {
		mode, err := domain.ParseRerankMode(sc.Mode)
		if err != nil {
			return nil, fmt.Errorf("strategy %q: %w", sc.Name, err)
		}
		strategies = append(strategies, domain.RerankStrategy{
			Name:         sc.Name,
			Mode:         mode,
			BoostTerms:   sc.BoostTerms,
			BoostFactor:  sc.BoostFactor,
			HybridWeight: sc.HybridWeight,
			Threshold:    sc.Threshold,
		})
	}
	return strategies, nil
}
