// Package cli provides the cobra command tree. Commands depend only
// on the driving port interfaces; the concrete services are wired in
// initServices from the loaded config.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/millrace-labs/skim-cli/internal/adapters/driven/config/file"
	storagefile "github.com/millrace-labs/skim-cli/internal/adapters/driven/storage/file"
	"github.com/millrace-labs/skim-cli/internal/adapters/driven/storage/sqlite"
	"github.com/millrace-labs/skim-cli/internal/chunker"
	"github.com/millrace-labs/skim-cli/internal/connectors/filesystem"
	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driving"
	"github.com/millrace-labs/skim-cli/internal/core/services"
	"github.com/millrace-labs/skim-cli/internal/embedder"
	"github.com/millrace-labs/skim-cli/internal/index"
	"github.com/millrace-labs/skim-cli/internal/logger"
	"github.com/millrace-labs/skim-cli/internal/normalisers/text"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	verbose    bool
)

// Wired services and shared state. Tests replace the services
// directly and set wired to skip initServices.
var (
	cfg         configfile.Config
	corpus      *domain.Corpus
	vectorIndex *index.VectorIndex

	ingestService   driving.IngestService
	searchService   driving.SearchService
	ragService      driving.RagService
	evaluateService driving.EvaluationService
	trainService    driving.TrainService

	wired bool
)

var rootCmd = &cobra.Command{
	Use:   "skim",
	Short: "Local document retrieval engine",
	Long: `Skim ingests local text files into a chunked, sparse-vector
corpus and retrieves passages by cosine similarity, with optional
reranking, context assembly and retrieval-quality evaluation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if wired || cmd.Name() == "version" {
			return nil
		}
		return initServices(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "skim.toml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices loads the config, opens the storage backend and wires
// every service. The corpus snapshot is loaded once and shared.
func initServices(cmd *cobra.Command) error {
	loaded, err := configfile.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	store, err := openCorpusStore()
	if err != nil {
		return err
	}

	corpus, err = store.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	vectorIndex = index.FromEntries(corpus.IndexEntries)

	normaliser := text.New()
	chunkLog := storagefile.NewChunkLog(cfg.Storage.ChunksFile)
	modelStore := storagefile.NewModelStore(cfg.Models.Dir)
	runLog := storagefile.NewRunLog(cfg.Storage.RunsDir)
	artifacts := storagefile.NewArtifactSink(cfg.Storage.ArtifactDir)
	connector := filesystem.New(cfg.Ingest.Extensions)

	emb, err := embedder.Build(cmd.Context(), embedderConfig(), modelStore)
	if err != nil {
		return fmt.Errorf("build embedder: %w", err)
	}

	searchOpts := domain.SearchOptions{
		TopK:           cfg.Search.TopK,
		ScoreThreshold: cfg.Search.ScoreThreshold,
		NormalizeQuery: cfg.Embedder.NormalizeQuery,
	}

	strategies, err := cfg.RerankStrategies()
	if err != nil {
		return err
	}

	evalConfigs, err := evaluationEmbedders()
	if err != nil {
		return err
	}

	ingestService = services.NewIngestService(
		corpus, vectorIndex, store, chunkLog, connector, normaliser, emb, artifacts,
		services.IngestConfig{
			ChunkOptions:   chunkOptions(),
			SkipDuplicates: cfg.Ingest.SkipDuplicates,
		},
	)
	searchService = services.NewSearchService(corpus, vectorIndex, emb, normaliser, searchOpts)
	ragService = services.NewRagService(searchService, strategies, cfg.Rerank.ContextBudget, cfg.Rerank.PromptTemplate)
	evaluateService = services.NewEvaluationService(
		corpus, vectorIndex, normaliser, modelStore, runLog,
		evalConfigs, cfg.Evaluation.Queries, searchOpts, cfg.Evaluation.LogRuns,
	)
	trainService = services.NewTrainService(chunkLog, modelStore, cfg.Models.SampleLimit)

	wired = true
	return nil
}

func openCorpusStore() (driven.CorpusStore, error) {
	switch cfg.Storage.Backend {
	case "", "file":
		return storagefile.NewCorpusStore(cfg.Storage.StateFile), nil
	case "sqlite":
		store, err := sqlite.NewStore(cfg.Storage.SqliteFile)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: storage backend %q", domain.ErrUnsupportedType, cfg.Storage.Backend)
	}
}

func embedderConfig() embedder.Config {
	return embedder.Config{
		Kind:          embedder.Kind(cfg.Embedder.Kind),
		TFMinFreq:     cfg.Embedder.TFMinFreq,
		CustomName:    cfg.Embedder.CustomName,
		CustomVersion: cfg.Embedder.CustomVersion,
	}
}

func evaluationEmbedders() ([]embedder.Config, error) {
	configs := make([]embedder.Config, 0, len(cfg.Evaluation.EmbedderKinds))
	for _, name := range cfg.Evaluation.EmbedderKinds {
		kind, err := embedder.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("evaluation embedder %q: %w", name, err)
		}
		configs = append(configs, embedder.Config{
			Kind:          kind,
			TFMinFreq:     cfg.Embedder.TFMinFreq,
			CustomName:    cfg.Embedder.CustomName,
			CustomVersion: cfg.Embedder.CustomVersion,
		})
	}
	return configs, nil
}

func chunkOptions() []chunker.Option {
	return []chunker.Option{
		chunker.WithMaxTokens(cfg.Chunk.MaxTokens),
		chunker.WithOverlap(cfg.Chunk.Overlap),
		chunker.WithSeparators(cfg.Chunk.Separators),
		chunker.WithSplitOnSeparator(cfg.Chunk.SplitOnSeparator),
		chunker.WithDedupe(cfg.Chunk.DedupeSegments),
	}
}
