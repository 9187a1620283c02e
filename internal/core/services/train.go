package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driving"
	"github.com/millrace-labs/skim-cli/internal/embedder"
	"github.com/millrace-labs/skim-cli/internal/logger"
)

// Ensure TrainService implements the interface.
var _ driving.TrainService = (*TrainService)(nil)

// TrainService builds custom embedder token-weight tables from the
// chunk log: each token's weight is its share of the total token
// count across all chunks.
type TrainService struct {
	chunkLog    driven.ChunkLog
	models      driven.ModelStore
	sampleLimit int
}

// NewTrainService creates a training service. sampleLimit caps how
// many chunks are copied into the model's training-data sample.
func NewTrainService(chunkLog driven.ChunkLog, models driven.ModelStore, sampleLimit int) *TrainService {
	return &TrainService{
		chunkLog:    chunkLog,
		models:      models,
		sampleLimit: sampleLimit,
	}
}

// Train reads the chunk source, computes corpus-frequency token
// weights and persists them as a new model version. An empty name is
// a configuration error; an empty chunk source is a resource error.
func (s *TrainService) Train(ctx context.Context, name, version string, opts driving.TrainOptions) (*driving.TrainOutcome, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: model name must be provided", domain.ErrInvalidInput)
	}

	source := driving.ChunkSource(s.chunkLog)
	if opts.Chunks != nil {
		source = opts.Chunks
	}
	chunks, err := source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read chunk log: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks available for training", domain.ErrNotFound)
	}
	logger.Debug("Training %q on %d chunks", name, len(chunks))

	counts := make(map[string]int)
	total := 0
	for _, chunk := range chunks {
		for _, token := range embedder.Tokenize(chunk.Text) {
			counts[token]++
			total++
		}
	}

	weights := make(map[string]float64, len(counts))
	if total > 0 {
		for token, count := range counts {
			weights[token] = float64(count) / float64(total)
		}
	}

	if version == "" {
		version = "v" + time.Now().UTC().Format("20060102T150405")
	}

	sample := chunks
	if s.sampleLimit > 0 && len(sample) > s.sampleLimit {
		sample = sample[:s.sampleLimit]
	}

	manifest := domain.ModelManifest{
		Name:         name,
		Version:      version,
		TrainedAt:    time.Now().UTC().Format(time.RFC3339),
		ExampleCount: len(sample),
		TokenWeights: weights,
	}

	path, err := s.models.Save(ctx, &manifest, sample)
	if err != nil {
		return nil, fmt.Errorf("save model %q: %w", name, err)
	}
	logger.Info("Trained model %s@%s (%d tokens)", name, version, len(weights))

	return &driving.TrainOutcome{
		Manifest:     manifest,
		ManifestPath: path,
	}, nil
}
