package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/millrace-labs/skim-cli/internal/chunker"
	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driving"
	"github.com/millrace-labs/skim-cli/internal/embedder"
	"github.com/millrace-labs/skim-cli/internal/index"
	"github.com/millrace-labs/skim-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestConfig carries the ingest-time knobs that are not ports.
type IngestConfig struct {
	// ChunkOptions parameterise the chunker built for each pass.
	ChunkOptions []chunker.Option

	// SkipDuplicates skips files whose normalised content hash is
	// already in the corpus.
	SkipDuplicates bool
}

// IngestService runs the write path: collect files, normalise,
// chunk, embed, index, persist.
type IngestService struct {
	corpus     *domain.Corpus
	index      *index.VectorIndex
	store      driven.CorpusStore
	chunkLog   driven.ChunkLog
	connector  driven.Connector
	normaliser driven.Normaliser
	embedder   embedder.Embedder
	artifacts  driven.ArtifactSink
	cfg        IngestConfig
}

// NewIngestService creates an ingest service over a loaded corpus
// and its index. The artifact sink is optional (may be nil).
func NewIngestService(
	corpus *domain.Corpus,
	idx *index.VectorIndex,
	store driven.CorpusStore,
	chunkLog driven.ChunkLog,
	connector driven.Connector,
	normaliser driven.Normaliser,
	emb embedder.Embedder,
	artifacts driven.ArtifactSink,
	cfg IngestConfig,
) *IngestService {
	return &IngestService{
		corpus:     corpus,
		index:      idx,
		store:      store,
		chunkLog:   chunkLog,
		connector:  connector,
		normaliser: normaliser,
		embedder:   emb,
		artifacts:  artifacts,
		cfg:        cfg,
	}
}

// Ingest discovers files under root, turns them into chunks and
// index entries, and persists the updated corpus snapshot and chunk
// log. Documents and chunks are append-only: nothing already in the
// corpus is mutated.
func (s *IngestService) Ingest(
	ctx context.Context, root string, strategy domain.ChunkStrategy, opts driving.IngestOptions,
) (*driving.IngestSummary, error) {
	logger.Section("Ingest")
	logger.Debug("Root: %s, strategy: %s", root, strategy)

	files, err := s.connector.Collect(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("collect sources: %w", err)
	}
	logger.Debug("Collected %d source files", len(files))

	summary := &driving.IngestSummary{}
	if len(files) == 0 {
		summary.Documents = len(s.corpus.Documents)
		summary.Chunks = len(s.corpus.Chunks)
		return summary, nil
	}

	split := chunker.New(strategy, s.normaliser, s.cfg.ChunkOptions...)

	var normalisedDocs []driven.NormalisedDocument
	var wordCounts map[string]int
	if opts.EmitWordTally {
		wordCounts = make(map[string]int)
	}

	for _, file := range files {
		normalised := s.normaliser.Normalise(string(file.Content))

		if opts.EmitNormalized {
			normalisedDocs = append(normalisedDocs, driven.NormalisedDocument{
				Path: file.Path,
				Text: normalised,
			})
		}
		if wordCounts != nil {
			for _, token := range embedder.Tokenize(normalised) {
				wordCounts[token]++
			}
		}

		hash := hashText(normalised)
		if s.cfg.SkipDuplicates && s.corpus.HasDocument(hash) {
			logger.Info("Skipping already ingested %s", file.Path)
			summary.Skipped++
			continue
		}

		docID := uuid.New().String()
		chunks := split.Chunk(docID, normalised)
		if len(chunks) == 0 {
			logger.Warn("No chunks produced for %s", file.Path)
			continue
		}

		for _, chunk := range chunks {
			vector := s.embedder.Embed(chunk.Text)
			s.index.AddChunk(chunk.ID, docID, vector)
			s.corpus.Chunks = append(s.corpus.Chunks, chunk)
		}

		s.corpus.Documents = append(s.corpus.Documents, domain.Document{
			ID:         docID,
			Path:       file.Path,
			Hash:       hash,
			TokenCount: s.embedder.TokenCount(normalised),
		})
		logger.Debug("Document %s → %d chunks", file.Path, len(chunks))
	}

	s.corpus.IndexEntries = s.index.Entries()

	if err := s.chunkLog.Write(ctx, s.corpus.Chunks); err != nil {
		return nil, fmt.Errorf("write chunk log: %w", err)
	}
	if err := s.store.Save(ctx, s.corpus); err != nil {
		return nil, fmt.Errorf("save corpus: %w", err)
	}

	if err := s.writeArtifacts(ctx, opts, normalisedDocs, wordCounts); err != nil {
		return nil, err
	}

	summary.Documents = len(s.corpus.Documents)
	summary.Chunks = len(s.corpus.Chunks)
	logger.Info("Corpus now holds %d documents, %d chunks", summary.Documents, summary.Chunks)
	return summary, nil
}

func (s *IngestService) writeArtifacts(
	ctx context.Context,
	opts driving.IngestOptions,
	normalisedDocs []driven.NormalisedDocument,
	wordCounts map[string]int,
) error {
	if s.artifacts == nil || (!opts.EmitNormalized && !opts.EmitWordTally) {
		return nil
	}

	if opts.EmitNormalized {
		path, err := s.artifacts.WriteNormalised(ctx, normalisedDocs)
		if err != nil {
			return fmt.Errorf("write normalised artifact: %w", err)
		}
		logger.Info("Wrote normalised text to %s", path)
	}
	if opts.EmitWordTally {
		path, err := s.artifacts.WriteWordTally(ctx, wordCounts)
		if err != nil {
			return fmt.Errorf("write word tally artifact: %w", err)
		}
		logger.Info("Wrote word tally to %s", path)
	}
	return nil
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
