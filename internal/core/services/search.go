package services

import (
	"context"
	"fmt"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driving"
	"github.com/millrace-labs/skim-cli/internal/embedder"
	"github.com/millrace-labs/skim-cli/internal/index"
	"github.com/millrace-labs/skim-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService assembles search hits: it embeds the query, ranks
// index entries by cosine similarity, applies the score threshold
// and joins matches back to their chunk and document records.
type SearchService struct {
	corpus     *domain.Corpus
	index      *index.VectorIndex
	embedder   embedder.Embedder
	normaliser driven.Normaliser
	opts       domain.SearchOptions
}

// NewSearchService creates a search service over a loaded corpus and
// its index.
func NewSearchService(
	corpus *domain.Corpus,
	idx *index.VectorIndex,
	emb embedder.Embedder,
	normaliser driven.Normaliser,
	opts domain.SearchOptions,
) *SearchService {
	return &SearchService{
		corpus:     corpus,
		index:      idx,
		embedder:   emb,
		normaliser: normaliser,
		opts:       opts,
	}
}

// SearchHits returns ranked hits for the query. A topK of zero or
// less falls back to the configured default. A match that cannot be
// resolved to a chunk and document is a consistency error: the index
// and corpus are out of sync and the command must fail.
func (s *SearchService) SearchHits(_ context.Context, query string, topK int) ([]domain.SearchHit, error) {
	logger.Section("Search")
	logger.Debug("Query: %q", query)

	if topK <= 0 {
		topK = s.opts.TopK
	}

	queryText := query
	if s.opts.NormalizeQuery {
		queryText = s.normaliser.Normalise(query)
		logger.Debug("Normalised query: %q", queryText)
	}

	queryVector := s.embedder.Embed(queryText)
	logger.Debug("Query vector: %d terms (embedder %s)", len(queryVector), s.embedder.Name())

	matches := s.index.Search(queryVector, topK)
	logger.Debug("Index matches: %d (top-k %d)", len(matches), topK)

	entries := s.index.Entries()
	hits := make([]domain.SearchHit, 0, len(matches))
	for _, match := range matches {
		if match.Score < s.opts.ScoreThreshold {
			continue
		}
		if match.Entry < 0 || match.Entry >= len(entries) {
			return nil, fmt.Errorf("%w: entry %d of %d", domain.ErrEntryOutOfRange, match.Entry, len(entries))
		}
		entry := entries[match.Entry]

		chunk, ok := s.corpus.FindChunk(entry.ChunkID)
		if !ok {
			return nil, fmt.Errorf("%w: chunk %s", domain.ErrDanglingChunk, entry.ChunkID)
		}
		document, ok := s.corpus.FindDocument(entry.DocID)
		if !ok {
			return nil, fmt.Errorf("%w: document %s", domain.ErrDanglingDocument, entry.DocID)
		}

		hits = append(hits, domain.SearchHit{
			Chunk:    *chunk,
			Document: *document,
			Score:    match.Score,
		})
	}

	logger.Info("Hits after threshold %.3f: %d", s.opts.ScoreThreshold, len(hits))
	return hits, nil
}
