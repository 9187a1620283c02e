// Package memory provides in-memory implementations of driven
// storage ports, used by tests and throwaway pipelines.
package memory

import (
	"context"
	"sync"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.CorpusStore.
// Save keeps a deep copy, so later mutation of the caller's corpus
// does not leak into the stored snapshot.
type CorpusStore struct {
	mu       sync.RWMutex
	snapshot *domain.Corpus
}

// NewCorpusStore creates a new in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{}
}

// Load returns a copy of the stored snapshot, or an empty corpus
// when nothing has been saved.
func (s *CorpusStore) Load(_ context.Context) (*domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return &domain.Corpus{}, nil
	}
	return copyCorpus(s.snapshot), nil
}

// Save stores a copy of the corpus.
func (s *CorpusStore) Save(_ context.Context, corpus *domain.Corpus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = copyCorpus(corpus)
	return nil
}

func copyCorpus(src *domain.Corpus) *domain.Corpus {
	dst := &domain.Corpus{
		Documents:    append([]domain.Document(nil), src.Documents...),
		Chunks:       append([]domain.Chunk(nil), src.Chunks...),
		IndexEntries: make([]domain.IndexEntry, 0, len(src.IndexEntries)),
	}
	for _, entry := range src.IndexEntries {
		vector := make(domain.SparseVector, len(entry.Vector))
		for token, weight := range entry.Vector {
			vector[token] = weight
		}
		dst.IndexEntries = append(dst.IndexEntries, domain.IndexEntry{
			ChunkID: entry.ChunkID,
			DocID:   entry.DocID,
			Vector:  vector,
		})
	}
	return dst
}
