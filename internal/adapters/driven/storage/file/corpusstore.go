package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore persists the corpus snapshot as a single JSON file.
// Writes go through a temp file in the same directory followed by a
// rename, so a crash mid-write never leaves a torn snapshot.
type CorpusStore struct {
	path string
}

// NewCorpusStore creates a snapshot store at path.
func NewCorpusStore(path string) *CorpusStore {
	return &CorpusStore{path: path}
}

// Load reads the snapshot. A missing file yields an empty corpus.
func (s *CorpusStore) Load(_ context.Context) (*domain.Corpus, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.Corpus{}, nil
		}
		return nil, fmt.Errorf("read corpus snapshot: %w", err)
	}

	var corpus domain.Corpus
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("parse corpus snapshot: %w", err)
	}
	return &corpus, nil
}

// Save writes the snapshot atomically.
func (s *CorpusStore) Save(_ context.Context, corpus *domain.Corpus) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(corpus, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize corpus snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write snapshot temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace corpus snapshot: %w", err)
	}
	return nil
}
