package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

// Ensure ChunkLog implements the interface.
var _ driven.ChunkLog = (*ChunkLog)(nil)

// ChunkLog stores chunks as line-delimited JSON, one object per
// chunk, for consumption by the embedder trainer and external
// tooling.
type ChunkLog struct {
	path string
}

// NewChunkLog creates a chunk log at path.
func NewChunkLog(path string) *ChunkLog {
	return &ChunkLog{path: path}
}

// Write replaces the log with the given chunks.
func (l *ChunkLog) Write(_ context.Context, chunks []domain.Chunk) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create chunk log directory: %w", err)
	}

	f, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("create chunk log: %w", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i := range chunks {
		if err := enc.Encode(&chunks[i]); err != nil {
			f.Close()
			return fmt.Errorf("write chunk record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush chunk log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chunk log: %w", err)
	}
	return nil
}

// Read returns every chunk in the log. Blank lines are skipped.
func (l *ChunkLog) Read(_ context.Context) ([]domain.Chunk, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open chunk log: %w", err)
	}
	defer f.Close()

	var chunks []domain.Chunk
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var chunk domain.Chunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			return nil, fmt.Errorf("parse chunk record: %w", err)
		}
		chunks = append(chunks, chunk)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read chunk log: %w", err)
	}
	return chunks, nil
}
