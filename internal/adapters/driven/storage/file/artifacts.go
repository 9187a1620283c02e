package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

// Ensure ArtifactSink implements the interface.
var _ driven.ArtifactSink = (*ArtifactSink)(nil)

// ArtifactSink writes ingest diagnostics into a directory:
// normalized.txt with one section per source file and word_tally.csv
// sorted by descending count, ties alphabetical.
type ArtifactSink struct {
	dir string
}

// NewArtifactSink creates an artifact sink rooted at dir.
func NewArtifactSink(dir string) *ArtifactSink {
	return &ArtifactSink{dir: dir}
}

// WriteNormalised writes the normalised text of every ingested file.
func (s *ArtifactSink) WriteNormalised(_ context.Context, docs []driven.NormalisedDocument) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact directory: %w", err)
	}

	path := filepath.Join(s.dir, "normalized.txt")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create normalised artifact: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, doc := range docs {
		fmt.Fprintf(w, "### %s\n\n", doc.Path)
		fmt.Fprintf(w, "%s\n\n", doc.Text)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("write normalised artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close normalised artifact: %w", err)
	}
	return path, nil
}

// WriteWordTally writes the word-count CSV.
func (s *ArtifactSink) WriteWordTally(_ context.Context, counts map[string]int) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact directory: %w", err)
	}

	type entry struct {
		word  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for word, count := range counts {
		entries = append(entries, entry{word, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].word < entries[j].word
	})

	path := filepath.Join(s.dir, "word_tally.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create word tally: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "word,count")
	for _, e := range entries {
		fmt.Fprintf(w, "%s,%d\n", e.word, e.count)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("write word tally: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close word tally: %w", err)
	}
	return path, nil
}
