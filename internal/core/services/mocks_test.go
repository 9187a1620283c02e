package services

import (
	"context"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

// --- Mock implementations of driven ports ---

// mockCorpusStore implements driven.CorpusStore.
type mockCorpusStore struct {
	saved   *domain.Corpus
	saveErr error
}

func (m *mockCorpusStore) Load(_ context.Context) (*domain.Corpus, error) {
	return &domain.Corpus{}, nil
}

func (m *mockCorpusStore) Save(_ context.Context, corpus *domain.Corpus) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	snapshot := *corpus
	m.saved = &snapshot
	return nil
}

// mockChunkLog implements driven.ChunkLog.
type mockChunkLog struct {
	chunks   []domain.Chunk
	readErr  error
	writeErr error
}

func (m *mockChunkLog) Write(_ context.Context, chunks []domain.Chunk) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.chunks = append([]domain.Chunk(nil), chunks...)
	return nil
}

func (m *mockChunkLog) Read(_ context.Context) ([]domain.Chunk, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.chunks, nil
}

// mockConnector implements driven.Connector.
type mockConnector struct {
	files      []driven.SourceFile
	collectErr error
}

func (m *mockConnector) Collect(_ context.Context, _ string) ([]driven.SourceFile, error) {
	if m.collectErr != nil {
		return nil, m.collectErr
	}
	return m.files, nil
}

// mockModelStore implements driven.ModelStore.
type mockModelStore struct {
	manifest *domain.ModelManifest
	loadErr  error
	saved    *domain.ModelManifest
	sample   []domain.Chunk
	savePath string
	saveErr  error
}

func (m *mockModelStore) Load(_ context.Context, _, _ string) (*domain.ModelManifest, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.manifest, nil
}

func (m *mockModelStore) Save(_ context.Context, manifest *domain.ModelManifest, sample []domain.Chunk) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.saved = manifest
	m.sample = sample
	return m.savePath, nil
}

// mockRunLog implements driven.RunLog.
type mockRunLog struct {
	runs      []domain.EvaluationRun
	path      string
	appendErr error
}

func (m *mockRunLog) Append(_ context.Context, run *domain.EvaluationRun) (string, error) {
	if m.appendErr != nil {
		return "", m.appendErr
	}
	m.runs = append(m.runs, *run)
	return m.path, nil
}

// mockArtifactSink implements driven.ArtifactSink.
type mockArtifactSink struct {
	normalised []driven.NormalisedDocument
	tally      map[string]int
}

func (m *mockArtifactSink) WriteNormalised(_ context.Context, docs []driven.NormalisedDocument) (string, error) {
	m.normalised = docs
	return "normalized.txt", nil
}

func (m *mockArtifactSink) WriteWordTally(_ context.Context, counts map[string]int) (string, error) {
	m.tally = counts
	return "word_tally.csv", nil
}
