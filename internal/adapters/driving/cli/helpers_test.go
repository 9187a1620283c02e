package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	storagefile "github.com/millrace-labs/skim-cli/internal/adapters/driven/storage/file"
	"github.com/millrace-labs/skim-cli/internal/adapters/driven/storage/memory"
	"github.com/millrace-labs/skim-cli/internal/connectors/filesystem"
	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/services"
	"github.com/millrace-labs/skim-cli/internal/embedder"
	"github.com/millrace-labs/skim-cli/internal/index"
	"github.com/millrace-labs/skim-cli/internal/normalisers/text"
)

// setupTestServices wires every command against an in-memory corpus
// seeded with a few chunks, plus temp-dir file stores for the chunk
// log and models. The returned cleanup unwires everything.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	normaliser := text.New()
	emb := embedder.NewTF(1)
	corpus = &domain.Corpus{}
	vectorIndex = index.New()

	seed := []string{
		"the kernel schedules processes",
		"alpha beta gamma",
		"filesystems store inodes",
	}
	docID := uuid.New().String()
	for _, textChunk := range seed {
		chunk := domain.Chunk{
			ID:       uuid.New().String(),
			DocID:    docID,
			Text:     textChunk,
			End:      len(textChunk),
			Strategy: domain.StrategyStructured,
		}
		corpus.Chunks = append(corpus.Chunks, chunk)
		vectorIndex.AddChunk(chunk.ID, docID, emb.Embed(chunk.Text))
	}
	corpus.Documents = []domain.Document{
		{ID: docID, Path: "/docs/seed.txt", Hash: "seedhash", TokenCount: 10},
	}
	corpus.IndexEntries = vectorIndex.Entries()

	dir := t.TempDir()
	store := memory.NewCorpusStore()
	chunkLog := storagefile.NewChunkLog(filepath.Join(dir, "chunks.jsonl"))
	modelStore := storagefile.NewModelStore(filepath.Join(dir, "models"))
	runLog := storagefile.NewRunLog(filepath.Join(dir, "runs"))
	artifacts := storagefile.NewArtifactSink(dir)
	connector := filesystem.New([]string{"txt", "md"})

	searchOpts := domain.SearchOptions{TopK: 5, NormalizeQuery: true}

	ingestService = services.NewIngestService(
		corpus, vectorIndex, store, chunkLog, connector, normaliser, emb, artifacts,
		services.IngestConfig{SkipDuplicates: true},
	)
	searchService = services.NewSearchService(corpus, vectorIndex, emb, normaliser, searchOpts)
	ragService = services.NewRagService(
		searchService,
		[]domain.RerankStrategy{{Name: "baseline", Mode: domain.RerankNone}},
		256,
		"Q: {query}\nC: {context}",
	)
	evaluateService = services.NewEvaluationService(
		corpus, vectorIndex, normaliser, modelStore, runLog,
		[]embedder.Config{{Kind: embedder.KindTF, TFMinFreq: 1}},
		[]domain.EvaluationQuery{
			{Name: "kernel", Query: "kernel", ExpectedTerms: []string{"kernel"}},
		},
		searchOpts,
		false,
	)
	trainService = services.NewTrainService(chunkLog, modelStore, 100)
	wired = true

	return func() {
		corpus = nil
		vectorIndex = nil
		ingestService = nil
		searchService = nil
		ragService = nil
		evaluateService = nil
		trainService = nil
		wired = false
	}
}

// execute runs the root command with args and captures its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
