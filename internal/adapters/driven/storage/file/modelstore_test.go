package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

func sampleManifest(version string) *domain.ModelManifest {
	return &domain.ModelManifest{
		Name:         "demo",
		Version:      version,
		TrainedAt:    "2026-08-29T10:30:00Z",
		ExampleCount: 1,
		TokenWeights: map[string]float64{"alpha": 0.75, "beta": 0.25},
	}
}

func TestModelStore_SaveAndLoad(t *testing.T) {
	store := NewModelStore(t.TempDir())
	ctx := context.Background()

	sample := []domain.Chunk{{ID: "c1", DocID: "d1", Text: "alpha"}}
	path, err := store.Save(ctx, sampleManifest("v1"), sample)
	require.NoError(t, err)
	assert.Equal(t, "manifest.json", filepath.Base(path))

	loaded, err := store.Load(ctx, "demo", "v1")
	require.NoError(t, err)
	assert.Equal(t, sampleManifest("v1"), loaded)

	// The training sample lands next to the manifest.
	raw, err := os.ReadFile(filepath.Join(filepath.Dir(path), "training-data.jsonl"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"alpha"`))
}

func TestModelStore_EmptyVersionSelectsLatest(t *testing.T) {
	store := NewModelStore(t.TempDir())
	ctx := context.Background()

	for _, version := range []string{"v20260101T000000", "v20260301T000000", "v20260201T000000"} {
		_, err := store.Save(ctx, sampleManifest(version), nil)
		require.NoError(t, err)
	}

	loaded, err := store.Load(ctx, "demo", "")
	require.NoError(t, err)
	assert.Equal(t, "v20260301T000000", loaded.Version)
}

func TestModelStore_NoVersions(t *testing.T) {
	store := NewModelStore(t.TempDir())

	_, err := store.Load(context.Background(), "demo", "")
	assert.ErrorIs(t, err, domain.ErrNoModelVersions)
}

func TestModelStore_UnknownVersion(t *testing.T) {
	store := NewModelStore(t.TempDir())
	ctx := context.Background()

	_, err := store.Save(ctx, sampleManifest("v1"), nil)
	require.NoError(t, err)

	_, err = store.Load(ctx, "demo", "v9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
