package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

// Ensure ModelStore implements the interface.
var _ driven.ModelStore = (*ModelStore)(nil)

// ModelStore keeps trained models under <dir>/<name>/<version>/ with
// a manifest.json and a training-data.jsonl per version.
type ModelStore struct {
	dir string
}

// NewModelStore creates a model store rooted at dir.
func NewModelStore(dir string) *ModelStore {
	return &ModelStore{dir: dir}
}

// Load reads the manifest for name at version. An empty version
// selects the lexicographically greatest version subdirectory.
func (s *ModelStore) Load(_ context.Context, name, version string) (*domain.ModelManifest, error) {
	if version == "" {
		latest, err := s.latestVersion(name)
		if err != nil {
			return nil, err
		}
		version = latest
	}

	path := filepath.Join(s.dir, name, version, "manifest.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: model %s@%s", domain.ErrNotFound, name, version)
		}
		return nil, fmt.Errorf("read model manifest: %w", err)
	}

	var manifest domain.ModelManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse model manifest: %w", err)
	}
	return &manifest, nil
}

// Save writes the manifest and the sampled training chunks for one
// model version and returns the manifest path.
func (s *ModelStore) Save(_ context.Context, manifest *domain.ModelManifest, sample []domain.Chunk) (string, error) {
	modelDir := filepath.Join(s.dir, manifest.Name, manifest.Version)
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return "", fmt.Errorf("create model directory: %w", err)
	}

	trainingPath := filepath.Join(modelDir, "training-data.jsonl")
	f, err := os.Create(trainingPath)
	if err != nil {
		return "", fmt.Errorf("create training data: %w", err)
	}
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i := range sample {
		if err := enc.Encode(&sample[i]); err != nil {
			f.Close()
			return "", fmt.Errorf("write training example: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("flush training data: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close training data: %w", err)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize model manifest: %w", err)
	}
	manifestPath := filepath.Join(modelDir, "manifest.json")
	if err := os.WriteFile(manifestPath, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write model manifest: %w", err)
	}
	return manifestPath, nil
}

// latestVersion returns the lexicographically greatest version
// subdirectory for name.
func (s *ModelStore) latestVersion(name string) (string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: model %s", domain.ErrNoModelVersions, name)
		}
		return "", fmt.Errorf("list model versions: %w", err)
	}

	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("%w: model %s", domain.ErrNoModelVersions, name)
	}
	sort.Strings(versions)
	return versions[len(versions)-1], nil
}
