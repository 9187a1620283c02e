package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

// Ensure RunLog implements the interface.
var _ driven.RunLog = (*RunLog)(nil)

// RunLog writes evaluation runs under a date-partitioned directory:
// <dir>/<YYYY-MM-DD>/run-<YYYYMMDDTHHMMSSZ>-<embedder>.json. Slashes
// in embedder names are replaced so the name stays a single path
// element.
type RunLog struct {
	dir string
}

// NewRunLog creates a run log rooted at dir.
func NewRunLog(dir string) *RunLog {
	return &RunLog{dir: dir}
}

// Append writes one run record and returns its path.
func (l *RunLog) Append(_ context.Context, run *domain.EvaluationRun) (string, error) {
	stamp, err := time.Parse(time.RFC3339, run.Timestamp)
	if err != nil {
		stamp = time.Now().UTC()
	}
	stamp = stamp.UTC()

	dateDir := filepath.Join(l.dir, stamp.Format("2006-01-02"))
	if err := os.MkdirAll(dateDir, 0o755); err != nil {
		return "", fmt.Errorf("create run directory: %w", err)
	}

	name := fmt.Sprintf("run-%s-%s.json", stamp.Format("20060102T150405Z"), run.Embedder)
	path := filepath.Join(dateDir, strings.ReplaceAll(name, "/", "-"))

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize evaluation run: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write evaluation run: %w", err)
	}
	return path, nil
}
