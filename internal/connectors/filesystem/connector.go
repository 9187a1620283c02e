package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
	"github.com/millrace-labs/skim-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector collects source files from the local filesystem. A
// directory root is walked recursively and filtered by extension; a
// file root is collected as-is, bypassing the extension filter.
type Connector struct {
	extensions map[string]struct{}
}

// New creates a filesystem connector restricted to the given file
// extensions (without the leading dot, matched case-insensitively).
func New(extensions []string) *Connector {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &Connector{extensions: allowed}
}

// Collect gathers the files under root. Paths in the result are
// absolute where the filesystem can resolve them.
func (c *Connector) Collect(ctx context.Context, root string) ([]driven.SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat source root: %w", err)
	}

	var paths []string
	if !info.IsDir() {
		paths = append(paths, root)
	} else {
		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if entry.IsDir() || !c.allowed(path) {
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk source root: %w", err)
		}
	}

	files := make([]driven.SourceFile, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read source file %s: %w", path, err)
		}
		files = append(files, driven.SourceFile{
			Path:    canonical(path),
			Content: content,
		})
	}
	logger.Debug("Collected %d files under %s", len(files), root)
	return files, nil
}

func (c *Connector) allowed(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	_, ok := c.extensions[strings.ToLower(ext)]
	return ok
}

// canonical resolves path to an absolute form, falling back to the
// original when resolution fails.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
