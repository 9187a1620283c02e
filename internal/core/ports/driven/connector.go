package driven

import "context"

// SourceFile is one readable file discovered by a connector.
type SourceFile struct {
	// Path is the resolved location of the file.
	Path string

	// Content is the raw file content.
	Content []byte
}

// Connector discovers and reads source files for ingestion.
// The filesystem connector walks a directory tree and filters by
// file extension.
type Connector interface {
	// Collect returns the readable files under root. A root that is
	// itself a file yields exactly that file.
	Collect(ctx context.Context, root string) ([]SourceFile, error)
}
