package driven

import "context"

// NormalisedDocument pairs a source path with its normalised text,
// for diagnostic artifact emission during ingest.
type NormalisedDocument struct {
	Path string
	Text string
}

// ArtifactSink writes optional ingest diagnostics to the artifact
// directory. Both methods return the path written.
type ArtifactSink interface {
	// WriteNormalised writes the normalised text of every ingested
	// file, one section per source path.
	WriteNormalised(ctx context.Context, docs []NormalisedDocument) (string, error)

	// WriteWordTally writes a CSV tally of normalised word counts,
	// descending by count, ties broken alphabetically.
	WriteWordTally(ctx context.Context, counts map[string]int) (string, error)
}
