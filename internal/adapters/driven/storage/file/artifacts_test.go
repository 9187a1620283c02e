package file

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

func TestArtifactSink_WriteNormalised(t *testing.T) {
	sink := NewArtifactSink(t.TempDir())

	path, err := sink.WriteNormalised(context.Background(), []driven.NormalisedDocument{
		{Path: "/docs/a.txt", Text: "alpha beta"},
		{Path: "/docs/b.md", Text: "gamma"},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "### /docs/a.txt\n\nalpha beta\n\n### /docs/b.md\n\ngamma\n\n", string(raw))
}

func TestArtifactSink_WriteWordTally(t *testing.T) {
	sink := NewArtifactSink(t.TempDir())

	path, err := sink.WriteWordTally(context.Background(), map[string]int{
		"beta":  2,
		"alpha": 2,
		"gamma": 5,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "word,count\ngamma,5\nalpha,2\nbeta,2\n", string(raw))
}

func TestArtifactSink_EmptyTally(t *testing.T) {
	sink := NewArtifactSink(t.TempDir())

	path, err := sink.WriteWordTally(context.Background(), nil)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "word,count\n", string(raw))
}
