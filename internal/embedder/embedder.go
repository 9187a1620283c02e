// Package embedder maps text passages to sparse term-weight vectors.
//
// Three interchangeable variants exist: probability-mass term
// frequency (tf), unfiltered bag of words (bow), and a custom variant
// backed by a trained token-weight table. The variant is a closed
// tagged type resolved once, at construction.
package embedder

import (
	"context"
	"fmt"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

// Embedder maps a text passage to a sparse term-weight vector.
type Embedder interface {
	// Name returns a stable identifier for the variant, used in
	// run logs and output.
	Name() string

	// Embed returns the sparse vector for text. An empty vector is
	// a valid result, not an error.
	Embed(text string) domain.SparseVector

	// TokenCount returns the number of word tokens in text.
	TokenCount(text string) int
}

// Kind is the closed set of embedder variants.
type Kind string

const (
	// KindTF is probability-mass term frequency with a minimum
	// frequency filter.
	KindTF Kind = "tf"

	// KindBagOfWords is term frequency with no filtering.
	KindBagOfWords Kind = "bow"

	// KindCustom looks tokens up in a trained token-weight table.
	KindCustom Kind = "custom"
)

// ParseKind converts a config value into a Kind. An unknown kind
// string is a configuration error.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTF:
		return KindTF, nil
	case KindBagOfWords:
		return KindBagOfWords, nil
	case KindCustom:
		return KindCustom, nil
	default:
		return "", fmt.Errorf("%w: embedder kind %q", domain.ErrUnsupportedType, s)
	}
}

// Config selects and parameterises an embedder variant.
type Config struct {
	// Kind selects the variant.
	Kind Kind

	// TFMinFreq is the minimum token count for the tf variant;
	// tokens occurring fewer times are dropped.
	TFMinFreq int

	// CustomName names the trained model for the custom variant.
	CustomName string

	// CustomVersion pins a model version; empty selects the latest.
	CustomVersion string
}

// Build resolves a Config into a concrete embedder. This is the only
// place that inspects the variant tag. The model store is consulted
// only for the custom variant and may be nil otherwise.
func Build(ctx context.Context, cfg Config, models driven.ModelStore) (Embedder, error) {
	switch cfg.Kind {
	case KindTF:
		return NewTF(cfg.TFMinFreq), nil
	case KindBagOfWords:
		return NewBagOfWords(), nil
	case KindCustom:
		if cfg.CustomName == "" {
			return nil, fmt.Errorf("%w: custom embedder requires a model name", domain.ErrInvalidInput)
		}
		if models == nil {
			return nil, fmt.Errorf("%w: custom embedder requires a model store", domain.ErrInvalidInput)
		}
		manifest, err := models.Load(ctx, cfg.CustomName, cfg.CustomVersion)
		if err != nil {
			return nil, fmt.Errorf("load model %q: %w", cfg.CustomName, err)
		}
		return NewCustom(manifest), nil
	default:
		return nil, fmt.Errorf("%w: embedder kind %q", domain.ErrUnsupportedType, cfg.Kind)
	}
}
