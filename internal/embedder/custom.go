package embedder

import (
	"fmt"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
)

// Ensure Custom implements the interface.
var _ Embedder = (*Custom)(nil)

// Custom embeds text by looking tokens up in a trained token-weight
// table. Tokens absent from the trained vocabulary contribute
// nothing; weights are taken verbatim with no renormalisation.
type Custom struct {
	name    string
	version string
	weights map[string]float64
}

// NewCustom creates a custom embedder from a trained model manifest.
func NewCustom(manifest *domain.ModelManifest) *Custom {
	return &Custom{
		name:    manifest.Name,
		version: manifest.Version,
		weights: manifest.TokenWeights,
	}
}

// Name returns the variant identifier, including model name and
// version so run logs distinguish model generations.
func (e *Custom) Name() string {
	return fmt.Sprintf("custom:%s@%s", e.name, e.version)
}

// Embed includes each input token found in the trained vocabulary
// with its trained weight.
func (e *Custom) Embed(text string) domain.SparseVector {
	vector := make(domain.SparseVector)
	for _, token := range Tokenize(text) {
		if weight, ok := e.weights[token]; ok {
			vector[token] = weight
		}
	}
	return vector
}

// TokenCount returns the number of word tokens in text.
func (e *Custom) TokenCount(text string) int {
	return CountTokens(text)
}
