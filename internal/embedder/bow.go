package embedder

import "github.com/millrace-labs/skim-cli/internal/core/domain"

// Ensure BagOfWords implements the interface.
var _ Embedder = (*BagOfWords)(nil)

// BagOfWords is the unfiltered counterpart of TF: the same tokenise,
// count and normalise pipeline with no minimum-frequency filter.
type BagOfWords struct{}

// NewBagOfWords creates a bag-of-words embedder.
func NewBagOfWords() *BagOfWords {
	return &BagOfWords{}
}

// Name returns the variant identifier.
func (e *BagOfWords) Name() string {
	return "bow"
}

// Embed counts tokens and normalises the counts to probability mass.
func (e *BagOfWords) Embed(text string) domain.SparseVector {
	counts := make(domain.SparseVector)
	total := 0.0
	for _, token := range Tokenize(text) {
		counts[token]++
		total++
	}
	if total == 0 {
		return domain.SparseVector{}
	}
	for token := range counts {
		counts[token] /= total
	}
	return counts
}

// TokenCount returns the number of word tokens in text.
func (e *BagOfWords) TokenCount(text string) int {
	return CountTokens(text)
}
