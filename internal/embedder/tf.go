package embedder

import "github.com/millrace-labs/skim-cli/internal/core/domain"

// Ensure TF implements the interface.
var _ Embedder = (*TF)(nil)

// TF is the probability-mass term frequency embedder. Token counts
// below the minimum frequency are dropped and the remaining counts
// are normalised to sum to one.
type TF struct {
	minFreq int
}

// NewTF creates a tf embedder. A minFreq of one keeps every token.
func NewTF(minFreq int) *TF {
	if minFreq < 1 {
		minFreq = 1
	}
	return &TF{minFreq: minFreq}
}

// Name returns the variant identifier.
func (e *TF) Name() string {
	return "tf"
}

// Embed counts tokens, applies the minimum-frequency filter and
// normalises the surviving counts to probability mass. If every
// token is filtered out the result is an empty vector.
func (e *TF) Embed(text string) domain.SparseVector {
	counts := make(domain.SparseVector)
	for _, token := range Tokenize(text) {
		counts[token]++
	}

	total := 0.0
	for token, count := range counts {
		if int(count) < e.minFreq {
			delete(counts, token)
			continue
		}
		total += count
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
func (e *TF) TokenCount(text string) int {
	return CountTokens(text)
}
