package domain

import "fmt"

// RerankMode selects how a strategy combines the base similarity
// score with the term-boost score.
type RerankMode string

const (
	// RerankNone keeps the base similarity score unchanged.
	RerankNone RerankMode = "none"

	// RerankTermOverlap adds the boost to the base score.
	RerankTermOverlap RerankMode = "term_overlap"

	// RerankHybrid blends base and boost by the hybrid weight.
	RerankHybrid RerankMode = "hybrid"
)

// ParseRerankMode converts a config value into a RerankMode.
// A malformed value is a configuration error.
func ParseRerankMode(s string) (RerankMode, error) {
	switch RerankMode(s) {
	case RerankNone, "":
		return RerankNone, nil
	case RerankTermOverlap:
		return RerankTermOverlap, nil
	case RerankHybrid:
		return RerankHybrid, nil
	default:
		return "", fmt.Errorf("%w: rerank mode %q", ErrInvalidInput, s)
	}
}

// RerankStrategy is a named scoring policy applied to search hits.
// Strategies are independent; each produces its own ranked output.
type RerankStrategy struct {
	// Name identifies the strategy in output and run logs.
	Name string

	// Mode selects the score combination rule.
	Mode RerankMode

	// BoostTerms are matched case-insensitively as substrings of
	// the hit text; each match contributes one point of term score.
	BoostTerms []string

	// BoostFactor scales the term score into the boost.
	BoostFactor float64

	// HybridWeight is the boost share under RerankHybrid.
	HybridWeight float64

	// Threshold drops hits whose combined score is strictly below it.
	Threshold float64
}

// RerankedHit is a strategy-scored reference to a search hit.
// HitIndex points into the deduplicated hit slice the strategy was
// applied to; scores are not comparable across strategies.
type RerankedHit struct {
	// HitIndex is the position of the underlying hit in the
	// deduplicated input slice.
	HitIndex int

	// Score is the strategy-specific combined score.
	Score float64
}
