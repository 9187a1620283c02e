// Package chunker splits normalised text into ordered chunks.
//
// Two strategies exist: structured splitting on separator strings,
// and a fixed-size token window with overlap. Both share the same
// per-segment post-processing (trim, drop empties, optional
// deduplication, re-normalisation).
package chunker

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

// DefaultMaxTokens is the default fixed-window size in tokens.
const DefaultMaxTokens = 200

// DefaultOverlap is the default number of overlapping tokens between
// consecutive fixed windows.
const DefaultOverlap = 32

// DefaultSeparators are the structured-strategy split markers.
func DefaultSeparators() []string {
	return []string{"\n\n", "\r\n\r\n", "\n-\n", "\n*\n"}
}

// Chunker splits a document's normalised text into chunks.
// Each call re-scans the whole text; the chunker keeps no state
// between calls.
type Chunker struct {
	strategy         domain.ChunkStrategy
	normaliser       driven.Normaliser
	maxTokens        int
	overlap          int
	splitOnSeparator bool
	dedupeSegments   bool
	separators       []string
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxTokens sets the fixed-window size in tokens.
func WithMaxTokens(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithOverlap sets the fixed-window overlap in tokens.
func WithOverlap(n int) Option {
	return func(c *Chunker) {
		if n >= 0 {
			c.overlap = n
		}
	}
}

// WithSeparators sets the structured-strategy separator list.
func WithSeparators(seps []string) Option {
	return func(c *Chunker) {
		c.separators = seps
	}
}

// WithSplitOnSeparator toggles separator splitting for the
// structured strategy; when off, the whole text is one segment.
func WithSplitOnSeparator(enabled bool) Option {
	return func(c *Chunker) {
		c.splitOnSeparator = enabled
	}
}

// WithDedupe toggles per-call segment deduplication.
func WithDedupe(enabled bool) Option {
	return func(c *Chunker) {
		c.dedupeSegments = enabled
	}
}

// New creates a chunker for the given strategy. The normaliser is
// re-applied to each trimmed segment before it is stored, so
// separator splitting cannot reintroduce stray leading or trailing
// marks.
func New(strategy domain.ChunkStrategy, normaliser driven.Normaliser, opts ...Option) *Chunker {
	c := &Chunker{
		strategy:         strategy,
		normaliser:       normaliser,
		maxTokens:        DefaultMaxTokens,
		overlap:          DefaultOverlap,
		splitOnSeparator: true,
		dedupeSegments:   true,
		separators:       DefaultSeparators(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits text into ordered chunks for docID. Byte offsets are
// relative to text; start offsets are monotonically non-decreasing
// across the result.
func (c *Chunker) Chunk(docID, text string) []domain.Chunk {
	switch c.strategy {
	case domain.StrategyFixed:
		return c.fixed(docID, text)
	default:
		return c.structured(docID, text)
	}
}

// structured repeatedly finds the earliest occurrence of any
// configured separator; the segment before it becomes a candidate
// chunk and the cursor advances past the separator plus any
// immediately following whitespace run.
func (c *Chunker) structured(docID, text string) []domain.Chunk {
	var results []domain.Chunk
	seen := c.newSeenSet()

	cursor := 0
	for cursor < len(text) {
		remaining := text[cursor:]

		splitLen, sepLen := len(remaining), 0
		if c.splitOnSeparator {
			splitLen, sepLen = findSplit(remaining, c.separators)
		}

		if chunk, ok := c.segment(docID, remaining[:splitLen], cursor, seen); ok {
			results = append(results, chunk)
		}

		if splitLen == len(remaining) {
			break
		}
		cursor += splitLen + sepLen
		cursor += skipWhitespace(text[cursor:])
	}
	return results
}

// fixed tokenises the whole text into whitespace-delimited word
// boundaries, then slides a window of maxTokens with a step of
// max(maxTokens-overlap, 1). Window text spans byte-exactly from the
// first token's start to the last token's end. The final window is
// taken even if short.
func (c *Chunker) fixed(docID, text string) []domain.Chunk {
	tokens := tokenBoundaries(text)
	if len(tokens) == 0 {
		return nil
	}

	var results []domain.Chunk
	seen := c.newSeenSet()

	step := c.maxTokens - c.overlap
	if step < 1 {
		step = 1
	}

	for cursor := 0; cursor < len(tokens); cursor += step {
		end := cursor + c.maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}

		start := tokens[cursor].start
		candidate := text[start:tokens[end-1].end]
		if chunk, ok := c.segment(docID, candidate, start, seen); ok {
			results = append(results, chunk)
		}

		if end == len(tokens) {
			break
		}
	}
	return results
}

// segment applies the shared post-processing to one candidate: trim,
// drop empties, dedupe on the trimmed text, assign a fresh id and
// re-normalise. Returned offsets cover the trimmed bounds within the
// source text.
func (c *Chunker) segment(docID, candidate string, absoluteStart int, seen map[string]struct{}) (domain.Chunk, bool) {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return domain.Chunk{}, false
	}
	if seen != nil {
		if _, dup := seen[trimmed]; dup {
			return domain.Chunk{}, false
		}
		seen[trimmed] = struct{}{}
	}

	leading := len(candidate) - len(strings.TrimLeftFunc(candidate, unicode.IsSpace))
	trailing := len(strings.TrimRightFunc(candidate, unicode.IsSpace))

	return domain.Chunk{
		ID:       uuid.New().String(),
		DocID:    docID,
		Text:     c.normaliser.Normalise(trimmed),
		Start:    absoluteStart + leading,
		End:      absoluteStart + trailing,
		Strategy: c.strategy,
	}, true
}

// newSeenSet returns the dedupe set for one Chunk call, or nil when
// deduplication is disabled. Dedupe state never crosses calls.
func (c *Chunker) newSeenSet() map[string]struct{} {
	if !c.dedupeSegments {
		return nil
	}
	return make(map[string]struct{})
}

// findSplit returns the length of text before the leftmost separator
// match plus the matched separator's length. With no match the whole
// remainder is one segment.
func findSplit(remaining string, separators []string) (splitLen, sepLen int) {
	best := -1
	for _, sep := range separators {
		if sep == "" {
			continue
		}
		idx := strings.Index(remaining, sep)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best = idx
			sepLen = len(sep)
		}
	}
	if best < 0 {
		return len(remaining), 0
	}
	return best, sepLen
}

// skipWhitespace returns the byte length of the leading whitespace
// run, so the next segment never starts empty.
func skipWhitespace(remaining string) int {
	for i, ch := range remaining {
		if !unicode.IsSpace(ch) {
			return i
		}
	}
	return len(remaining)
}

type tokenBoundary struct {
	start int
	end   int
}

// tokenBoundaries records the byte offsets of whitespace-delimited
// words without copying them.
func tokenBoundaries(text string) []tokenBoundary {
	var boundaries []tokenBoundary
	start := -1
	for i, ch := range text {
		if unicode.IsSpace(ch) {
			if start >= 0 {
				boundaries = append(boundaries, tokenBoundary{start: start, end: i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		boundaries = append(boundaries, tokenBoundary{start: start, end: len(text)})
	}
	return boundaries
}
