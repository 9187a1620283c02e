package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser produces canonical text: Unicode NFC, no carriage
// returns, newline runs collapsed to a single newline, other
// whitespace runs collapsed to a single space, leading and trailing
// whitespace trimmed. The output is a fixed point: normalising it
// again returns it unchanged.
type Normaliser struct{}

// New creates a new text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise returns the canonical form of input.
func (n *Normaliser) Normalise(input string) string {
	var out strings.Builder
	out.Grow(len(input))

	lastWasSpace := false
	lastWasNewline := false

	for _, ch := range norm.NFC.String(input) {
		switch {
		case ch == '\r':
			continue
		case ch == '\n':
			if lastWasNewline {
				continue
			}
			out.WriteRune('\n')
			lastWasSpace = true
			lastWasNewline = true
		case unicode.IsSpace(ch):
			if !lastWasSpace {
				out.WriteRune(' ')
				lastWasSpace = true
			}
		default:
			out.WriteRune(ch)
			lastWasSpace = false
			lastWasNewline = false
		}
	}

	return strings.TrimSpace(out.String())
}
