package embedder

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Tokenize splits text into lowercase word tokens using Unicode word
// segmentation (UAX #29). Segments without a letter or digit
// (whitespace and punctuation runs) are dropped.
//
// This is the single definition of "token" shared by chunk sizing and
// every embedder variant.
func Tokenize(text string) []string {
	var tokens []string
	state := -1
	var word string
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		if isWord(word) {
			tokens = append(tokens, strings.ToLower(word))
		}
	}
	return tokens
}

// CountTokens returns the number of word tokens in text without
// materialising them.
func CountTokens(text string) int {
	count := 0
	state := -1
	var word string
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		if isWord(word) {
			count++
		}
	}
	return count
}

func isWord(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
