// Package text tokenizes raw document text and derives the token-level
// features that neighborhoods and motifs are built from.
package text

import (
	"strings"
	"unicode"

	"github.com/pdiddy/motel/pkg/types"
)

// Tokenize splits raw text into tokens with character offsets. Words and
// numbers are maximal runs of letters/digits (apostrophes and hyphens stay
// inside words); every other non-space rune is a single punct token.
// Deterministic: identical text yields byte-identical tokens.
func Tokenize(text string) []types.Token {
	var tokens []types.Token
	runes := []rune(text)

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			start := i
			for i < len(runes) && wordRune(runes, i) {
				i++
			}
			tokens = append(tokens, types.Token{
				Text:  string(runes[start:i]),
				Start: start,
				End:   i,
			})
		default:
			tokens = append(tokens, types.Token{
				Text:  string(r),
				Start: i,
				End:   i + 1,
			})
			i++
		}
	}
	return tokens
}

func wordRune(runes []rune, i int) bool {
	r := runes[i]
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	// Keep inner apostrophes and hyphens ("don't", "best-effort").
	if (r == '\'' || r == '-') && i+1 < len(runes) &&
		(unicode.IsLetter(runes[i+1]) || unicode.IsDigit(runes[i+1])) {
		return true
	}
	return false
}

// TokenFeatures derives the feature map for one token.
func TokenFeatures(tok types.Token) map[types.Feature]string {
	return map[types.Feature]string{
		types.FeatureText:  strings.ToLower(tok.Text),
		types.FeatureShape: Shape(tok.Text),
		types.FeatureClass: Class(tok.Text),
	}
}

// Shape compresses a token into its character-shape: uppercase runs
// become "X", lowercase "x", digits "d", anything else passes through.
// Repeats collapse, so "Motel" → "Xx" and "2026" → "d".
func Shape(text string) string {
	var b strings.Builder
	var last rune
	for _, r := range text {
		var c rune
		switch {
		case unicode.IsUpper(r):
			c = 'X'
		case unicode.IsLower(r):
			c = 'x'
		case unicode.IsDigit(r):
			c = 'd'
		default:
			c = r
		}
		if c != last || b.Len() == 0 {
			b.WriteRune(c)
		}
		last = c
	}
	return b.String()
}

// Class assigns the coarse token class: number if every rune is a digit,
// word if any rune is a letter, punct otherwise.
func Class(text string) string {
	hasLetter := false
	allDigits := len(text) > 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if !unicode.IsDigit(r) {
			allDigits = false
		}
	}
	switch {
	case allDigits:
		return "number"
	case hasLetter:
		return "word"
	default:
		return "punct"
	}
}
