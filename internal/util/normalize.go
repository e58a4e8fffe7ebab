// This file normalizes series titles for fuzzy matching against remote
// metadata providers.

package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks after NFD decomposition, so that
// "Pokémon" and "Pokemon" normalize to the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeTitle lowercases a title, folds diacritics and drops every
// non-alphanumeric rune. Provider search results are scored by comparing
// normalized titles, so punctuation and spacing differences don't matter.
func NormalizeTitle(title string) string {
	folded, _, err := transform.String(stripMarks, title)
	if err != nil {
		// Transform only fails on malformed input; fall back to the raw title.
		folded = title
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
