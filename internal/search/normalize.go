package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases a string and strips diacritic marks, so "Rüstung" and
// "rustung" compare equal. Every string the engine matches against is folded
// exactly once, at candidate construction or parse time.
func Fold(s string) string {
	// Transformers carry state, so the chain is built per call rather than
	// shared between concurrent searches.
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// foldFields folds a string and splits it into whitespace-separated words.
func foldFields(s string) []string {
	return strings.Fields(Fold(s))
}
