package search

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// wordDistance returns the minimum Levenshtein distance between term and the
// individual words of name. Multi-word names match per component: "rng" is
// distance 2 from "Ring der Macht" via its first word. Both inputs are
// expected to be folded already.
func wordDistance(term, name string) int {
	words := strings.Fields(name)
	if len(words) == 0 {
		return utf8.RuneCountInString(term)
	}

	best := -1
	for _, w := range words {
		d := edlib.LevenshteinDistance(term, w)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// distanceThreshold scales the accepted edit distance with term length so
// that short terms do not fuzzy-match half the campaign.
func distanceThreshold(termLen int) int {
	switch {
	case termLen <= 3:
		return 2
	case termLen <= 6:
		return 3
	default:
		return 4
	}
}
