// Package trigram computes trigram similarity compatible with the
// PostgreSQL pg_trgm extension, for stores that lack it.
package trigram

import (
	"strings"
	"unicode"
)

// DefaultThreshold matches pg_trgm.similarity_threshold
const DefaultThreshold = 0.3

// Set returns the distinct trigrams of s. Words are runs of letters and
// digits, lowercased and padded with two leading spaces and one trailing
// space.
func Set(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.FieldsFunc(strings.ToLower(s), isSeparator) {
		padded := []rune("  " + word + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// Similarity returns |A∩B| / |A∪B| over the trigram sets of a and b,
// in [0, 1]. Two strings without trigrams have similarity 0.
func Similarity(a, b string) float64 {
	ta, tb := Set(a), Set(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(ta)+len(tb)-shared)
}

// Match reports whether a and b are similar enough for the % operator
func Match(a, b string, threshold float64) bool {
	return Similarity(a, b) >= threshold
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
