// Package similarity provides the 0-100 edit-distance ratios used to
// compare words and phonetic forms.
package similarity

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// indelOptions prices a substitution as a deletion plus an insertion, so the
// distance is the insert/delete distance and the ratio matches the usual
// "matching characters over total characters" similarity.
var indelOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 2,
	Matches: levenshtein.IdenticalRunes,
}

// Ratio returns the normalized similarity of a and b on a 0-100 scale.
// Two empty strings are identical.
func Ratio(a, b string) float64 {
	return RatioRunes([]rune(a), []rune(b))
}

// RatioRunes is Ratio over pre-split runes
func RatioRunes(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	if equalRunes(a, b) {
		return 100
	}
	distance := levenshtein.DistanceForStrings(a, b, indelOptions)
	return 100 * float64(total-distance) / float64(total)
}

// PartialRatio returns the best Ratio between the shorter string and every
// window of the same length in the longer one. Empty input scores 0.
func PartialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == len(rb) {
		return RatioRunes(ra, rb)
	}

	best := 0.0
	for start := 0; start+len(ra) <= len(rb); start++ {
		score := RatioRunes(ra, rb[start:start+len(ra)])
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// MaxDistanceFor returns the largest length difference two strings of the
// given total length may have and still reach minRatio.
func MaxDistanceFor(totalLen int, minRatio float64) int {
	return int(float64(totalLen) * (100 - minRatio) / 100)
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
