package normalize

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transliterate reduces s to its nearest ASCII spelling. Accents are
// stripped first, then other scripts are romanized, so "Иван" reads "Ivan"
// and "李明" reads "Li Ming". Characters with no reading are dropped.
func Transliterate(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	ascii := unidecode.Unidecode(stripped)
	return strings.Map(func(r rune) rune {
		if r >= unicode.MaxASCII {
			return -1
		}
		return r
	}, ascii)
}
