// Package pairindex buckets names by the pairs of words they contain so that a
// comparator only has to look at names sharing at least two words.
package pairindex

import (
	"sort"
	"strings"

	"github.com/compare-names/internal/normalize"
)

// Separator joins the two words of a pair key
const Separator = "_"

// Index maps a pair key to the sorted names containing both words
type Index map[string][]string

// Key returns the canonical key of two words: sorted, joined by Separator.
// Words containing Separator can collide; see KeyEscaped.
func Key(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + Separator + b
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, Separator, `\`+Separator)

// KeyEscaped is Key with backslash and Separator escaped in each word, so
// that distinct word pairs always give distinct keys
func KeyEscaped(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return keyEscaper.Replace(a) + Separator + keyEscaper.Replace(b)
}

// KeyFunc builds a pair key from two words
type KeyFunc func(a, b string) string

// Build indexes cleaned names by every unordered pair of word positions
func Build(names []string) Index {
	return BuildWith(names, Key)
}

// BuildWith is Build with a custom key function
func BuildWith(names []string, key KeyFunc) Index {
	sets := make(map[string]map[string]struct{})
	for _, name := range names {
		words := normalize.Words(name)
		for i := 0; i < len(words); i++ {
			for j := i + 1; j < len(words); j++ {
				k := key(words[i], words[j])
				if sets[k] == nil {
					sets[k] = make(map[string]struct{})
				}
				sets[k][name] = struct{}{}
			}
		}
	}

	idx := make(Index, len(sets))
	for k, set := range sets {
		list := make([]string, 0, len(set))
		for name := range set {
			list = append(list, name)
		}
		sort.Strings(list)
		idx[k] = list
	}
	return idx
}

// Names returns the names containing both words
func (idx Index) Names(a, b string) []string {
	return idx[Key(a, b)]
}
