// Package phonetics approximates the pronunciation of name words.
//
// A word is first looked up whole in a table of known name pronunciations.
// Failing that it is segmented greedily: each pass picks the longest
// not-yet-consumed substring with a known pronunciation (common word parts
// for clusters, a fixed table for single letters) and writes it at the
// substring's starting position. The concatenated result is then cleaned of
// doubled consonants and a few vowel clusters.
package phonetics

import (
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/compare-names/internal/normalize"
)

// Blank is the phonetic form of a word with nothing pronounceable in it
const Blank = "_"

// DefaultCacheSize bounds the memoized transcriptions
const DefaultCacheSize = 50_000

// Transcriber converts words to phonetic forms and memoizes the results
type Transcriber struct {
	names map[string]string
	parts map[string]string
	cache *lru.Cache[string, string]
}

// NewTranscriber creates a transcriber over the built-in tables.
// A cacheSize below 1 disables memoization.
func NewTranscriber(cacheSize int) *Transcriber {
	t := &Transcriber{
		names: namePronunciations,
		parts: wordPartPronunciations,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, string](cacheSize)
		if err == nil {
			t.cache = cache
		}
	}
	return t
}

var defaultTranscriber = NewTranscriber(DefaultCacheSize)

// Transcribe returns the phonetic form of word using the shared transcriber
func Transcribe(word string) string {
	return defaultTranscriber.Transcribe(word)
}

// Transcribe returns the phonetic form of word. It never returns an empty string.
func (t *Transcriber) Transcribe(word string) string {
	if t.cache != nil {
		if ipa, ok := t.cache.Get(word); ok {
			return ipa
		}
	}
	ipa := t.transcribe(word)
	if t.cache != nil {
		t.cache.Add(word, ipa)
	}
	return ipa
}

// Match checks whether two words share a phonetic form
func (t *Transcriber) Match(a, b string) bool {
	return t.Transcribe(a) == t.Transcribe(b)
}

func (t *Transcriber) transcribe(word string) string {
	word = strings.TrimSpace(strings.ToLower(normalize.Transliterate(word)))

	if ipa, ok := t.names[word]; ok {
		return Clean(ipa)
	}

	letters := []rune(word)
	consumed := make([]bool, len(letters))
	pieces := make([]string, len(letters))

	for {
		best := t.longestSegment(letters, consumed)
		if best.length == 0 {
			break
		}
		pieces[best.start] = best.ipa
		for k := best.start; k < best.start+best.length; k++ {
			consumed[k] = true
		}
	}

	return Clean(strings.Join(pieces, ""))
}

type segment struct {
	start, length int
	ipa           string
}

// longestSegment scans every substring free of consumed letters and returns
// the longest one with a pronunciation; the first found wins ties.
func (t *Transcriber) longestSegment(letters []rune, consumed []bool) segment {
	var best segment
	n := len(letters)

	for i := 0; i < n; i++ {
		for j := i + 1; j <= n; j++ {
			if consumed[j-1] {
				break
			}
			length := j - i
			if length <= best.length {
				continue
			}

			if length == 1 {
				best = segment{start: i, length: 1, ipa: letterPronunciations[letters[i]]}
				continue
			}

			sub := string(letters[i:j])
			ipa, ok := t.parts[sub]
			if !ok {
				continue
			}
			if utf8.RuneCountInString(ipa) > 2*length {
				continue
			}
			if splitsTh(letters, i, j) {
				continue
			}
			best = segment{start: i, length: length, ipa: ipa}
		}
	}
	return best
}

// splitsTh reports whether letters[i:j] would break up a "th" digraph
func splitsTh(letters []rune, i, j int) bool {
	if i > 0 && letters[i] == 'h' && letters[i-1] == 't' {
		return true
	}
	if j < len(letters) && letters[j-1] == 't' && letters[j] == 'h' {
		return true
	}
	return false
}

// Clean collapses doubled consonants and known vowel clusters in a raw
// phonetic string and strips commas. An empty result becomes Blank.
func Clean(ipa string) string {
	for _, c := range consonants {
		double := c + c
		if strings.Contains(ipa, double) {
			ipa = strings.ReplaceAll(ipa, double, c)
		}
	}
	for _, c := range clusterContractions {
		ipa = strings.ReplaceAll(ipa, c.from, c.to)
	}
	ipa = strings.ReplaceAll(ipa, ",", "")
	if ipa == "" {
		return Blank
	}
	return ipa
}
