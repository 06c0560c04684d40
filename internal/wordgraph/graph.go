// Package wordgraph builds the word-equivalence graph of a name corpus: for
// every word, the set of words it may stand in for.
package wordgraph

import (
	"sort"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/compare-names/internal/debug"
	"github.com/compare-names/internal/nicknames"
	"github.com/compare-names/internal/normalize"
	"github.com/compare-names/internal/patterns"
	"github.com/compare-names/internal/phonetics"
	"github.com/compare-names/internal/similarity"
)

// FuzzyThreshold is the ratio two literal words need to be equivalent
const FuzzyThreshold = 75.0

// Graph maps a word to its sorted equivalent words. It is read-only once built.
type Graph map[string][]string

// Matches returns the equivalents of word
func (g Graph) Matches(word string) []string {
	return g[word]
}

// Contains reports whether b is an equivalent of a
func (g Graph) Contains(a, b string) bool {
	list := g[a]
	i := sort.SearchStrings(list, b)
	return i < len(list) && list[i] == b
}

// Words returns the vocabulary of the graph, sorted
func (g Graph) Words() []string {
	words := make([]string, 0, len(g))
	for w := range g {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Builder composes the equivalence signals into a Graph
type Builder struct {
	transcriber *phonetics.Transcriber
	spelling    *patterns.Catalog
	phonetic    *patterns.Catalog
	nicknames   *nicknames.Table
	workers     int
	debug       bool
}

// NewBuilder creates a builder over the built-in tables and catalogs
func NewBuilder(workers int) *Builder {
	if workers < 1 {
		workers = 1
	}
	return &Builder{
		transcriber: phonetics.NewTranscriber(phonetics.DefaultCacheSize),
		spelling:    patterns.Spelling(),
		phonetic:    patterns.Phonetic(),
		nicknames:   nicknames.Default(),
		workers:     workers,
	}
}

// WithDebug enables debug output
func (b *Builder) WithDebug(enabled bool) *Builder {
	b.debug = enabled
	return b
}

// Vocabulary returns the distinct words of the cleaned names, sorted
func Vocabulary(names []string) []string {
	seen := make(map[string]struct{})
	for _, name := range names {
		for _, w := range normalize.Words(name) {
			if w == normalize.Blank {
				continue
			}
			seen[w] = struct{}{}
		}
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Build builds the graph over the words of the cleaned names
func (b *Builder) Build(names []string) Graph {
	return b.BuildFromWords(Vocabulary(names))
}

// BuildFromWords builds the graph over a vocabulary
func (b *Builder) BuildFromWords(words []string) Graph {
	debug.DebugHeader(b.debug)
	defer debug.DebugFooter(b.debug)
	defer debug.DebugTiming(b.debug, "word graph")()

	words = dedupSorted(words)
	inVocab := make(map[string]bool, len(words))
	for _, w := range words {
		inVocab[w] = true
	}

	sets := make(map[string]map[string]struct{}, len(words))
	for _, w := range words {
		sets[w] = make(map[string]struct{})
	}
	link := func(x, y string) {
		sets[x][y] = struct{}{}
		sets[y][x] = struct{}{}
	}

	fuzzy := b.fuzzyMatches(words)
	for i, w := range words {
		for _, other := range fuzzy[i] {
			link(w, other)
		}
	}
	debug.DebugOutput(b.debug, "Fuzzy signal done for %d words", len(words))

	for w, others := range patterns.NewMatcher(b.spelling, b.workers).WithDebug(b.debug).Match(words) {
		for _, other := range others {
			link(w, other)
		}
	}
	debug.DebugOutput(b.debug, "Spelling pattern signal done")

	for w, others := range b.phoneticMatches(words) {
		for _, other := range others {
			link(w, other)
		}
	}
	debug.DebugOutput(b.debug, "Phonetic pattern signal done")

	for _, w := range words {
		for _, nick := range b.nicknames.Set(w) {
			if inVocab[nick] {
				link(w, nick)
			}
		}
	}

	g := make(Graph, len(sets))
	for w, set := range sets {
		list := make([]string, 0, len(set))
		for other := range set {
			list = append(list, other)
		}
		sort.Strings(list)
		g[w] = list
	}
	return g
}

// IsFuzzyMatch reports whether two literal words are equivalent by plain
// string similarity. A single-letter word only matches on its first letter.
func IsFuzzyMatch(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return false
	}
	if len(ra) == 1 || len(rb) == 1 {
		return ra[0] == rb[0]
	}
	return similarity.RatioRunes(ra, rb) >= FuzzyThreshold
}

// fuzzyMatches finds fuzzy equivalents per word. Only words whose lengths
// could reach the threshold are compared; single letters are matched by
// first letter.
func (b *Builder) fuzzyMatches(words []string) [][]string {
	byLen := make(map[int][]string)
	byFirst := make(map[rune][]string)
	maxLen := 0
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		byLen[n] = append(byLen[n], w)
		if n > maxLen {
			maxLen = n
		}
		first, _ := utf8.DecodeRuneInString(w)
		byFirst[first] = append(byFirst[first], w)
	}

	out := make([][]string, len(words))
	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, w := range words {
		i, w := i, w
		g.Go(func() error {
			out[i] = fuzzyFor(w, byLen, byFirst, maxLen)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func fuzzyFor(w string, byLen map[int][]string, byFirst map[rune][]string, maxLen int) []string {
	n := utf8.RuneCountInString(w)
	first, _ := utf8.DecodeRuneInString(w)

	var matches []string
	if n == 1 {
		return append(matches, byFirst[first]...)
	}
	for _, other := range byLen[1] {
		o, _ := utf8.DecodeRuneInString(other)
		if o == first {
			matches = append(matches, other)
		}
	}
	for m := 2; m <= maxLen; m++ {
		diff := n - m
		if diff < 0 {
			diff = -diff
		}
		if diff > similarity.MaxDistanceFor(n+m, FuzzyThreshold) {
			continue
		}
		for _, other := range byLen[m] {
			if IsFuzzyMatch(w, other) {
				matches = append(matches, other)
			}
		}
	}
	return matches
}

// phoneticMatches runs the phonetic catalog over the distinct phonetic forms
// and maps the result back to words. When several words share a form only
// the last of them (in sorted order) is recoverable from the form.
func (b *Builder) phoneticMatches(words []string) map[string][]string {
	forms := make([]string, len(words))
	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, w := range words {
		i, w := i, w
		g.Go(func() error {
			forms[i] = b.transcriber.Transcribe(w)
			return nil
		})
	}
	_ = g.Wait()

	formToWord := make(map[string]string, len(forms))
	for i, w := range words {
		formToWord[forms[i]] = w
	}
	distinct := make([]string, 0, len(formToWord))
	for form := range formToWord {
		distinct = append(distinct, form)
	}
	sort.Strings(distinct)

	out := make(map[string][]string)
	for form, others := range patterns.NewMatcher(b.phonetic, b.workers).WithDebug(b.debug).Match(distinct) {
		w := formToWord[form]
		for _, other := range others {
			out[w] = append(out[w], formToWord[other])
		}
	}
	return out
}

func dedupSorted(words []string) []string {
	out := append([]string(nil), words...)
	sort.Strings(out)
	n := 0
	for i, w := range out {
		if w == "" || (i > 0 && w == out[i-1]) {
			continue
		}
		out[n] = w
		n++
	}
	return out[:n]
}
