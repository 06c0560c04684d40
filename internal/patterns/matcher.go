package patterns

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/compare-names/internal/debug"
	"github.com/compare-names/internal/similarity"
)

const (
	// MinRatio is the similarity two substituted words need to be accepted
	MinRatio = 75.0

	// maxSpanDrift is how far, in characters, two matches of the same
	// template may sit from each other and still be compared
	maxSpanDrift = 2
)

// Adjacency maps a string to the strings it was found equivalent to
type Adjacency map[string][]string

// Matcher runs a catalog over a set of strings
type Matcher struct {
	catalog *Catalog
	workers int
	debug   bool
}

// NewMatcher creates a matcher; workers below 1 means sequential
func NewMatcher(catalog *Catalog, workers int) *Matcher {
	if workers < 1 {
		workers = 1
	}
	return &Matcher{catalog: catalog, workers: workers}
}

// WithDebug enables debug output
func (m *Matcher) WithDebug(enabled bool) *Matcher {
	m.debug = enabled
	return m
}

type literalRef struct {
	literal  string
	template int
}

type hit struct {
	word    string
	literal string
}

// Match returns the symmetric equivalence map of words under the catalog
func (m *Matcher) Match(words []string) Adjacency {
	defer debug.DebugTiming(m.debug, "pattern match ("+m.catalog.Name+")")()

	groups := m.findHits(words)
	debug.DebugOutput(m.debug, "Catalog %s: %d templates with hits", m.catalog.Name, len(groups))

	templateIDs := make([]int, 0, len(groups))
	for id := range groups {
		templateIDs = append(templateIDs, id)
	}
	sort.Ints(templateIDs)

	results := make([][][2]string, len(templateIDs))
	var g errgroup.Group
	g.SetLimit(m.workers)
	for slot, id := range templateIDs {
		slot, id := slot, id
		g.Go(func() error {
			results[slot] = verifyGroup(m.catalog.Templates[id], groups[id])
			return nil
		})
	}
	_ = g.Wait()

	sets := make(map[string]map[string]struct{})
	add := func(a, b string) {
		if sets[a] == nil {
			sets[a] = make(map[string]struct{})
		}
		sets[a][b] = struct{}{}
	}
	for _, pairs := range results {
		for _, pair := range pairs {
			add(pair[0], pair[1])
			add(pair[1], pair[0])
		}
	}

	adj := make(Adjacency, len(sets))
	for word, set := range sets {
		list := make([]string, 0, len(set))
		for other := range set {
			list = append(list, other)
		}
		sort.Strings(list)
		adj[word] = list
	}
	return adj
}

// findHits buckets words by length and records, per template, every word
// whose padded form contains one of the template's literals
func (m *Matcher) findHits(words []string) map[int][]hit {
	byLen := make(map[int][]string)
	seenWord := make(map[string]bool, len(words))
	for _, w := range words {
		if seenWord[w] {
			continue
		}
		seenWord[w] = true
		n := utf8.RuneCountInString(w)
		byLen[n] = append(byLen[n], w)
	}
	lengths := make([]int, 0, len(byLen))
	for n := range byLen {
		lengths = append(lengths, n)
		sort.Strings(byLen[n])
	}
	sort.Ints(lengths)

	var refs []literalRef
	for id, tmpl := range m.catalog.Templates {
		for _, lit := range tmpl.Literals {
			refs = append(refs, literalRef{literal: lit, template: id})
		}
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return utf8.RuneCountInString(refs[i].literal) > utf8.RuneCountInString(refs[j].literal)
	})

	groups := make(map[int][]hit)
	seen := make(map[literalRef]map[string]bool)
	for _, ref := range refs {
		minLen := m.catalog.Templates[ref.template].Pattern.MinLength
		for _, n := range lengths {
			if n < minLen {
				continue
			}
			for _, w := range byLen[n] {
				if !strings.Contains(pad(w), ref.literal) {
					continue
				}
				if seen[ref] == nil {
					seen[ref] = make(map[string]bool)
				}
				if seen[ref][w] {
					continue
				}
				seen[ref][w] = true
				groups[ref.template] = append(groups[ref.template], hit{word: w, literal: ref.literal})
			}
		}
	}
	return groups
}

// verifyGroup compares every pair of hits on different literals of one template
func verifyGroup(tmpl *Template, hits []hit) [][2]string {
	var accepted [][2]string
	for i := 0; i < len(hits); i++ {
		for j := i + 1; j < len(hits); j++ {
			a, b := hits[i], hits[j]
			if a.literal == b.literal || a.word == b.word {
				continue
			}
			if tmpl.Accepts(a.word, b.word) {
				accepted = append(accepted, [2]string{a.word, b.word})
			}
		}
	}
	return accepted
}

// Accepts reports whether a and b are variants of each other under the template
func (t *Template) Accepts(a, b string) bool {
	paddedA, paddedB := pad(a), pad(b)

	locA := t.re.FindStringSubmatchIndex(paddedA)
	locB := t.re.FindStringSubmatchIndex(paddedB)
	if locA == nil || locB == nil {
		return false
	}

	if paddedA[locA[0]:locA[1]] == paddedB[locB[0]:locB[1]] {
		return false
	}

	if drift(paddedA, paddedB, locA[0], locB[0]) > maxSpanDrift ||
		drift(paddedA, paddedB, locA[1], locB[1]) > maxSpanDrift {
		return false
	}

	canonA := unpad(paddedA[:locA[2]] + t.Pattern.MiddleY + paddedA[locA[3]:])
	canonB := unpad(paddedB[:locB[2]] + t.Pattern.MiddleY + paddedB[locB[3]:])
	return similarity.Ratio(canonA, canonB) >= MinRatio
}

// drift is the distance in characters between two byte offsets
func drift(a, b string, offA, offB int) int {
	d := utf8.RuneCountInString(a[:offA]) - utf8.RuneCountInString(b[:offB])
	if d < 0 {
		return -d
	}
	return d
}

func pad(s string) string {
	return Boundary + s + Boundary
}

func unpad(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, Boundary), Boundary)
}

// Match runs catalog over words with the given number of workers
func Match(words []string, catalog *Catalog, workers int) Adjacency {
	return NewMatcher(catalog, workers).Match(words)
}
