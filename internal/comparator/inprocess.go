package comparator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/compare-names/internal/debug"
	"github.com/compare-names/internal/normalize"
	"github.com/compare-names/internal/pairindex"
	"github.com/compare-names/internal/stream"
)

// InProcess is the built-in comparator. For every name it expands each word
// into its tradeouts, looks up the names sharing any expanded word pair, and
// keeps the ones whose words cover each other well enough.
type InProcess struct {
	Workers int
	Debug   bool
}

// Compare reads the payload file and writes candidate lines to outPath
func (c *InProcess) Compare(ctx context.Context, payloadPath, outPath string) error {
	in, err := os.Open(payloadPath)
	if err != nil {
		return fmt.Errorf("failed to open payload: %w", err)
	}
	defer in.Close()

	payload, err := stream.ReadPayload(in)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create candidate file: %w", err)
	}
	if err := c.CompareNames(ctx, payload, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

type corpus struct {
	nameWords     map[string][]string
	wordToMatches map[string]map[string]struct{}
	tradeouts     map[string][]string
	pairToNames   map[string][]string
}

// CompareNames writes the candidate lines of payload to w, grouped by name in
// payload order. A line is written once per name but may repeat across names.
func (c *InProcess) CompareNames(ctx context.Context, payload *stream.Payload, w io.Writer) error {
	defer debug.DebugTiming(c.Debug, "in-process comparator")()

	corp := newCorpus(payload)
	workers := c.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([][]string, len(payload.AllNames))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range payload.AllNames {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = corp.candidates(name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	total := 0
	for _, lines := range results {
		for _, line := range lines {
			if _, err := bw.WriteString(line + "\n"); err != nil {
				return fmt.Errorf("failed to write candidates: %w", err)
			}
			total++
		}
	}
	debug.DebugOutput(c.Debug, "Compared %d names, wrote %d candidate lines", len(payload.AllNames), total)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write candidates: %w", err)
	}
	return nil
}

func newCorpus(p *stream.Payload) *corpus {
	corp := &corpus{
		nameWords:     make(map[string][]string, len(p.AllNames)),
		wordToMatches: make(map[string]map[string]struct{}, len(p.WordToMatches)),
		tradeouts:     make(map[string][]string, len(p.WordToMatches)),
		pairToNames:   p.PairToNames,
	}
	for word, matches := range p.WordToMatches {
		set := make(map[string]struct{}, len(matches))
		for _, m := range matches {
			set[m] = struct{}{}
		}
		corp.wordToMatches[word] = set

		// an initial only trades with itself
		if len(word) == 1 {
			corp.tradeouts[word] = []string{word}
		} else {
			corp.tradeouts[word] = matches
		}
	}
	for _, name := range p.AllNames {
		corp.nameWords[name] = normalize.Words(name)
	}
	return corp
}

func (corp *corpus) words(name string) []string {
	if words, ok := corp.nameWords[name]; ok {
		return words
	}
	return normalize.Words(name)
}

func (corp *corpus) candidates(name string) []string {
	words := corp.words(name)
	if len(words) < 2 {
		return nil
	}

	seen := make(map[string]struct{})
	var lines []string
	for _, key := range corp.expandedPairKeys(words) {
		for _, other := range corp.pairToNames[key] {
			if other == name {
				continue
			}
			n1, n2 := name, other
			if n1 > n2 {
				n1, n2 = n2, n1
			}
			if !corp.covers(corp.words(n1), corp.words(n2)) {
				continue
			}
			line := stream.FormatCandidate(n1, n2)
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			lines = append(lines, line)
		}
	}
	return lines
}

// expandedPairKeys returns the pair keys of every combination of tradeouts
// for every pair of word positions. Positions with identical option sets are
// only expanded once.
func (corp *corpus) expandedPairKeys(words []string) []string {
	options := make([][]string, len(words))
	signatures := make([]string, len(words))
	for i, w := range words {
		opts := append([]string{w}, corp.tradeouts[w]...)
		sort.Strings(opts)
		opts = uniqueSorted(opts)
		options[i] = opts
		signatures[i] = fmt.Sprint(opts)
	}

	seenPairs := make(map[[2]string]struct{})
	var keys []string
	for i := 0; i < len(options); i++ {
		for j := i + 1; j < len(options); j++ {
			sig := [2]string{signatures[i], signatures[j]}
			if sig[1] < sig[0] {
				sig[0], sig[1] = sig[1], sig[0]
			}
			if _, ok := seenPairs[sig]; ok {
				continue
			}
			seenPairs[sig] = struct{}{}

			for _, a := range options[i] {
				for _, b := range options[j] {
					keys = append(keys, pairindex.Key(a, b))
				}
			}
		}
	}
	return keys
}

// covers reports whether two names explain enough of each other's words.
// A three word name with any unexplained word is rejected against a name of
// three or more words, and both names need at least two explained words.
func (corp *corpus) covers(wordsA, wordsB []string) bool {
	mismatchesA := corp.mismatches(wordsA, wordsB)
	mismatchesB := corp.mismatches(wordsB, wordsA)
	lenA, lenB := len(wordsA), len(wordsB)

	if lenB == 3 && mismatchesB > 0 && lenA >= 3 {
		return false
	}
	if lenA == 3 && mismatchesA > 0 && lenB >= 3 {
		return false
	}
	return lenA-mismatchesA >= 2 && lenB-mismatchesB >= 2
}

// mismatches counts the distinct words of a that no word of b matches
func (corp *corpus) mismatches(a, b []string) int {
	counted := make(map[string]struct{}, len(a))
	n := 0
	for _, w := range a {
		if _, ok := counted[w]; ok {
			continue
		}
		counted[w] = struct{}{}

		matched := false
		for _, other := range b {
			if _, ok := corp.wordToMatches[other][w]; ok {
				matched = true
				break
			}
		}
		if !matched {
			n++
		}
	}
	return n
}

func uniqueSorted(s []string) []string {
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}
	return out
}
