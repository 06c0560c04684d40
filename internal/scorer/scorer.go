// Package scorer aligns the words of two cleaned names and turns the
// alignment into a confidence score between 0 and 100.
package scorer

import (
	"math"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/compare-names/internal/assign"
	"github.com/compare-names/internal/debug"
	"github.com/compare-names/internal/nicknames"
	"github.com/compare-names/internal/normalize"
	"github.com/compare-names/internal/phonetics"
	"github.com/compare-names/internal/similarity"
)

// DefaultCacheSize bounds the memoized word pair scores
const DefaultCacheSize = 50_000

type wordPair struct {
	a, b string
}

// Scorer scores name pairs. It is safe for concurrent use.
type Scorer struct {
	transcriber *phonetics.Transcriber
	nicknames   *nicknames.Table
	penalties   *Penalties
	cache       *lru.Cache[wordPair, float64]
}

// NewScorer creates a scorer with the default penalties and tables
func NewScorer() *Scorer {
	return NewScorerWithConfig(DefaultPenalties(), DefaultCacheSize)
}

// NewScorerWithConfig creates a scorer with custom penalties. A cacheSize
// below 1 disables memoization of word scores.
func NewScorerWithConfig(penalties *Penalties, cacheSize int) *Scorer {
	s := &Scorer{
		transcriber: phonetics.NewTranscriber(phonetics.DefaultCacheSize),
		nicknames:   nicknames.Default(),
		penalties:   penalties,
	}
	if cacheSize > 0 {
		cache, err := lru.New[wordPair, float64](cacheSize)
		if err == nil {
			s.cache = cache
		}
	}
	return s
}

// WordScore is the similarity of two words: the best of plain ratio,
// partial ratio (same first letter only), nickname, phonetic ratio and
// initial match. Ratios are rounded to whole points before the bands see them.
func (s *Scorer) WordScore(a, b string) float64 {
	key := wordPair{a, b}
	if s.cache != nil {
		if score, ok := s.cache.Get(key); ok {
			return score
		}
	}
	score := s.wordScore(a, b)
	if s.cache != nil {
		s.cache.Add(key, score)
	}
	return score
}

func (s *Scorer) wordScore(a, b string) float64 {
	firstA, _ := utf8.DecodeRuneInString(a)
	firstB, _ := utf8.DecodeRuneInString(b)
	sameFirst := a != "" && b != "" && firstA == firstB
	eitherInitial := utf8.RuneCountInString(a) == 1 || utf8.RuneCountInString(b) == 1

	best := wholeRatio(similarity.Ratio(a, b))
	if sameFirst {
		if eitherInitial {
			return 100
		}
		best = max(best, wholeRatio(similarity.PartialRatio(a, b)))
	}
	if s.nicknames.Contains(a, b) {
		return 100
	}
	return max(best, wholeRatio(similarity.Ratio(s.transcriber.Transcribe(a), s.transcriber.Transcribe(b))))
}

// wholeRatio rounds half to even, so 82.5 scores 82
func wholeRatio(r float64) float64 {
	return math.RoundToEven(r)
}

// Matchups finds the optimal word alignment between two cleaned names,
// ordered by the position of the word in name A. Words left over on the
// longer side are not part of the result.
func (s *Scorer) Matchups(nameA, nameB string) []Matchup {
	wordsA := normalize.Words(nameA)
	wordsB := normalize.Words(nameB)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return nil
	}

	weights := make([][]float64, len(wordsA))
	for i, a := range wordsA {
		weights[i] = make([]float64, len(wordsB))
		for j, b := range wordsB {
			weights[i][j] = s.WordScore(a, b)
		}
	}

	pairs := assign.Maximize(weights)
	matchups := make([]Matchup, 0, len(pairs))
	for _, p := range pairs {
		matchups = append(matchups, Matchup{
			A:     WordInName{Text: wordsA[p.Row], Index: p.Row},
			B:     WordInName{Text: wordsB[p.Col], Index: p.Col},
			Score: weights[p.Row][p.Col],
		})
	}
	return matchups
}

// Score returns the confidence that two cleaned names denote the same person
func (s *Scorer) Score(nameA, nameB string) float64 {
	return s.ScoreDebug(false, nameA, nameB)
}

// ScoreDebug is Score with debug output of the alignment
func (s *Scorer) ScoreDebug(localDebug bool, nameA, nameB string) float64 {
	debug.DebugHeader(localDebug)
	defer debug.DebugFooter(localDebug)

	matchups := s.Matchups(nameA, nameB)
	for _, m := range matchups {
		debug.DebugOutput(localDebug, "Matchup %s[%d] ~ %s[%d]: %.2f", m.A.Text, m.A.Index, m.B.Text, m.B.Index, m.Score)
	}
	score := s.penalties.Apply(matchups)
	debug.DebugOutput(localDebug, "Score %q vs %q: %.2f", nameA, nameB, score)
	return score
}

// Apply turns a matchup sequence into a confidence score.
//
// Order is only checked against the immediately preceding matchup, so a
// sequence is flagged as soon as any index steps backwards. The penalty is
// applied once however many steps there are.
func (p *Penalties) Apply(matchups []Matchup) float64 {
	score := p.Start
	fullWords := 0
	violation := false
	prevA, prevB := -1, -1

	for _, m := range matchups {
		if m.A.Index < prevA || m.B.Index < prevB {
			violation = true
		}
		if utf8.RuneCountInString(m.A.Text) != 1 && utf8.RuneCountInString(m.B.Text) != 1 {
			fullWords++
		}
		prevA, prevB = m.A.Index, m.B.Index
	}

	switch fullWords {
	case 0:
		score -= p.NoFullWords
	case 1:
		score -= p.OneFullWord
	}
	if violation {
		score -= p.OrderViolation
	}

	few := len(matchups) <= p.FewMatchups
	for _, m := range matchups {
		for _, band := range p.Bands {
			if !band.Contains(m.Score) {
				continue
			}
			if few {
				score -= band.Few
			} else {
				score -= band.Many
			}
		}
	}

	if score < 0 {
		return 0
	}
	return score
}
