package scorer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordScore(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "smith", "smith", 100},
		{"initial", "j", "john", 100},
		{"initial reversed", "john", "j", 100},
		{"initials", "j", "j", 100},
		{"different initial", "k", "john", 0},
		{"nickname", "william", "bill", 100},
		{"phonetic", "john", "jon", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.WordScore(tt.a, tt.b))
		})
	}
}

func TestWordScoreWholePoints(t *testing.T) {
	s := NewScorer()

	// 10 of 12 characters in common is 83.33, which lands on the 83 band edge
	assert.Equal(t, 83.0, s.WordScore("carter", "carten"))
	assert.Equal(t, 95.0, s.Score("john carter", "john carten"))

	for _, pair := range [][2]string{{"smith", "smyth"}, {"robert", "rupert"}, {"katherine", "catherine"}} {
		got := s.WordScore(pair[0], pair[1])
		assert.Equal(t, math.Round(got), got, "%q vs %q", pair[0], pair[1])
	}
}

func TestWholeRatio(t *testing.T) {
	assert.Equal(t, 83.0, wholeRatio(100*10.0/12.0))
	assert.Equal(t, 82.0, wholeRatio(82.5))
	assert.Equal(t, 84.0, wholeRatio(83.5))
	assert.Equal(t, 38.0, wholeRatio(100*3.0/8.0))
}

func TestWordScoreUsesBestSignal(t *testing.T) {
	s := NewScorer()
	got := s.WordScore("smith", "smyth")
	assert.GreaterOrEqual(t, got, 80.0)
	assert.LessOrEqual(t, got, 100.0)
	assert.Equal(t, got, s.WordScore("smith", "smyth"), "cached value must match")

	uncached := NewScorerWithConfig(DefaultPenalties(), 0)
	assert.Equal(t, got, uncached.WordScore("smith", "smyth"))
}

func TestMatchupsIdentical(t *testing.T) {
	s := NewScorer()
	matchups := s.Matchups("mary ann smith", "mary ann smith")
	require.Len(t, matchups, 3)
	for i, m := range matchups {
		assert.Equal(t, i, m.A.Index)
		assert.Equal(t, i, m.B.Index)
		assert.Equal(t, 100.0, m.Score)
	}
	assert.Equal(t, 100.0, s.Score("mary ann smith", "mary ann smith"))
}

func TestMatchupsUnequalLength(t *testing.T) {
	s := NewScorer()

	matchups := s.Matchups("john paul smith", "john smith")
	require.Len(t, matchups, 2)
	assert.Equal(t, WordInName{Text: "john", Index: 0}, matchups[0].A)
	assert.Equal(t, WordInName{Text: "smith", Index: 2}, matchups[1].A)
	assert.Equal(t, WordInName{Text: "smith", Index: 1}, matchups[1].B)

	assert.Empty(t, s.Matchups("", "john smith"))
}

func TestScoreJohnSmith(t *testing.T) {
	s := NewScorer()
	matchups := s.Matchups("john smith", "jon smith")
	require.Len(t, matchups, 2)
	for _, m := range matchups {
		assert.Greater(t, m.Score, 83.0)
	}
	assert.GreaterOrEqual(t, s.Score("john smith", "jon smith"), 95.0)
}

func TestScoreInitial(t *testing.T) {
	s := NewScorer()
	matchups := s.Matchups("j smith", "john smith")
	require.Len(t, matchups, 2)
	assert.Equal(t, "j", matchups[0].A.Text)
	assert.Equal(t, "john", matchups[0].B.Text)
	assert.Equal(t, 100.0, matchups[0].Score)
	assert.Equal(t, 100.0, matchups[1].Score)

	assert.Equal(t, 80.0, s.Score("j smith", "john smith"))
}

func TestScoreOrderViolation(t *testing.T) {
	s := NewScorer()
	assert.Equal(t, 93.0, s.Score("mary ann smith", "smith mary ann"))
}

func TestScoreBounded(t *testing.T) {
	s := NewScorer()
	pairs := [][2]string{
		{"a b c d", "w x y z"},
		{"john", "xavier"},
		{"_", "_"},
		{"", ""},
		{"zed quinn", "alice bob carol"},
		{"robert browne", "bob brown"},
	}
	for _, p := range pairs {
		score := s.Score(p[0], p[1])
		assert.GreaterOrEqual(t, score, 0.0, "%q vs %q", p[0], p[1])
		assert.LessOrEqual(t, score, 100.0, "%q vs %q", p[0], p[1])
	}
}

func matchup(ia int, b string, ib int, score float64) Matchup {
	return Matchup{
		A:     WordInName{Text: string(rune('a'+ia)) + "x", Index: ia},
		B:     WordInName{Text: b, Index: ib},
		Score: score,
	}
}

func TestPenaltiesApply(t *testing.T) {
	p := DefaultPenalties()

	tests := []struct {
		name     string
		matchups []Matchup
		want     float64
	}{
		{
			name:     "no matchups",
			matchups: nil,
			want:     60,
		},
		{
			name: "two perfect",
			matchups: []Matchup{
				matchup(0, "bx", 0, 100),
				matchup(1, "cx", 1, 100),
			},
			want: 100,
		},
		{
			name: "one mid band, few",
			matchups: []Matchup{
				matchup(0, "bx", 0, 80),
				matchup(1, "cx", 1, 100),
			},
			want: 95,
		},
		{
			name: "bands, many",
			matchups: []Matchup{
				matchup(0, "bx", 0, 80),
				matchup(1, "cx", 1, 70),
				matchup(2, "dx", 2, 50),
			},
			want: 100 - 3 - 5 - 12,
		},
		{
			name: "band edges",
			matchups: []Matchup{
				matchup(0, "bx", 0, 83),
				matchup(1, "cx", 1, 75),
				matchup(2, "dx", 2, 60),
				matchup(3, "ex", 3, 83.5),
			},
			want: 100 - 3 - 5 - 12,
		},
		{
			name: "single letters only",
			matchups: []Matchup{
				{A: WordInName{"j", 0}, B: WordInName{"j", 0}, Score: 100},
			},
			want: 60,
		},
		{
			name: "order violation counted once",
			matchups: []Matchup{
				matchup(0, "bx", 2, 100),
				matchup(1, "cx", 1, 100),
				matchup(2, "dx", 0, 100),
			},
			want: 93,
		},
		{
			name: "later index recovering does not clear the flag",
			matchups: []Matchup{
				matchup(0, "bx", 1, 100),
				matchup(1, "cx", 3, 100),
				matchup(2, "dx", 2, 100),
			},
			want: 93,
		},
		{
			name: "floored at zero",
			matchups: []Matchup{
				{A: WordInName{"a", 0}, B: WordInName{"v", 4}, Score: 0},
				{A: WordInName{"b", 1}, B: WordInName{"w", 3}, Score: 0},
				{A: WordInName{"c", 2}, B: WordInName{"x", 2}, Score: 0},
				{A: WordInName{"d", 3}, B: WordInName{"y", 1}, Score: 0},
				{A: WordInName{"e", 4}, B: WordInName{"z", 0}, Score: 0},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Apply(tt.matchups))
		})
	}
}
