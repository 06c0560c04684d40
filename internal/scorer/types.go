package scorer

import "math"

// WordInName is a word together with its position in the name
type WordInName struct {
	Text  string
	Index int
}

// Matchup pairs a word of name A with a word of name B
type Matchup struct {
	A     WordInName
	B     WordInName
	Score float64 // 0-100
}

// Band penalizes every matchup whose score falls in (Above, AtMost]
type Band struct {
	Above  float64
	AtMost float64
	Few    float64 // applied when the pair has at most FewMatchups matchups
	Many   float64
}

// Contains reports whether score falls in the band
func (b Band) Contains(score float64) bool {
	return score > b.Above && score <= b.AtMost
}

// Penalties holds the constants of the confidence model
type Penalties struct {
	Start          float64 // 100
	NoFullWords    float64 // no matchup where both words are longer than one letter
	OneFullWord    float64 // exactly one such matchup
	OrderViolation float64 // applied once
	FewMatchups    int     // 2
	Bands          []Band
}

// DefaultPenalties returns the standard confidence model
func DefaultPenalties() *Penalties {
	return &Penalties{
		Start:          100,
		NoFullWords:    40,
		OneFullWord:    20,
		OrderViolation: 7,
		FewMatchups:    2,
		Bands: []Band{
			{Above: 75, AtMost: 83, Few: 5, Many: 3},
			{Above: 60, AtMost: 75, Few: 9, Many: 5},
			{Above: math.Inf(-1), AtMost: 60, Few: 20, Many: 12},
		},
	}
}
