package phonetics

import (
	"testing"
)

func TestTranscribe(t *testing.T) {
	tr := NewTranscriber(0)

	tests := []struct {
		name string
		word string
		want string
	}{
		{name: "dictionary hit", word: "smith", want: "smɪθ"},
		{name: "segmented with digraph", word: "bath", want: "bæθ"},
		{name: "word part covers whole word", word: "jon", want: "ʤɑn"},
		{name: "single letters only", word: "bob", want: "bob"},
		{name: "doubled consonant collapses", word: "abba", want: "æbæ"},
		{name: "upper case and accents", word: "Bäth", want: "bæθ"},
		{name: "empty", word: "", want: "_"},
		{name: "nothing pronounceable", word: "'", want: "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Transcribe(tt.word); got != tt.want {
				t.Errorf("Transcribe(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestTranscribeDeterministicAndTotal(t *testing.T) {
	cached := NewTranscriber(16)
	uncached := NewTranscriber(0)

	words := []string{"john", "jon", "smyth", "vanderberg", "o'brien", "x", "zzzz", "mcdonald", "schwarz", "_"}
	for _, w := range words {
		first := cached.Transcribe(w)
		second := cached.Transcribe(w)
		fresh := uncached.Transcribe(w)

		if first == "" {
			t.Errorf("Transcribe(%q) returned an empty form", w)
		}
		if first != second || first != fresh {
			t.Errorf("Transcribe(%q) not deterministic: %q, %q, %q", w, first, second, fresh)
		}
	}
}

func TestSplitsTh(t *testing.T) {
	letters := []rune("kathy")

	tests := []struct {
		i, j int
		want bool
	}{
		{1, 3, true},  // "at" ends on the t of "th"
		{3, 5, true},  // "hy" starts on the h of "th"
		{2, 4, false}, // "th" itself
		{0, 2, false},
	}

	for _, tt := range tests {
		if got := splitsTh(letters, tt.i, tt.j); got != tt.want {
			t.Errorf("splitsTh(kathy, %d, %d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"ssmɪθ", "smɪθ"},
		{"bɛɛn", "bin"},
		{"ɪɪ", "ɪ"},
		{"kɪŋg", "kɪŋ"},
		{"a,b", "ab"},
		{"", "_"},
		{",", "_"},
	}

	for _, tt := range tests {
		if got := Clean(tt.input); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	tr := NewTranscriber(8)
	if !tr.Match("john", "jon") {
		t.Errorf("expected john and jon to share a phonetic form")
	}
	if tr.Match("john", "smith") {
		t.Errorf("did not expect john and smith to share a phonetic form")
	}
}
