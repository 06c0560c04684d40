package similarity

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 100},
		{"smith", "smith", 100},
		{"john", "jon", 100 * 6.0 / 7.0},
		{"abc", "xyz", 0},
		{"a", "", 0},
		{"kitten", "sitting", 100 * 8.0 / 13.0},
		{"ʤon", "ʤan", 100 * 4.0 / 6.0},
	}

	for _, tt := range tests {
		got := Ratio(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if back := Ratio(tt.b, tt.a); math.Abs(back-got) > 1e-9 {
			t.Errorf("Ratio is not symmetric for %q, %q: %v vs %v", tt.a, tt.b, got, back)
		}
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"j", "john", 100},
		{"john", "johnson", 100},
		{"", "john", 0},
		{"abc", "abd", 100 * 4.0 / 6.0},
		{"xy", "abcd", 0},
	}

	for _, tt := range tests {
		got := PartialRatio(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PartialRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMaxDistanceFor(t *testing.T) {
	if got := MaxDistanceFor(8, 75); got != 2 {
		t.Errorf("MaxDistanceFor(8, 75) = %d, want 2", got)
	}
	if got := MaxDistanceFor(3, 75); got != 0 {
		t.Errorf("MaxDistanceFor(3, 75) = %d, want 0", got)
	}
}
