package stream

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedLine is returned for a line that is not a valid tuple literal
var ErrMalformedLine = errors.New("malformed line")

// ScoredPair is one scored name pair
type ScoredPair struct {
	NameA string
	NameB string
	Score float64
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

// FormatCandidate renders a candidate pair as ("a", "b")
func FormatCandidate(a, b string) string {
	return "(" + quote(a) + ", " + quote(b) + ")"
}

// FormatScored renders a scored pair as ("a", "b", score). Whole scores keep
// one decimal place, e.g. 97.0.
func FormatScored(p ScoredPair) string {
	return "(" + quote(p.NameA) + ", " + quote(p.NameB) + ", " + FormatScore(p.Score) + ")"
}

// FormatScore renders a score with the shortest exact representation, always
// with a decimal point
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.Contains(s, ".") && !math.IsInf(score, 0) && !math.IsNaN(score) {
		s += ".0"
	}
	return s
}

// ParseCandidate parses a ("a", "b") line
func ParseCandidate(line string) (string, string, error) {
	fields, err := parseTuple(line)
	if err != nil {
		return "", "", err
	}
	if len(fields) != 2 || fields[0].number || fields[1].number {
		return "", "", fmt.Errorf("%w: want 2 strings: %q", ErrMalformedLine, line)
	}
	return fields[0].text, fields[1].text, nil
}

// ParseScored parses a ("a", "b", score) line
func ParseScored(line string) (ScoredPair, error) {
	fields, err := parseTuple(line)
	if err != nil {
		return ScoredPair{}, err
	}
	if len(fields) != 3 || fields[0].number || fields[1].number || !fields[2].number {
		return ScoredPair{}, fmt.Errorf("%w: want 2 strings and a score: %q", ErrMalformedLine, line)
	}
	score, err := strconv.ParseFloat(fields[2].text, 64)
	if err != nil {
		return ScoredPair{}, fmt.Errorf("%w: bad score %q", ErrMalformedLine, fields[2].text)
	}
	return ScoredPair{NameA: fields[0].text, NameB: fields[1].text, Score: score}, nil
}

type field struct {
	text   string
	number bool
}

// parseTuple reads a parenthesized, comma separated list of quoted strings
// (single or double quotes, backslash escapes) and bare numbers
func parseTuple(line string) ([]field, error) {
	s := strings.TrimSpace(line)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, fmt.Errorf("%w: not a tuple: %q", ErrMalformedLine, line)
	}
	s = s[1 : len(s)-1]

	var fields []field
	i := 0
	for {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		if i == len(s) {
			break
		}

		var f field
		var err error
		if s[i] == '"' || s[i] == '\'' {
			f.text, i, err = readQuoted(s, i)
		} else {
			f.number = true
			start := i
			for i < len(s) && s[i] != ',' && s[i] != ' ' {
				i++
			}
			f.text = s[start:i]
			if f.text == "" {
				err = fmt.Errorf("%w: empty field: %q", ErrMalformedLine, line)
			}
		}
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)

		for i < len(s) && s[i] == ' ' {
			i++
		}
		if i == len(s) {
			break
		}
		if s[i] != ',' {
			return nil, fmt.Errorf("%w: expected ',' at %d: %q", ErrMalformedLine, i, line)
		}
		i++
	}
	return fields, nil
}

func readQuoted(s string, i int) (string, int, error) {
	q := s[i]
	var b strings.Builder
	for i++; i < len(s); i++ {
		c := s[i]
		switch {
		case c == q:
			return b.String(), i + 1, nil
		case c == '\\' && i+1 < len(s):
			next := s[i+1]
			if next == '\\' || next == '"' || next == '\'' {
				b.WriteByte(next)
			} else {
				b.WriteByte(c)
				b.WriteByte(next)
			}
			i++
		default:
			b.WriteByte(c)
		}
	}
	return "", i, fmt.Errorf("%w: unterminated string: %q", ErrMalformedLine, s)
}
