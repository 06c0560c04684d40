// Package patterns finds word variants that differ by a known spelling or
// pronunciation confusion.
//
// A SandwichPattern names two interchangeable middles (say "ph" and "f")
// that only count when wrapped in one of the allowed prefixes and suffixes.
// Each (prefix, suffix) pair becomes a template such as `a(ph|f)e`, and each
// template expands to the literal strings it can match. Words are bucketed
// under the literals they contain, so only words that share a template are
// ever compared with each other.
package patterns

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Boundary pads both ends of a word so templates can anchor on word edges
const Boundary = "-"

// ErrInvalidPattern is returned for catalog entries that cannot be compiled
var ErrInvalidPattern = errors.New("invalid sandwich pattern")

//go:embed spelling.yaml
var spellingCatalog []byte

//go:embed phonetic.yaml
var phoneticCatalog []byte

// SandwichPattern is a known confusion between two middles that share a
// surrounding prefix and suffix
type SandwichPattern struct {
	Name      string   `yaml:"name"`
	Prefixes  []string `yaml:"prefixes"`
	Suffixes  []string `yaml:"suffixes"`
	MiddleX   string   `yaml:"middle_x"`
	MiddleY   string   `yaml:"middle_y"`
	MinLength int      `yaml:"min_length"`
}

// Template is one (prefix, suffix) instance of a pattern, compiled
type Template struct {
	Regex    string
	Prefix   string
	Suffix   string
	Pattern  *SandwichPattern
	Literals []string

	re *regexp.Regexp
}

// Catalog is a validated, compiled set of patterns
type Catalog struct {
	Name      string
	Patterns  []SandwichPattern
	Templates []*Template
}

type catalogFile struct {
	Name     string              `yaml:"name"`
	Sets     map[string][]string `yaml:"sets"`
	Patterns []SandwichPattern   `yaml:"patterns"`
}

// LoadCatalog reads a YAML catalog and compiles every template up front, so
// a malformed pattern fails here rather than during matching.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode pattern catalog: %w", err)
	}
	return NewCatalog(file.Name, file.Patterns)
}

// NewCatalog validates and compiles patterns into a catalog
func NewCatalog(name string, patterns []SandwichPattern) (*Catalog, error) {
	c := &Catalog{
		Name:     name,
		Patterns: make([]SandwichPattern, len(patterns)),
	}
	copy(c.Patterns, patterns)

	seen := make(map[string]bool)
	for i := range c.Patterns {
		p := &c.Patterns[i]
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("catalog %s, pattern %d (%s): %w", name, i, p.Name, err)
		}
		templates, err := p.templates()
		if err != nil {
			return nil, fmt.Errorf("catalog %s, pattern %d (%s): %w", name, i, p.Name, err)
		}
		for _, tmpl := range templates {
			if seen[tmpl.Regex] {
				continue
			}
			seen[tmpl.Regex] = true
			c.Templates = append(c.Templates, tmpl)
		}
	}
	return c, nil
}

func (p *SandwichPattern) validate() error {
	switch {
	case p.MiddleX == p.MiddleY:
		return fmt.Errorf("%w: middles must differ", ErrInvalidPattern)
	case len(p.Prefixes) == 0:
		return fmt.Errorf("%w: no prefix options", ErrInvalidPattern)
	case len(p.Suffixes) == 0:
		return fmt.Errorf("%w: no suffix options", ErrInvalidPattern)
	case p.MinLength < 0:
		return fmt.Errorf("%w: negative min length", ErrInvalidPattern)
	}
	fragments := make([]string, 0, 2+len(p.Prefixes)+len(p.Suffixes))
	fragments = append(fragments, p.MiddleX, p.MiddleY)
	fragments = append(fragments, p.Prefixes...)
	fragments = append(fragments, p.Suffixes...)
	for _, frag := range fragments {
		if strings.ContainsAny(frag, " \t\n") {
			return fmt.Errorf("%w: fragment %q contains whitespace", ErrInvalidPattern, frag)
		}
	}
	if strings.Contains(p.MiddleX+p.MiddleY, Boundary) {
		return fmt.Errorf("%w: boundary inside a middle", ErrInvalidPattern)
	}
	for _, prefix := range p.Prefixes {
		if strings.Contains(strings.TrimPrefix(prefix, Boundary), Boundary) {
			return fmt.Errorf("%w: boundary inside prefix %q", ErrInvalidPattern, prefix)
		}
	}
	for _, suffix := range p.Suffixes {
		if strings.Contains(strings.TrimSuffix(suffix, Boundary), Boundary) {
			return fmt.Errorf("%w: boundary inside suffix %q", ErrInvalidPattern, suffix)
		}
	}
	return nil
}

// templates builds one compiled template per (prefix, suffix) option pair
func (p *SandwichPattern) templates() ([]*Template, error) {
	var out []*Template
	for _, prefix := range p.Prefixes {
		for _, suffix := range p.Suffixes {
			alternation := []string{regexp.QuoteMeta(p.MiddleX), regexp.QuoteMeta(p.MiddleY)}
			expr := regexp.QuoteMeta(prefix) + "(" + strings.Join(alternation, "|") + ")" + regexp.QuoteMeta(suffix)

			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
			}

			parts := [][]string{{prefix}, {p.MiddleX, p.MiddleY}, {suffix}}
			out = append(out, &Template{
				Regex:    expr,
				Prefix:   prefix,
				Suffix:   suffix,
				Pattern:  p,
				Literals: expand(parts),
				re:       re,
			})
		}
	}
	return out, nil
}

// expand returns the cross product of the option lists, concatenated
func expand(parts [][]string) []string {
	combos := []string{""}
	for _, options := range parts {
		next := make([]string, 0, len(combos)*len(options))
		for _, head := range combos {
			for _, opt := range options {
				next = append(next, head+opt)
			}
		}
		combos = next
	}
	return combos
}

var (
	spellingOnce, phoneticOnce sync.Once
	spelling, phonetic         *Catalog
)

// Spelling returns the built-in catalog of spelling variants over literal words
func Spelling() *Catalog {
	spellingOnce.Do(func() {
		spelling = mustLoad(spellingCatalog)
	})
	return spelling
}

// Phonetic returns the built-in catalog of variants over phonetic forms
func Phonetic() *Catalog {
	phoneticOnce.Do(func() {
		phonetic = mustLoad(phoneticCatalog)
	})
	return phonetic
}

func mustLoad(data []byte) *Catalog {
	c, err := LoadCatalog(strings.NewReader(string(data)))
	if err != nil {
		panic(err)
	}
	return c
}
