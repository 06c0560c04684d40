package patterns

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogsLoad(t *testing.T) {
	for _, c := range []*Catalog{Spelling(), Phonetic()} {
		require.NotNil(t, c)
		assert.NotEmpty(t, c.Patterns)
		assert.NotEmpty(t, c.Templates)
		for _, tmpl := range c.Templates {
			assert.Len(t, tmpl.Literals, 2, "template %s", tmpl.Regex)
		}
	}
	assert.Equal(t, "spelling", Spelling().Name)
	assert.Equal(t, "phonetic", Phonetic().Name)
}

func TestMatchSpellingVariants(t *testing.T) {
	words := []string{"macdonald", "mcdonald", "smith", "smyth", "philip", "filip", "browne", "brown", "jones"}
	adj := Match(words, Spelling(), 4)

	expected := [][2]string{
		{"macdonald", "mcdonald"},
		{"smith", "smyth"},
		{"philip", "filip"},
		{"browne", "brown"},
	}
	for _, pair := range expected {
		assert.Contains(t, adj[pair[0]], pair[1])
		assert.Contains(t, adj[pair[1]], pair[0])
	}
	assert.Empty(t, adj["jones"])
}

func TestMatchIsSymmetric(t *testing.T) {
	var words []string
	stems := []string{"smith", "smyth", "jon", "john", "anne", "ann", "allan", "alan", "matt", "mat", "thomas", "tomas"}
	for i, s := range stems {
		words = append(words, s, fmt.Sprintf("%s%c", s, 'a'+rune(i%5)))
	}

	for _, catalog := range []*Catalog{Spelling(), Phonetic()} {
		adj := Match(words, catalog, 3)
		for a, others := range adj {
			assert.True(t, sort.StringsAreSorted(others))
			for _, b := range others {
				assert.NotEqual(t, a, b)
				assert.Containsf(t, adj[b], a, "%s -> %s has no reverse edge", a, b)
			}
		}
	}
}

func TestMatchIsDeterministicAcrossWorkerCounts(t *testing.T) {
	words := []string{"allan", "alan", "allen", "ellen", "matt", "mat", "katie", "katy", "carl", "karl"}
	single := Match(words, Spelling(), 1)
	parallel := Match(words, Spelling(), 8)
	assert.Equal(t, single, parallel)
}

func TestTemplateAccepts(t *testing.T) {
	c, err := NewCatalog("test", []SandwichPattern{{
		Name:     "y-i",
		Prefixes: []string{""},
		Suffixes: []string{""},
		MiddleX:  "y",
		MiddleY:  "i",
	}})
	require.NoError(t, err)
	require.Len(t, c.Templates, 1)
	tmpl := c.Templates[0]

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "swapped middle", a: "ya", b: "ia", want: true},
		{name: "identical spans", a: "yak", b: "yam", want: false},
		{name: "spans too far apart", a: "yab", b: "abbbi", want: false},
		{name: "too different after substitution", a: "yxxxxxx", b: "iqqqqqq", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tmpl.Accepts(tt.a, tt.b))
		})
	}
}

func TestNewCatalogRejectsMalformedPatterns(t *testing.T) {
	valid := SandwichPattern{Name: "ok", Prefixes: []string{"a"}, Suffixes: []string{"b"}, MiddleX: "x", MiddleY: "y"}

	tests := []struct {
		name   string
		mutate func(p *SandwichPattern)
	}{
		{name: "equal middles", mutate: func(p *SandwichPattern) { p.MiddleY = p.MiddleX }},
		{name: "no prefixes", mutate: func(p *SandwichPattern) { p.Prefixes = nil }},
		{name: "no suffixes", mutate: func(p *SandwichPattern) { p.Suffixes = nil }},
		{name: "negative min length", mutate: func(p *SandwichPattern) { p.MinLength = -1 }},
		{name: "boundary inside middle", mutate: func(p *SandwichPattern) { p.MiddleX = "a-b" }},
		{name: "boundary inside prefix", mutate: func(p *SandwichPattern) { p.Prefixes = []string{"a-"} }},
		{name: "whitespace", mutate: func(p *SandwichPattern) { p.Suffixes = []string{"a b"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			_, err := NewCatalog("bad", []SandwichPattern{p})
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}

	_, err := NewCatalog("good", []SandwichPattern{valid})
	assert.NoError(t, err)
}

func TestLoadCatalogRejectsUnknownFields(t *testing.T) {
	_, err := LoadCatalog(strings.NewReader("name: x\npatterns:\n  - name: p\n    middle: a\n"))
	assert.Error(t, err)
}

func TestExpand(t *testing.T) {
	got := expand([][]string{{"a"}, {"x", "y"}, {"b"}})
	assert.Equal(t, []string{"axb", "ayb"}, got)

	got = expand([][]string{{"-m"}, {"ac", "c"}, {""}})
	assert.Equal(t, []string{"-mac", "-mc"}, got)
}
