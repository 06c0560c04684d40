// Package nicknames holds a static table of informal given-name equivalences
package nicknames

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed nicknames.yaml
var builtinTable []byte

// Table maps a name to the names it is interchangeable with
type Table struct {
	sets map[string]map[string]struct{}
}

type tableFile struct {
	Groups [][]string `yaml:"groups"`
}

// Load reads a YAML table of equivalence groups
func Load(r io.Reader) (*Table, error) {
	var file tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode nickname table: %w", err)
	}

	t := &Table{sets: make(map[string]map[string]struct{})}
	for i, group := range file.Groups {
		if len(group) < 2 {
			return nil, fmt.Errorf("nickname group %d has fewer than two names", i)
		}
		for _, raw := range group {
			name := strings.ToLower(strings.TrimSpace(raw))
			if name == "" || strings.ContainsAny(name, " \t") {
				return nil, fmt.Errorf("nickname group %d has invalid name %q", i, raw)
			}
		}
		for _, a := range group {
			a = strings.ToLower(strings.TrimSpace(a))
			set, ok := t.sets[a]
			if !ok {
				set = make(map[string]struct{})
				t.sets[a] = set
			}
			for _, b := range group {
				b = strings.ToLower(strings.TrimSpace(b))
				if b != a {
					set[b] = struct{}{}
				}
			}
		}
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the built-in table. The embedded data is validated the
// first time it is used; a malformed table is a build defect and panics.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(strings.NewReader(string(builtinTable)))
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}

// Set returns the nicknames of name, sorted. The name itself is not included.
func (t *Table) Set(name string) []string {
	set := t.sets[name]
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether b is a nickname of a
func (t *Table) Contains(a, b string) bool {
	_, ok := t.sets[a][b]
	return ok
}

// Len returns the number of names in the table
func (t *Table) Len() int {
	return len(t.sets)
}
