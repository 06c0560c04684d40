// Package normalize turns raw personal-name strings into cleaned names:
// lowercase ASCII tokens separated by single spaces, with titles, suffixes,
// relations and common abbreviations dealt with.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/compare-names/internal/debug"
)

// Blank is the cleaned form of a name that has nothing left in it
const Blank = "_"

var (
	reSpaces     = regexp.MustCompile(` +`)
	rePunct      = regexp.MustCompile(`[.,?;"*()]`)
	reApostrophe = regexp.MustCompile(`' +`)
	reInLaw      = regexp.MustCompile(` in law`)
	reRoman      = regexp.MustCompile(`\b(ii|iii|iv)\b`)
)

// wholeTokenRemovals are dropped only where they stand as words
var wholeTokenRemovals = compileTokens(
	"jr", "sr",
	"prof", "mr", "mrs", "ms", "dr", "student", "rev",
	"sister", "brother", "mother", "father",
)

// substringRemovals are dropped wherever they occur, inside words too.
// The asymmetry with wholeTokenRemovals is long-standing behaviour.
var substringRemovals = []string{
	"junior", "senior",
	"professor", "mister", "missus", "doctor",
	"reverend",
}

// abbreviations expands the usual clerk shorthands for given names
var abbreviations = map[string]string{
	"wm":   "william",
	"geo":  "george",
	"chas": "charles",
	"thos": "thomas",
	"jas":  "james",
	"jno":  "john",
	"robt": "robert",
	"jos":  "joseph",
	"benj": "benjamin",
}

// dutchPrefixes fuse multi-word surname prefixes into one token
var dutchPrefixes = []struct {
	re   *regexp.Regexp
	with string
}{
	{regexp.MustCompile(`\bvan de`), "vande"},
	{regexp.MustCompile(`\bvan den`), "vanden"},
	{regexp.MustCompile(`\bvan der`), "vander"},
}

func compileTokens(tokens ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(tokens))
	for _, tok := range tokens {
		res = append(res, regexp.MustCompile(`\b`+regexp.QuoteMeta(tok)+`\b`))
	}
	return res
}

// CleanName normalizes one raw name. It never fails: anything that cleans
// down to nothing becomes Blank.
func CleanName(raw string) string {
	return CleanNameDebug(false, raw)
}

// CleanValue cleans an arbitrary value; anything but a string is Blank.
func CleanValue(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return Blank
	}
	return CleanName(s)
}

// CleanNameDebug normalizes a name with optional debug output
func CleanNameDebug(localDebug bool, raw string) string {
	debug.DebugHeader(localDebug)
	defer debug.DebugFooter(localDebug)

	// Removals can join the pieces around them into a new removable word,
	// so clean until nothing changes. Later passes only remove text or expand
	// a shorthand once, so the loop ends.
	name := cleanOnce(localDebug, raw)
	for pass := 2; name != Blank; pass++ {
		again := cleanOnce(false, name)
		if again == name {
			break
		}
		debug.DebugOutput(localDebug, "Pass %d changed %q to %q", pass, name, again)
		name = again
	}
	return name
}

func cleanOnce(localDebug bool, raw string) string {
	if raw == "" {
		return Blank
	}

	name := strings.Map(func(r rune) rune {
		if r != ' ' && unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, raw)
	name = collapse(name)

	name = strings.ToLower(Transliterate(name))
	if name == "" {
		return Blank
	}
	debug.DebugOutput(localDebug, "Transliterated: %s", name)

	name = rePunct.ReplaceAllString(name, "")
	name = reApostrophe.ReplaceAllString(name, "'")

	for _, re := range wholeTokenRemovals {
		name = re.ReplaceAllString(name, "")
	}
	for _, s := range substringRemovals {
		name = strings.ReplaceAll(name, s, "")
	}
	name = reInLaw.ReplaceAllLiteralString(name, " ")
	name = strings.ReplaceAll(name, "head of household", "")
	name = strings.ReplaceAll(name, "no suffix", "")
	debug.DebugOutput(localDebug, "After removals: %s", name)

	words := strings.Fields(name)
	kept := words[:0]
	for _, word := range words {
		if full, ok := abbreviations[word]; ok {
			word = full
		}
		word = reRoman.ReplaceAllString(word, "")
		if word == "" || word == "the" {
			continue
		}
		kept = append(kept, word)
	}
	name = strings.Join(kept, " ")
	debug.DebugOutput(localDebug, "After abbreviations: %s", name)

	for _, p := range dutchPrefixes {
		name = p.re.ReplaceAllString(name, p.with)
	}

	name = collapse(name)
	if name == "" {
		return Blank
	}
	debug.DebugOutput(localDebug, "Final cleaned: %s", name)
	return name
}

func collapse(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// CleanAll cleans every name and drops duplicates, keeping first-seen order
func CleanAll(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		name := CleanName(r)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Words splits a cleaned name into its words
func Words(name string) []string {
	return strings.Fields(name)
}

// IsBlank reports whether a raw name cleans down to nothing
func IsBlank(raw string) bool {
	return CleanName(raw) == Blank
}
