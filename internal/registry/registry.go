// Package registry holds the canonical skill vocabulary and its alias
// mapping. A Registry is immutable once built; reloads construct a fresh
// Registry and swap it atomically through a Holder, so readers never see a
// half-rebuilt vocabulary.
package registry

import (
	"encoding/json"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/talentmatch/go-match-engine/internal/tokenizer"
)

// FallbackSkills is the minimal vocabulary used when the configured source
// is missing, corrupt, or empty. Degrade, never crash: callers may assume
// the registry is never empty.
var FallbackSkills = []string{"python", "sql"}

// Term is one matchable surface form (a canonical name or an alias) with
// its canonical target, its pre-tokenized form for phrase matching, and a
// compiled case-insensitive word-boundary pattern. Pattern is nil for terms
// containing non-word runes such as "c++" or "c#", where regexp \b gives the
// wrong boundary; those terms are matched by rune scan instead.
type Term struct {
	Text      string
	Canonical string
	Tokens    []string
	Pattern   *regexp.Regexp
}

// Registry is the immutable skill vocabulary.
type Registry struct {
	canonical    []string // insertion order from the source
	canonicalSet map[string]struct{}
	aliases      map[string]string // alias -> canonical
	terms        []Term            // canonical names then aliases
}

// source mirrors the JSON registry document:
//
//	{"skills": [{"name": "javascript", "aliases": ["js", "node.js"]}, ...]}
type source struct {
	Skills []sourceEntry `json:"skills"`
}

type sourceEntry struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Parse builds a Registry from raw JSON skill definitions. It returns the
// fallback vocabulary when the data cannot be parsed or yields no canonical
// names. Names and aliases are trimmed and lowercased; empty names are
// discarded; an alias colliding with a canonical name is dropped so
// canonical names never alias each other.
func Parse(data []byte) *Registry {
	var src source
	if err := json.Unmarshal(data, &src); err != nil {
		return Fallback()
	}

	canonical := make([]string, 0, len(src.Skills))
	canonicalSet := make(map[string]struct{}, len(src.Skills))
	for _, entry := range src.Skills {
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		if name == "" {
			continue
		}
		if _, seen := canonicalSet[name]; seen {
			continue
		}
		canonical = append(canonical, name)
		canonicalSet[name] = struct{}{}
	}
	if len(canonical) == 0 {
		return Fallback()
	}

	aliases := make(map[string]string)
	for _, entry := range src.Skills {
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		if _, ok := canonicalSet[name]; !ok {
			continue
		}
		for _, alias := range entry.Aliases {
			a := strings.ToLower(strings.TrimSpace(alias))
			if a == "" {
				continue
			}
			if _, isCanonical := canonicalSet[a]; isCanonical {
				continue
			}
			aliases[a] = name
		}
	}

	return build(canonical, canonicalSet, aliases)
}

// LoadFile reads and parses the registry source at path. Any read or parse
// failure degrades to the fallback vocabulary.
func LoadFile(path string) *Registry {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fallback()
	}
	return Parse(data)
}

// Fallback returns the built-in minimal registry.
func Fallback() *Registry {
	canonical := append([]string(nil), FallbackSkills...)
	canonicalSet := make(map[string]struct{}, len(canonical))
	for _, name := range canonical {
		canonicalSet[name] = struct{}{}
	}
	return build(canonical, canonicalSet, map[string]string{})
}

func build(canonical []string, canonicalSet map[string]struct{}, aliases map[string]string) *Registry {
	terms := make([]Term, 0, len(canonical)+len(aliases))
	for _, name := range canonical {
		terms = append(terms, newTerm(name, name))
	}

	aliasKeys := make([]string, 0, len(aliases))
	for alias := range aliases {
		aliasKeys = append(aliasKeys, alias)
	}
	sort.Strings(aliasKeys) // deterministic term order regardless of map iteration
	for _, alias := range aliasKeys {
		terms = append(terms, newTerm(alias, aliases[alias]))
	}

	return &Registry{
		canonical:    canonical,
		canonicalSet: canonicalSet,
		aliases:      aliases,
		terms:        terms,
	}
}

func newTerm(text, canonical string) Term {
	term := Term{
		Text:      text,
		Canonical: canonical,
		Tokens:    tokenizer.Texts(tokenizer.Tokenize(text)),
	}
	if wordBoundarySafe(text) {
		term.Pattern = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(text) + `\b`)
	}
	return term
}

// wordBoundarySafe reports whether \b anchors behave correctly around the
// term: every rune must be a word rune or a space.
func wordBoundarySafe(text string) bool {
	for _, r := range text {
		if r == ' ' || unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			continue
		}
		return false
	}
	return true
}

// Canonicalize maps a term to its canonical skill name. Unknown terms are
// returned unchanged (after trim/lowercase normalization).
func (r *Registry) Canonicalize(term string) string {
	t := strings.ToLower(strings.TrimSpace(term))
	if canon, ok := r.aliases[t]; ok {
		return canon
	}
	return t
}

// Has reports whether name is a canonical skill.
func (r *Registry) Has(name string) bool {
	_, ok := r.canonicalSet[name]
	return ok
}

// Canonical returns the canonical names in source order. The returned
// slice is a copy.
func (r *Registry) Canonical() []string {
	return append([]string(nil), r.canonical...)
}

// Terms returns every matchable surface form: canonical names first, then
// aliases in sorted order.
func (r *Registry) Terms() []Term {
	return r.terms
}

// Len returns the number of canonical skills.
func (r *Registry) Len() int {
	return len(r.canonical)
}

// NormalizeSkills trims, lowercases, canonicalizes, and deduplicates a
// user-provided skill list, preserving first-occurrence order.
func (r *Registry) NormalizeSkills(skills []string) []string {
	normalized := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		t := strings.ToLower(strings.TrimSpace(s))
		if t == "" {
			continue
		}
		canon := r.Canonicalize(t)
		if _, dup := seen[canon]; dup {
			continue
		}
		seen[canon] = struct{}{}
		normalized = append(normalized, canon)
	}
	return normalized
}
