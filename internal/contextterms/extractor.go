// Package contextterms mines non-skill vocabulary shared between a job
// description and a resume, for supplementary match evidence. It depends on
// an optional part-of-speech tagger; without one it returns no terms, which
// callers treat as an acceptable empty result rather than an error.
package contextterms

import (
	"sort"
	"strings"
	"unicode"

	"github.com/talentmatch/go-match-engine/internal/nlp"
	"github.com/talentmatch/go-match-engine/internal/registry"
	"github.com/talentmatch/go-match-engine/internal/textspan"
	"github.com/talentmatch/go-match-engine/model"
)

const (
	// DefaultMaxTerms caps the number of context terms returned.
	DefaultMaxTerms = 20

	minPhraseLen = 3
	maxPhraseLen = 60
	minWordLen   = 3
)

// Extractor finds overlapping context terms between two texts.
type Extractor struct {
	tagger nlp.Tagger // nil means the capability is absent
}

// New creates an Extractor. A nil tagger is allowed and produces an
// extractor that always returns empty term lists.
func New(tagger nlp.Tagger) *Extractor {
	return &Extractor{tagger: tagger}
}

// Available reports whether the tagging capability is present.
func (e *Extractor) Available() bool {
	return e.tagger != nil
}

// Terms returns shared non-skill vocabulary between jobText and
// resumeText. The exclude list plus the registry's full vocabulary
// (canonical names and aliases) never appear in the result. Terms are
// ranked longest first (length is a rough specificity signal), ties broken
// alphabetically, truncated to maxTerms (DefaultMaxTerms when <= 0).
func (e *Extractor) Terms(reg *registry.Registry, jobText, resumeText string, exclude []string, maxTerms int) []string {
	if e.tagger == nil || jobText == "" || resumeText == "" {
		return []string{}
	}
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}

	jobTerms := e.candidateTerms(jobText)
	resumeTerms := e.candidateTerms(resumeText)

	excluded := make(map[string]struct{}, len(exclude))
	for _, term := range exclude {
		excluded[strings.ToLower(strings.TrimSpace(term))] = struct{}{}
	}
	if reg != nil {
		for _, term := range reg.Terms() {
			excluded[term.Text] = struct{}{}
		}
	}

	shared := make([]string, 0)
	for term := range jobTerms {
		if _, inResume := resumeTerms[term]; !inResume {
			continue
		}
		if _, skip := excluded[term]; skip {
			continue
		}
		shared = append(shared, term)
	}

	sort.Slice(shared, func(i, j int) bool {
		if len(shared[i]) != len(shared[j]) {
			return len(shared[i]) > len(shared[j])
		}
		return shared[i] < shared[j]
	})
	if len(shared) > maxTerms {
		shared = shared[:maxTerms]
	}
	return shared
}

// Spans locates every word-boundary occurrence of the given terms in text.
// Terms that never occur literally (lemmatization drift) yield no spans;
// that imprecision is accepted. Spans are ordered by start offset.
func (e *Extractor) Spans(text string, terms []string) []model.TermSpan {
	spans := make([]model.TermSpan, 0)
	if text == "" || len(terms) == 0 {
		return spans
	}
	for _, term := range terms {
		for _, occ := range textspan.FindAll(text, term) {
			spans = append(spans, model.TermSpan{Text: occ.Text, Start: occ.Start, End: occ.End})
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
	return spans
}

// candidateTerms generates the per-text term set: multi-token noun phrases
// plus lemmatized single content words (noun, proper noun, adjective).
func (e *Extractor) candidateTerms(text string) map[string]struct{} {
	terms := make(map[string]struct{})
	tokens, err := e.tagger.Tag(text)
	if err != nil {
		// Tagging failure degrades to no terms for this text.
		return terms
	}

	for _, phrase := range nounPhrases(tokens) {
		if len(phrase) >= minPhraseLen && len(phrase) <= maxPhraseLen && !isNumeric(phrase) {
			terms[phrase] = struct{}{}
		}
	}

	for _, tok := range tokens {
		if !nlp.IsNounLike(tok.Tag) && !nlp.IsAdjective(tok.Tag) {
			continue
		}
		lower := strings.ToLower(tok.Text)
		if len(lower) < minWordLen || !isAlphabetic(lower) || stopWords[lower] {
			continue
		}
		terms[tok.Lemma] = struct{}{}
	}
	return terms
}

// nounPhrases chunks consecutive adjective/noun tokens into phrases ending
// in a noun, keeping only multi-word chunks; single words are handled by
// the content-word pass.
func nounPhrases(tokens []nlp.TaggedToken) []string {
	phrases := make([]string, 0)
	var run []string
	nouns := 0

	flush := func() {
		// Trim trailing adjectives so the phrase ends in a noun.
		end := len(run)
		for end > 0 {
			if lastIsNoun(run[end-1]) {
				break
			}
			end--
		}
		if end >= 2 && nouns > 0 {
			phrases = append(phrases, strings.Join(stripMarkers(run[:end]), " "))
		}
		run = run[:0]
		nouns = 0
	}

	for _, tok := range tokens {
		switch {
		case nlp.IsNounLike(tok.Tag):
			run = append(run, "n:"+strings.ToLower(tok.Text))
			nouns++
		case nlp.IsAdjective(tok.Tag):
			run = append(run, "a:"+strings.ToLower(tok.Text))
		default:
			flush()
		}
	}
	flush()
	return phrases
}

func lastIsNoun(marked string) bool {
	return strings.HasPrefix(marked, "n:")
}

func stripMarkers(marked []string) []string {
	words := make([]string, len(marked))
	for i, m := range marked {
		words[i] = m[2:]
	}
	return words
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	seen := false
	for _, r := range s {
		if r == ' ' || r == '.' || r == ',' {
			continue
		}
		if !unicode.IsDigit(r) {
			return false
		}
		seen = true
	}
	return seen
}
