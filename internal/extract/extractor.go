// Package extract finds registry skills inside free text. Two detection
// strategies run behind one extractor: phrase matching over tokenized text
// (the primary path, the only producer of offset spans) and a whole-text
// word-boundary scan (the supplement/fallback path, presence only).
//
// Merge rule: the final skill set is the union of both paths; the final
// span list is the phrase-matcher spans filtered to skills present in the
// final set.
package extract

import (
	"sort"

	"github.com/talentmatch/go-match-engine/internal/registry"
	"github.com/talentmatch/go-match-engine/model"
)

// Extractor detects skills in text against a Registry.
type Extractor struct {
	phraseEnabled bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithoutPhraseMatching disables the phrase strategy, leaving only the
// boundary-scan path. Detection still works; spans are no longer produced.
// This models the degraded mode explicitly instead of as an error path.
func WithoutPhraseMatching() Option {
	return func(e *Extractor) { e.phraseEnabled = false }
}

// New creates an Extractor with the phrase strategy enabled.
func New(opts ...Option) *Extractor {
	e := &Extractor{phraseEnabled: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the sorted, deduplicated canonical skills found in text
// and the spans locating each phrase-matched occurrence. Empty text or an
// empty registry yields empty (non-nil) results.
func (e *Extractor) Extract(reg *registry.Registry, text string) ([]string, []model.SkillSpan) {
	skills := make([]string, 0)
	spans := make([]model.SkillSpan, 0)
	if text == "" || reg == nil || reg.Len() == 0 {
		return skills, spans
	}

	found := make(map[string]struct{})

	if e.phraseEnabled {
		var phraseSkills map[string]struct{}
		phraseSkills, spans = phraseDetect(reg, text)
		for skill := range phraseSkills {
			found[skill] = struct{}{}
		}
	}

	// The scan path supplements the phrase path and is the sole detector
	// in degraded mode.
	for _, skill := range scanDetect(reg, text) {
		found[skill] = struct{}{}
	}

	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	// Defensive consistency: drop spans whose skill did not survive the
	// merge. With a union merge this keeps every produced span, but the
	// contract is enforced rather than assumed.
	kept := spans[:0]
	for _, span := range spans {
		if _, ok := found[span.Skill]; ok {
			kept = append(kept, span)
		}
	}
	return skills, kept
}

// SortSpans orders spans by start offset ascending (end offset, then skill
// name as tie-breaks) for rendering. Extraction order is term order; the
// rendering order is imposed here.
func SortSpans(spans []model.SkillSpan) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		if spans[i].End != spans[j].End {
			return spans[i].End < spans[j].End
		}
		return spans[i].Skill < spans[j].Skill
	})
}
