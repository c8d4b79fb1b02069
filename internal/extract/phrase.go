package extract

import (
	"github.com/talentmatch/go-match-engine/internal/registry"
	"github.com/talentmatch/go-match-engine/internal/textspan"
	"github.com/talentmatch/go-match-engine/internal/tokenizer"
	"github.com/talentmatch/go-match-engine/model"
)

// phraseDetect matches registry terms as token sequences against the
// tokenized text, so multi-word skills ("machine learning") match as a
// unit regardless of the separator between the words. Terms whose surface
// form carries non-word runes ("c++", "c#") lose information under
// tokenization and are located by literal boundary scan instead; both
// routes yield precise rune-offset spans.
//
// Overlapping occurrences of different skills at the same location are all
// retained as separate spans; merging for display is a rendering concern.
func phraseDetect(reg *registry.Registry, text string) (map[string]struct{}, []model.SkillSpan) {
	found := make(map[string]struct{})
	spans := make([]model.SkillSpan, 0)

	tokens := tokenizer.Tokenize(text)
	runes := []rune(text)

	for _, term := range reg.Terms() {
		if term.Pattern == nil {
			// Symbol-bearing term: literal scan with boundary checks.
			for _, occ := range textspan.FindAll(text, term.Text) {
				found[term.Canonical] = struct{}{}
				spans = append(spans, model.SkillSpan{
					Skill: term.Canonical,
					Text:  occ.Text,
					Start: occ.Start,
					End:   occ.End,
				})
			}
			continue
		}

		if len(term.Tokens) == 0 {
			continue
		}
		for i := 0; i+len(term.Tokens) <= len(tokens); i++ {
			if !tokensMatchAt(tokens, term.Tokens, i) {
				continue
			}
			start := tokens[i].Start
			end := tokens[i+len(term.Tokens)-1].End
			found[term.Canonical] = struct{}{}
			spans = append(spans, model.SkillSpan{
				Skill: term.Canonical,
				Text:  string(runes[start:end]),
				Start: start,
				End:   end,
			})
		}
	}

	return found, spans
}

func tokensMatchAt(tokens []tokenizer.Token, want []string, pos int) bool {
	for j, text := range want {
		if tokens[pos+j].Text != text {
			return false
		}
	}
	return true
}
