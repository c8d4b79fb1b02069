package extract

import (
	"github.com/talentmatch/go-match-engine/internal/registry"
	"github.com/talentmatch/go-match-engine/internal/textspan"
)

// scanDetect is the whole-text detection strategy: each registry term is
// tested for presence with its compiled word-boundary pattern, or by rune
// scan for terms regexp cannot bound correctly. It reports canonical
// skills only — no offsets — which is what makes it safe to run even when
// the phrase path is disabled.
func scanDetect(reg *registry.Registry, text string) []string {
	found := make(map[string]struct{})
	for _, term := range reg.Terms() {
		if _, seen := found[term.Canonical]; seen {
			continue
		}
		var hit bool
		if term.Pattern != nil {
			hit = term.Pattern.MatchString(text)
		} else {
			hit = textspan.Contains(text, term.Text)
		}
		if hit {
			found[term.Canonical] = struct{}{}
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	return skills
}
