// Package scoring combines embedding similarity with skill-set overlap
// into the composite ranking score. Everything here is a pure function of
// its inputs.
package scoring

import "sort"

// Weights of the composite score. Fixed design constants: results must be
// reproducible given the same inputs.
const (
	CosineWeight  = 0.7
	OverlapWeight = 0.3
)

// Result is the scorer output for one candidate.
type Result struct {
	SkillsOverlap  float64
	CompositeScore float64
	MatchedSkills  []string
	MissingSkills  []string
}

// Jaccard returns |a ∩ b| / |a ∪ b| over two skill sets, and 0.0 when both
// are empty. An empty first set also yields 0.0 (the intersection is
// empty), so a job with no required skills never reads as a perfect
// overlap.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0.0
	}

	inter := 0
	for skill := range setA {
		if _, ok := setB[skill]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// Score computes the overlap, composite score, and matched/missing skill
// lists for one candidate. Cosine is expected in [0,1], already converted
// from whatever distance metric the embedding layer uses. Matched and
// missing are sorted and deduplicated.
func Score(cosine float64, required, candidate []string) Result {
	requiredSet := toSet(required)
	candidateSet := toSet(candidate)

	matched := make([]string, 0)
	missing := make([]string, 0)
	for skill := range requiredSet {
		if _, ok := candidateSet[skill]; ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	overlap := 0.0
	if len(requiredSet) > 0 {
		overlap = Jaccard(required, candidate)
	}

	return Result{
		SkillsOverlap:  overlap,
		CompositeScore: CosineWeight*cosine + OverlapWeight*overlap,
		MatchedSkills:  matched,
		MissingSkills:  missing,
	}
}

func toSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}
