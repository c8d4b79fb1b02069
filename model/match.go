package model

// MatchResult is one ranked candidate in a match response.
// Cosine is the externally supplied embedding similarity already converted
// to [0,1]; SkillsOverlap is the Jaccard overlap between required and
// candidate skills; CompositeScore blends the two and drives the ranking.
// MatchedSkills and MissingSkills are sorted and deduplicated.
type MatchResult struct {
	ResumeID           string      `json:"resume_id"`
	CandidateName      string      `json:"candidate_name,omitempty"`
	Cosine             float64     `json:"cosine"`
	SkillsOverlap      float64     `json:"skills_overlap"`
	CompositeScore     float64     `json:"composite_score"`
	MatchedSkills      []string    `json:"matched_skills"`
	MissingSkills      []string    `json:"missing_skills"`
	MatchedSpans       []SkillSpan `json:"matched_spans"`
	ContextTerms       []string    `json:"context_terms"`
	ContextJobSpans    []TermSpan  `json:"context_job_spans"`
	ContextResumeSpans []TermSpan  `json:"context_resume_spans"`
}

// Candidate is one entry of the top-K list produced by the nearest-neighbor
// lookup: resume identity, its stored skill set, and the cosine similarity
// of its embedding against the job embedding.
type Candidate struct {
	ResumeID      string   `json:"resume_id"`
	CandidateName string   `json:"candidate_name,omitempty"`
	Skills        []string `json:"skills"`
	Cosine        float64  `json:"cosine"`
}
