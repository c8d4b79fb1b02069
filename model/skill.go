package model

// SkillEntry is a single skill definition from the registry source:
// one canonical name plus zero or more alias surface forms.
// Names and aliases are stored trimmed and lowercased.
type SkillEntry struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// SkillSpan locates one occurrence of a skill inside a text.
// Start and End are rune offsets into the text the span was computed
// against (character positions, not byte positions), with Start < End.
// Text is the literal substring that matched, original casing preserved.
type SkillSpan struct {
	Skill string `json:"skill"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// TermSpan locates one occurrence of a context term inside a text.
// Offsets follow the same rune-offset convention as SkillSpan.
type TermSpan struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}
