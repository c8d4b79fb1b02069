package model

import "time"

// Resume is a stored candidate resume: cleaned text, extracted skills,
// and the embedding of the cleaned text.
type Resume struct {
	ID            string    `json:"resume_id"`
	CandidateName string    `json:"candidate_name,omitempty"`
	RawText       string    `json:"raw_text,omitempty"`
	CleanedText   string    `json:"cleaned_text"`
	Skills        []string  `json:"skills"`
	Embedding     []float32 `json:"embedding,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Job is a stored job posting: cleaned description, the required skill
// set (given or extracted), and the embedding of the cleaned description.
type Job struct {
	ID             string    `json:"job_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	RequiredSkills []string  `json:"required_skills"`
	Embedding      []float32 `json:"embedding,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
