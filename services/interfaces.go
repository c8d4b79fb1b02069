// Package services defines the interfaces the HTTP layer (or any other
// caller) consumes. The engine implements all of them.
package services

import (
	"context"

	"github.com/talentmatch/go-match-engine/model"
)

// MatchResponse is the ranked result of one match invocation.
type MatchResponse struct {
	JobID   string              `json:"job_id"`
	K       int                 `json:"k"`
	Results []model.MatchResult `json:"results"`
	Note    string              `json:"note"`
}

// SkillExtractor detects canonical skills and their highlight spans in
// free text.
type SkillExtractor interface {
	ExtractSkills(text string) ([]string, []model.SkillSpan)
}

// ContextTermExtractor finds shared non-skill vocabulary between a job
// description and a resume, excluding the given terms and the full skill
// vocabulary.
type ContextTermExtractor interface {
	ExtractContextTerms(jobText, resumeText string, exclude []string, maxTerms int) []string
}

// Matcher ranks stored resumes against a stored job.
type Matcher interface {
	Match(ctx context.Context, jobID string, k int) (MatchResponse, error)
}

// ResumeManager covers the resume upload/read lifecycle.
type ResumeManager interface {
	UploadResume(ctx context.Context, candidateName, text string) (model.Resume, error)
	GetResume(ctx context.Context, id string) (model.Resume, error)
	ListResumes(ctx context.Context, limit, offset int) ([]model.Resume, error)
	DeleteResume(ctx context.Context, id string) error
}

// JobManager covers the job upload/read lifecycle.
type JobManager interface {
	UploadJob(ctx context.Context, title, description string, requiredSkills []string) (model.Job, error)
	GetJob(ctx context.Context, id string) (model.Job, error)
	ListJobs(ctx context.Context, limit, offset int) ([]model.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// MatchEngine is the full surface the API layer wires against.
type MatchEngine interface {
	SkillExtractor
	ContextTermExtractor
	Matcher
	ResumeManager
	JobManager

	// ReloadRegistry rebuilds the skill registry from its configured
	// source and swaps it in atomically. Returns the new vocabulary size.
	ReloadRegistry() int
}
