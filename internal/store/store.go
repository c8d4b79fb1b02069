// Package store persists resumes and jobs and serves the nearest-neighbor
// lookup the matcher consumes. Two backends: an in-memory store with gob
// snapshots (dev/tests) and Postgres with pgvector (production).
package store

import (
	"context"
	"errors"
	"math"

	"github.com/talentmatch/go-match-engine/model"
)

// Sentinel errors for lookups.
var (
	ErrResumeNotFound = errors.New("resume not found")
	ErrJobNotFound    = errors.New("job not found")
)

// Store is the persistence surface the engine depends on.
type Store interface {
	SaveResume(ctx context.Context, resume model.Resume) error
	GetResume(ctx context.Context, id string) (model.Resume, error)
	ListResumes(ctx context.Context, limit, offset int) ([]model.Resume, error)
	DeleteResume(ctx context.Context, id string) error

	SaveJob(ctx context.Context, job model.Job) error
	GetJob(ctx context.Context, id string) (model.Job, error)
	ListJobs(ctx context.Context, limit, offset int) ([]model.Job, error)
	DeleteJob(ctx context.Context, id string) error

	// NearestResumes returns up to k resumes ranked by cosine similarity
	// of their embedding against the query embedding, most similar first.
	// The reported cosine is already converted to [0,1].
	NearestResumes(ctx context.Context, embedding []float32, k int) ([]model.Candidate, error)

	Close()
}

// CosineSimilarity computes the cosine of two vectors, 0.0 when either is
// empty, zero, or of mismatched length.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Clamp01 forces a similarity value into [0,1]. External distance metrics
// can produce values slightly outside the range; they are never passed
// through as-is.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0.0
	}
	if v > 1 {
		return 1.0
	}
	return v
}
