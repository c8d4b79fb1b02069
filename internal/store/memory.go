package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/talentmatch/go-match-engine/model"
)

// MemoryStore keeps resumes and jobs in maps guarded by a RWMutex. It
// optionally snapshots to gob files in a data directory, reloaded on
// construction.
type MemoryStore struct {
	mu      sync.RWMutex
	resumes map[string]model.Resume
	jobs    map[string]model.Job
	dataDir string // empty disables snapshots
}

// NewMemoryStore creates a MemoryStore. If dataDir is non-empty, existing
// snapshots in it are loaded and every mutation rewrites them.
func NewMemoryStore(dataDir string) *MemoryStore {
	s := &MemoryStore{
		resumes: make(map[string]model.Resume),
		jobs:    make(map[string]model.Job),
		dataDir: dataDir,
	}
	if dataDir != "" {
		s.loadSnapshots()
	}
	return s
}

func (s *MemoryStore) SaveResume(_ context.Context, resume model.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes[resume.ID] = resume
	return s.persistLocked()
}

func (s *MemoryStore) GetResume(_ context.Context, id string) (model.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resume, ok := s.resumes[id]
	if !ok {
		return model.Resume{}, ErrResumeNotFound
	}
	return resume, nil
}

func (s *MemoryStore) ListResumes(_ context.Context, limit, offset int) ([]model.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]model.Resume, 0, len(s.resumes))
	for _, resume := range s.resumes {
		all = append(all, resume)
	}
	sortByCreation(all, func(r model.Resume) (time.Time, string) { return r.CreatedAt, r.ID })
	return paginate(all, limit, offset), nil
}

func (s *MemoryStore) DeleteResume(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resumes[id]; !ok {
		return ErrResumeNotFound
	}
	delete(s.resumes, id)
	return s.persistLocked()
}

func (s *MemoryStore) SaveJob(_ context.Context, job model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
	return s.persistLocked()
}

func (s *MemoryStore) GetJob(_ context.Context, id string) (model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return model.Job{}, ErrJobNotFound
	}
	return job, nil
}

func (s *MemoryStore) ListJobs(_ context.Context, limit, offset int) ([]model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]model.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		all = append(all, job)
	}
	sortByCreation(all, func(j model.Job) (time.Time, string) { return j.CreatedAt, j.ID })
	return paginate(all, limit, offset), nil
}

func (s *MemoryStore) DeleteJob(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return ErrJobNotFound
	}
	delete(s.jobs, id)
	return s.persistLocked()
}

// NearestResumes scans every stored resume with an embedding, ranks by
// cosine similarity descending (resume ID ascending on ties, for
// deterministic output), and returns the top k.
func (s *MemoryStore) NearestResumes(_ context.Context, embedding []float32, k int) ([]model.Candidate, error) {
	if len(embedding) == 0 || k <= 0 {
		return []model.Candidate{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]model.Candidate, 0, len(s.resumes))
	for _, resume := range s.resumes {
		if len(resume.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, model.Candidate{
			ResumeID:      resume.ID,
			CandidateName: resume.CandidateName,
			Skills:        append([]string(nil), resume.Skills...),
			Cosine:        Clamp01(CosineSimilarity(embedding, resume.Embedding)),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Cosine != candidates[j].Cosine {
			return candidates[i].Cosine > candidates[j].Cosine
		}
		return candidates[i].ResumeID < candidates[j].ResumeID
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

func (s *MemoryStore) Close() {}

func sortByCreation[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj) // newest first, matching the list endpoints
		}
		return idi < idj
	})
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
