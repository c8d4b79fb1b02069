package store

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/talentmatch/go-match-engine/model"
)

const (
	snapshotDirPerm = 0755
	resumesFile     = "resumes.gob"
	jobsFile        = "jobs.gob"
)

// snapshot is the on-disk form of a MemoryStore.
type snapshot struct {
	Resumes map[string]model.Resume
	Jobs    map[string]model.Job
}

// persistLocked writes both snapshot files. Caller holds the write lock.
// A store without a data directory is purely in-memory.
func (s *MemoryStore) persistLocked() error {
	if s.dataDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.dataDir, snapshotDirPerm); err != nil {
		return fmt.Errorf("create data directory %s: %w", s.dataDir, err)
	}
	if err := saveGob(filepath.Join(s.dataDir, resumesFile), s.resumes); err != nil {
		return err
	}
	return saveGob(filepath.Join(s.dataDir, jobsFile), s.jobs)
}

// loadSnapshots restores whatever snapshot files exist. Missing or
// unreadable files leave the corresponding map empty; a fresh data
// directory is not an error.
func (s *MemoryStore) loadSnapshots() {
	resumes := make(map[string]model.Resume)
	if err := loadGob(filepath.Join(s.dataDir, resumesFile), &resumes); err == nil {
		s.resumes = resumes
	}
	jobs := make(map[string]model.Job)
	if err := loadGob(filepath.Join(s.dataDir, jobsFile), &jobs); err == nil {
		s.jobs = jobs
	}
}

func saveGob(path string, data interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("encode snapshot %s: %w", path, err)
	}
	return nil
}

func loadGob(path string, target interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(target); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return nil
}
