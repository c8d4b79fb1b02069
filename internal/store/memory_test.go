package store

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/talentmatch/go-match-engine/model"
)

func TestMemoryStoreResumeLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("")
	defer s.Close()

	resume := model.Resume{
		ID:            "r1",
		CandidateName: "Ada",
		Skills:        []string{"python"},
		CreatedAt:     time.Now(),
	}
	if err := s.SaveResume(ctx, resume); err != nil {
		t.Fatalf("SaveResume: %v", err)
	}

	got, err := s.GetResume(ctx, "r1")
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if got.CandidateName != "Ada" {
		t.Errorf("CandidateName = %q, want Ada", got.CandidateName)
	}

	if _, err := s.GetResume(ctx, "missing"); !errors.Is(err, ErrResumeNotFound) {
		t.Errorf("GetResume(missing) error = %v, want ErrResumeNotFound", err)
	}

	if err := s.DeleteResume(ctx, "r1"); err != nil {
		t.Fatalf("DeleteResume: %v", err)
	}
	if err := s.DeleteResume(ctx, "r1"); !errors.Is(err, ErrResumeNotFound) {
		t.Errorf("double delete error = %v, want ErrResumeNotFound", err)
	}
}

func TestMemoryStoreListOrderAndPagination(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("")

	base := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		job := model.Job{ID: id, Title: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.SaveJob(ctx, job); err != nil {
			t.Fatalf("SaveJob(%s): %v", id, err)
		}
	}

	jobs, err := s.ListJobs(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	// Newest first.
	wantOrder := []string{"c", "b", "a"}
	for i, want := range wantOrder {
		if jobs[i].ID != want {
			t.Fatalf("ListJobs order = %v, want %v", ids(jobs), wantOrder)
		}
	}

	page, err := s.ListJobs(ctx, 1, 1)
	if err != nil {
		t.Fatalf("ListJobs page: %v", err)
	}
	if len(page) != 1 || page[0].ID != "b" {
		t.Errorf("page = %v, want [b]", ids(page))
	}

	empty, err := s.ListJobs(ctx, 10, 99)
	if err != nil {
		t.Fatalf("ListJobs past end: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("past-end page has %d items, want 0", len(empty))
	}
}

func ids(jobs []model.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestMemoryStoreNearestResumes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("")

	resumes := []model.Resume{
		{ID: "exact", Embedding: []float32{1, 0}},
		{ID: "orthogonal", Embedding: []float32{0, 1}},
		{ID: "close", Embedding: []float32{1, 1}},
		{ID: "no-embedding"},
	}
	for _, r := range resumes {
		if err := s.SaveResume(ctx, r); err != nil {
			t.Fatalf("SaveResume(%s): %v", r.ID, err)
		}
	}

	got, err := s.NearestResumes(ctx, []float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("NearestResumes: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3 (resume without embedding skipped)", len(got))
	}
	if got[0].ResumeID != "exact" || got[1].ResumeID != "close" || got[2].ResumeID != "orthogonal" {
		t.Errorf("order = [%s %s %s], want [exact close orthogonal]", got[0].ResumeID, got[1].ResumeID, got[2].ResumeID)
	}
	if math.Abs(got[0].Cosine-1.0) > 1e-6 {
		t.Errorf("exact cosine = %v, want 1.0", got[0].Cosine)
	}
	if got[2].Cosine != 0.0 {
		t.Errorf("orthogonal cosine = %v, want 0.0", got[2].Cosine)
	}

	top, err := s.NearestResumes(ctx, []float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("NearestResumes k=1: %v", err)
	}
	if len(top) != 1 || top[0].ResumeID != "exact" {
		t.Errorf("k=1 = %v, want [exact]", top)
	}

	none, err := s.NearestResumes(ctx, nil, 5)
	if err != nil {
		t.Fatalf("NearestResumes empty query: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("empty query returned %d candidates, want 0", len(none))
	}
}

func TestMemoryStoreSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s := NewMemoryStore(dir)
	resume := model.Resume{ID: "r1", CandidateName: "Ada", CreatedAt: time.Now()}
	job := model.Job{ID: "j1", Title: "Engineer", CreatedAt: time.Now()}
	if err := s.SaveResume(ctx, resume); err != nil {
		t.Fatalf("SaveResume: %v", err)
	}
	if err := s.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob: %v", err)
	}
	s.Close()

	reloaded := NewMemoryStore(dir)
	if _, err := reloaded.GetResume(ctx, "r1"); err != nil {
		t.Errorf("reloaded GetResume: %v", err)
	}
	if _, err := reloaded.GetJob(ctx, "j1"); err != nil {
		t.Errorf("reloaded GetJob: %v", err)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2}, []float32{1, 2}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"empty", nil, nil, 0.0},
		{"mismatched length", []float32{1}, []float32{1, 2}, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 2}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	if got := Clamp01(-0.2); got != 0.0 {
		t.Errorf("Clamp01(-0.2) = %v, want 0", got)
	}
	if got := Clamp01(1.7); got != 1.0 {
		t.Errorf("Clamp01(1.7) = %v, want 1", got)
	}
	if got := Clamp01(0.42); got != 0.42 {
		t.Errorf("Clamp01(0.42) = %v, want 0.42", got)
	}
}
