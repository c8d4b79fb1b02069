package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/talentmatch/go-match-engine/model"
)

// PostgresStore persists resumes and jobs in Postgres with pgvector
// embeddings. Nearest-neighbor retrieval orders by cosine distance
// (`embedding <=> query`) and reports 1 - distance, clamped to [0,1].
type PostgresStore struct {
	pool *pgxpool.Pool
	dim  int
}

// NewPostgresStore connects to dsn, registers the pgvector codec on every
// connection, and ensures the schema exists. dim is the embedding column
// width.
func NewPostgresStore(ctx context.Context, dsn string, dim int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	s := &PostgresStore{pool: pool, dim: dim}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			candidate_name TEXT,
			raw_text TEXT,
			cleaned_text TEXT NOT NULL DEFAULT '',
			skills TEXT[] NOT NULL DEFAULT '{}',
			embedding vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.dim),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description_cleaned TEXT NOT NULL DEFAULT '',
			required_skills TEXT[] NOT NULL DEFAULT '{}',
			embedding vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.dim),
		`CREATE INDEX IF NOT EXISTS resumes_embedding_idx
			ON resumes USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) SaveResume(ctx context.Context, resume model.Resume) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO resumes (id, candidate_name, raw_text, cleaned_text, skills, embedding, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			candidate_name = EXCLUDED.candidate_name,
			raw_text = EXCLUDED.raw_text,
			cleaned_text = EXCLUDED.cleaned_text,
			skills = EXCLUDED.skills,
			embedding = EXCLUDED.embedding,
			updated_at = now()`,
		resume.ID, nullable(resume.CandidateName), resume.RawText, resume.CleanedText,
		resume.Skills, embeddingValue(resume.Embedding), resume.CreatedAt, resume.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save resume %s: %w", resume.ID, err)
	}
	return nil
}

func (s *PostgresStore) GetResume(ctx context.Context, id string) (model.Resume, error) {
	var (
		resume    model.Resume
		name      *string
		embedding *pgvector.Vector
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, candidate_name, raw_text, cleaned_text, skills, embedding, created_at, updated_at
		FROM resumes WHERE id = $1`, id,
	).Scan(&resume.ID, &name, &resume.RawText, &resume.CleanedText, &resume.Skills,
		&embedding, &resume.CreatedAt, &resume.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Resume{}, ErrResumeNotFound
	}
	if err != nil {
		return model.Resume{}, fmt.Errorf("get resume %s: %w", id, err)
	}
	if name != nil {
		resume.CandidateName = *name
	}
	if embedding != nil {
		resume.Embedding = embedding.Slice()
	}
	return resume, nil
}

func (s *PostgresStore) ListResumes(ctx context.Context, limit, offset int) ([]model.Resume, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, candidate_name, cleaned_text, skills, created_at, updated_at
		FROM resumes ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		normalizeLimit(limit), max(offset, 0))
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	resumes := make([]model.Resume, 0)
	for rows.Next() {
		var (
			resume model.Resume
			name   *string
		)
		if err := rows.Scan(&resume.ID, &name, &resume.CleanedText, &resume.Skills,
			&resume.CreatedAt, &resume.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		if name != nil {
			resume.CandidateName = *name
		}
		resumes = append(resumes, resume)
	}
	return resumes, rows.Err()
}

func (s *PostgresStore) DeleteResume(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resume %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (s *PostgresStore) SaveJob(ctx context.Context, job model.Job) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO jobs (id, title, description_cleaned, required_skills, embedding, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description_cleaned = EXCLUDED.description_cleaned,
			required_skills = EXCLUDED.required_skills,
			embedding = EXCLUDED.embedding,
			updated_at = now()`,
		job.ID, job.Title, job.Description, job.RequiredSkills,
		embeddingValue(job.Embedding), job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save job %s: %w", job.ID, err)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, id string) (model.Job, error) {
	var (
		job       model.Job
		embedding *pgvector.Vector
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, description_cleaned, required_skills, embedding, created_at, updated_at
		FROM jobs WHERE id = $1`, id,
	).Scan(&job.ID, &job.Title, &job.Description, &job.RequiredSkills,
		&embedding, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Job{}, ErrJobNotFound
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("get job %s: %w", id, err)
	}
	if embedding != nil {
		job.Embedding = embedding.Slice()
	}
	return job, nil
}

func (s *PostgresStore) ListJobs(ctx context.Context, limit, offset int) ([]model.Job, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, description_cleaned, required_skills, created_at, updated_at
		FROM jobs ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		normalizeLimit(limit), max(offset, 0))
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	for rows.Next() {
		var job model.Job
		if err := rows.Scan(&job.ID, &job.Title, &job.Description, &job.RequiredSkills,
			&job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (s *PostgresStore) DeleteJob(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (s *PostgresStore) NearestResumes(ctx context.Context, embedding []float32, k int) ([]model.Candidate, error) {
	if len(embedding) == 0 || k <= 0 {
		return []model.Candidate{}, nil
	}

	query := pgvector.NewVector(embedding)
	rows, err := s.pool.Query(ctx, `
		SELECT id, candidate_name, skills, 1 - (embedding <=> $1) AS cosine
		FROM resumes
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1, id
		LIMIT $2`, query, k)
	if err != nil {
		return nil, fmt.Errorf("nearest resumes: %w", err)
	}
	defer rows.Close()

	candidates := make([]model.Candidate, 0, k)
	for rows.Next() {
		var (
			candidate model.Candidate
			name      *string
			cosine    float64
		)
		if err := rows.Scan(&candidate.ResumeID, &name, &candidate.Skills, &cosine); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		if name != nil {
			candidate.CandidateName = *name
		}
		candidate.Cosine = Clamp01(cosine)
		candidates = append(candidates, candidate)
	}
	return candidates, rows.Err()
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// embeddingValue maps an empty embedding to SQL NULL instead of an
// invalid zero-dimension vector.
func embeddingValue(embedding []float32) *pgvector.Vector {
	if len(embedding) == 0 {
		return nil
	}
	v := pgvector.NewVector(embedding)
	return &v
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 200 {
		return 200
	}
	return limit
}
