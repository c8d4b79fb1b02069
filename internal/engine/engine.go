// Package engine wires the registry, extractors, scorer, matcher, store,
// and embedder into the service surface the API layer consumes.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/config"
	"github.com/talentmatch/go-match-engine/internal/contextterms"
	"github.com/talentmatch/go-match-engine/internal/embedding"
	"github.com/talentmatch/go-match-engine/internal/extract"
	"github.com/talentmatch/go-match-engine/internal/matcher"
	"github.com/talentmatch/go-match-engine/internal/nlp"
	"github.com/talentmatch/go-match-engine/internal/registry"
	"github.com/talentmatch/go-match-engine/internal/store"
	"github.com/talentmatch/go-match-engine/internal/textclean"
	"github.com/talentmatch/go-match-engine/model"
	"github.com/talentmatch/go-match-engine/services"
)

// Engine implements services.MatchEngine.
type Engine struct {
	settings  *config.Settings
	registry  *registry.Holder
	extractor *extract.Extractor
	context   *contextterms.Extractor
	matcher   *matcher.Service
	store     store.Store
	embedder  embedding.Embedder
	logger    *zap.Logger
}

var _ services.MatchEngine = (*Engine)(nil)

// New builds an Engine. tagger may be nil: context-term extraction then
// degrades to empty results while skill matching keeps working.
func New(settings *config.Settings, st store.Store, embedder embedding.Embedder, tagger nlp.Tagger, logger *zap.Logger) (*Engine, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	holder := registry.NewHolder(loadRegistry(settings.Registry.Path, logger))
	extractor := extract.New()
	ctxTerms := contextterms.New(tagger)

	matchService, err := matcher.NewService(
		extractor, ctxTerms, &resumeTextFetcher{store: st},
		settings.Match.MaxK, settings.Match.MaxContextTerms, logger,
	)
	if err != nil {
		return nil, fmt.Errorf("create matcher: %w", err)
	}

	return &Engine{
		settings:  settings,
		registry:  holder,
		extractor: extractor,
		context:   ctxTerms,
		matcher:   matchService,
		store:     st,
		embedder:  embedder,
		logger:    logger,
	}, nil
}

func loadRegistry(path string, logger *zap.Logger) *registry.Registry {
	if path == "" {
		logger.Info("no skill registry configured, using fallback vocabulary")
		return registry.Fallback()
	}
	reg := registry.LoadFile(path)
	logger.Info("skill registry loaded", zap.String("path", path), zap.Int("skills", reg.Len()))
	return reg
}

// Registry returns the current immutable registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry.Get()
}

// ReloadRegistry rebuilds the registry from its configured source and
// swaps it in. Degrades to the fallback vocabulary on failure.
func (e *Engine) ReloadRegistry() int {
	path := e.settings.Registry.Path
	var reg *registry.Registry
	if path == "" {
		reg = registry.Fallback()
		e.registry.Swap(reg)
	} else {
		reg = e.registry.ReloadFile(path)
	}
	e.logger.Info("skill registry reloaded", zap.Int("skills", reg.Len()))
	return reg.Len()
}

// ExtractSkills implements services.SkillExtractor. Spans are returned in
// rendering order (start offset ascending).
func (e *Engine) ExtractSkills(text string) ([]string, []model.SkillSpan) {
	skills, spans := e.extractor.Extract(e.registry.Get(), text)
	extract.SortSpans(spans)
	return skills, spans
}

// ExtractContextTerms implements services.ContextTermExtractor.
func (e *Engine) ExtractContextTerms(jobText, resumeText string, exclude []string, maxTerms int) []string {
	if maxTerms <= 0 {
		maxTerms = e.settings.Match.MaxContextTerms
	}
	return e.context.Terms(e.registry.Get(), jobText, resumeText, exclude, maxTerms)
}

// UploadResume cleans the text, extracts skills, embeds, and stores the
// resume. An embedding failure degrades to a zero vector so the resume is
// still stored and findable by skills.
func (e *Engine) UploadResume(ctx context.Context, candidateName, text string) (model.Resume, error) {
	cleaned := textclean.Clean(text)
	skills, _ := e.extractor.Extract(e.registry.Get(), cleaned)

	vector, err := e.embedder.Embed(ctx, cleaned)
	if err != nil {
		e.logger.Warn("embedding failed, storing zero vector", zap.Error(err))
		vector = make([]float32, e.embedder.Dim())
	}

	now := time.Now().UTC()
	resume := model.Resume{
		ID:            uuid.NewString(),
		CandidateName: candidateName,
		RawText:       text,
		CleanedText:   cleaned,
		Skills:        skills,
		Embedding:     vector,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := e.store.SaveResume(ctx, resume); err != nil {
		return model.Resume{}, fmt.Errorf("store resume: %w", err)
	}

	e.logger.Info("resume uploaded",
		zap.String("resume_id", resume.ID),
		zap.Int("skills", len(skills)),
		zap.Int("cleaned_len", len(cleaned)))
	return resume, nil
}

// UploadJob cleans the description and stores the job. Required skills
// are normalized through the registry when provided, otherwise extracted
// from the cleaned description.
func (e *Engine) UploadJob(ctx context.Context, title, description string, requiredSkills []string) (model.Job, error) {
	reg := e.registry.Get()
	cleaned := textclean.Clean(description)

	var required []string
	if len(requiredSkills) > 0 {
		required = reg.NormalizeSkills(requiredSkills)
	} else {
		required, _ = e.extractor.Extract(reg, cleaned)
	}

	vector, err := e.embedder.Embed(ctx, cleaned)
	if err != nil {
		e.logger.Warn("embedding failed, storing zero vector", zap.Error(err))
		vector = make([]float32, e.embedder.Dim())
	}

	now := time.Now().UTC()
	job := model.Job{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    cleaned,
		RequiredSkills: required,
		Embedding:      vector,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := e.store.SaveJob(ctx, job); err != nil {
		return model.Job{}, fmt.Errorf("store job: %w", err)
	}

	e.logger.Info("job uploaded",
		zap.String("job_id", job.ID),
		zap.String("title", title),
		zap.Int("required_skills", len(required)))
	return job, nil
}

// Match implements services.Matcher: nearest-neighbor candidates for the
// job embedding, scored and re-ranked by composite score.
func (e *Engine) Match(ctx context.Context, jobID string, k int) (services.MatchResponse, error) {
	job, err := e.store.GetJob(ctx, jobID)
	if err != nil {
		return services.MatchResponse{}, err
	}
	if k <= 0 {
		k = e.settings.Match.DefaultK
	}
	if k > e.settings.Match.MaxK {
		k = e.settings.Match.MaxK
	}

	candidates, err := e.store.NearestResumes(ctx, job.Embedding, k)
	if err != nil {
		return services.MatchResponse{}, fmt.Errorf("nearest resumes: %w", err)
	}

	results, note, err := e.matcher.Match(ctx, e.registry.Get(), job, candidates, k)
	if err != nil {
		return services.MatchResponse{}, err
	}
	return services.MatchResponse{JobID: jobID, K: k, Results: results, Note: note}, nil
}

func (e *Engine) GetResume(ctx context.Context, id string) (model.Resume, error) {
	return e.store.GetResume(ctx, id)
}

func (e *Engine) ListResumes(ctx context.Context, limit, offset int) ([]model.Resume, error) {
	return e.store.ListResumes(ctx, limit, offset)
}

func (e *Engine) DeleteResume(ctx context.Context, id string) error {
	return e.store.DeleteResume(ctx, id)
}

func (e *Engine) GetJob(ctx context.Context, id string) (model.Job, error) {
	return e.store.GetJob(ctx, id)
}

func (e *Engine) ListJobs(ctx context.Context, limit, offset int) ([]model.Job, error) {
	return e.store.ListJobs(ctx, limit, offset)
}

func (e *Engine) DeleteJob(ctx context.Context, id string) error {
	return e.store.DeleteJob(ctx, id)
}

// resumeTextFetcher adapts the store to the matcher's text lookup.
type resumeTextFetcher struct {
	store store.Store
}

func (f *resumeTextFetcher) FetchResumeText(ctx context.Context, resumeID string) (string, error) {
	resume, err := f.store.GetResume(ctx, resumeID)
	if err != nil {
		return "", err
	}
	return resume.CleanedText, nil
}
