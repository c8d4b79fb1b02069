// Package matcher coordinates scoring, skill-span computation, and
// context-term extraction for a candidate list retrieved by the upstream
// nearest-neighbor lookup, and re-ranks it by composite score.
package matcher

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talentmatch/go-match-engine/internal/contextterms"
	"github.com/talentmatch/go-match-engine/internal/extract"
	"github.com/talentmatch/go-match-engine/internal/registry"
	"github.com/talentmatch/go-match-engine/internal/scoring"
	"github.com/talentmatch/go-match-engine/model"
)

// NoteNoEmbedding is returned when the job carries no embedding: matching
// short-circuits instead of presenting a false-zero similarity as real.
const NoteNoEmbedding = "job has no embedding"

// NoteRanked is returned with a successful ranking.
const NoteRanked = "cosine similarity + skills jaccard"

// maxParallelCandidates bounds per-candidate concurrency within one
// match request.
const maxParallelCandidates = 8

// ResumeTextFetcher supplies cleaned resume text for span computation.
type ResumeTextFetcher interface {
	FetchResumeText(ctx context.Context, resumeID string) (string, error)
}

// Service is the match orchestrator. Stateless per request; candidates
// are processed independently and in parallel, with deterministic final
// ordering.
type Service struct {
	extractor       *extract.Extractor
	context         *contextterms.Extractor
	texts           ResumeTextFetcher
	maxK            int
	maxContextTerms int
	logger          *zap.Logger
}

// NewService creates a matcher Service.
func NewService(extractor *extract.Extractor, ctxTerms *contextterms.Extractor, texts ResumeTextFetcher, maxK, maxContextTerms int, logger *zap.Logger) (*Service, error) {
	if extractor == nil {
		return nil, fmt.Errorf("extractor cannot be nil")
	}
	if ctxTerms == nil {
		return nil, fmt.Errorf("context term extractor cannot be nil")
	}
	if texts == nil {
		return nil, fmt.Errorf("resume text fetcher cannot be nil")
	}
	if maxK <= 0 {
		maxK = 200
	}
	if maxContextTerms <= 0 {
		maxContextTerms = contextterms.DefaultMaxTerms
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		extractor:       extractor,
		context:         ctxTerms,
		texts:           texts,
		maxK:            maxK,
		maxContextTerms: maxContextTerms,
		logger:          logger,
	}, nil
}

// Match scores and explains each candidate against the job, then returns
// the top k by composite score descending. Ties keep the original
// candidate order (the upstream vector-distance ranking). k is clamped to
// [1, maxK]. A job without an embedding yields an empty result list and
// NoteNoEmbedding.
func (s *Service) Match(ctx context.Context, reg *registry.Registry, job model.Job, candidates []model.Candidate, k int) ([]model.MatchResult, string, error) {
	if len(job.Embedding) == 0 {
		return []model.MatchResult{}, NoteNoEmbedding, nil
	}
	if k < 1 {
		k = 1
	}
	if k > s.maxK {
		k = s.maxK
	}

	results := make([]model.MatchResult, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallelCandidates)
	for i, candidate := range candidates {
		group.Go(func() error {
			results[i] = s.matchOne(groupCtx, reg, job, candidate)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, "", err
	}

	// Composite descending; SliceStable keeps the upstream order on ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompositeScore > results[j].CompositeScore
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, NoteRanked, nil
}

func (s *Service) matchOne(ctx context.Context, reg *registry.Registry, job model.Job, candidate model.Candidate) model.MatchResult {
	scored := scoring.Score(candidate.Cosine, job.RequiredSkills, candidate.Skills)

	result := model.MatchResult{
		ResumeID:           candidate.ResumeID,
		CandidateName:      candidate.CandidateName,
		Cosine:             candidate.Cosine,
		SkillsOverlap:      scored.SkillsOverlap,
		CompositeScore:     scored.CompositeScore,
		MatchedSkills:      scored.MatchedSkills,
		MissingSkills:      scored.MissingSkills,
		MatchedSpans:       []model.SkillSpan{},
		ContextTerms:       []string{},
		ContextJobSpans:    []model.TermSpan{},
		ContextResumeSpans: []model.TermSpan{},
	}

	resumeText, err := s.texts.FetchResumeText(ctx, candidate.ResumeID)
	if err != nil || resumeText == "" {
		if err != nil {
			s.logger.Debug("resume text unavailable, skipping spans",
				zap.String("resume_id", candidate.ResumeID), zap.Error(err))
		}
		return result
	}

	_, spans := s.extractor.Extract(reg, resumeText)
	matched := make(map[string]struct{}, len(scored.MatchedSkills))
	for _, skill := range scored.MatchedSkills {
		matched[skill] = struct{}{}
	}
	for _, span := range spans {
		if _, ok := matched[span.Skill]; ok {
			result.MatchedSpans = append(result.MatchedSpans, span)
		}
	}
	extract.SortSpans(result.MatchedSpans)

	result.ContextTerms = s.context.Terms(reg, job.Description, resumeText, scored.MatchedSkills, s.maxContextTerms)
	result.ContextJobSpans = s.context.Spans(job.Description, result.ContextTerms)
	result.ContextResumeSpans = s.context.Spans(resumeText, result.ContextTerms)

	return result
}
