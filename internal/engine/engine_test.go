package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentmatch/go-match-engine/config"
	"github.com/talentmatch/go-match-engine/internal/embedding"
	"github.com/talentmatch/go-match-engine/internal/store"
)

const testRegistryJSON = `{"skills": [
	{"name": "python", "aliases": ["py"]},
	{"name": "docker", "aliases": []},
	{"name": "kubernetes", "aliases": ["k8s"]},
	{"name": "javascript", "aliases": ["js"]}
]}`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	path := filepath.Join(t.TempDir(), "skills.json")
	require.NoError(t, os.WriteFile(path, []byte(testRegistryJSON), 0644))

	settings := &config.Settings{Registry: config.RegistrySettings{Path: path}}
	settings.ApplyDefaults()

	eng, err := New(settings, store.NewMemoryStore(""), embedding.NewStatic(64), nil, nil)
	require.NoError(t, err)
	return eng
}

func TestNewValidation(t *testing.T) {
	settings := &config.Settings{}
	settings.ApplyDefaults()

	_, err := New(nil, store.NewMemoryStore(""), embedding.NewStatic(64), nil, nil)
	assert.Error(t, err)
	_, err = New(settings, nil, embedding.NewStatic(64), nil, nil)
	assert.Error(t, err)
	_, err = New(settings, store.NewMemoryStore(""), nil, nil, nil)
	assert.Error(t, err)
}

func TestUploadResume(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	resume, err := eng.UploadResume(ctx, "Ada", "## Skills\n- **Python** and k8s")
	require.NoError(t, err)

	assert.NotEmpty(t, resume.ID)
	assert.Equal(t, "Ada", resume.CandidateName)
	assert.Equal(t, "Skills\nPython and k8s", resume.CleanedText)
	assert.Equal(t, []string{"kubernetes", "python"}, resume.Skills)
	assert.Len(t, resume.Embedding, 64)

	stored, err := eng.GetResume(ctx, resume.ID)
	require.NoError(t, err)
	assert.Equal(t, resume.ID, stored.ID)
}

func TestUploadJobExtractsSkillsWhenNoneGiven(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	job, err := eng.UploadJob(ctx, "Backend Engineer", "Needs Python and Docker experience", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "python"}, job.RequiredSkills)
}

func TestUploadJobNormalizesGivenSkills(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	job, err := eng.UploadJob(ctx, "Backend Engineer", "Some description",
		[]string{" Py ", "JS", "py", "niche-tool"})
	require.NoError(t, err)
	// Aliases resolve, duplicates collapse, unknown skills pass through.
	assert.Equal(t, []string{"python", "javascript", "niche-tool"}, job.RequiredSkills)
}

func TestMatchEndToEnd(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	job, err := eng.UploadJob(ctx, "Backend Engineer",
		"Looking for Python and Docker experience with data pipelines", nil)
	require.NoError(t, err)

	strong, err := eng.UploadResume(ctx, "Ada",
		"Python and Docker experience building data pipelines")
	require.NoError(t, err)
	weak, err := eng.UploadResume(ctx, "Bob",
		"JavaScript frontend work")
	require.NoError(t, err)

	resp, err := eng.Match(ctx, job.ID, 10)
	require.NoError(t, err)

	assert.Equal(t, job.ID, resp.JobID)
	assert.Equal(t, 10, resp.K)
	require.Len(t, resp.Results, 2)

	first := resp.Results[0]
	assert.Equal(t, strong.ID, first.ResumeID)
	assert.Equal(t, []string{"docker", "python"}, first.MatchedSkills)
	assert.Empty(t, first.MissingSkills)
	assert.Greater(t, first.CompositeScore, resp.Results[1].CompositeScore)
	assert.NotEmpty(t, first.MatchedSpans)

	second := resp.Results[1]
	assert.Equal(t, weak.ID, second.ResumeID)
	assert.Equal(t, []string{"docker", "python"}, second.MissingSkills)
	assert.Empty(t, second.MatchedSpans)
}

func TestMatchUnknownJob(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Match(context.Background(), "no-such-job", 5)
	assert.True(t, errors.Is(err, store.ErrJobNotFound))
}

func TestMatchClampsKToSettings(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	job, err := eng.UploadJob(ctx, "Role", "Python work", nil)
	require.NoError(t, err)

	resp, err := eng.Match(ctx, job.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, eng.settings.Match.DefaultK, resp.K)

	resp, err = eng.Match(ctx, job.ID, 100000)
	require.NoError(t, err)
	assert.Equal(t, eng.settings.Match.MaxK, resp.K)
}

func TestExtractSkills(t *testing.T) {
	eng := newTestEngine(t)

	skills, spans := eng.ExtractSkills("Shipped Python services on Kubernetes")
	assert.Equal(t, []string{"kubernetes", "python"}, skills)
	require.Len(t, spans, 2)
	// Rendering order: start offset ascending.
	assert.Equal(t, "python", spans[0].Skill)
	assert.Equal(t, "kubernetes", spans[1].Skill)
}

func TestExtractContextTermsWithoutTagger(t *testing.T) {
	eng := newTestEngine(t)

	terms := eng.ExtractContextTerms("job text here", "resume text here", nil, 0)
	assert.Empty(t, terms)
}

func TestReloadRegistry(t *testing.T) {
	eng := newTestEngine(t)

	assert.Equal(t, 4, eng.Registry().Len())
	assert.Equal(t, 4, eng.ReloadRegistry())

	// Fallback engine: no registry path configured.
	settings := &config.Settings{}
	settings.ApplyDefaults()
	fallback, err := New(settings, store.NewMemoryStore(""), embedding.NewStatic(64), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, fallback.Registry().Len())
	assert.Equal(t, 2, fallback.ReloadRegistry())
}
