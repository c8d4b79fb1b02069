package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/talentmatch/go-match-engine/config"
	"github.com/talentmatch/go-match-engine/internal/embedding"
	"github.com/talentmatch/go-match-engine/internal/engine"
	"github.com/talentmatch/go-match-engine/internal/store"
	"github.com/talentmatch/go-match-engine/model"
	"github.com/talentmatch/go-match-engine/services"
)

const testRegistryJSON = `{"skills": [
	{"name": "python", "aliases": ["py"]},
	{"name": "docker", "aliases": []},
	{"name": "go", "aliases": ["golang"]}
]}`

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	path := filepath.Join(t.TempDir(), "skills.json")
	if err := os.WriteFile(path, []byte(testRegistryJSON), 0644); err != nil {
		t.Fatalf("writing registry file: %v", err)
	}

	settings := &config.Settings{Registry: config.RegistrySettings{Path: path}}
	settings.ApplyDefaults()

	eng, err := engine.New(settings, store.NewMemoryStore(""), embedding.NewStatic(64), nil, nil)
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, eng, nil)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestUploadResumeHandler(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/resumes", UploadResumeRequest{
		CandidateName: "Ada",
		Text:          "Python and Docker in production",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resume model.Resume
	decode(t, rec, &resume)
	if resume.ID == "" {
		t.Error("resume ID is empty")
	}
	if len(resume.Skills) != 2 {
		t.Errorf("skills = %v, want python and docker", resume.Skills)
	}
}

func TestUploadResumeHandlerRejectsEmptyText(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/resumes", UploadResumeRequest{Text: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var apiErr APIError
	decode(t, rec, &apiErr)
	if apiErr.Code != ErrorCodeValidationFailed {
		t.Errorf("error code = %q, want %q", apiErr.Code, ErrorCodeValidationFailed)
	}
}

func TestResumeNotFound(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/resumes/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var apiErr APIError
	decode(t, rec, &apiErr)
	if apiErr.Code != ErrorCodeResumeNotFound {
		t.Errorf("error code = %q, want %q", apiErr.Code, ErrorCodeResumeNotFound)
	}
}

func TestResumeLifecycle(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/resumes", UploadResumeRequest{Text: "Go developer"})
	var resume model.Resume
	decode(t, rec, &resume)

	rec = doJSON(t, router, http.MethodGet, "/resumes/"+resume.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/resumes", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("list status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/resumes/"+resume.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/resumes/"+resume.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestUploadJobHandler(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/jobs", UploadJobRequest{
		Title:       "Backend Engineer",
		Description: "Python and Docker required",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var job model.Job
	decode(t, rec, &job)
	if len(job.RequiredSkills) != 2 {
		t.Errorf("required skills = %v, want extracted python and docker", job.RequiredSkills)
	}
}

func TestUploadJobHandlerRejectsEmptyDescription(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/jobs", UploadJobRequest{Title: "x"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMatchHandler(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/jobs", UploadJobRequest{
		Title:       "Backend Engineer",
		Description: "Python and Docker work on data pipelines",
	})
	var job model.Job
	decode(t, rec, &job)

	rec = doJSON(t, router, http.MethodPost, "/resumes", UploadResumeRequest{
		CandidateName: "Ada",
		Text:          "Python and Docker work on data pipelines",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("resume upload status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/match?job_id="+job.ID+"&k=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("match status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp services.MatchResponse
	decode(t, rec, &resp)
	if resp.JobID != job.ID {
		t.Errorf("job_id = %q, want %q", resp.JobID, job.ID)
	}
	if resp.K != 5 {
		t.Errorf("k = %d, want 5", resp.K)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}
	if resp.Results[0].CandidateName != "Ada" {
		t.Errorf("candidate = %q, want Ada", resp.Results[0].CandidateName)
	}
	if len(resp.Results[0].MatchedSkills) != 2 {
		t.Errorf("matched skills = %v, want python and docker", resp.Results[0].MatchedSkills)
	}
}

func TestMatchHandlerValidation(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/match", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing job_id status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/match?job_id=x&k=notanumber", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad k status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/match?job_id=missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown job status = %d, want 404", rec.Code)
	}
}

func TestExtractSkillsHandler(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/extract/skills", ExtractSkillsRequest{
		Text: "Golang and Python services",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Skills []string          `json:"skills"`
		Spans  []model.SkillSpan `json:"spans"`
	}
	decode(t, rec, &resp)
	if len(resp.Skills) != 2 {
		t.Errorf("skills = %v, want go and python", resp.Skills)
	}
	if len(resp.Spans) != 2 {
		t.Errorf("spans = %v, want two", resp.Spans)
	}
}

func TestExtractContextHandler(t *testing.T) {
	router := setupTestRouter(t)

	// No tagger wired in tests: the endpoint still answers, with no terms.
	rec := doJSON(t, router, http.MethodPost, "/extract/context", ExtractContextRequest{
		JobText:    "data pipelines",
		ResumeText: "data pipelines",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Terms []string `json:"terms"`
	}
	decode(t, rec, &resp)
	if len(resp.Terms) != 0 {
		t.Errorf("terms = %v, want empty without a tagger", resp.Terms)
	}
}

func TestReloadRegistryHandler(t *testing.T) {
	router := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/registry/reload", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Skills int `json:"skills"`
	}
	decode(t, rec, &resp)
	if resp.Skills != 3 {
		t.Errorf("skills = %d, want 3", resp.Skills)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/resumes", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var apiErr APIError
	decode(t, rec, &apiErr)
	if apiErr.Code != ErrorCodeInvalidJSON {
		t.Errorf("error code = %q, want %q", apiErr.Code, ErrorCodeInvalidJSON)
	}
}
