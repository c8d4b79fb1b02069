package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/internal/store"
)

// UploadJobRequest is the body for POST /jobs. RequiredSkills is
// optional: when omitted, skills are extracted from the description.
type UploadJobRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
}

// UploadJobHandler handles uploading a job posting.
func (api *API) UploadJobHandler(c *gin.Context) {
	var req UploadJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithInvalidJSON(c, err)
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		RespondWithValidationError(c, "Job description cannot be empty", ErrorDetail{
			Field: "description", Message: "required",
		})
		return
	}

	job, err := api.engine.UploadJob(c.Request.Context(), req.Title, req.Description, req.RequiredSkills)
	if err != nil {
		api.logger.Error("job upload failed", zap.Error(err))
		RespondWithInternalError(c, ErrorCodeStorageFailed, "Failed to store job", err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// GetJobHandler returns a stored job by ID.
func (api *API) GetJobHandler(c *gin.Context) {
	job, err := api.engine.GetJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		if errors.Is(err, store.ErrJobNotFound) {
			RespondWithNotFound(c, ErrorCodeJobNotFound, "Job '"+c.Param("jobId")+"' not found")
			return
		}
		RespondWithInternalError(c, ErrorCodeStorageFailed, "Failed to load job", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobsHandler lists stored jobs with limit/offset pagination.
func (api *API) ListJobsHandler(c *gin.Context) {
	limit, offset := paginationParams(c)
	jobs, err := api.engine.ListJobs(c.Request.Context(), limit, offset)
	if err != nil {
		RespondWithInternalError(c, ErrorCodeStorageFailed, "Failed to list jobs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":   jobs,
		"count":  len(jobs),
		"limit":  limit,
		"offset": offset,
	})
}

// DeleteJobHandler removes a stored job.
func (api *API) DeleteJobHandler(c *gin.Context) {
	err := api.engine.DeleteJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		if errors.Is(err, store.ErrJobNotFound) {
			RespondWithNotFound(c, ErrorCodeJobNotFound, "Job '"+c.Param("jobId")+"' not found")
			return
		}
		RespondWithInternalError(c, ErrorCodeStorageFailed, "Failed to delete job", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
