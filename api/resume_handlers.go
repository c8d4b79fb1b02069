package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/internal/store"
)

// UploadResumeRequest is the body for POST /resumes.
type UploadResumeRequest struct {
	CandidateName string `json:"candidate_name"`
	Text          string `json:"text"`
}

// UploadResumeHandler handles uploading a resume. The text is cleaned,
// skills are extracted, and an embedding is computed before storage.
func (api *API) UploadResumeHandler(c *gin.Context) {
	var req UploadResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithInvalidJSON(c, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		RespondWithValidationError(c, "Resume text cannot be empty", ErrorDetail{
			Field: "text", Message: "required",
		})
		return
	}

	resume, err := api.engine.UploadResume(c.Request.Context(), req.CandidateName, req.Text)
	if err != nil {
		api.logger.Error("resume upload failed", zap.Error(err))
		RespondWithInternalError(c, ErrorCodeStorageFailed, "Failed to store resume", err)
		return
	}
	c.JSON(http.StatusCreated, resume)
}

// GetResumeHandler returns a stored resume by ID.
func (api *API) GetResumeHandler(c *gin.Context) {
	resume, err := api.engine.GetResume(c.Request.Context(), c.Param("resumeId"))
	if err != nil {
		if errors.Is(err, store.ErrResumeNotFound) {
			RespondWithNotFound(c, ErrorCodeResumeNotFound, "Resume '"+c.Param("resumeId")+"' not found")
			return
		}
		RespondWithInternalError(c, ErrorCodeStorageFailed, "Failed to load resume", err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// ListResumesHandler lists stored resumes with limit/offset pagination.
func (api *API) ListResumesHandler(c *gin.Context) {
	limit, offset := paginationParams(c)
	resumes, err := api.engine.ListResumes(c.Request.Context(), limit, offset)
	if err != nil {
		RespondWithInternalError(c, ErrorCodeStorageFailed, "Failed to list resumes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"resumes": resumes,
		"count":   len(resumes),
		"limit":   limit,
		"offset":  offset,
	})
}

// DeleteResumeHandler removes a stored resume.
func (api *API) DeleteResumeHandler(c *gin.Context) {
	err := api.engine.DeleteResume(c.Request.Context(), c.Param("resumeId"))
	if err != nil {
		if errors.Is(err, store.ErrResumeNotFound) {
			RespondWithNotFound(c, ErrorCodeResumeNotFound, "Resume '"+c.Param("resumeId")+"' not found")
			return
		}
		RespondWithInternalError(c, ErrorCodeStorageFailed, "Failed to delete resume", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// paginationParams parses limit/offset query parameters with defaults.
func paginationParams(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
