package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/internal/store"
)

// MatchHandler ranks stored resumes against a stored job.
// Query parameters: job_id (required), k (optional result count).
func (api *API) MatchHandler(c *gin.Context) {
	jobID := c.Query("job_id")
	if jobID == "" {
		RespondWithValidationError(c, "Query parameter 'job_id' is required", ErrorDetail{
			Field: "job_id", Message: "required",
		})
		return
	}

	k := 0
	if raw := c.Query("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			RespondWithValidationError(c, "Query parameter 'k' must be an integer", ErrorDetail{
				Field: "k", Message: "not a number",
			})
			return
		}
		k = parsed
	}

	resp, err := api.engine.Match(c.Request.Context(), jobID, k)
	if err != nil {
		if errors.Is(err, store.ErrJobNotFound) {
			RespondWithNotFound(c, ErrorCodeJobNotFound, "Job '"+jobID+"' not found")
			return
		}
		api.logger.Error("match failed", zap.String("job_id", jobID), zap.Error(err))
		RespondWithInternalError(c, ErrorCodeMatchFailed, "Failed to rank candidates", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
