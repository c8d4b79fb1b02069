package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeResumeNotFound   ErrorCode = "RESUME_NOT_FOUND"
	ErrorCodeJobNotFound      ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"

	// Server Error Codes (5xx)
	ErrorCodeInternalError   ErrorCode = "INTERNAL_ERROR"
	ErrorCodeMatchFailed     ErrorCode = "MATCH_FAILED"
	ErrorCodeStorageFailed   ErrorCode = "STORAGE_FAILED"
	ErrorCodeEmbeddingFailed ErrorCode = "EMBEDDING_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// RespondWithValidationError sends a 400 validation error response
func RespondWithValidationError(c *gin.Context, message string, details ...ErrorDetail) {
	c.JSON(http.StatusBadRequest, APIErrorResponse(ErrorCodeValidationFailed, message, details...))
}

// RespondWithInvalidJSON sends a 400 malformed body response
func RespondWithInvalidJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, APIErrorResponse(ErrorCodeInvalidJSON, "Request body is not valid JSON", ErrorDetail{
		Message: err.Error(),
	}))
}

// RespondWithNotFound sends a 404 response for a missing resource
func RespondWithNotFound(c *gin.Context, code ErrorCode, message string) {
	c.JSON(http.StatusNotFound, APIErrorResponse(code, message))
}

// RespondWithInternalError sends a 500 response
func RespondWithInternalError(c *gin.Context, code ErrorCode, message string, err error) {
	resp := APIErrorResponse(code, message)
	if err != nil {
		resp.Details = append(resp.Details, ErrorDetail{Message: err.Error()})
	}
	c.JSON(http.StatusInternalServerError, resp)
}
