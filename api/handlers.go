package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/services"
)

// API holds dependencies for API handlers, primarily the match engine.
type API struct {
	engine services.MatchEngine
	logger *zap.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.MatchEngine, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{engine: engine, logger: logger}
}

// SetupRoutes defines all the API routes for the match engine.
func SetupRoutes(router *gin.Engine, engine services.MatchEngine, logger *zap.Logger) {
	apiHandler := NewAPI(engine, logger)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Resume management routes
	resumeRoutes := router.Group("/resumes")
	{
		resumeRoutes.POST("", apiHandler.UploadResumeHandler)             // Upload a resume
		resumeRoutes.GET("", apiHandler.ListResumesHandler)               // List resumes with pagination
		resumeRoutes.GET("/:resumeId", apiHandler.GetResumeHandler)       // Get a specific resume
		resumeRoutes.DELETE("/:resumeId", apiHandler.DeleteResumeHandler) // Delete a resume
	}

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.POST("", apiHandler.UploadJobHandler)          // Upload a job posting
		jobRoutes.GET("", apiHandler.ListJobsHandler)            // List jobs with pagination
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)       // Get a specific job
		jobRoutes.DELETE("/:jobId", apiHandler.DeleteJobHandler) // Delete a job
	}

	// Matching route
	router.GET("/match", apiHandler.MatchHandler)

	// Stateless extraction routes
	extractRoutes := router.Group("/extract")
	{
		extractRoutes.POST("/skills", apiHandler.ExtractSkillsHandler)
		extractRoutes.POST("/context", apiHandler.ExtractContextHandler)
	}

	// Registry management route
	router.POST("/registry/reload", apiHandler.ReloadRegistryHandler)
}

// HealthCheckHandler provides a simple health check endpoint.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReloadRegistryHandler rebuilds the skill registry from its configured
// source and reports the new vocabulary size.
func (api *API) ReloadRegistryHandler(c *gin.Context) {
	size := api.engine.ReloadRegistry()
	c.JSON(http.StatusOK, gin.H{"status": "reloaded", "skills": size})
}
