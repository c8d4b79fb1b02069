package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExtractSkillsRequest is the body for POST /extract/skills.
type ExtractSkillsRequest struct {
	Text string `json:"text"`
}

// ExtractSkillsHandler runs skill extraction over arbitrary text and
// returns canonical skills plus their highlight spans.
func (api *API) ExtractSkillsHandler(c *gin.Context) {
	var req ExtractSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithInvalidJSON(c, err)
		return
	}

	skills, spans := api.engine.ExtractSkills(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"skills": skills,
		"spans":  spans,
	})
}

// ExtractContextRequest is the body for POST /extract/context.
type ExtractContextRequest struct {
	JobText    string   `json:"job_text"`
	ResumeText string   `json:"resume_text"`
	Exclude    []string `json:"exclude"`
	MaxTerms   int      `json:"max_terms"`
}

// ExtractContextHandler finds shared non-skill vocabulary between a job
// description and a resume.
func (api *API) ExtractContextHandler(c *gin.Context) {
	var req ExtractContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithInvalidJSON(c, err)
		return
	}

	terms := api.engine.ExtractContextTerms(req.JobText, req.ResumeText, req.Exclude, req.MaxTerms)
	c.JSON(http.StatusOK, gin.H{"terms": terms})
}
