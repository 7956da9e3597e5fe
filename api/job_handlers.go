package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/page-search/internal/errors"
	"github.com/gcbaptista/page-search/model"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.engine.GetJob(jobID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrJobNotFound) {
			SendError(c, http.StatusNotFound, ErrorCodeJobNotFound, "Job '"+jobID+"' not found")
			return
		}
		SendInternalError(c, "get job", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs for an index
func (api *API) ListJobsHandler(c *gin.Context) {
	indexName := c.Param("indexName")

	var statusFilter *model.JobStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobs := api.engine.ListJobs(indexName, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":       jobs,
		"index_name": indexName,
		"total":      len(jobs),
	})
}
