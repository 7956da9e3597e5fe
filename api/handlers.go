package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/page-search/internal/metrics"
	"github.com/gcbaptista/page-search/services"
)

// Engine is what the handlers need from the index orchestrator.
type Engine interface {
	services.IndexManagerWithAsyncBuild
	services.JobManager
}

// API holds dependencies for API handlers, primarily the search engine manager.
type API struct {
	engine  Engine
	metrics *metrics.Metrics
}

// NewAPI creates a new API handler structure.
func NewAPI(engine Engine, m *metrics.Metrics) *API {
	return &API{engine: engine, metrics: m}
}

// SetupRoutes defines all the API routes for the search engine. m may be
// nil, in which case /metrics is not served.
func SetupRoutes(router *gin.Engine, engine Engine, m *metrics.Metrics) {
	apiHandler := NewAPI(engine, m)

	router.Use(RequestIDMiddleware(), MetricsMiddleware(m))

	router.GET("/health", apiHandler.HealthCheckHandler)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/jobs/:jobId", apiHandler.GetJobHandler)

	indexRoutes := router.Group("/indexes")
	{
		indexRoutes.POST("", apiHandler.CreateIndexHandler)                  // Build an index from inline documents
		indexRoutes.GET("", apiHandler.ListIndexesHandler)                   // List all indexes
		indexRoutes.GET("/:indexName", apiHandler.GetIndexHandler)           // Settings and stats
		indexRoutes.DELETE("/:indexName", apiHandler.DeleteIndexHandler)     // Delete an index
		indexRoutes.POST("/:indexName/_build", apiHandler.BuildIndexHandler) // Rebuild from a corpus directory
		indexRoutes.GET("/:indexName/jobs", apiHandler.ListJobsHandler)      // Build jobs of an index
		indexRoutes.GET("/:indexName/_search", apiHandler.SearchHandler)     // Query via ?q=
		indexRoutes.POST("/:indexName/_search", apiHandler.SearchHandler)    // Query via JSON body
		indexRoutes.GET("/:indexName/_complete", apiHandler.CompleteHandler) // Term completion
		indexRoutes.GET("/:indexName/documents/:documentId", apiHandler.GetDocumentHandler)
	}
}

// HealthCheckHandler reports liveness and the number of served indexes.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"indexes": len(api.engine.ListIndexes()),
	})
}
