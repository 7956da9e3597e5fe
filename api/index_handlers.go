package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/page-search/config"
	internalErrors "github.com/gcbaptista/page-search/internal/errors"
	"github.com/gcbaptista/page-search/model"
)

// CreateIndexRequest builds an index from documents sent inline.
type CreateIndexRequest struct {
	Settings  config.IndexSettings `json:"settings"`
	Documents []model.Document     `json:"documents"`
}

// BuildIndexRequest builds an index from a directory of pages on the server.
type BuildIndexRequest struct {
	Settings  config.IndexSettings `json:"settings"`
	CorpusDir string               `json:"corpus_dir"`
}

// CreateIndexHandler builds, publishes and persists a new index.
// Request Body: CreateIndexRequest
func (api *API) CreateIndexHandler(c *gin.Context) {
	var req CreateIndexRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateIndexSettings(req.Settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateDocuments(req.Documents); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.CreateIndex(req.Settings, req.Documents); err != nil {
		sendBuildError(c, req.Settings.Name, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Index '" + req.Settings.Name + "' created successfully",
		"documents": len(req.Documents),
		"empty":     len(req.Documents) == 0,
	})
}

// BuildIndexHandler starts a background build from a corpus directory. The
// index name comes from the path and overrides any name in the body.
// Request Body: BuildIndexRequest
func (api *API) BuildIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	if result := ValidateIndexName(indexName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var req BuildIndexRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	req.Settings.Name = indexName
	if result := ValidateIndexSettings(req.Settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	jobID, err := api.engine.BuildIndexFromDirAsync(req.Settings, req.CorpusDir)
	if err != nil {
		if errors.Is(err, internalErrors.ErrInvalidInput) {
			sendBuildError(c, indexName, err)
			return
		}
		SendError(c, http.StatusServiceUnavailable, ErrorCodeBuildNotStarted,
			"Build of '"+indexName+"' could not be started: "+err.Error())
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Index build started for '" + indexName + "'",
		"job_id":  jobID,
	})
}

// ListIndexesHandler lists all available indexes.
func (api *API) ListIndexesHandler(c *gin.Context) {
	names := api.engine.ListIndexes()
	c.JSON(http.StatusOK, gin.H{"indexes": names, "count": len(names)})
}

// GetIndexHandler returns the settings and size of an index.
func (api *API) GetIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		sendIndexLookupError(c, indexName, "get index", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings": indexAccessor.Settings(),
		"stats":    indexAccessor.Stats(),
	})
}

// DeleteIndexHandler handles deleting an index.
func (api *API) DeleteIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	if err := api.engine.DeleteIndex(indexName); err != nil {
		sendIndexLookupError(c, indexName, "delete index", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Index '" + indexName + "' deleted successfully"})
}

// GetDocumentHandler returns the stored metadata of one indexed page.
func (api *API) GetDocumentHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	documentID := c.Param("documentId")

	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		sendIndexLookupError(c, indexName, "get index", err)
		return
	}
	info, err := indexAccessor.Document(documentID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrDocumentNotFound) {
			SendError(c, http.StatusNotFound, ErrorCodeDocumentNotFound,
				"Document '"+documentID+"' not found in index '"+indexName+"'")
			return
		}
		SendInternalError(c, "get document", err)
		return
	}
	c.JSON(http.StatusOK, info)
}
