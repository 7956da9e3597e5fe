package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/page-search/internal/errors"
	"github.com/gcbaptista/page-search/services"
)

// SearchHandler handles search requests to an index. GET reads q, page and
// page_size from the query string; POST reads a services.SearchQuery body.
func (api *API) SearchHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		sendIndexLookupError(c, indexName, "get index", err)
		return
	}

	var query services.SearchQuery
	var result *ValidationResult
	if c.Request.Method == http.MethodPost {
		result = ValidateJSONBinding(c, &query)
	} else {
		result = ValidateQueryBinding(c, &query)
	}
	if result.HasErrors() {
		sendValidationResult(c, ErrorCodeInvalidQuery, "Invalid search query", result)
		return
	}

	results, err := indexAccessor.Search(query)
	if err != nil {
		if errors.Is(err, internalErrors.ErrInvalidInput) {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, err.Error())
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeSearchFailed,
			"Search failed on index '"+indexName+"': "+err.Error())
		return
	}
	c.JSON(http.StatusOK, results)
}

// CompleteHandler returns indexed terms starting with ?prefix=, in
// lexicographic order, up to ?limit= (default 10).
func (api *API) CompleteHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		sendIndexLookupError(c, indexName, "get index", err)
		return
	}

	prefix := c.Query("prefix")
	limit, result := ValidateCompletion(prefix, c.Query("limit"))
	if result.HasErrors() {
		sendValidationResult(c, ErrorCodeInvalidCompletion, "Invalid completion request", result)
		return
	}

	terms := indexAccessor.Complete(prefix, limit)
	c.JSON(http.StatusOK, gin.H{"prefix": prefix, "terms": terms, "count": len(terms)})
}
