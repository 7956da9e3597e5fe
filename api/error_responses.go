package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/page-search/internal/errors"
)

// ErrorCode identifies the kind of failure in an APIError.
type ErrorCode string

const (
	// Request problems (4xx)
	ErrorCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidQuery      ErrorCode = "INVALID_QUERY"
	ErrorCodeInvalidCompletion ErrorCode = "INVALID_COMPLETION"
	ErrorCodeCorpusUnavailable ErrorCode = "CORPUS_UNAVAILABLE"
	ErrorCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"
	ErrorCodeIndexExists       ErrorCode = "INDEX_ALREADY_EXISTS"
	ErrorCodeDocumentNotFound  ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrorCodeJobNotFound       ErrorCode = "JOB_NOT_FOUND"

	// Server problems (5xx)
	ErrorCodeBuildFailed     ErrorCode = "BUILD_FAILED"
	ErrorCodeBuildNotStarted ErrorCode = "BUILD_NOT_STARTED"
	ErrorCodeSearchFailed    ErrorCode = "SEARCH_FAILED"
	ErrorCodeInternalError   ErrorCode = "INTERNAL_ERROR"
)

// corpusDirField is the validation field the engine reports for an
// unusable corpus directory.
const corpusDirField = "corpus_dir"

// ErrorDetail describes one offending field.
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// APIError is the body of every non-2xx response.
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// SendError writes an APIError tagged with the request ID, if any.
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	body := &APIError{
		Error:     http.StatusText(statusCode),
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
	if id, ok := c.Get(requestIDKey); ok {
		body.RequestID, _ = id.(string)
	}
	c.JSON(statusCode, body)
}

// sendValidationResult reports every error of result as a 400 with code.
func sendValidationResult(c *gin.Context, code ErrorCode, message string, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{Field: err.Field, Message: err.Message}
	}
	SendError(c, http.StatusBadRequest, code, message, details...)
}

// sendBuildError maps a failed CreateIndex or BuildIndexFromDirAsync call.
// An empty corpus is not an error: the index is served empty.
func sendBuildError(c *gin.Context, indexName string, err error) {
	var validationErr *internalErrors.ValidationError
	switch {
	case errors.Is(err, internalErrors.ErrIndexAlreadyExists):
		SendError(c, http.StatusConflict, ErrorCodeIndexExists, "Index '"+indexName+"' already exists")
	case errors.As(err, &validationErr) && validationErr.Field == corpusDirField:
		SendError(c, http.StatusBadRequest, ErrorCodeCorpusUnavailable, validationErr.Message,
			ErrorDetail{Field: corpusDirField, Message: validationErr.Message})
	case errors.Is(err, internalErrors.ErrInvalidInput):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
	default:
		SendError(c, http.StatusInternalServerError, ErrorCodeBuildFailed,
			"Building index '"+indexName+"' failed: "+err.Error())
	}
}

// sendIndexLookupError maps a failed GetIndex or DeleteIndex call.
func sendIndexLookupError(c *gin.Context, indexName, operation string, err error) {
	if errors.Is(err, internalErrors.ErrIndexNotFound) {
		SendError(c, http.StatusNotFound, ErrorCodeIndexNotFound, "Index '"+indexName+"' not found")
		return
	}
	SendInternalError(c, operation, err)
}

// SendInternalError reports an unexpected failure.
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}
