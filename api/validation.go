// Package api provides validation utilities for API request handling.
package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/page-search/config"
	"github.com/gcbaptista/page-search/model"
)

const maxCompletionLimit = 100

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateIndexName validates an index name parameter
func ValidateIndexName(indexName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if indexName == "" {
		result.AddError("indexName", "Index name is required")
		return result
	}
	if strings.TrimSpace(indexName) != indexName {
		result.AddError("indexName", "Index name cannot have leading or trailing whitespace")
	}
	return result
}

// ValidateIndexSettings validates index settings for a build. Defaults are
// applied to a copy, so the caller's settings are left untouched.
func ValidateIndexSettings(settings config.IndexSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings.Name == "" {
		result.AddError("name", "Index name is required")
		return result
	}

	settings.ApplyDefaults()
	for _, conflict := range settings.Validate() {
		result.AddError("settings", conflict)
	}
	return result
}

// ValidateDocuments validates the documents of a create request. An empty
// collection is valid.
func ValidateDocuments(docs []model.Document) *ValidationResult {
	result := &ValidationResult{Valid: true}

	seen := make(map[string]int, len(docs))
	for i, doc := range docs {
		field := fmt.Sprintf("documents[%d].documentID", i)
		if !doc.HasValidID() {
			result.AddError(field, "Document ID cannot be empty or whitespace-only")
			continue
		}
		if first, dup := seen[doc.ID]; dup {
			result.AddError(field, fmt.Sprintf("Document ID '%s' duplicates documents[%d]", doc.ID, first))
			continue
		}
		seen[doc.ID] = i
	}
	return result
}

// ValidateCompletion parses the prefix and limit of a completion request.
func ValidateCompletion(prefix, rawLimit string) (int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(prefix) == "" {
		result.AddError("prefix", "Prefix is required")
	}

	limit := 10
	if rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		switch {
		case err != nil:
			result.AddError("limit", "Limit must be an integer")
		case parsed < 1 || parsed > maxCompletionLimit:
			result.AddError("limit", fmt.Sprintf("Limit must be between 1 and %d", maxCompletionLimit))
		default:
			limit = parsed
		}
	}
	return limit, result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	sendValidationResult(c, ErrorCodeValidationFailed, "Request validation failed", result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target any) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}
	return result
}

// ValidateQueryBinding validates query parameter binding
func ValidateQueryBinding(c *gin.Context, target any) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindQuery(target); err != nil {
		result.AddError("query_parameters", "Invalid query parameters: "+err.Error())
	}
	return result
}
