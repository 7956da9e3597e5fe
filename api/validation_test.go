package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/page-search/config"
	"github.com/gcbaptista/page-search/model"
)

func TestValidateIndexName(t *testing.T) {
	tests := []struct {
		name      string
		indexName string
		wantErr   bool
	}{
		{"valid", "pages", false},
		{"empty", "", true},
		{"leading space", " pages", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, ValidateIndexName(tt.indexName).HasErrors())
		})
	}
}

func TestValidateIndexSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings config.IndexSettings
		wantErr  bool
	}{
		{"defaults", config.IndexSettings{Name: "pages"}, false},
		{"missing name", config.IndexSettings{}, true},
		{"path separator", config.IndexSettings{Name: "a/b"}, true},
		{"negative min length", config.IndexSettings{Name: "pages", MinTermLength: -1}, true},
		{"duplicate stop words", config.IndexSettings{Name: "pages", StopWords: []string{"a", "a"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, ValidateIndexSettings(tt.settings).HasErrors())
		})
	}
}

func TestValidateDocuments(t *testing.T) {
	assert.False(t, ValidateDocuments(nil).HasErrors())
	assert.False(t, ValidateDocuments([]model.Document{{ID: "a"}, {ID: "b"}}).HasErrors())

	result := ValidateDocuments([]model.Document{{ID: "a"}, {ID: " "}, {ID: "a"}})
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, "documents[1].documentID", result.Errors[0].Field)
	assert.Equal(t, "documents[2].documentID", result.Errors[1].Field)
	assert.False(t, result.Valid)
}

func TestValidateCompletion(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		limit     string
		wantLimit int
		wantErr   bool
	}{
		{"default limit", "ap", "", 10, false},
		{"explicit limit", "ap", "3", 3, false},
		{"missing prefix", "", "3", 3, true},
		{"non numeric", "ap", "x", 10, true},
		{"too large", "ap", "1000", 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, result := ValidateCompletion(tt.prefix, tt.limit)
			assert.Equal(t, tt.wantErr, result.HasErrors())
			if !tt.wantErr {
				assert.Equal(t, tt.wantLimit, limit)
			}
		})
	}
}
