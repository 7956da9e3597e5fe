package services

import (
	"github.com/gcbaptista/page-search/config"
	"github.com/gcbaptista/page-search/index"
	"github.com/gcbaptista/page-search/model"
	"github.com/gcbaptista/page-search/store"
)

// HitResult represents a single document in the search results.
type HitResult struct {
	DocumentID      string         `json:"documentID"`
	Title           string         `json:"title"`
	Score           int            `json:"score"`            // Term frequencies plus title bonuses
	TermFrequencies map[string]int `json:"term_frequencies"` // Body count of every query term
	TitleMatches    []string       `json:"title_matches"`    // Query terms that also occur in the title
}

type SearchResult struct {
	Hits     []HitResult `json:"hits"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Took     int64       `json:"took"`     // milliseconds
	QueryId  string      `json:"query_id"` // unique UUID for this search query
}

type SearchQuery struct {
	QueryString string `json:"query" form:"q"`
	Page        int    `json:"page,omitempty" form:"page"`
	PageSize    int    `json:"page_size,omitempty" form:"page_size"`
}

// Searcher defines operations for querying an index
type Searcher interface {
	Search(query SearchQuery) (SearchResult, error)
}

// IndexAccessor gives read access to one built index.
type IndexAccessor interface {
	Searcher
	Settings() config.IndexSettings
	Stats() index.Stats
	Complete(prefix string, limit int) []string
	Document(documentID string) (store.DocumentInfo, error)
}

// IndexManager manages the lifecycle of indexes. An index is built once
// from a complete document collection and replaced, never updated.
type IndexManager interface {
	CreateIndex(settings config.IndexSettings, docs []model.Document) error
	GetIndex(name string) (IndexAccessor, error)
	DeleteIndex(name string) error
	ListIndexes() []string
	PersistIndexData(indexName string) error
}

// IndexManagerWithAsyncBuild extends IndexManager with background builds
// from a directory of pages.
type IndexManagerWithAsyncBuild interface {
	IndexManager
	BuildIndexFromDirAsync(settings config.IndexSettings, dir string) (string, error) // Returns job ID
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(indexName string, status *model.JobStatus) []*model.Job
}
