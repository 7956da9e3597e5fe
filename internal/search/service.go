package search

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/page-search/config"
	"github.com/gcbaptista/page-search/index"
	"github.com/gcbaptista/page-search/internal/errors"
	"github.com/gcbaptista/page-search/internal/metrics"
	"github.com/gcbaptista/page-search/internal/tokenizer"
	"github.com/gcbaptista/page-search/services"
	"github.com/gcbaptista/page-search/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service implements the search logic for a single index.
// It fulfills the services.Searcher interface. Every field is read-only,
// so one Service may serve any number of concurrent queries.
type Service struct {
	index     *index.Index
	documents *store.DocumentStore
	tokenizer *tokenizer.Tokenizer
	settings  config.IndexSettings
	metrics   *metrics.Metrics
}

// NewService creates a new search Service. tok must be the tokenizer the
// index was built with.
func NewService(idx *index.Index, documents *store.DocumentStore, tok *tokenizer.Tokenizer, settings config.IndexSettings) (*Service, error) {
	if idx == nil {
		return nil, fmt.Errorf("index cannot be nil")
	}
	if documents == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if tok == nil {
		return nil, fmt.Errorf("tokenizer cannot be nil")
	}
	return &Service{
		index:     idx,
		documents: documents,
		tokenizer: tok,
		settings:  settings,
	}, nil
}

// WithMetrics attaches Prometheus instrumentation.
func (s *Service) WithMetrics(m *metrics.Metrics) *Service {
	s.metrics = m
	return s
}

// Query returns every ranked hit for raw.
func (s *Service) Query(raw string) []Hit {
	return Query(s.index, s.tokenizer, raw, s.settings.TitleBonus)
}

// Search runs a query and returns one page of enriched results.
func (s *Service) Search(query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		return services.SearchResult{}, errors.NewValidationError("page_size", fmt.Sprintf("must not exceed %d", maxPageSize))
	}

	hits := s.Query(query.QueryString)
	took := time.Since(startTime)
	s.metrics.ObserveSearch(s.settings.Name, took, len(hits))

	totalHits := len(hits)
	paginatedHits := make([]services.HitResult, 0)
	// Compare page counts before multiplying so a huge page cannot overflow.
	if totalPages := (totalHits + pageSize - 1) / pageSize; page <= totalPages {
		startIndex := (page - 1) * pageSize
		endIndex := min(startIndex+pageSize, totalHits)
		for _, hit := range hits[startIndex:endIndex] {
			paginatedHits = append(paginatedHits, s.toHitResult(hit))
		}
	}

	return services.SearchResult{
		Hits:     paginatedHits,
		Total:    totalHits,
		Page:     page,
		PageSize: pageSize,
		Took:     time.Since(startTime).Milliseconds(),
		QueryId:  uuid.New().String(),
	}, nil
}

func (s *Service) toHitResult(hit Hit) services.HitResult {
	// A hit always comes from an indexed document; a missing entry leaves the title blank.
	info, _ := s.documents.Get(hit.DocumentID)
	return services.HitResult{
		DocumentID:      hit.DocumentID,
		Title:           info.Title,
		Score:           hit.Score,
		TermFrequencies: hit.TermFrequencies,
		TitleMatches:    hit.TitleMatches,
	}
}
