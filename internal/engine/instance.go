package engine

import (
	"fmt"

	"github.com/gcbaptista/page-search/config"
	"github.com/gcbaptista/page-search/index"
	"github.com/gcbaptista/page-search/internal/metrics"
	"github.com/gcbaptista/page-search/internal/search"
	"github.com/gcbaptista/page-search/internal/tokenizer"
	"github.com/gcbaptista/page-search/services"
	"github.com/gcbaptista/page-search/store"
)

// IndexInstance holds all components and services for a single search index.
// It implements the services.IndexAccessor interface. Every field is
// immutable once the instance is published.
type IndexInstance struct {
	settings  config.IndexSettings
	index     *index.Index
	documents *store.DocumentStore
	searcher  *search.Service
}

// NewIndexInstance wires a frozen index and its document metadata into a
// searchable instance. settings must be the effective build settings.
func NewIndexInstance(settings config.IndexSettings, idx *index.Index, documents *store.DocumentStore, m *metrics.Metrics) (*IndexInstance, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("index name cannot be empty in settings")
	}
	searcher, err := search.NewService(idx, documents, tokenizer.NewFromSettings(settings), settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}
	return &IndexInstance{
		settings:  settings,
		index:     idx,
		documents: documents,
		searcher:  searcher.WithMetrics(m),
	}, nil
}

// Search delegates to the underlying Searcher service.
func (i *IndexInstance) Search(query services.SearchQuery) (services.SearchResult, error) {
	return i.searcher.Search(query)
}

// Query returns every ranked hit for raw, without pagination.
func (i *IndexInstance) Query(raw string) []search.Hit {
	return i.searcher.Query(raw)
}

// Settings returns the configuration settings for this index.
func (i *IndexInstance) Settings() config.IndexSettings {
	return i.settings
}

// Stats returns the size of the index.
func (i *IndexInstance) Stats() index.Stats {
	return i.index.Stats()
}

// Complete returns up to limit indexed terms starting with prefix.
func (i *IndexInstance) Complete(prefix string, limit int) []string {
	return i.index.Complete(prefix, limit)
}

// Document returns the metadata of an indexed document.
func (i *IndexInstance) Document(documentID string) (store.DocumentInfo, error) {
	return i.documents.Get(documentID)
}
