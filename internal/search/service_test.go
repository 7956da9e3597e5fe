package search

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/page-search/config"
	searchErrors "github.com/gcbaptista/page-search/internal/errors"
	"github.com/gcbaptista/page-search/internal/indexing"
	"github.com/gcbaptista/page-search/internal/metrics"
	"github.com/gcbaptista/page-search/model"
	"github.com/gcbaptista/page-search/services"
)

func newTestService(t *testing.T, docs []model.Document) *Service {
	t.Helper()
	b, err := indexing.NewBuilder(config.IndexSettings{Name: "test_index"})
	require.NoError(t, err)
	result, err := b.Build(t.Context(), docs)
	require.NoError(t, err)

	svc, err := NewService(result.Index, result.Documents, b.Tokenizer(), b.Settings())
	require.NoError(t, err)
	return svc
}

func TestNewServiceRejectsNil(t *testing.T) {
	_, err := NewService(nil, nil, nil, config.IndexSettings{})
	assert.Error(t, err)
}

func TestServiceSearch(t *testing.T) {
	svc := newTestService(t, sampleDocs())

	result, err := svc.Search(services.SearchQuery{QueryString: "apple"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, defaultPageSize, result.PageSize)
	_, err = uuid.Parse(result.QueryId)
	assert.NoError(t, err)

	require.Len(t, result.Hits, 2)
	assert.Equal(t, services.HitResult{
		DocumentID:      "doc1",
		Title:           "Apple Pie",
		Score:           4,
		TermFrequencies: map[string]int{"apple": 2},
		TitleMatches:    []string{"apple"},
	}, result.Hits[0])
	assert.Equal(t, "doc2", result.Hits[1].DocumentID)
	assert.Equal(t, "Dog Care", result.Hits[1].Title)
	assert.Empty(t, result.Hits[1].TitleMatches)
}

func TestServiceSearchNoResults(t *testing.T) {
	svc := newTestService(t, sampleDocs())

	for _, q := range []string{"", "the", "apple dog"} {
		result, err := svc.Search(services.SearchQuery{QueryString: q})
		require.NoError(t, err, "query %q", q)
		assert.Equal(t, 0, result.Total)
		assert.NotNil(t, result.Hits)
		assert.Empty(t, result.Hits)
	}
}

func TestServiceSearchPagination(t *testing.T) {
	docs := make([]model.Document, 0, 25)
	for i := 0; i < 25; i++ {
		docs = append(docs, model.Document{ID: fmt.Sprintf("doc%02d", i), Body: "shared word"})
	}
	svc := newTestService(t, docs)

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantFirst string
		wantLen   int
	}{
		{"first page", 1, 10, "doc00", 10},
		{"last partial page", 3, 10, "doc20", 5},
		{"past the end", 4, 10, "", 0},
		{"defaults", 0, 0, "doc00", defaultPageSize},
		{"huge page", math.MaxInt64 / 5, 10, "", 0},
		{"max page", math.MaxInt, maxPageSize, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Search(services.SearchQuery{QueryString: "shared", Page: tt.page, PageSize: tt.pageSize})
			require.NoError(t, err)
			assert.Equal(t, 25, result.Total)
			require.Len(t, result.Hits, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, result.Hits[0].DocumentID)
			}
		})
	}
}

func TestServiceSearchPageSizeLimit(t *testing.T) {
	svc := newTestService(t, sampleDocs())

	_, err := svc.Search(services.SearchQuery{QueryString: "apple", PageSize: maxPageSize + 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, searchErrors.ErrInvalidInput))
}

func TestServiceSearchRecordsMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	svc := newTestService(t, sampleDocs()).WithMetrics(m)

	_, err := svc.Search(services.SearchQuery{QueryString: "apple"})
	require.NoError(t, err)
	_, err = svc.Search(services.SearchQuery{QueryString: "banana"})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("test_index", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("test_index", "zero_result")))
}
