package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSearch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSearch("pages", 2*time.Millisecond, 3)
	m.ObserveSearch("pages", time.Millisecond, 0)
	m.ObserveSearch("pages", time.Millisecond, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("pages", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("pages", "zero_result")))
}

func TestIndexGauges(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SetIndexSize("pages", 10, 250)
	assert.Equal(t, 10.0, testutil.ToFloat64(m.IndexDocuments.WithLabelValues("pages")))
	assert.Equal(t, 250.0, testutil.ToFloat64(m.IndexTerms.WithLabelValues("pages")))

	m.ObserveBuild("pages", "success", time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IndexBuildsTotal.WithLabelValues("pages", "success")))

	m.ForgetIndex("pages")
	assert.Equal(t, 0, testutil.CollectAndCount(m.IndexTerms))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSearch("x", time.Millisecond, 1)
		m.ObserveBuild("x", "error", time.Millisecond)
		m.SetIndexSize("x", 1, 1)
		m.ForgetIndex("x")
		m.ObserveHTTP("GET", "/health", 200, time.Millisecond)
		m.JobStarted()
		m.JobFinished("build_index", "completed", time.Millisecond)
	})
}

func TestJobMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.JobStarted()
	m.JobStarted()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.JobsRunning))

	m.JobFinished("build_index", "completed", time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsRunning))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsTotal.WithLabelValues("build_index", "completed")))
}

func TestHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveHTTP("GET", "/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `http_requests_total{method="GET",route="/health",status="200"} 1`))
}
