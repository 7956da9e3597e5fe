// Package engine manages the named, immutable indexes served by the
// application: building, publishing, persisting and loading them.
package engine

import (
	"log"
	"os"
	"sync"

	"github.com/gcbaptista/page-search/internal/jobs"
	"github.com/gcbaptista/page-search/internal/metrics"
	"github.com/gcbaptista/page-search/model"
)

// Engine manages multiple search indexes.
// It implements the services.IndexManagerWithAsyncBuild and
// services.JobManager interfaces.
//
// A published index is never modified. Rebuilding an index builds a new
// one off to the side and swaps it in under the write lock, so searches in
// flight keep using the previous instance until they finish.
type Engine struct {
	mu                sync.RWMutex
	indexes           map[string]*IndexInstance
	deletions         map[string]uint64 // DeleteIndex calls per name
	dataDir           string
	jobManager        *jobs.Manager
	metrics           *metrics.Metrics
	corpusExtension   string
	corpusConcurrency int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithMetrics attaches Prometheus instrumentation to the engine, its
// searchers and its job manager.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithMaxWorkers sets how many builds may run at once.
func WithMaxWorkers(n int) Option {
	return func(e *Engine) { e.jobManager = jobs.NewManager(n) }
}

// WithCorpusOptions sets the page file extension and the number of pages
// parsed in parallel by directory builds.
func WithCorpusOptions(extension string, concurrency int) Option {
	return func(e *Engine) {
		e.corpusExtension = extension
		e.corpusConcurrency = concurrency
	}
}

// NewEngine creates a new search engine orchestrator and loads every index
// previously persisted under dataDir.
func NewEngine(dataDir string, opts ...Option) *Engine {
	eng := &Engine{
		indexes:   make(map[string]*IndexInstance),
		deletions: make(map[string]uint64),
		dataDir:   dataDir,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.jobManager == nil {
		eng.jobManager = jobs.NewManager(2)
	}
	eng.jobManager.WithMetrics(eng.metrics)
	eng.jobManager.Start()

	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: could not create data directory %s: %v. Proceeding without persistence.", dataDir, err)
	}
	eng.loadIndexesFromDisk()
	return eng
}

// Close stops background jobs, cancelling any build in progress.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// GetJob returns a snapshot of a background job.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns the jobs of an index, or of all indexes when indexName is empty.
func (e *Engine) ListJobs(indexName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(indexName, status)
}
