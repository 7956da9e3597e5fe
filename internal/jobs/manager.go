package jobs

import (
	"cmp"
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/page-search/internal/errors"
	"github.com/gcbaptista/page-search/internal/metrics"
	"github.com/gcbaptista/page-search/model"
)

// Func is the body of a job. It receives a snapshot of the job and must
// return promptly once ctx is cancelled.
type Func func(ctx context.Context, job model.Job) error

// Manager handles background job execution and tracking
type Manager struct {
	mu       sync.RWMutex
	jobs     map[string]*model.Job
	workers  chan struct{} // Limits concurrent jobs
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
	metrics  *metrics.Metrics
}

// NewManager creates a new job manager with specified worker count
func NewManager(maxWorkers int) *Manager {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		jobs:    make(map[string]*model.Job),
		workers: make(chan struct{}, maxWorkers),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// WithMetrics attaches Prometheus instrumentation.
func (m *Manager) WithMetrics(mt *metrics.Metrics) *Manager {
	m.metrics = mt
	return m
}

// Start begins the job manager and starts background cleanup
func (m *Manager) Start() {
	log.Printf("Info: job manager started with %d max workers", cap(m.workers))
	m.wg.Add(1)
	go m.cleanupRoutine()
}

// Stop cancels running jobs and waits for them to return. It is safe to
// call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		// Cancelling under mu orders it against ExecuteJob's wg.Add.
		m.mu.Lock()
		m.cancel()
		m.mu.Unlock()
		m.wg.Wait()
		log.Printf("Info: job manager stopped")
	})
}

// CreateJob creates a new pending job and returns its ID
func (m *Manager) CreateJob(jobType model.JobType, indexName string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    model.JobStatusPending,
		IndexName: indexName,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}

	m.jobs[job.ID] = job
	log.Printf("Info: created job %s (type: %s) for index '%s'", job.ID, job.Type, job.IndexName)
	return job.ID
}

// GetJob retrieves a job by ID
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns the jobs of an index, or of every index when indexName
// is empty, optionally filtered by status. Jobs are ordered oldest first.
func (m *Manager) ListJobs(indexName string, status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.Job, 0)
	for _, job := range m.jobs {
		if indexName != "" && job.IndexName != indexName {
			continue
		}
		if status != nil && job.Status != *status {
			continue
		}
		result = append(result, copyJob(job))
	}
	slices.SortFunc(result, func(a, b *model.Job) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// ExecuteJob schedules fn for a pending job. The job stays pending until
// a worker slot frees up; ExecuteJob itself never blocks on workers.
func (m *Manager) ExecuteJob(jobID string, fn Func) error {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}
	if job.Status != model.JobStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}
	if m.ctx.Err() != nil {
		finishUnsafe(job, model.JobStatusCancelled, "job manager shutting down")
		m.mu.Unlock()
		return fmt.Errorf("job manager is shutting down")
	}
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()

		select {
		case m.workers <- struct{}{}:
		case <-m.ctx.Done():
			m.finish(jobID, model.JobStatusCancelled, "job manager shutting down")
			return
		}
		defer func() { <-m.workers }()
		if m.ctx.Err() != nil {
			m.finish(jobID, model.JobStatusCancelled, "job manager shutting down")
			return
		}

		snapshot, ok := m.start(jobID)
		if !ok {
			return
		}
		m.metrics.JobStarted()
		startTime := time.Now()

		err := fn(m.ctx, snapshot)

		executionTime := time.Since(startTime)
		status := model.JobStatusCompleted
		switch {
		case err != nil && stderrors.Is(err, context.Canceled):
			status = model.JobStatusCancelled
			log.Printf("Warning: job %s cancelled after %v", jobID, executionTime)
		case err != nil:
			status = model.JobStatusFailed
			log.Printf("Warning: job %s failed after %v: %v", jobID, executionTime, err)
		default:
			log.Printf("Info: job %s completed successfully in %v", jobID, executionTime)
		}
		errMsg := ""
		if err != nil {
			errMsg = err.Error()
		}
		m.finish(jobID, status, errMsg)
		m.metrics.JobFinished(string(snapshot.Type), string(status), executionTime)
	}()

	return nil
}

// UpdateJobProgress updates the progress of a running job
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}
	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

// start moves a job from pending to running and returns a snapshot of it.
func (m *Manager) start(jobID string) (model.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists || job.Status != model.JobStatusPending {
		return model.Job{}, false
	}
	job.Status = model.JobStatusRunning
	now := time.Now()
	job.StartedAt = &now
	return *copyJob(job), true
}

func (m *Manager) finish(jobID string, status model.JobStatus, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	finishUnsafe(job, status, errorMsg)
}

func finishUnsafe(job *model.Job, status model.JobStatus, errorMsg string) {
	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}
	if status.Finished() {
		now := time.Now()
		job.CompletedAt = &now
	}
}

func (m *Manager) cleanupRoutine() {
	defer m.wg.Done()
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(24 * time.Hour)
		case <-m.ctx.Done():
			return
		}
	}
}

// CleanupOldJobs removes finished jobs that completed more than maxAge ago
func (m *Manager) CleanupOldJobs(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}
	if cleaned > 0 {
		log.Printf("Info: cleaned up %d old jobs", cleaned)
	}
}

func copyJob(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	return &jobCopy
}
