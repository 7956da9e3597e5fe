// Package testing provides utilities and helpers for testing the search engine.
package testing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/page-search/config"
	"github.com/gcbaptista/page-search/internal/engine"
	"github.com/gcbaptista/page-search/model"
	"github.com/gcbaptista/page-search/services"
)

// SampleDocuments returns the two-page corpus used across tests. Querying
// "apple" ranks doc1 (score 4) above doc2 (score 1).
func SampleDocuments() []model.Document {
	return []model.Document{
		{ID: "doc1", Title: "Apple Pie", Body: "I love apple pie and apple juice"},
		{ID: "doc2", Title: "Dog Care", Body: "apple trees need care"},
	}
}

// CreateTestEngine creates an engine over a temporary data directory. The
// engine is closed when the test ends.
func CreateTestEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()
	eng := engine.NewEngine(t.TempDir(), opts...)
	t.Cleanup(eng.Close)
	return eng
}

// CreateTestIndex builds an index named indexName from SampleDocuments.
func CreateTestIndex(t *testing.T, eng *engine.Engine, indexName string) config.IndexSettings {
	t.Helper()
	settings := config.IndexSettings{Name: indexName}
	require.NoError(t, eng.CreateIndex(settings, SampleDocuments()), "Failed to create test index")
	return settings
}

// WriteCorpus writes pages (file name to HTML content) into a fresh
// temporary directory and returns its path.
func WriteCorpus(t *testing.T, pages map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}
	return dir
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 10 * time.Millisecond,
	}
}

// WaitForJobCompletion polls a job until it completes, fails the test if
// the job fails or the timeout expires.
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not complete within %v timeout", jobID, opts.Timeout)
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted:
				return job
			case model.JobStatusFailed, model.JobStatusCancelled:
				t.Fatalf("Job %s ended as %s: %s", jobID, job.Status, job.Error)
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s", jobID, job.Progress.Current, job.Progress.Total, job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedIndex string) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedIndex, job.IndexName, "Job index name should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}
