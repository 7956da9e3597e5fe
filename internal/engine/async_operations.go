package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gcbaptista/page-search/config"
	"github.com/gcbaptista/page-search/internal/corpus"
	internalErrors "github.com/gcbaptista/page-search/internal/errors"
	"github.com/gcbaptista/page-search/internal/indexing"
	"github.com/gcbaptista/page-search/model"
)

// BuildIndexFromDirAsync starts a background job that loads the pages in
// dir, builds an index from them and publishes it under settings.Name,
// replacing any existing index of that name. It returns the job ID.
func (e *Engine) BuildIndexFromDirAsync(settings config.IndexSettings, dir string) (string, error) {
	if _, err := indexing.NewBuilder(settings); err != nil {
		return "", err
	}
	if err := checkCorpusDir(dir); err != nil {
		return "", err
	}

	deletions := e.deletionCount(settings.Name)
	jobID := e.jobManager.CreateJob(model.JobTypeBuildIndex, settings.Name, map[string]string{
		"corpus_dir": dir,
	})
	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error {
		return e.buildFromDir(ctx, settings, dir, job.ID, deletions)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start build index job: %w", err)
	}
	return jobID, nil
}

// BuildIndexFromDir loads the pages in dir and publishes an index built from
// them, replacing any existing index of the same name.
func (e *Engine) BuildIndexFromDir(ctx context.Context, settings config.IndexSettings, dir string) error {
	if err := checkCorpusDir(dir); err != nil {
		return err
	}
	return e.buildFromDir(ctx, settings, dir, "", e.deletionCount(settings.Name))
}

// buildFromDir builds and publishes an index from the pages in dir.
// deletions is the deletion count of the index when the build was
// requested; a DeleteIndex since then cancels the publish.
func (e *Engine) buildFromDir(ctx context.Context, settings config.IndexSettings, dir, jobID string, deletions uint64) error {
	e.reportProgress(jobID, 0, 0, "Loading pages")
	docs, err := corpus.LoadDir(ctx, dir, e.corpusExtension, e.corpusConcurrency)
	if err != nil {
		return err
	}

	e.reportProgress(jobID, 0, len(docs), "Indexing pages")
	instance, err := e.build(ctx, settings, docs, func(done, total int) {
		e.reportProgress(jobID, done, total, "Indexing pages")
	})
	if err != nil {
		return err
	}
	if err := e.publishBuild(ctx, instance, deletions); err != nil {
		return err
	}
	e.reportProgress(jobID, len(docs), len(docs), "Index published")
	log.Printf("Info: index '%s' built from %s and published.", settings.Name, dir)
	return nil
}

// publishBuild persists instance outside the lock, then swaps it in,
// replacing any index of the same name.
func (e *Engine) publishBuild(ctx context.Context, instance *IndexInstance, deletions uint64) error {
	name := instance.settings.Name
	stagingPath, err := e.stageInstance(instance)
	if err != nil {
		return fmt.Errorf("failed to persist index '%s': %w", name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := ctx.Err(); err != nil {
		discardStaged(stagingPath)
		return err
	}
	if e.deletions[name] != deletions {
		discardStaged(stagingPath)
		return fmt.Errorf("index '%s' was deleted while it was being built", name)
	}
	if err := e.commitStagedUnsafe(name, stagingPath); err != nil {
		return fmt.Errorf("failed to persist index '%s': %w", name, err)
	}
	e.publishUnsafe(instance)
	return nil
}

func (e *Engine) reportProgress(jobID string, current, total int, message string) {
	if jobID == "" {
		return
	}
	e.jobManager.UpdateJobProgress(jobID, current, total, message)
}

func checkCorpusDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return internalErrors.NewValidationError("corpus_dir", "corpus directory cannot be empty")
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return internalErrors.NewValidationError("corpus_dir", fmt.Sprintf("'%s' is not a readable directory", dir))
	}
	return nil
}
