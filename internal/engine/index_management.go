package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gcbaptista/page-search/config"
	internalErrors "github.com/gcbaptista/page-search/internal/errors"
	"github.com/gcbaptista/page-search/internal/indexing"
	"github.com/gcbaptista/page-search/model"
	"github.com/gcbaptista/page-search/services"
)

// CreateIndex builds a new index from docs, persists it and publishes it.
// An empty document collection is accepted and yields an index that
// matches nothing.
func (e *Engine) CreateIndex(settings config.IndexSettings, docs []model.Document) error {
	e.mu.RLock()
	_, exists := e.indexes[settings.Name]
	e.mu.RUnlock()
	if exists {
		return internalErrors.NewIndexAlreadyExistsError(settings.Name)
	}

	instance, err := e.build(context.Background(), settings, docs, nil)
	if err != nil {
		return err
	}
	stagingPath, err := e.stageInstance(instance)
	if err != nil {
		return fmt.Errorf("failed to persist new index '%s': %w", settings.Name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// Another request may have published the same name while we were building.
	if _, exists := e.indexes[settings.Name]; exists {
		discardStaged(stagingPath)
		return internalErrors.NewIndexAlreadyExistsError(settings.Name)
	}
	if err := e.commitStagedUnsafe(settings.Name, stagingPath); err != nil {
		return fmt.Errorf("failed to persist new index '%s': %w", settings.Name, err)
	}
	e.publishUnsafe(instance)
	log.Printf("Info: index '%s' created and persisted.", settings.Name)
	return nil
}

// build runs the indexing pipeline for one document collection.
func (e *Engine) build(ctx context.Context, settings config.IndexSettings, docs []model.Document, progress indexing.ProgressFunc) (*IndexInstance, error) {
	builder, err := indexing.NewBuilder(settings)
	if err != nil {
		return nil, err
	}
	if progress != nil {
		builder.WithProgress(progress)
	}

	start := time.Now()
	result, err := builder.Build(ctx, docs)
	took := time.Since(start)
	status := "success"
	switch {
	case errors.Is(err, internalErrors.ErrEmptyCorpus):
		status = "empty"
		log.Printf("Warning: %v; serving an empty index", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		e.metrics.ObserveBuild(settings.Name, "cancelled", took)
		return nil, err
	case err != nil:
		e.metrics.ObserveBuild(settings.Name, "error", took)
		return nil, err
	}
	e.metrics.ObserveBuild(settings.Name, status, took)

	instance, err := NewIndexInstance(builder.Settings(), result.Index, result.Documents, e.metrics)
	if err != nil {
		return nil, err
	}
	stats := instance.Stats()
	log.Printf("Info: indexed %d pages with %d unique terms into '%s' in %v", stats.Documents, stats.Terms, settings.Name, took)
	return instance, nil
}

// publishUnsafe makes instance visible to searches, replacing any index of
// the same name. The caller must hold the write lock.
func (e *Engine) publishUnsafe(instance *IndexInstance) {
	e.indexes[instance.settings.Name] = instance
	stats := instance.Stats()
	e.metrics.SetIndexSize(instance.settings.Name, stats.Documents, stats.Terms)
}

// GetIndex retrieves an index by its name.
func (e *Engine) GetIndex(name string) (services.IndexAccessor, error) {
	instance, err := e.Instance(name)
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// Instance returns the concrete instance of an index.
func (e *Engine) Instance(name string) (*IndexInstance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.indexes[name]
	if !exists {
		return nil, internalErrors.NewIndexNotFoundError(name)
	}
	return instance, nil
}

// DeleteIndex deletes an index and its data from disk.
func (e *Engine) DeleteIndex(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indexes[name]; !exists {
		return internalErrors.NewIndexNotFoundError(name)
	}
	delete(e.indexes, name)
	e.deletions[name]++
	e.metrics.ForgetIndex(name)

	indexPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(indexPath); err != nil {
		return fmt.Errorf("failed to remove index directory %s: %w", indexPath, err)
	}

	log.Printf("Info: index '%s' deleted successfully.", name)
	return nil
}

// deletionCount reports how many times name has been deleted. A build
// records it when it is requested and publishes only if it is unchanged.
func (e *Engine) deletionCount(name string) uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.deletions[name]
}

// ListIndexes returns the names of all published indexes, sorted.
func (e *Engine) ListIndexes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.indexes))
	for name := range e.indexes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
