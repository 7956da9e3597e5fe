package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcbaptista/page-search/config"
	"github.com/gcbaptista/page-search/index"
	internalErrors "github.com/gcbaptista/page-search/internal/errors"
	"github.com/gcbaptista/page-search/internal/persistence"
	"github.com/gcbaptista/page-search/store"
)

const (
	dataDirPerm       = 0750
	settingsFile      = "settings.gob.zst"
	indexFile         = "index.gob.zst"
	documentStoreFile = "documents.gob.zst"
	stagingPrefix     = ".staging-"
)

// settingsSnapshot is the on-disk form of index settings. gob cannot tell
// an empty slice from a nil one, and for StopWords the two mean different
// things.
type settingsSnapshot struct {
	Settings    config.IndexSettings
	NoStopWords bool
}

func newSettingsSnapshot(settings config.IndexSettings) settingsSnapshot {
	return settingsSnapshot{
		Settings:    settings,
		NoStopWords: settings.StopWords != nil && len(settings.StopWords) == 0,
	}
}

func (s settingsSnapshot) restore() config.IndexSettings {
	settings := s.Settings
	if s.NoStopWords {
		settings.StopWords = []string{}
	}
	return settings
}

// loadIndexesFromDisk loads every index snapshot found in the data directory.
// A snapshot missing any of its files, or failing validation, is skipped.
func (e *Engine) loadIndexesFromDisk() {
	log.Printf("Info: loading indexes from disk: %s", e.dataDir)

	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Printf("Warning: failed to read data directory %s: %v. No indexes loaded.", e.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		indexName := item.Name()
		if strings.HasPrefix(indexName, stagingPrefix) {
			// Left behind by a build interrupted before it was committed.
			discardStaged(filepath.Join(e.dataDir, indexName))
			continue
		}
		instance, err := e.loadInstance(indexName)
		if err != nil {
			log.Printf("Warning: skipping index %s: %v", indexName, err)
			continue
		}

		e.mu.Lock()
		e.publishUnsafe(instance)
		e.mu.Unlock()
		log.Printf("Info: successfully loaded index: %s", indexName)
	}
}

func (e *Engine) loadInstance(indexName string) (*IndexInstance, error) {
	indexPath := filepath.Join(e.dataDir, indexName)

	var snapshot settingsSnapshot
	if err := persistence.LoadGob(filepath.Join(indexPath, settingsFile), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	settings := snapshot.restore()
	if settings.Name != indexName {
		return nil, fmt.Errorf("index name in settings ('%s') does not match directory name ('%s')", settings.Name, indexName)
	}
	if conflicts := settings.Validate(); len(conflicts) > 0 {
		return nil, internalErrors.NewValidationError("settings", fmt.Sprint(conflicts))
	}

	idx := &index.Index{}
	if err := persistence.LoadGob(filepath.Join(indexPath, indexFile), idx); err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}

	documents := store.NewDocumentStore()
	if err := persistence.LoadGob(filepath.Join(indexPath, documentStoreFile), documents); err != nil {
		return nil, fmt.Errorf("failed to load document store: %w", err)
	}
	if documents.Len() != idx.Stats().Documents {
		return nil, fmt.Errorf("document store holds %d documents, index expects %d", documents.Len(), idx.Stats().Documents)
	}

	return NewIndexInstance(settings, idx, documents, e.metrics)
}

// PersistIndexData writes the snapshot of a published index to disk.
func (e *Engine) PersistIndexData(indexName string) error {
	instance, err := e.Instance(indexName)
	if err != nil {
		return err
	}
	stagingPath, err := e.stageInstance(instance)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	current, exists := e.indexes[indexName]
	if !exists {
		discardStaged(stagingPath)
		return internalErrors.NewIndexNotFoundError(indexName)
	}
	if current != instance {
		// A newer instance was published and persisted in the meantime.
		discardStaged(stagingPath)
		return nil
	}
	return e.commitStagedUnsafe(indexName, stagingPath)
}

// stageInstance writes the snapshot of instance into a fresh directory
// inside the data directory and returns its path. Staged snapshots are
// never loaded; commitStagedUnsafe moves one into place.
func (e *Engine) stageInstance(instance *IndexInstance) (string, error) {
	name := instance.settings.Name
	if err := os.MkdirAll(e.dataDir, dataDirPerm); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", e.dataDir, err)
	}
	stagingPath, err := os.MkdirTemp(e.dataDir, stagingPrefix+name+"-")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory for index %s: %w", name, err)
	}
	if err := writeSnapshot(stagingPath, instance); err != nil {
		discardStaged(stagingPath)
		return "", err
	}
	return stagingPath, nil
}

// commitStagedUnsafe replaces the live snapshot of name with a staged one.
// Only directory operations happen here. The caller must hold the write lock.
func (e *Engine) commitStagedUnsafe(name, stagingPath string) error {
	indexPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(indexPath); err != nil {
		discardStaged(stagingPath)
		return fmt.Errorf("failed to remove previous snapshot of index %s: %w", name, err)
	}
	if err := os.Rename(stagingPath, indexPath); err != nil {
		discardStaged(stagingPath)
		return fmt.Errorf("failed to move snapshot of index %s into place: %w", name, err)
	}
	return nil
}

func discardStaged(stagingPath string) {
	if err := os.RemoveAll(stagingPath); err != nil {
		log.Printf("Warning: failed to remove staging directory %s: %v", stagingPath, err)
	}
}

// writeSnapshot writes settings, document metadata and index, one file each.
func writeSnapshot(dir string, instance *IndexInstance) error {
	name := instance.settings.Name
	if err := persistence.SaveGob(filepath.Join(dir, settingsFile), newSettingsSnapshot(instance.settings)); err != nil {
		return fmt.Errorf("failed to save settings for index %s: %w", name, err)
	}
	if err := persistence.SaveGob(filepath.Join(dir, documentStoreFile), instance.documents); err != nil {
		return fmt.Errorf("failed to save document store for %s: %w", name, err)
	}
	if err := persistence.SaveGob(filepath.Join(dir, indexFile), instance.index); err != nil {
		return fmt.Errorf("failed to save index for %s: %w", name, err)
	}
	return nil
}
