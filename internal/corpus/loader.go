// Package corpus turns a directory of HTML pages into documents ready for
// indexing.
package corpus

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/page-search/model"
)

const (
	DefaultExtension   = ".html"
	DefaultConcurrency = 8
)

// LoadDir reads every regular file in dir whose name ends with ext and
// returns one Document per page, sorted by ID. Subdirectories are not
// descended into. Files are parsed by up to concurrency goroutines.
//
// A page's ID is "file://" followed by its path, its title is the page's
// <title> or, when absent, the file name.
func LoadDir(ctx context.Context, dir, ext string, concurrency int) ([]model.Document, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), ext) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	docs := make([]model.Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := LoadFile(path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(docs, func(a, b model.Document) int {
		return strings.Compare(a.ID, b.ID)
	})
	log.Printf("Info: loaded %d pages from %s", len(docs), dir)
	return docs, nil
}

// LoadFile reads and extracts a single page.
func LoadFile(path string) (model.Document, error) {
	file, err := os.Open(path) // #nosec G304 -- corpus paths come from operator configuration
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to open page %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close page %s: %v", path, closeErr)
		}
	}()

	page, err := Extract(file)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to parse page %s: %w", path, err)
	}

	title := page.Title
	if title == "" {
		title = filepath.Base(path)
	}
	return model.Document{
		ID:    "file://" + path,
		Title: title,
		Body:  page.Text,
	}, nil
}
