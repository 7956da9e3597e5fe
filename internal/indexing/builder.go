// Package indexing builds a frozen index from a document collection.
package indexing

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gcbaptista/page-search/config"
	"github.com/gcbaptista/page-search/index"
	"github.com/gcbaptista/page-search/internal/errors"
	"github.com/gcbaptista/page-search/internal/tokenizer"
	"github.com/gcbaptista/page-search/model"
	"github.com/gcbaptista/page-search/store"
)

// ProgressFunc is called after each document is indexed.
type ProgressFunc func(done, total int)

// Result is the output of a build: the index and the metadata of the
// documents it was built from.
type Result struct {
	Index     *index.Index
	Documents *store.DocumentStore
}

// Builder turns documents into an index. A Builder is the only writer of
// the index it builds; the index is frozen before Build returns.
type Builder struct {
	settings  config.IndexSettings
	tokenizer *tokenizer.Tokenizer
	progress  ProgressFunc
}

// NewBuilder creates a Builder for the given settings. Defaults are applied
// to a copy of settings before validation.
func NewBuilder(settings config.IndexSettings) (*Builder, error) {
	settings.ApplyDefaults()
	if conflicts := settings.Validate(); len(conflicts) > 0 {
		return nil, errors.NewValidationError("settings", strings.Join(conflicts, "; "))
	}
	return &Builder{
		settings:  settings,
		tokenizer: tokenizer.NewFromSettings(settings),
	}, nil
}

// WithProgress registers a callback invoked after every document.
func (b *Builder) WithProgress(fn ProgressFunc) *Builder {
	b.progress = fn
	return b
}

// Settings returns the effective settings, defaults included.
func (b *Builder) Settings() config.IndexSettings {
	return b.settings
}

// Tokenizer returns the tokenizer used for documents. Queries against the
// built index must use the same one.
func (b *Builder) Tokenizer() *tokenizer.Tokenizer {
	return b.tokenizer
}

// Build indexes docs. Document IDs must be non-empty and unique.
//
// With zero documents Build returns a valid, empty, frozen index together
// with an *errors.EmptyCorpusError; callers may ignore that error and serve
// the empty index.
//
// The order of docs affects only internal slot numbering, never lookups
// or query results. ctx is checked between documents.
func (b *Builder) Build(ctx context.Context, docs []model.Document) (*Result, error) {
	trie := index.NewTrie()
	postings := index.NewPostingStore()
	documents := store.NewDocumentStore()

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := b.addDocument(trie, postings, documents, doc); err != nil {
			return nil, fmt.Errorf("failed to index document '%s': %w", doc.ID, err)
		}
		if b.progress != nil {
			b.progress(i+1, len(docs))
		}
	}

	trie.Freeze()
	postings.Freeze()
	result := &Result{
		Index:     index.New(trie, postings, len(docs)),
		Documents: documents,
	}
	if len(docs) == 0 {
		return result, errors.NewEmptyCorpusError(b.settings.Name)
	}
	return result, nil
}

// addDocument emits one Occurrence per distinct body term of doc. Title
// terms only set InTitle; a term found solely in the title is not indexed
// for doc. The count map and title set are scoped to this call.
func (b *Builder) addDocument(trie *index.Trie, postings *index.PostingStore, documents *store.DocumentStore, doc model.Document) error {
	counts := make(map[string]int)
	bodyTerms := 0
	for term := range b.tokenizer.Terms(doc.Body) {
		counts[term]++
		bodyTerms++
	}

	inTitle := make(map[string]struct{})
	for term := range b.tokenizer.Terms(doc.Title) {
		inTitle[term] = struct{}{}
	}

	// Registering first rejects duplicate IDs before any posting is written.
	if err := documents.Add(doc, bodyTerms); err != nil {
		return err
	}

	for _, term := range slices.Sorted(maps.Keys(counts)) {
		slot, ok := trie.Lookup(term)
		if !ok {
			slot = postings.AllocateSlot()
			if err := trie.Insert(term, slot); err != nil {
				return err
			}
		}
		_, title := inTitle[term]
		postings.Append(slot, index.Occurrence{
			DocumentID:    doc.ID,
			TermFrequency: counts[term],
			InTitle:       title,
		})
	}
	return nil
}
