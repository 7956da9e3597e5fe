package store

import (
	"slices"

	"github.com/gcbaptista/page-search/internal/errors"
	"github.com/gcbaptista/page-search/model"
)

// DocumentInfo is the per-document metadata kept next to an index so hits
// can be displayed without going back to the corpus.
type DocumentInfo struct {
	ID        string `json:"documentID"`
	Title     string `json:"title"`
	TermCount int    `json:"term_count"` // Index terms found in the body
}

// DocumentStore maps document IDs to their metadata. Like the index it
// accompanies, it is filled once during a build and only read afterwards.
type DocumentStore struct {
	Docs map[string]DocumentInfo // Exported for gob
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{Docs: make(map[string]DocumentInfo)}
}

// Add records a document. Document IDs must be unique within a store.
func (ds *DocumentStore) Add(doc model.Document, termCount int) error {
	if !doc.HasValidID() {
		return errors.NewValidationError("documentID", "document ID cannot be empty or whitespace-only")
	}
	if _, exists := ds.Docs[doc.ID]; exists {
		return errors.NewValidationError("documentID", "duplicate document ID '"+doc.ID+"'")
	}
	ds.Docs[doc.ID] = DocumentInfo{ID: doc.ID, Title: doc.Title, TermCount: termCount}
	return nil
}

// Get returns the metadata of a document.
func (ds *DocumentStore) Get(documentID string) (DocumentInfo, error) {
	info, ok := ds.Docs[documentID]
	if !ok {
		return DocumentInfo{}, errors.NewDocumentNotFoundError(documentID)
	}
	return info, nil
}

// Len returns the number of documents.
func (ds *DocumentStore) Len() int {
	return len(ds.Docs)
}

// IDs returns all document IDs in ascending order.
func (ds *DocumentStore) IDs() []string {
	ids := make([]string, 0, len(ds.Docs))
	for id := range ds.Docs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
