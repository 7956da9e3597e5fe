package model

import "strings"

// Document is one pre-crawled page handed to the index builder.
// The ID is the page's stable identifier (its URL or path) and is used as
// the sort key of posting lists; Title and Body are already-extracted plain
// text. Documents are never modified after ingestion.
type Document struct {
	ID    string `json:"documentID"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// HasValidID reports whether the document carries a usable identifier.
func (d Document) HasValidID() bool {
	return strings.TrimSpace(d.ID) != ""
}
