package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrIndexNotFound is returned when an index is not found
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexAlreadyExists is returned when trying to create an index that already exists
	ErrIndexAlreadyExists = errors.New("index already exists")

	// ErrDocumentNotFound is returned when a document is not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateTerm is returned when a term is inserted twice into a trie
	ErrDuplicateTerm = errors.New("duplicate term")

	// ErrInvalidTerm is returned when an empty or malformed term reaches the trie
	ErrInvalidTerm = errors.New("invalid term")

	// ErrEmptyCorpus is returned alongside a usable, empty index when a build
	// is given zero documents. It is not fatal.
	ErrEmptyCorpus = errors.New("empty corpus")
)

// IndexNotFoundError represents an index not found error with context
type IndexNotFoundError struct {
	IndexName string
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("index named '%s' not found", e.IndexName)
}

func (e *IndexNotFoundError) Is(target error) bool {
	return target == ErrIndexNotFound
}

// NewIndexNotFoundError creates a new IndexNotFoundError
func NewIndexNotFoundError(indexName string) *IndexNotFoundError {
	return &IndexNotFoundError{IndexName: indexName}
}

// IndexAlreadyExistsError represents an index already exists error with context
type IndexAlreadyExistsError struct {
	IndexName string
}

func (e *IndexAlreadyExistsError) Error() string {
	return fmt.Sprintf("index named '%s' already exists", e.IndexName)
}

func (e *IndexAlreadyExistsError) Is(target error) bool {
	return target == ErrIndexAlreadyExists
}

// NewIndexAlreadyExistsError creates a new IndexAlreadyExistsError
func NewIndexAlreadyExistsError(indexName string) *IndexAlreadyExistsError {
	return &IndexAlreadyExistsError{IndexName: indexName}
}

// DocumentNotFoundError represents a document not found error with context
type DocumentNotFoundError struct {
	DocumentID string
	IndexName  string
}

func (e *DocumentNotFoundError) Error() string {
	if e.IndexName != "" {
		return fmt.Sprintf("document with ID '%s' not found in index '%s'", e.DocumentID, e.IndexName)
	}
	return fmt.Sprintf("document with ID '%s' not found", e.DocumentID)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError
func NewDocumentNotFoundError(documentID string, indexName ...string) *DocumentNotFoundError {
	err := &DocumentNotFoundError{DocumentID: documentID}
	if len(indexName) > 0 {
		err.IndexName = indexName[0]
	}
	return err
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateTermError reports a second terminal insertion of the same term.
// Under correct builder usage it never occurs.
type DuplicateTermError struct {
	Term string
	Slot int32 // slot already bound to Term
}

func (e *DuplicateTermError) Error() string {
	return fmt.Sprintf("term '%s' is already indexed at slot %d", e.Term, e.Slot)
}

func (e *DuplicateTermError) Is(target error) bool {
	return target == ErrDuplicateTerm
}

// NewDuplicateTermError creates a new DuplicateTermError
func NewDuplicateTermError(term string, slot int32) *DuplicateTermError {
	return &DuplicateTermError{Term: term, Slot: slot}
}

// InvalidTermError reports a term the trie refuses to store.
type InvalidTermError struct {
	Term   string
	Reason string
}

func (e *InvalidTermError) Error() string {
	return fmt.Sprintf("invalid term '%s': %s", e.Term, e.Reason)
}

func (e *InvalidTermError) Is(target error) bool {
	return target == ErrInvalidTerm
}

// NewInvalidTermError creates a new InvalidTermError
func NewInvalidTermError(term, reason string) *InvalidTermError {
	return &InvalidTermError{Term: term, Reason: reason}
}

// EmptyCorpusError is returned together with a valid empty index.
type EmptyCorpusError struct {
	IndexName string
}

func (e *EmptyCorpusError) Error() string {
	if e.IndexName != "" {
		return fmt.Sprintf("index '%s' was built from zero documents", e.IndexName)
	}
	return "index was built from zero documents"
}

func (e *EmptyCorpusError) Is(target error) bool {
	return target == ErrEmptyCorpus
}

// NewEmptyCorpusError creates a new EmptyCorpusError
func NewEmptyCorpusError(indexName string) *EmptyCorpusError {
	return &EmptyCorpusError{IndexName: indexName}
}
