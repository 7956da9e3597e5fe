package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIndexNotFoundError(t *testing.T) {
	indexName := "test-index"
	err := NewIndexNotFoundError(indexName)

	// Test error message
	expectedMsg := "index named 'test-index' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrIndexNotFound) {
		t.Error("Expected error to match ErrIndexNotFound sentinel")
	}

	// Test that it doesn't match other sentinels
	if errors.Is(err, ErrDocumentNotFound) {
		t.Error("Error should not match ErrDocumentNotFound")
	}
}

func TestIndexAlreadyExistsError(t *testing.T) {
	indexName := "existing-index"
	err := NewIndexAlreadyExistsError(indexName)

	// Test error message
	expectedMsg := "index named 'existing-index' already exists"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrIndexAlreadyExists) {
		t.Error("Expected error to match ErrIndexAlreadyExists sentinel")
	}
}

func TestDocumentNotFoundError(t *testing.T) {
	// Test without index name
	docID := "doc123"
	err := NewDocumentNotFoundError(docID)

	expectedMsg := "document with ID 'doc123' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test with index name
	indexName := "test-index"
	err2 := NewDocumentNotFoundError(docID, indexName)

	expectedMsg2 := "document with ID 'doc123' not found in index 'test-index'"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Error("Expected error to match ErrDocumentNotFound sentinel")
	}
	if !errors.Is(err2, ErrDocumentNotFound) {
		t.Error("Expected error with index to match ErrDocumentNotFound sentinel")
	}
}

func TestJobNotFoundError(t *testing.T) {
	jobID := "job-456"
	err := NewJobNotFoundError(jobID)

	expectedMsg := "job with ID 'job-456' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrJobNotFound) {
		t.Error("Expected error to match ErrJobNotFound sentinel")
	}
}

func TestValidationError(t *testing.T) {
	// Test with field
	field := "name"
	message := "cannot be empty"
	err := NewValidationError(field, message)

	expectedMsg := "validation error for field 'name': cannot be empty"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test without field
	err2 := NewValidationError("", message)

	expectedMsg2 := "validation error: cannot be empty"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
	if !errors.Is(err2, ErrInvalidInput) {
		t.Error("Expected error without field to match ErrInvalidInput sentinel")
	}
}

func TestDuplicateTermError(t *testing.T) {
	err := NewDuplicateTermError("apple", 3)

	expectedMsg := "term 'apple' is already indexed at slot 3"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrDuplicateTerm) {
		t.Error("Expected error to match ErrDuplicateTerm sentinel")
	}
	if errors.Is(err, ErrInvalidTerm) {
		t.Error("Error should not match ErrInvalidTerm")
	}
}

func TestInvalidTermError(t *testing.T) {
	err := NewInvalidTermError("", "term must not be empty")

	expectedMsg := "invalid term '': term must not be empty"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrInvalidTerm) {
		t.Error("Expected error to match ErrInvalidTerm sentinel")
	}
}

func TestEmptyCorpusError(t *testing.T) {
	err := NewEmptyCorpusError("")
	if err.Error() != "index was built from zero documents" {
		t.Errorf("Unexpected error message '%s'", err.Error())
	}

	named := NewEmptyCorpusError("pages")
	expectedMsg := "index 'pages' was built from zero documents"
	if named.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, named.Error())
	}

	if !errors.Is(fmt.Errorf("build: %w", named), ErrEmptyCorpus) {
		t.Error("Expected wrapped error to match ErrEmptyCorpus sentinel")
	}
}

func TestErrorChaining(t *testing.T) {
	// Test that our custom errors can be wrapped and unwrapped
	originalErr := NewIndexNotFoundError("test-index")
	wrappedErr := errors.Join(originalErr, errors.New("additional context"))

	// Should still be able to detect the original error
	if !errors.Is(wrappedErr, ErrIndexNotFound) {
		t.Error("Expected wrapped error to still match ErrIndexNotFound sentinel")
	}

	// Should be able to unwrap to get the original error
	var indexErr *IndexNotFoundError
	if !errors.As(wrappedErr, &indexErr) {
		t.Error("Expected to be able to unwrap to IndexNotFoundError")
	}

	if indexErr.IndexName != "test-index" {
		t.Errorf("Expected index name 'test-index', got '%s'", indexErr.IndexName)
	}
}
