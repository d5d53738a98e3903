package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested example does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input. Input is
	// rejected before any stateful work begins.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateExample indicates an add matched an existing example.
	// The typed DuplicateError carries the existing ID.
	ErrDuplicateExample = errors.New("duplicate example")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Similarity search and mutation of the training set are
	// disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrSlotMismatch indicates the vector index and the example store have
	// fallen out of alignment. This is an invariant violation: continuing
	// risks returning the wrong example for a similarity hit.
	ErrSlotMismatch = errors.New("vector slot out of alignment with example store")

	// ErrIndexFull indicates the vector index capacity was exceeded. The
	// capacity is a deployment setting, so this is a configuration error.
	ErrIndexFull = errors.New("vector index capacity exceeded")

	// ErrDimensionMismatch indicates a vector of the wrong dimension was
	// handed to the index. Dimension is fixed per deployment.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// DuplicateError reports an add that matched an existing example.
type DuplicateError struct {
	// ExistingID is the ID of the example already in the store.
	ExistingID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate example (existing id %s)", e.ExistingID)
}

// Unwrap makes errors.Is(err, ErrDuplicateExample) work.
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateExample
}
