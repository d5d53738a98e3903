package driven

import "context"

// VectorIndex is an approximate nearest-neighbour index over fixed-dimension
// vectors, addressed by dense 0-based integer slot. Slot i must always hold
// the embedding of the example at store position i; the index does not know
// example identities.
//
// The structure is append-only: removal means resetting and re-inserting the
// survivors in their new order.
type VectorIndex interface {
	// Insert stores a vector at the given slot. The slot must equal Count()
	// (append-only growth); anything else is a programmer error surfaced as
	// domain.ErrSlotMismatch.
	Insert(ctx context.Context, slot int, vector []float32) error

	// Search returns up to k hits ordered best-first by cosine similarity.
	// An index holding fewer than k vectors returns as many as exist; an
	// empty index returns an empty result, never an error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Count returns the number of stored vectors.
	Count() int

	// Reset drops every vector, leaving an empty index with the same
	// dimension and capacity.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// VectorHit is a single similarity search result.
type VectorHit struct {
	// Slot identifies the matched vector (= example store position).
	Slot int

	// Similarity is the cosine similarity (1 - cosine distance).
	Similarity float64
}
