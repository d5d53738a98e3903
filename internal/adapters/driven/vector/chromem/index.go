// Package chromem provides a slot-addressed vector index adapter backed by
// chromem-go, an embedded vector database with cosine similarity search.
// The slot number doubles as the chromem document ID; persistence is written
// through to a directory owned by chromem.
package chromem

import (
	"context"
	"fmt"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
	"github.com/ali1k/mcp-query-assistant/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	// DefaultCapacity bounds the number of stored vectors. Exceeding it is
	// a configuration error, not a recoverable condition.
	DefaultCapacity = 10000

	collectionName = "examples"
)

// Index is a slot-addressed vector index over fixed-dimension embeddings.
// Growth is append-only: slot n can only be inserted when the index holds
// exactly n vectors.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	dimension  int
	capacity   int
}

// New opens (or creates) a vector index persisted under dir.
// If dir is empty the index is in-memory only. Previously persisted vectors
// are loaded as part of opening.
func New(dir string, dimension, capacity int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("vector index: dimension must be positive")
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	var db *chromem.DB
	if dir != "" {
		var err error
		db, err = chromem.NewPersistentDB(dir, false)
		if err != nil {
			return nil, fmt.Errorf("open vector index at %s: %w", dir, err)
		}
	} else {
		db = chromem.NewDB()
	}

	// Embeddings are computed externally and passed in explicitly, so no
	// embedding function is configured on the collection.
	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("open vector collection: %w", err)
	}

	return &Index{
		db:         db,
		collection: collection,
		dimension:  dimension,
		capacity:   capacity,
	}, nil
}

// Insert stores a vector at the given slot. The slot must equal the current
// count; anything else means the caller lost track of the store/index
// alignment.
func (idx *Index) Insert(ctx context.Context, slot int, vector []float32) error {
	if len(vector) != idx.dimension {
		return fmt.Errorf("%w: got %d, index dimension %d",
			domain.ErrDimensionMismatch, len(vector), idx.dimension)
	}
	count := idx.collection.Count()
	if count >= idx.capacity {
		return fmt.Errorf("%w: capacity %d", domain.ErrIndexFull, idx.capacity)
	}
	if slot != count {
		return fmt.Errorf("%w: insert at slot %d, index holds %d vectors",
			domain.ErrSlotMismatch, slot, count)
	}

	doc := chromem.Document{
		ID:        strconv.Itoa(slot),
		Embedding: vector,
	}
	if err := idx.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("insert vector at slot %d: %w", slot, err)
	}
	return nil
}

// Search returns up to k hits ordered best-first by cosine similarity.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query has %d, index dimension %d",
			domain.ErrDimensionMismatch, len(query), idx.dimension)
	}
	if k <= 0 {
		return nil, nil
	}

	count := idx.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := idx.collection.QueryEmbedding(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	hits := make([]driven.VectorHit, 0, len(results))
	for _, res := range results {
		slot, err := strconv.Atoi(res.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: non-slot document id %q", domain.ErrSlotMismatch, res.ID)
		}
		hits = append(hits, driven.VectorHit{
			Slot:       slot,
			Similarity: float64(res.Similarity),
		})
	}
	return hits, nil
}

// Count returns the number of stored vectors.
func (idx *Index) Count() int {
	return idx.collection.Count()
}

// Reset drops every vector, including persisted ones, leaving an empty index
// with the same dimension and capacity.
func (idx *Index) Reset(_ context.Context) error {
	if err := idx.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("reset vector index: %w", err)
	}
	collection, err := idx.db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return fmt.Errorf("recreate vector collection: %w", err)
	}
	idx.collection = collection
	return nil
}

// Close releases resources. chromem holds no open handles between
// operations, so this is a no-op kept for the port contract.
func (idx *Index) Close() error {
	return nil
}
