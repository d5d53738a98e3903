package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
	"github.com/ali1k/mcp-query-assistant/internal/core/ports/driven"
	"github.com/ali1k/mcp-query-assistant/internal/logger"
)

// IndexCoordinator keeps the example store and the vector index aligned:
// slot i in the index always holds the embedding of the example at store
// position i. It owns both stores exclusively; nothing else mutates them.
type IndexCoordinator struct {
	store    driven.ExampleStore
	index    driven.VectorIndex
	embedder driven.EmbeddingService // nil when no API key is configured
}

// NewIndexCoordinator creates a coordinator over the given stores.
// The embedder may be nil, in which case every path that needs an embedding
// fails with domain.ErrEmbeddingUnavailable.
func NewIndexCoordinator(
	store driven.ExampleStore,
	index driven.VectorIndex,
	embedder driven.EmbeddingService,
) *IndexCoordinator {
	return &IndexCoordinator{
		store:    store,
		index:    index,
		embedder: embedder,
	}
}

// Sync performs the startup reconciliation between the example store and the
// vector index, then seeds default examples if the store came up empty.
//
// A vector index that disagrees with the store is never trusted: stale
// vectors are discarded, and a non-empty store with a mismatched index is
// re-embedded from scratch. A failed rebuild (typically: no API key yet)
// leaves the index empty - similarity search degrades to no results until
// the next successful add or rebuild, but reads from the store keep working.
func (c *IndexCoordinator) Sync(ctx context.Context) error {
	if err := c.store.Load(ctx); err != nil {
		return fmt.Errorf("load example store: %w", err)
	}

	stored := c.store.Len()
	indexed := c.index.Count()
	logger.Debug("Startup sync: %d examples, %d vectors", stored, indexed)

	switch {
	case stored == 0 && indexed > 0:
		logger.Warn("Discarding %d stale vectors: example store is empty", indexed)
		if err := c.index.Reset(ctx); err != nil {
			return fmt.Errorf("discard stale vector index: %w", err)
		}

	case stored > 0 && indexed != stored:
		logger.Warn("Vector index holds %d vectors for %d examples, rebuilding", indexed, stored)
		if err := c.rebuild(ctx); err != nil {
			logger.Warn("Index rebuild failed, similarity search degraded until re-seeded: %v", err)
			if resetErr := c.index.Reset(ctx); resetErr != nil {
				return fmt.Errorf("reset vector index after failed rebuild: %w", resetErr)
			}
		}
	}

	if c.store.Len() == 0 {
		c.seed(ctx)
	}
	return nil
}

// Add stores a new example: duplicate check, embed, append, insert, persist.
// The embedding call happens before any mutation, so an upstream failure
// leaves both stores untouched.
func (c *IndexCoordinator) Add(
	ctx context.Context, question, answerQuery string, meta domain.Metadata,
) (domain.TrainingExample, error) {
	if existing, ok := c.store.FindDuplicate(question, answerQuery); ok {
		return domain.TrainingExample{}, &domain.DuplicateError{ExistingID: existing.ID}
	}
	if c.embedder == nil {
		return domain.TrainingExample{}, domain.ErrEmbeddingUnavailable
	}

	vector, err := c.embedder.Embed(ctx, question)
	if err != nil {
		return domain.TrainingExample{}, fmt.Errorf("embed question: %w", err)
	}

	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	stored, slot := c.store.Append(domain.TrainingExample{
		Question:    question,
		AnswerQuery: answerQuery,
		Metadata:    meta,
	})

	if err := c.index.Insert(ctx, slot, vector); err != nil {
		// Roll the append back so store and index stay aligned.
		c.store.RemoveByIDs([]string{stored.ID})
		return domain.TrainingExample{}, fmt.Errorf("index example: %w", err)
	}

	if err := c.store.Persist(ctx); err != nil {
		return domain.TrainingExample{}, fmt.Errorf("persist example store: %w", err)
	}

	logger.Info("Added example %s at slot %d", stored.ID, slot)
	return stored, nil
}

// Search embeds the question and returns the stored examples above the
// similarity threshold, best-first, truncated to limit.
func (c *IndexCoordinator) Search(
	ctx context.Context, question string, limit int, threshold float64,
) ([]domain.SimilarExample, error) {
	if c.store.Len() == 0 {
		// Nothing to match; skip the embedding call entirely.
		return []domain.SimilarExample{}, nil
	}
	if c.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	vector, err := c.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	// Overfetch 2x: the threshold filter discards hits, and fetching extra
	// improves the chance of filling the requested limit.
	k := limit * 2
	if k > c.store.Len() {
		k = c.store.Len()
	}

	hits, err := c.index.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search vector index: %w", err)
	}

	results := make([]domain.SimilarExample, 0, limit)
	for _, hit := range hits {
		example, ok := c.store.Get(hit.Slot)
		if !ok {
			return nil, fmt.Errorf("%w: hit at slot %d but store holds %d examples",
				domain.ErrSlotMismatch, hit.Slot, c.store.Len())
		}
		if hit.Similarity < threshold {
			continue
		}
		results = append(results, domain.SimilarExample{
			Example:    example,
			Similarity: hit.Similarity,
		})
		if len(results) == limit {
			break
		}
	}

	logger.Debug("Similarity search: %d hits, %d above threshold %.2f", len(hits), len(results), threshold)
	return results, nil
}

// RemoveAndRebuild drops the given examples and rebuilds the vector index
// from scratch: every survivor is re-embedded at its new slot. This is the
// expensive, rare operation - O(n) embedding calls.
//
// The filtered store is persisted even when the rebuild fails; the next
// startup sync detects the count mismatch and rebuilds again.
func (c *IndexCoordinator) RemoveAndRebuild(ctx context.Context, ids []string) (int, error) {
	removed := c.store.RemoveByIDs(ids)
	if err := c.store.Persist(ctx); err != nil {
		return removed, fmt.Errorf("persist example store: %w", err)
	}

	if err := c.rebuild(ctx); err != nil {
		if resetErr := c.index.Reset(ctx); resetErr != nil {
			return removed, fmt.Errorf("reset vector index after failed rebuild: %w", resetErr)
		}
		return removed, fmt.Errorf("rebuild vector index: %w", err)
	}

	logger.Info("Removed %d examples, rebuilt index with %d vectors", removed, c.index.Count())
	return removed, nil
}

// rebuild resets the index and re-embeds every stored example in order.
func (c *IndexCoordinator) rebuild(ctx context.Context) error {
	if c.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}
	if err := c.index.Reset(ctx); err != nil {
		return fmt.Errorf("reset vector index: %w", err)
	}

	for slot, example := range c.store.All() {
		vector, err := c.embedder.Embed(ctx, example.Question)
		if err != nil {
			return fmt.Errorf("re-embed example %s: %w", example.ID, err)
		}
		if err := c.index.Insert(ctx, slot, vector); err != nil {
			return fmt.Errorf("insert vector at slot %d: %w", slot, err)
		}
	}
	return nil
}
