package chromem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
)

// Unit vectors in three dimensions keep cosine similarities predictable.
var (
	vecX = []float32{1, 0, 0}
	vecY = []float32{0, 1, 0}
	vecZ = []float32{0, 0, 1}
)

func newMemoryIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New("", 3, 0)
	require.NoError(t, err)
	return idx
}

func TestNew(t *testing.T) {
	t.Run("rejects non-positive dimension", func(t *testing.T) {
		_, err := New("", 0, 10)
		require.Error(t, err)
	})

	t.Run("defaults capacity", func(t *testing.T) {
		idx, err := New("", 3, 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultCapacity, idx.capacity)
	})
}

func TestIndex_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("append-only growth", func(t *testing.T) {
		idx := newMemoryIndex(t)
		require.NoError(t, idx.Insert(ctx, 0, vecX))
		require.NoError(t, idx.Insert(ctx, 1, vecY))
		assert.Equal(t, 2, idx.Count())
	})

	t.Run("slot must equal count", func(t *testing.T) {
		idx := newMemoryIndex(t)
		require.NoError(t, idx.Insert(ctx, 0, vecX))

		err := idx.Insert(ctx, 0, vecY)
		assert.ErrorIs(t, err, domain.ErrSlotMismatch)

		err = idx.Insert(ctx, 2, vecY)
		assert.ErrorIs(t, err, domain.ErrSlotMismatch)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		idx := newMemoryIndex(t)
		err := idx.Insert(ctx, 0, []float32{1, 0})
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		idx, err := New("", 3, 2)
		require.NoError(t, err)
		require.NoError(t, idx.Insert(ctx, 0, vecX))
		require.NoError(t, idx.Insert(ctx, 1, vecY))

		err = idx.Insert(ctx, 2, vecZ)
		assert.ErrorIs(t, err, domain.ErrIndexFull)
	})
}

func TestIndex_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("empty index returns empty result", func(t *testing.T) {
		idx := newMemoryIndex(t)
		hits, err := idx.Search(ctx, vecX, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("best first ordering", func(t *testing.T) {
		idx := newMemoryIndex(t)
		require.NoError(t, idx.Insert(ctx, 0, vecY))
		require.NoError(t, idx.Insert(ctx, 1, vecX))
		require.NoError(t, idx.Insert(ctx, 2, []float32{0.9, 0.1, 0}))

		hits, err := idx.Search(ctx, vecX, 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)

		// Exact match first, near match second, orthogonal last.
		assert.Equal(t, 1, hits[0].Slot)
		assert.InDelta(t, 1.0, hits[0].Similarity, 1e-4)
		assert.Equal(t, 2, hits[1].Slot)
		assert.Greater(t, hits[1].Similarity, hits[2].Similarity)
		assert.Equal(t, 0, hits[2].Slot)
	})

	t.Run("k larger than count is capped", func(t *testing.T) {
		idx := newMemoryIndex(t)
		require.NoError(t, idx.Insert(ctx, 0, vecX))

		hits, err := idx.Search(ctx, vecX, 10)
		require.NoError(t, err)
		assert.Len(t, hits, 1)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		idx := newMemoryIndex(t)
		require.NoError(t, idx.Insert(ctx, 0, vecX))
		_, err := idx.Search(ctx, []float32{1}, 1)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})
}

func TestIndex_Reset(t *testing.T) {
	ctx := context.Background()
	idx := newMemoryIndex(t)
	require.NoError(t, idx.Insert(ctx, 0, vecX))
	require.NoError(t, idx.Insert(ctx, 1, vecY))

	require.NoError(t, idx.Reset(ctx))
	assert.Equal(t, 0, idx.Count())

	// Growth starts over at slot zero.
	require.NoError(t, idx.Insert(ctx, 0, vecZ))
	assert.Equal(t, 1, idx.Count())
}

func TestIndex_Persistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	idx, err := New(dir, 3, 0)
	require.NoError(t, err)
	require.NoError(t, idx.Insert(ctx, 0, vecX))
	require.NoError(t, idx.Insert(ctx, 1, vecY))
	require.NoError(t, idx.Close())

	reopened, err := New(dir, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Count())

	hits, err := reopened.Search(ctx, vecY, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Slot)
}
