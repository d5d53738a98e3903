package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
)

// newEmbeddingServer returns a stub OpenAI API serving a fixed embedding.
func newEmbeddingServer(t *testing.T, embedding []float32, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/embeddings", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		if status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "quota exceeded", "type": "insufficient_quota"},
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  DefaultModel,
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": embedding},
			},
		})
	}))
}

func TestNew(t *testing.T) {
	t.Run("missing API key fails eagerly", func(t *testing.T) {
		_, err := New(Config{})
		assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	})

	t.Run("defaults", func(t *testing.T) {
		svc, err := New(Config{APIKey: "sk-test"})
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, svc.ModelName())
		assert.Equal(t, 1536, svc.Dimensions())
	})

	t.Run("dimension override", func(t *testing.T) {
		svc, err := New(Config{APIKey: "sk-test", Dimensions: 256})
		require.NoError(t, err)
		assert.Equal(t, 256, svc.Dimensions())
	})
}

func TestService_Embed(t *testing.T) {
	ctx := context.Background()

	t.Run("returns upstream embedding", func(t *testing.T) {
		server := newEmbeddingServer(t, []float32{0.1, 0.2, 0.3}, http.StatusOK)
		defer server.Close()

		svc, err := New(Config{
			APIKey:     "sk-test",
			BaseURL:    server.URL + "/v1",
			Dimensions: 3,
		})
		require.NoError(t, err)

		got, err := svc.Embed(ctx, "How many users are there?")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, got)
	})

	t.Run("empty input rejected without a call", func(t *testing.T) {
		svc, err := New(Config{APIKey: "sk-test", BaseURL: "http://127.0.0.1:0/v1"})
		require.NoError(t, err)

		_, err = svc.Embed(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("upstream failure carries the message", func(t *testing.T) {
		server := newEmbeddingServer(t, nil, http.StatusTooManyRequests)
		defer server.Close()

		svc, err := New(Config{APIKey: "sk-test", BaseURL: server.URL + "/v1", Dimensions: 3})
		require.NoError(t, err)

		_, err = svc.Embed(ctx, "question")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("dimension mismatch detected", func(t *testing.T) {
		server := newEmbeddingServer(t, []float32{0.1, 0.2}, http.StatusOK)
		defer server.Close()

		svc, err := New(Config{APIKey: "sk-test", BaseURL: server.URL + "/v1", Dimensions: 3})
		require.NoError(t, err)

		_, err = svc.Embed(ctx, "question")
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})
}
