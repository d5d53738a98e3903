package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleExamplesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the training set as JSON", func(t *testing.T) {
		svc := &mockExampleService{
			list: domain.ExampleList{
				Examples: []domain.TrainingExample{
					{
						ID:          "ex-1",
						Question:    "How many users are in the system?",
						AnswerQuery: "MATCH (u:User) RETURN count(u)",
						Metadata:    domain.Metadata{Domain: "users"},
					},
				},
				Total: 1,
			},
		}
		server := newTestServer(t, svc)

		req := makeReadResourceRequest(uriScheme + "examples")
		result, err := server.handleExamplesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "ex-1")
		assert.Contains(t, result.Contents[0].Text, "MATCH (u:User) RETURN count(u)")
	})

	t.Run("empty store yields an empty array", func(t *testing.T) {
		svc := &mockExampleService{}
		server := newTestServer(t, svc)

		req := makeReadResourceRequest(uriScheme + "examples")
		result, err := server.handleExamplesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("service failure propagates", func(t *testing.T) {
		svc := &mockExampleService{err: errors.New("store unavailable")}
		server := newTestServer(t, svc)

		req := makeReadResourceRequest(uriScheme + "examples")
		_, err := server.handleExamplesResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "store unavailable")
	})
}
