package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
)

// uriScheme is the custom URI scheme for query-assistant resources.
const uriScheme = "queryassist://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource exposing the whole training set.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "examples",
		Name:        "examples",
		Description: "The stored question-to-query training examples",
		MIMEType:    "application/json",
	}, s.handleExamplesResource)
}

// handleExamplesResource returns the full training set as JSON.
func (s *Server) handleExamplesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	list, err := s.ports.Examples.ListExamples(ctx, domain.ListOptions{
		Limit: domain.MaxListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing examples: %w", err)
	}

	infos := make([]ExampleOutput, len(list.Examples))
	for i := range list.Examples {
		infos[i] = toExampleOutput(list.Examples[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling examples: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
