package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
)

// FindSimilarInput is the input schema for the find_similar_examples tool.
type FindSimilarInput struct {
	Question  string   `json:"question" jsonschema:"the natural-language question to find similar training examples for"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum number of examples to return (default 3, max 10)"`
	Threshold *float64 `json:"threshold,omitempty" jsonschema:"minimum cosine similarity between 0 and 1 (default 0.7)"`
}

// FindSimilarOutput is the output schema for the find_similar_examples tool.
type FindSimilarOutput struct {
	Examples []SimilarExampleOutput `json:"examples"`
	Count    int                    `json:"count"`
}

// SimilarExampleOutput represents a single retrieved example with its score.
type SimilarExampleOutput struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	AnswerQuery string   `json:"answer_query"`
	Domain      string   `json:"domain,omitempty"`
	Complexity  string   `json:"complexity,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Similarity  float64  `json:"similarity"`
}

// AddExampleInput is the input schema for the add_example tool.
type AddExampleInput struct {
	Question    string   `json:"question" jsonschema:"the natural-language question"`
	AnswerQuery string   `json:"answer_query" jsonschema:"the database query answering the question"`
	Domain      string   `json:"domain,omitempty" jsonschema:"optional domain label, e.g. users or orders"`
	Complexity  string   `json:"complexity,omitempty" jsonschema:"optional complexity label: simple, medium or complex"`
	Tags        []string `json:"tags,omitempty" jsonschema:"optional free-form tags"`
}

// AddExampleOutput is the output schema for the add_example tool.
type AddExampleOutput struct {
	ID string `json:"id"`
}

// ListExamplesInput is the input schema for the list_examples tool.
type ListExamplesInput struct {
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of examples to return (default 10, max 100)"`
	Domain string `json:"domain,omitempty" jsonschema:"only return examples with this domain label"`
}

// ListExamplesOutput is the output schema for the list_examples tool.
type ListExamplesOutput struct {
	Examples []ExampleOutput `json:"examples"`
	Total    int             `json:"total"`
}

// ExampleOutput represents a stored training example.
type ExampleOutput struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	AnswerQuery string   `json:"answer_query"`
	Domain      string   `json:"domain,omitempty"`
	Complexity  string   `json:"complexity,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// FindDuplicatesInput is the input schema for the find_duplicates tool.
type FindDuplicatesInput struct{}

// FindDuplicatesOutput is the output schema for the find_duplicates tool.
type FindDuplicatesOutput struct {
	Groups []DuplicateGroupOutput `json:"groups"`
	Count  int                    `json:"count"`
}

// DuplicateGroupOutput represents one set of exact-duplicate examples.
type DuplicateGroupOutput struct {
	Question     string   `json:"question"`
	AnswerQuery  string   `json:"answer_query"`
	KeptID       string   `json:"kept_id"`
	DuplicateIDs []string `json:"duplicate_ids"`
}

// RemoveDuplicatesInput is the input schema for the remove_duplicates tool.
type RemoveDuplicatesInput struct {
	Confirm bool `json:"confirm,omitempty" jsonschema:"set true to actually remove; false previews the removal"`
}

// RemoveDuplicatesOutput is the output schema for the remove_duplicates tool.
type RemoveDuplicatesOutput struct {
	Removed              int      `json:"removed"`
	RemovedIDs           []string `json:"removed_ids,omitempty"`
	ConfirmationRequired bool     `json:"confirmation_required"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_similar_examples",
		Description: "Find stored training examples semantically similar to a question, for use as few-shot material",
	}, s.handleFindSimilar)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_example",
		Description: "Add a new question-to-query training example",
	}, s.handleAddExample)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_examples",
		Description: "List stored training examples, optionally filtered by domain",
	}, s.handleListExamples)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_duplicates",
		Description: "Find groups of exactly duplicated training examples",
	}, s.handleFindDuplicates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_duplicates",
		Description: "Remove duplicated training examples and rebuild the similarity index",
	}, s.handleRemoveDuplicates)
}

// handleFindSimilar handles the find_similar_examples tool invocation.
func (s *Server) handleFindSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindSimilarInput,
) (*mcp.CallToolResult, FindSimilarOutput, error) {
	opts := domain.DefaultFindOptions()
	if input.Limit > 0 {
		opts.Limit = input.Limit
	}
	if input.Threshold != nil {
		opts.Threshold = *input.Threshold
	}

	results, err := s.ports.Examples.FindSimilar(ctx, input.Question, opts)
	if err != nil {
		return nil, FindSimilarOutput{}, err
	}

	output := FindSimilarOutput{
		Examples: make([]SimilarExampleOutput, len(results)),
		Count:    len(results),
	}
	for i := range results {
		ex := results[i].Example
		output.Examples[i] = SimilarExampleOutput{
			ID:          ex.ID,
			Question:    ex.Question,
			AnswerQuery: ex.AnswerQuery,
			Domain:      ex.Metadata.Domain,
			Complexity:  string(ex.Metadata.Complexity),
			Tags:        ex.Metadata.Tags,
			Similarity:  results[i].Similarity,
		}
	}
	return nil, output, nil
}

// handleAddExample handles the add_example tool invocation.
func (s *Server) handleAddExample(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddExampleInput,
) (*mcp.CallToolResult, AddExampleOutput, error) {
	meta := domain.Metadata{
		Domain:     input.Domain,
		Complexity: domain.Complexity(input.Complexity),
		Tags:       input.Tags,
	}

	id, err := s.ports.Examples.AddExample(ctx, input.Question, input.AnswerQuery, meta)
	if err != nil {
		var dup *domain.DuplicateError
		if errors.As(err, &dup) {
			return nil, AddExampleOutput{}, fmt.Errorf(
				"example already exists with id %s", dup.ExistingID)
		}
		return nil, AddExampleOutput{}, err
	}
	return nil, AddExampleOutput{ID: id}, nil
}

// handleListExamples handles the list_examples tool invocation.
func (s *Server) handleListExamples(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListExamplesInput,
) (*mcp.CallToolResult, ListExamplesOutput, error) {
	list, err := s.ports.Examples.ListExamples(ctx, domain.ListOptions{
		Limit:  input.Limit,
		Domain: input.Domain,
	})
	if err != nil {
		return nil, ListExamplesOutput{}, err
	}

	output := ListExamplesOutput{
		Examples: make([]ExampleOutput, len(list.Examples)),
		Total:    list.Total,
	}
	for i := range list.Examples {
		output.Examples[i] = toExampleOutput(list.Examples[i])
	}
	return nil, output, nil
}

// handleFindDuplicates handles the find_duplicates tool invocation.
func (s *Server) handleFindDuplicates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ FindDuplicatesInput,
) (*mcp.CallToolResult, FindDuplicatesOutput, error) {
	groups, err := s.ports.Examples.FindDuplicateGroups(ctx)
	if err != nil {
		return nil, FindDuplicatesOutput{}, err
	}

	output := FindDuplicatesOutput{
		Groups: make([]DuplicateGroupOutput, len(groups)),
		Count:  len(groups),
	}
	for i, group := range groups {
		output.Groups[i] = DuplicateGroupOutput{
			Question:     group.Question,
			AnswerQuery:  group.AnswerQuery,
			KeptID:       group.KeptID,
			DuplicateIDs: group.DuplicateIDs,
		}
	}
	return nil, output, nil
}

// handleRemoveDuplicates handles the remove_duplicates tool invocation.
func (s *Server) handleRemoveDuplicates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemoveDuplicatesInput,
) (*mcp.CallToolResult, RemoveDuplicatesOutput, error) {
	report, err := s.ports.Examples.RemoveDuplicates(ctx, input.Confirm)
	if err != nil {
		return nil, RemoveDuplicatesOutput{}, err
	}
	return nil, RemoveDuplicatesOutput{
		Removed:              report.Removed,
		RemovedIDs:           report.RemovedIDs,
		ConfirmationRequired: report.ConfirmationRequired,
	}, nil
}

// toExampleOutput converts a stored example to its wire representation.
func toExampleOutput(ex domain.TrainingExample) ExampleOutput {
	out := ExampleOutput{
		ID:          ex.ID,
		Question:    ex.Question,
		AnswerQuery: ex.AnswerQuery,
		Domain:      ex.Metadata.Domain,
		Complexity:  string(ex.Metadata.Complexity),
		Tags:        ex.Metadata.Tags,
	}
	if !ex.Metadata.CreatedAt.IsZero() {
		out.CreatedAt = ex.Metadata.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}
