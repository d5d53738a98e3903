package mcp

import (
	"context"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
)

// mockExampleService is a mock implementation of driving.ExampleService.
type mockExampleService struct {
	similar []domain.SimilarExample
	addedID string
	list    domain.ExampleList
	groups  []domain.DuplicateGroup
	report  domain.RemovalReport
	err     error

	// recorded inputs
	lastQuestion string
	lastFindOpts domain.FindOptions
	lastMeta     domain.Metadata
	lastListOpts domain.ListOptions
	lastConfirm  bool
}

func (m *mockExampleService) FindSimilar(
	_ context.Context, question string, opts domain.FindOptions,
) ([]domain.SimilarExample, error) {
	m.lastQuestion = question
	m.lastFindOpts = opts
	return m.similar, m.err
}

func (m *mockExampleService) AddExample(
	_ context.Context, question, answerQuery string, meta domain.Metadata,
) (string, error) {
	m.lastQuestion = question
	m.lastMeta = meta
	return m.addedID, m.err
}

func (m *mockExampleService) ListExamples(
	_ context.Context, opts domain.ListOptions,
) (domain.ExampleList, error) {
	m.lastListOpts = opts
	return m.list, m.err
}

func (m *mockExampleService) FindDuplicateGroups(
	_ context.Context,
) ([]domain.DuplicateGroup, error) {
	return m.groups, m.err
}

func (m *mockExampleService) RemoveDuplicates(
	_ context.Context, confirm bool,
) (domain.RemovalReport, error) {
	m.lastConfirm = confirm
	return m.report, m.err
}
