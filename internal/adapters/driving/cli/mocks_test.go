package cli

import (
	"context"
	"errors"

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

	lastFindOpts domain.FindOptions
	lastListOpts domain.ListOptions
	lastConfirm  bool
}

func (m *mockExampleService) FindSimilar(
	_ context.Context, _ string, opts domain.FindOptions,
) ([]domain.SimilarExample, error) {
	m.lastFindOpts = opts
	return m.similar, m.err
}

func (m *mockExampleService) AddExample(
	_ context.Context, _, _ string, _ domain.Metadata,
) (string, error) {
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

// errExampleService fails every call.
type errExampleService struct{}

func (errExampleService) FindSimilar(
	context.Context, string, domain.FindOptions,
) ([]domain.SimilarExample, error) {
	return nil, errors.New("service failed")
}

func (errExampleService) AddExample(
	context.Context, string, string, domain.Metadata,
) (string, error) {
	return "", errors.New("service failed")
}

func (errExampleService) ListExamples(
	context.Context, domain.ListOptions,
) (domain.ExampleList, error) {
	return domain.ExampleList{}, errors.New("service failed")
}

func (errExampleService) FindDuplicateGroups(
	context.Context,
) ([]domain.DuplicateGroup, error) {
	return nil, errors.New("service failed")
}

func (errExampleService) RemoveDuplicates(
	context.Context, bool,
) (domain.RemovalReport, error) {
	return domain.RemovalReport{}, errors.New("service failed")
}

// setupTestService injects a mock example service and returns a cleanup
// function restoring the previous wiring.
func setupTestService(svc *mockExampleService) func() {
	old := exampleService
	exampleService = svc
	return func() {
		exampleService = old
	}
}
