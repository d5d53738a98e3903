package driving

import (
	"context"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
)

// ExampleService exposes the training-example operations to external actors.
type ExampleService interface {
	// FindSimilar returns the stored examples most semantically similar to
	// the question, best-first, filtered by the similarity threshold.
	FindSimilar(ctx context.Context, question string, opts domain.FindOptions) ([]domain.SimilarExample, error)

	// AddExample stores a new training example and returns its ID. An exact
	// duplicate of an existing (question, answer query) pair is rejected
	// with a domain.DuplicateError and no mutation occurs.
	AddExample(ctx context.Context, question, answerQuery string, meta domain.Metadata) (string, error)

	// ListExamples returns a truncated view of the training set, optionally
	// filtered by metadata domain.
	ListExamples(ctx context.Context, opts domain.ListOptions) (domain.ExampleList, error)

	// FindDuplicateGroups returns every group of examples sharing a
	// normalised (question, answer query) identity, tagged with the member
	// deduplication would keep.
	FindDuplicateGroups(ctx context.Context) ([]domain.DuplicateGroup, error)

	// RemoveDuplicates removes every non-kept member of every duplicate
	// group and rebuilds the vector index. With confirm=false it previews
	// the removal without mutating anything.
	RemoveDuplicates(ctx context.Context, confirm bool) (domain.RemovalReport, error)
}
