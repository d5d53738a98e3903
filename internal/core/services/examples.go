package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
	"github.com/ali1k/mcp-query-assistant/internal/core/ports/driven"
	"github.com/ali1k/mcp-query-assistant/internal/core/ports/driving"
)

// Ensure ExampleService implements the interface.
var _ driving.ExampleService = (*ExampleService)(nil)

// ExampleService implements the public training-example operations on top of
// the index coordinator.
//
// A single mutex covers every operation. The slot-alignment invariant must
// not be violated by a read interleaving with a rebuild, and at this scale
// lock contention on pure reads is irrelevant.
type ExampleService struct {
	mu          sync.Mutex
	coordinator *IndexCoordinator
	store       driven.ExampleStore
}

// NewExampleService creates the example service.
func NewExampleService(coordinator *IndexCoordinator, store driven.ExampleStore) *ExampleService {
	return &ExampleService{
		coordinator: coordinator,
		store:       store,
	}
}

// Sync runs the startup reconciliation. Call once before serving requests.
func (s *ExampleService) Sync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coordinator.Sync(ctx)
}

// FindSimilar returns the stored examples most similar to the question.
func (s *ExampleService) FindSimilar(
	ctx context.Context, question string, opts domain.FindOptions,
) ([]domain.SimilarExample, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultFindLimit
	}
	if limit > domain.MaxFindLimit {
		limit = domain.MaxFindLimit
	}

	threshold := opts.Threshold
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 1 {
		threshold = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coordinator.Search(ctx, question, limit, threshold)
}

// AddExample stores a new training example and returns its ID.
func (s *ExampleService) AddExample(
	ctx context.Context, question, answerQuery string, meta domain.Metadata,
) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(answerQuery) == "" {
		return "", fmt.Errorf("%w: answer query is required", domain.ErrInvalidInput)
	}
	if !meta.Complexity.Valid() {
		return "", fmt.Errorf("%w: unknown complexity %q", domain.ErrInvalidInput, meta.Complexity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.coordinator.Add(ctx, question, answerQuery, meta)
	if err != nil {
		return "", err
	}
	return stored.ID, nil
}

// ListExamples returns a truncated view of the training set, optionally
// filtered by metadata domain. Pure read.
func (s *ExampleService) ListExamples(
	_ context.Context, opts domain.ListOptions,
) (domain.ExampleList, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}
	if limit > domain.MaxListLimit {
		limit = domain.MaxListLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Total reports the size of the whole training set, not of the filtered
	// view, so callers can tell "no matches" from "empty store".
	total := s.store.Len()

	examples := s.store.All()
	if opts.Domain != "" {
		filtered := examples[:0]
		for _, ex := range examples {
			if ex.Metadata.Domain == opts.Domain {
				filtered = append(filtered, ex)
			}
		}
		examples = filtered
	}

	if len(examples) > limit {
		examples = examples[:limit]
	}

	return domain.ExampleList{Examples: examples, Total: total}, nil
}

// FindDuplicateGroups groups the training set by normalised
// (question, answer query) identity and returns every group with more than
// one member. Pure read.
func (s *ExampleService) FindDuplicateGroups(_ context.Context) ([]domain.DuplicateGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duplicateGroups(), nil
}

// RemoveDuplicates removes every non-kept member of every duplicate group.
// With confirm=false it previews the removal without mutating anything.
func (s *ExampleService) RemoveDuplicates(
	ctx context.Context, confirm bool,
) (domain.RemovalReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removeIDs []string
	for _, group := range s.duplicateGroups() {
		removeIDs = append(removeIDs, group.DuplicateIDs...)
	}

	if !confirm {
		return domain.RemovalReport{
			ConfirmationRequired: true,
			Removed:              len(removeIDs),
			RemovedIDs:           removeIDs,
		}, nil
	}

	if len(removeIDs) == 0 {
		return domain.RemovalReport{}, nil
	}

	removed, err := s.coordinator.RemoveAndRebuild(ctx, removeIDs)
	if err != nil {
		return domain.RemovalReport{}, err
	}
	return domain.RemovalReport{Removed: removed, RemovedIDs: removeIDs}, nil
}

// duplicateGroups computes the duplicate groups in store order. Within each
// group the kept member is the oldest by created_at (epoch when absent);
// ties keep the earliest store position. Caller must hold the lock.
func (s *ExampleService) duplicateGroups() []domain.DuplicateGroup {
	examples := s.store.All()

	byKey := make(map[string][]domain.TrainingExample)
	var keyOrder []string
	for _, ex := range examples {
		key := domain.DuplicateKey(ex.Question, ex.AnswerQuery)
		if _, seen := byKey[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		byKey[key] = append(byKey[key], ex)
	}

	var groups []domain.DuplicateGroup
	for _, key := range keyOrder {
		members := byKey[key]
		if len(members) < 2 {
			continue
		}

		// Stable sort: store order breaks created_at ties.
		sorted := make([]domain.TrainingExample, len(members))
		copy(sorted, members)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Metadata.CreatedAtOrEpoch().Before(sorted[j].Metadata.CreatedAtOrEpoch())
		})

		kept := sorted[0]
		duplicateIDs := make([]string, 0, len(sorted)-1)
		for _, member := range sorted[1:] {
			duplicateIDs = append(duplicateIDs, member.ID)
		}

		groups = append(groups, domain.DuplicateGroup{
			Question:     kept.Question,
			AnswerQuery:  kept.AnswerQuery,
			KeptID:       kept.ID,
			DuplicateIDs: duplicateIDs,
		})
	}
	return groups
}
