package driven

import (
	"context"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
)

// ExampleStore is an ordered collection of training examples. Position order
// equals vector index slot order at all times; the store owns identity
// assignment and duplicate detection.
type ExampleStore interface {
	// Load reads the persisted snapshot. A missing or unparseable snapshot
	// initialises the store empty and is not an error; only I/O failures
	// other than absence are reported.
	Load(ctx context.Context) error

	// All returns the examples in slot order. The returned slice is a copy
	// the caller may keep, but the examples share no deep-copied state.
	All() []domain.TrainingExample

	// Len returns the number of stored examples.
	Len() int

	// Get returns the example at the given slot.
	Get(slot int) (domain.TrainingExample, bool)

	// SlotOf returns the current slot for an example ID.
	SlotOf(id string) (int, bool)

	// Append adds the example at the end, assigning an ID if absent, and
	// returns the stored example and its slot (= new length - 1).
	Append(example domain.TrainingExample) (domain.TrainingExample, int)

	// FindDuplicate returns the first example, in store order, whose
	// question and answer query match the given texts case-insensitively
	// after trimming surrounding whitespace.
	FindDuplicate(question, answerQuery string) (domain.TrainingExample, bool)

	// RemoveByIDs drops the examples with the given IDs, preserving the
	// relative order of the survivors, and returns the number removed.
	// The ID-to-slot mapping is rebuilt from scratch.
	RemoveByIDs(ids []string) int

	// Persist rewrites the full snapshot atomically (write-then-replace).
	Persist(ctx context.Context) error
}
