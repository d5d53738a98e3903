package domain

// Defaults and caps for the public operations.
const (
	// DefaultFindLimit is the number of examples returned by a similarity
	// query when the caller does not specify one.
	DefaultFindLimit = 3

	// MaxFindLimit caps caller-supplied similarity limits.
	MaxFindLimit = 10

	// DefaultFindThreshold is the minimum cosine similarity for a hit to be
	// returned when the caller does not specify one.
	DefaultFindThreshold = 0.7

	// DefaultListLimit is the number of examples returned by a listing when
	// the caller does not specify one.
	DefaultListLimit = 10

	// MaxListLimit caps caller-supplied listing limits.
	MaxListLimit = 100
)

// FindOptions configures a similarity query.
type FindOptions struct {
	// Limit is the maximum number of examples to return.
	// Non-positive values fall back to DefaultFindLimit; values above
	// MaxFindLimit are clamped.
	Limit int

	// Threshold is the minimum cosine similarity, clamped to [0, 1].
	Threshold float64
}

// DefaultFindOptions returns the options used when the caller supplies none.
func DefaultFindOptions() FindOptions {
	return FindOptions{
		Limit:     DefaultFindLimit,
		Threshold: DefaultFindThreshold,
	}
}

// SimilarExample is a single similarity-search hit.
type SimilarExample struct {
	// Example is the matched training example.
	Example TrainingExample

	// Similarity is the cosine similarity to the query question (1 - cosine
	// distance). Higher is closer.
	Similarity float64
}

// ListOptions configures a listing of the training set.
type ListOptions struct {
	// Limit is the maximum number of examples to return.
	// Non-positive values fall back to DefaultListLimit; values above
	// MaxListLimit are clamped.
	Limit int

	// Domain, when non-empty, filters by exact metadata domain match.
	Domain string
}

// ExampleList is a truncated view of the training set.
type ExampleList struct {
	// Examples holds up to Limit examples in store order.
	Examples []TrainingExample

	// Total is the size of the whole training set before filtering and
	// truncation, so callers can tell "no matches" from "empty store".
	Total int
}

// DuplicateGroup is a set of examples sharing the same normalised
// (question, answer query) identity.
type DuplicateGroup struct {
	// Question is the question text of the kept member.
	Question string

	// AnswerQuery is the answer query of the kept member.
	AnswerQuery string

	// KeptID is the member that survives deduplication: the oldest by
	// created_at (epoch when absent), first in store order on ties.
	KeptID string

	// DuplicateIDs are the members that deduplication would remove.
	DuplicateIDs []string
}

// RemovalReport describes the outcome of a duplicate removal request.
type RemovalReport struct {
	// ConfirmationRequired is set when the call was a preview
	// (confirm=false): nothing was removed.
	ConfirmationRequired bool

	// Removed is the number of examples removed, or that would be removed
	// when ConfirmationRequired is set.
	Removed int

	// RemovedIDs lists the affected example IDs.
	RemovedIDs []string
}
