package driven

import "context"

// EmbeddingService maps text to a fixed-dimension vector embedding.
// This is an optional service - when nil, similarity search and training-set
// mutation are disabled and callers receive domain.ErrEmbeddingUnavailable.
//
// A single best-effort upstream call per invocation: no caching, no retries.
// Cancellation and deadlines are the caller's responsibility via ctx.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text. Failures carry
	// the upstream message.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size. This is fixed per
	// deployment and must match the vector index configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model in use.
	ModelName() string
}
