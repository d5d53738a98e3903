// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): persistence, the vector index and the
// embedding provider. Implementations live under internal/adapters/driven.
package driven
