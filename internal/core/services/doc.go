// Package services implements the core business logic: the index
// coordinator that keeps the example store and the vector index aligned, and
// the example service that exposes the public operations over it.
package services
