// Package domain contains the core business entities of the query assistant:
// training examples, their metadata, similarity results and domain errors.
// It has no dependencies on other packages in this repository.
package domain
