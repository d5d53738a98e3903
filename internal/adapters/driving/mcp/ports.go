package mcp

import (
	"github.com/ali1k/mcp-query-assistant/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Examples provides the training-example operations.
	Examples driving.ExampleService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Examples == nil {
		return ErrMissingExampleService
	}
	return nil
}
