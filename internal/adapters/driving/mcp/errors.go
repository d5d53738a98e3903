// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// query assistant. It lets AI assistants retrieve few-shot training examples
// and maintain the training set over stdio or streamable HTTP.
package mcp

import "errors"

// ErrMissingExampleService is returned when the example service is not provided.
var ErrMissingExampleService = errors.New("mcp: example service is required")
