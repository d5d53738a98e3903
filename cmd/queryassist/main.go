package main

import (
	"os"

	"github.com/ali1k/mcp-query-assistant/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
