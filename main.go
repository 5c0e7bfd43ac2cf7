// ABOUTME: Entry point for the activator CLI, HTTP API and MCP server
// ABOUTME: Hands control to the cobra command tree in the cli package
package main

import (
	"context"
	"os"

	"github.com/harperreed/activator/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
