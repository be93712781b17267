// Package main provides the CLI for the gridstack dashboard engine.
package main

import (
	"fmt"
	"os"

	"github.com/gridstack-labs/gridstack/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
