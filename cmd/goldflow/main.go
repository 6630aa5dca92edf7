// Package main is the entry point for goldflow.
package main

import (
	"fmt"
	"os"

	"github.com/retailpulse/goldflow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
