// Package main is the entry point for the pricing-calculator CLI.
package main

import (
	"os"

	"pricing-calculator/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
