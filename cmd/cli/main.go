// Package main is the entry point for the infra-tco CLI.
package main

import (
	"os"

	"infra-tco/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
