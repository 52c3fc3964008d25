// Package main is the entry point for the workflowctl CLI tool.
package main

import (
	"os"

	"github.com/vikrin/workflow/cmd/workflowctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
