// Package main is the entry point for the Flaméo fire-safety audit tool.
//
// Usage:
//
//	flameo serve       Start the MCP server over stdio
//	flameo interview   Run an audit interactively in the terminal
//	flameo score FILE  Score an exported audit snapshot
//	flameo catalog     List every audit question
//	flameo version     Print version
package main

import (
	"fmt"
	"os"

	"github.com/HendryAvila/flameo/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
