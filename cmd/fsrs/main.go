// Package main implements the fsrs command line tool, which schedules
// spaced repetition reviews with the FSRS-5 algorithm and prints the
// results as JSON.
package main

import (
	"os"
)

// main is the entry point for the fsrs command.
// Results are written to stdout; logs and errors go to stderr.
func main() {
	if err := newRootCmd(options{Stdout: os.Stdout, Stderr: os.Stderr}).Execute(); err != nil {
		os.Exit(1)
	}
}
