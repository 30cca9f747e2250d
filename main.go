// Package main provides the entry point for fifobench.
// fifobench is a closed-loop functional-verification harness for a
// 16-entry synchronous FIFO component.
//
// For the full CLI, use: go run ./cmd/fifobench
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("fifobench - FIFO functional-verification harness")
	fmt.Println("")
	fmt.Println("Usage: fifobench [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -n         Number of requests to generate")
	fmt.Println("  -seed      Stimulus randomization seed")
	fmt.Println("  -config    Path to bench configuration JSON file")
	fmt.Println("  -v         Verbose per-observation trace")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/fifobench' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/fifobench' instead.")
	}
}
