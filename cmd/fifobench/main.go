// Package main provides the entry point for fifobench.
// fifobench runs a randomized read/write stream against a 16-entry
// synchronous FIFO and checks every response against a reference model.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/fifobench/bench"
)

var (
	count      = flag.Int("n", 0, "Number of requests to generate (0 = config default)")
	seed       = flag.Int64("seed", 0, "Stimulus randomization seed (0 = config default)")
	configPath = flag.String("config", "", "Path to bench configuration JSON file")
	verbose    = flag.Bool("v", false, "Verbose per-observation trace")
)

func main() {
	flag.Parse()

	cfg := bench.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = bench.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading bench config: %v\n", err)
			os.Exit(1)
		}
	}
	if *count > 0 {
		cfg.Count = *count
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	opts := []bench.Option{bench.WithConfig(cfg)}
	if *verbose {
		opts = append(opts, bench.WithTrace(os.Stdout))
	}

	env := bench.NewEnvironment(opts...)

	report, err := env.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running bench: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n")
	fmt.Printf("Requests:     %d\n", report.Requests)
	fmt.Printf("Observations: %d\n", report.Observations)
	fmt.Printf("Cycles:       %d\n", report.Cycles)
	fmt.Printf("\n")
	fmt.Printf("Checks:\n")
	fmt.Printf("  Matches:    %d\n", report.Matches)
	fmt.Printf("  Mismatches: %d\n", report.Mismatches)
	fmt.Printf("  Underflows: %d\n", report.Underflows)
	fmt.Printf("  Overflows:  %d\n", report.Overflows)
	fmt.Printf("\n")
	fmt.Printf("Errors: %d\n", report.Errors())

	if report.Errors() > 0 {
		os.Exit(1)
	}
}
