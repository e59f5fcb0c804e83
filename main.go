// Package main provides the entry point for m6502sim.
// m6502sim is a cycle-stepped 6502 emulator driven by the Akita simulation
// engine.
//
// For the full CLI, use: go run ./cmd/m6502sim
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	printBanner(os.Stdout, len(os.Args) > 1)
}

// printBanner points at the real CLI, which owns the option list.
func printBanner(w io.Writer, hasArgs bool) {
	fmt.Fprintln(w, "m6502sim - cycle-stepped 6502 emulator")
	fmt.Fprintln(w, "Built on Akita simulation framework")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'go run ./cmd/m6502sim -h' for usage and options.")

	if hasArgs {
		fmt.Fprintln(w, "\nNote: You provided arguments. Use 'go run ./cmd/m6502sim' instead.")
	}
}
