// Command tablekit-bench is a live dashboard that drives the store, view,
// and layout engines against a synthetic dataset, so the cost of a sort
// toggle or a filter keystroke is visible while iterating on the engine.
//
// Adapted from aster's CLI entrypoint (main.go): argument parsing,
// absolute-path style validation replaced by a row-count flag, and the
// same bubbletea program construction.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	rows := flag.Int("rows", 250_000, "number of synthetic rows to generate")
	cols := flag.Int("cols", 4, "number of synthetic columns (first is string, rest numeric)")
	flag.Parse()

	if *rows <= 0 {
		fmt.Fprintln(os.Stderr, "tablekit-bench: -rows must be positive")
		os.Exit(1)
	}

	m := newModel(*rows, *cols)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
