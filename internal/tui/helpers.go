package tui

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/alexander-akhmetov/hangtimer/internal/catalog"
	"github.com/alexander-akhmetov/hangtimer/internal/config"
)

// loadCatalog loads the resolved configuration and the workout catalog it
// points at. Unreadable workout files are reported on stderr and skipped.
func loadCatalog() (*config.Config, *catalog.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cat, err := catalog.Load(cfg.WorkoutDirs()...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load workouts: %w", err)
	}
	for _, w := range cat.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return cfg, cat, nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// terminalWidth returns the width of f, or 0 when it is not a terminal.
func terminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // fd fits in int
	if err != nil {
		return 0
	}
	return w
}
