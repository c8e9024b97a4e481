package catalog

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// StepTable renders w as one line per step, the text Diff compares.
func StepTable(w workout.Workout) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s (%s, %d steps)\n", w.Name, workout.FormatClock(w.TotalDuration()), w.StepCount())
	for i, s := range w.Steps {
		fmt.Fprintf(&sb, "%3d  %5s  %-4s  %s\n", i+1, workout.FormatClock(s.Duration), s.Cue, s.Name)
	}
	return sb.String()
}

// Diff returns a unified diff between the step tables of a and b, or "" if
// they are identical.
func Diff(a, b workout.Workout) string {
	return udiff.Unified(a.ID, b.ID, StepTable(a), StepTable(b))
}
