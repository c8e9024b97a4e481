package catalog

import (
	"fmt"
	"strings"

	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// Markdown renders w as a markdown document with a step table. current is
// the zero-based step to highlight, or -1 for none.
func Markdown(w workout.Workout, current int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", w.Name)
	if w.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", w.Description)
	}
	fmt.Fprintf(&sb, "**Total:** %s · **Steps:** %d · **Hangs:** %d\n\n",
		workout.FormatClock(w.TotalDuration()), w.StepCount(), w.ActiveCount())

	sb.WriteString("| # | Step | Time | Cue |\n|---|------|------|-----|\n")
	for i, s := range w.Steps {
		name := escapeCell(s.Name)
		if i == current {
			name = "**▶ " + name + "**"
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", i+1, name, workout.FormatClock(s.Duration), s.Cue)
	}

	if w.Attribution.Name != "" {
		sb.WriteString("\n")
		if w.Attribution.URL != "" {
			fmt.Fprintf(&sb, "Workout by [%s](%s)\n", w.Attribution.Name, w.Attribution.URL)
		} else {
			fmt.Fprintf(&sb, "Workout by %s\n", w.Attribution.Name)
		}
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
