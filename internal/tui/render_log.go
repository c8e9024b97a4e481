package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexander-akhmetov/hangtimer/internal/event"
)

// renderEvents renders the log viewport content from typed events.
func (m Model) renderEvents() string {
	if len(m.events) == 0 {
		return labelStyle.Render("Press space to start.")
	}

	lines := make([]string, 0, len(m.events))
	for _, ev := range m.events {
		lines = append(lines, labelStyle.Render(ev.At.Format("15:04:05"))+" "+renderEventText(ev))
	}
	return strings.Join(lines, "\n")
}

func renderEventText(ev event.Event) string {
	if ev.Kind.Failure() {
		return failureStyle.Render("✗ " + ev.Text)
	}

	var style lipgloss.Style
	prefix := ""
	switch ev.Kind {
	case event.KindStarted:
		style, prefix = beginStyle, "▶ "
	case event.KindStep:
		style, prefix = currentStyle, "» "
	case event.KindComplete:
		style, prefix = hangStyle, "✓ "
	case event.KindPaused:
		style, prefix = pausedStyle, "‖ "
	case event.KindCue, event.KindUnlocked:
		style, prefix = cueLogStyle, "♪ "
	default:
		style = valueStyle
	}
	return style.Render(prefix + ev.Text)
}
