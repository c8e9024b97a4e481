package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// wrapText wraps text to fit within width, with optional indent for continuation lines.
// maxLines limits output; 0 means unlimited. Truncates with "..." if exceeded.
func wrapText(text string, width int, indent string, maxLines int) string {
	if width <= 0 {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	currentLine := words[0]
	firstLine := true
	contWidth := width - len(indent)

	for _, word := range words[1:] {
		lineWidth := width
		if !firstLine {
			lineWidth = contWidth
		}

		if len(currentLine)+1+len(word) <= lineWidth {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			if maxLines > 0 && len(lines) >= maxLines {
				return ellipsize(lines)
			}
			firstLine = false
			currentLine = indent + word
		}
	}
	lines = append(lines, currentLine)

	if maxLines > 0 && len(lines) > maxLines {
		return ellipsize(lines[:maxLines])
	}

	return strings.Join(lines, "\n")
}

func ellipsize(lines []string) string {
	last := lines[len(lines)-1]
	if len(last) > 3 {
		lines[len(lines)-1] = last[:len(last)-3] + "..."
	}
	return strings.Join(lines, "\n")
}

func sectionHeader(title string, width int) string {
	padding := max(1, (width-len(title)-2)/2)
	line := strings.Repeat("─", padding)
	return labelStyle.Render(line+" ") + valueStyle.Render(title) + labelStyle.Render(" "+line)
}

// heightOf returns the rendered height of a string, treating empty strings as 0 lines.
// This is needed because lipgloss.Height("") returns 1.
func heightOf(s string) int {
	if s == "" {
		return 0
	}
	return lipgloss.Height(s)
}
