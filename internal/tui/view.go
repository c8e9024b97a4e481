package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	sidebarWidth := max(40, min(56, m.width*40/100))
	mainWidth := m.width - sidebarWidth - 4
	contentHeight := m.height - 3

	sidebar := m.renderSidebar(sidebarWidth-4, contentHeight-2)
	sidebarBox := statusBoxStyle.Width(sidebarWidth).Height(contentHeight).Render(sidebar)

	vp := m.logViewport
	header := "Log"
	if m.showInfo {
		vp = m.infoViewport
		header = "Overview"
	}
	if vp.TotalLineCount() > vp.Height {
		header = fmt.Sprintf("%s (%d lines, %d%%)", header, vp.TotalLineCount(), int(vp.ScrollPercent()*100))
	}

	mainContent := labelStyle.Render(header) + "\n" + vp.View()
	mainBox := logBoxStyle.Width(mainWidth).Height(contentHeight).Render(mainContent)

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, mainBox)
	return main + "\n" + m.renderHelp()
}

// renderSidebar composes all sidebar sections.
func (m Model) renderSidebar(width int, height int) string {
	var b strings.Builder

	header := m.renderSidebarHeader()
	info := m.renderSidebarWorkout(width)
	now := m.renderSidebarNow(width)

	b.WriteString(header)
	b.WriteString(info)
	b.WriteString(now)

	usedLines := heightOf(header) + heightOf(info) + heightOf(now)

	footer := m.renderSidebarFooter(width)
	b.WriteString(m.renderSidebarSteps(width, height, usedLines, heightOf(footer)))
	b.WriteString(footer)

	return b.String()
}

func (m Model) renderSidebarHeader() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🧗 HANGTIMER"))
	b.WriteString("\n")

	b.WriteString(m.getStateIndicator())
	if m.snap.Muted {
		b.WriteString(labelStyle.Render("  🔇 muted"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) getStateIndicator() string {
	switch {
	case m.snap.Complete():
		return runningStyle.Render("✓ COMPLETE")
	case m.snap.Paused:
		return pausedStyle.Render("‖ PAUSED")
	case m.snap.Running() && m.snap.Ready():
		return beginStyle.Render(m.spinner.View() + " Get ready")
	case m.snap.Running():
		return runningStyle.Render(m.spinner.View() + " Running")
	default:
		return labelStyle.Render("○ Ready")
	}
}

func (m Model) renderSidebarWorkout(width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(sectionHeader("Workout", width))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(wrapText(m.workout.Name, width, "", 1)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s total • %d steps • %d hangs",
		workout.FormatClock(m.workout.TotalDuration()), m.workout.StepCount(), m.workout.ActiveCount())))
	b.WriteString("\n")
	if m.workout.Attribution.Name != "" {
		b.WriteString(tipStyle.Render(wrapText("Source: "+m.workout.Attribution.Name, width, "", 1)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderSidebarNow(width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(sectionHeader("Now", width))
	b.WriteString("\n")

	b.WriteString(clockStyle.Render(m.snap.Clock()))
	b.WriteString(" ")
	b.WriteString(m.stepStyle().Render(wrapText(m.snap.Current, max(width-8, 10), "", 1)))
	b.WriteString("\n")

	if m.snap.Next != "" {
		b.WriteString(labelStyle.Render("Next: "))
		b.WriteString(valueStyle.Render(wrapText(m.snap.Next, max(width-6, 10), "", 1)))
		b.WriteString("\n")
	}

	b.WriteString(m.progress.ViewAs(m.snap.Progress()))
	b.WriteString("\n")

	var status string
	switch {
	case m.snap.Complete():
		status = fmt.Sprintf("All %d steps done", m.snap.StepCount)
	case m.snap.Ready():
		status = fmt.Sprintf("Pre-roll • %s left", workout.FormatClock(m.snap.Remaining))
	default:
		status = fmt.Sprintf("Step %d/%d • %s left", m.snap.StepIndex+1, m.snap.StepCount, workout.FormatClock(m.snap.Remaining))
	}
	b.WriteString(labelStyle.Render(status))
	b.WriteString("\n")

	return b.String()
}

// stepStyle colors the current phase by its cue.
func (m Model) stepStyle() lipgloss.Style {
	switch {
	case m.snap.Complete():
		return hangStyle
	case m.snap.Ready():
		return beginStyle
	case m.snap.Cue == workout.CueActive:
		return hangStyle
	case m.snap.Cue == workout.CueRest:
		return restStyle
	default:
		return currentStyle
	}
}

func (m Model) renderSidebarSteps(width int, height int, usedLines int, footerLines int) string {
	if len(m.workout.Steps) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(sectionHeader("Steps", width))
	b.WriteString("\n")
	b.WriteString(m.renderStepsContent(width, height, usedLines, footerLines))

	return b.String()
}

// renderStepsContent lists the steps in a window kept around the cursor.
func (m Model) renderStepsContent(width int, height int, usedLines int, footerLines int) string {
	var b strings.Builder
	steps := m.workout.Steps

	// Account for the "Steps" header (newline + header + newline) and footer,
	// plus 1 for the trailing newline effect on lipgloss.Height.
	totalUsed := usedLines + 3 + footerLines + 1
	space := max(3, height-totalUsed)
	if len(steps) > space {
		space = max(1, space-2) // ↑ and ↓ indicators
	}

	showFrom := 0
	showTo := len(steps) - 1
	if len(steps) > space {
		showFrom = max(0, m.cursor-(space-1)/2)
		showTo = min(len(steps)-1, showFrom+space-1)
		showFrom = max(0, showTo-space+1)
	}

	if showFrom > 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  ↑ %d more\n", showFrom)))
	}

	nameWidth := max(width-12, 10)
	for i := showFrom; i <= showTo; i++ {
		step := steps[i]
		name := wrapText(step.Name, nameWidth, "", 1)
		clock := fmt.Sprintf("%5s", workout.FormatClock(step.Duration))

		var line string
		switch {
		case i == m.snap.StepIndex:
			line = currentStyle.Render("→ "+clock+" ") + m.stepStyle().Render(name)
		case m.snap.Complete() || i < m.snap.StepIndex:
			line = runningStyle.Render("✓ ") + labelStyle.Render(clock+" "+name)
		default:
			line = labelStyle.Render("○ "+clock+" ") + valueStyle.Render(name)
		}

		if i == m.cursor {
			b.WriteString(selectedStyle.Render("›" + line))
		} else {
			b.WriteString(" " + line)
		}
		b.WriteString("\n")
	}

	if showTo < len(steps)-1 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  ↓ %d more\n", len(steps)-1-showTo)))
	}

	return b.String()
}

func (m Model) renderSidebarFooter(width int) string {
	var b strings.Builder

	if m.snap.Complete() {
		b.WriteString("\n")
		b.WriteString(tipStyle.Render(wrapText("r: go again • w: next workout • q: quit", width, "", 2)))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(failureStyle.Render(wrapText(fmt.Sprintf("Error: %v", m.err), width, "", 2)))
	}

	return b.String()
}

func (m Model) renderHelp() string {
	if m.hideHelp && !m.help.ShowAll {
		return helpStyle.Render("?: help")
	}
	return m.help.View(m.keys)
}
