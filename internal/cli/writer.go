package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/alexander-akhmetov/hangtimer/internal/event"
	"github.com/alexander-akhmetov/hangtimer/internal/timer"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// ANSI color codes matching the TUI palette.
const (
	colorOrange  = 208 // pre-roll, begin cue
	colorGreen   = 42  // hang steps, completion
	colorRed     = 196 // collaborator failures
	colorCyan    = 117 // rest steps
	colorYellow  = 220 // paused
	colorDim     = 241 // labels, cues
	colorWhite   = 255 // values
	colorMagenta = 205 // workout title
)

// Writer prints timer events to stdout and redraws a sticky footer in TTY
// mode. In non-TTY mode it prints plain text without ANSI escapes or footer.
type Writer struct {
	out         io.Writer
	isTTY       bool
	width       int
	mu          sync.Mutex
	renderer    *glamour.TermRenderer
	footerLines int
	lastFooter  []string // last rendered footer lines for redraw
}

// NewWriter creates a Writer. If width is <= 0, defaults to 80.
func NewWriter(out io.Writer, isTTY bool, width int) *Writer {
	if width <= 0 {
		width = 80
	}

	w := &Writer{
		out:   out,
		isTTY: isTTY,
		width: width,
	}

	if isTTY {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(max(width-6, 40)),
		)
		if err == nil {
			w.renderer = r
		}
	}

	return w
}

// WriteEvent prints a single event to the output stream. Ticks are not
// printed; the footer carries the running clock.
func (w *Writer) WriteEvent(ev event.Event) {
	if ev.Kind == event.KindTick {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseFooter()
	fmt.Fprintln(w.out, w.formatEvent(ev))
	w.redrawFooter()
}

// WriteMarkdown prints a markdown document, rendered with glamour in TTY mode.
func (w *Writer) WriteMarkdown(md string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseFooter()
	text := md
	if w.renderer != nil {
		if rendered, err := w.renderer.Render(md); err == nil {
			text = strings.TrimRight(rendered, "\n")
		}
	}
	fmt.Fprintln(w.out, text)
	w.redrawFooter()
}

// Notef prints a dim informational line.
func (w *Writer) Notef(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseFooter()
	fmt.Fprintln(w.out, w.style(colorDim, fmt.Sprintf(format, args...)))
	w.redrawFooter()
}

// UpdateFooter redraws the sticky footer with current state.
func (w *Writer) UpdateFooter(snap timer.Snapshot) {
	if !w.isTTY {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseFooter()

	lines := w.buildFooter(snap)
	w.lastFooter = lines
	w.footerLines = len(lines)

	for _, line := range lines {
		fmt.Fprintln(w.out, line)
	}
}

// ClearFooter erases the sticky footer from the terminal.
func (w *Writer) ClearFooter() {
	if !w.isTTY {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseFooter()
	w.footerLines = 0
	w.lastFooter = nil
}

// eraseFooter moves cursor up and clears the footer lines. Must be called with mu held.
func (w *Writer) eraseFooter() {
	if w.footerLines == 0 || !w.isTTY {
		return
	}
	for range w.footerLines {
		fmt.Fprint(w.out, eraseLine)
	}
}

// redrawFooter redraws the last-known footer after an event line was printed.
// Must be called with mu held.
func (w *Writer) redrawFooter() {
	if len(w.lastFooter) == 0 || !w.isTTY {
		return
	}
	for _, line := range w.lastFooter {
		fmt.Fprintln(w.out, line)
	}
	w.footerLines = len(w.lastFooter)
}

// buildFooter composes the footer lines.
func (w *Writer) buildFooter(snap timer.Snapshot) []string {
	var lines []string

	sep := strings.Repeat("─", min(w.width, 80))
	lines = append(lines, w.style(colorDim, sep))

	// Status line: workout | step | clock | state
	parts := []string{w.styleBold(colorMagenta, snap.WorkoutName)}
	switch {
	case snap.Ready():
		parts = append(parts, w.style(colorOrange, "pre-roll"))
	case snap.Complete():
		parts = append(parts, w.style(colorGreen, "done"))
	default:
		parts = append(parts, fmt.Sprintf("step %s",
			w.style(colorWhite, fmt.Sprintf("%d/%d", snap.StepIndex+1, snap.StepCount))))
	}
	parts = append(parts, w.styleBold(colorWhite, snap.Clock()))
	if snap.Paused {
		parts = append(parts, w.styleBold(colorYellow, "paused"))
	}
	if snap.Muted {
		parts = append(parts, w.style(colorDim, "muted"))
	}
	lines = append(lines, strings.Join(parts, w.style(colorDim, " | ")))

	// Current step and what comes next
	current := w.styleBold(w.cueColor(snap.Cue), snap.Current)
	if snap.Next != "" {
		current += w.style(colorDim, "  next: ") + snap.Next
	}
	lines = append(lines, w.style(colorDim, "-> ")+current)

	barWidth := max(min(w.width, 80)-20, 10)
	lines = append(lines, fmt.Sprintf("%s %s",
		w.style(w.cueColor(snap.Cue), bar(snap.Progress(), barWidth)),
		w.style(colorDim, workout.FormatClock(snap.Remaining)+" left")))

	return lines
}

// formatEvent renders one event line. TTY lines carry a colored glyph;
// plain lines are prefixed with the event kind so they stay greppable.
func (w *Writer) formatEvent(ev event.Event) string {
	if !w.isTTY {
		return fmt.Sprintf("%-13s %s", ev.Kind, ev.Text)
	}

	if ev.Kind.Failure() {
		return fg(colorRed, "✗ "+ev.Text)
	}

	switch ev.Kind {
	case event.KindStarted:
		return fgBold(colorOrange, "▶ ") + ev.Text
	case event.KindStep:
		return fgBold(colorCyan, "» ") + bold(ev.Text)
	case event.KindComplete:
		return fgBold(colorGreen, "✓ "+ev.Text)
	case event.KindPaused:
		return fg(colorYellow, "‖ "+ev.Text)
	case event.KindCue, event.KindUnlocked:
		return fg(colorDim, "♪ "+ev.Text)
	default:
		return dim(ev.Text)
	}
}

func (w *Writer) cueColor(c workout.Cue) int {
	switch c {
	case workout.CueActive:
		return colorGreen
	case workout.CueRest:
		return colorCyan
	default:
		return colorOrange
	}
}

// style wraps text with 256-color foreground in TTY mode, plain in non-TTY.
func (w *Writer) style(color int, text string) string {
	if w.isTTY {
		return fg(color, text)
	}
	return text
}

// styleBold wraps text with 256-color foreground and bold in TTY mode.
func (w *Writer) styleBold(color int, text string) string {
	if w.isTTY {
		return fgBold(color, text)
	}
	return text
}
