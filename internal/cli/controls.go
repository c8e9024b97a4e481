package cli

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// controlHelp lists the line commands accepted on stdin.
const controlHelp = "enter/p pause-resume, s start, r reset, m mute, <n> jump to step n, q quit"

type command int

const (
	cmdUnknown command = iota
	cmdToggle
	cmdStart
	cmdReset
	cmdMute
	cmdJump
	cmdQuit
)

// controller is the part of *timer.Timer the line commands drive.
type controller interface {
	Start(muted bool)
	TogglePause()
	Reset()
	JumpToStep(k int) bool
	SetMuted(muted bool)
	Muted() bool
}

// parseCommand maps an input line to a command. For cmdJump the second
// value is the zero-based step index.
func parseCommand(line string) (command, int) {
	line = strings.ToLower(strings.TrimSpace(line))
	switch line {
	case "", "p", "pause", "resume":
		return cmdToggle, 0
	case "s", "start":
		return cmdStart, 0
	case "r", "reset":
		return cmdReset, 0
	case "m", "mute":
		return cmdMute, 0
	case "q", "quit", "exit":
		return cmdQuit, 0
	}
	if n, err := strconv.Atoi(line); err == nil && n > 0 {
		return cmdJump, n - 1
	}
	return cmdUnknown, 0
}

// readControls applies line commands from r until EOF or a quit command,
// which closes quit.
func readControls(r io.Reader, c controller, w *Writer, quit chan<- struct{}) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd, step := parseCommand(scanner.Text())
		switch cmd {
		case cmdToggle:
			c.TogglePause()
		case cmdStart:
			c.Start(c.Muted())
		case cmdReset:
			c.Reset()
		case cmdMute:
			c.SetMuted(!c.Muted())
		case cmdJump:
			if !c.JumpToStep(step) {
				w.Notef("no step %d", step+1)
			}
		case cmdQuit:
			close(quit)
			return
		default:
			w.Notef("unknown command %q (%s)", strings.TrimSpace(scanner.Text()), controlHelp)
		}
	}
}
