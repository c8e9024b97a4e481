// Package tui implements the hangtimer command tree and the interactive
// timer screen built on bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexander-akhmetov/hangtimer/internal/catalog"
	"github.com/alexander-akhmetov/hangtimer/internal/cue"
	"github.com/alexander-akhmetov/hangtimer/internal/debug"
	"github.com/alexander-akhmetov/hangtimer/internal/dirs"
	"github.com/alexander-akhmetov/hangtimer/internal/event"
	"github.com/alexander-akhmetov/hangtimer/internal/timer"
	"github.com/alexander-akhmetov/hangtimer/internal/wakelock"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// eventBuffer bounds timer events queued while the UI is busy.
const eventBuffer = 256

// Options configures an interactive session.
type Options struct {
	Catalog   *catalog.Catalog
	Workout   workout.Workout
	Player    cue.Player
	WakeLock  wakelock.Lock
	Muted     bool
	HideHelp  bool
	StartStep int // 1-based step to select and jump to; 0 starts at READY
}

// TUI runs the timer screen.
type TUI struct {
	opts    Options
	program *tea.Program
}

// New creates a TUI for opts.
func New(opts Options) *TUI {
	return &TUI{opts: opts}
}

// Run creates the timer, runs the bubbletea program until the user quits,
// and releases the timer's resources.
func (t *TUI) Run(ctx context.Context) error {
	if n := t.opts.Workout.StepCount(); t.opts.StartStep < 0 || t.opts.StartStep > n {
		return fmt.Errorf("step %d out of range 1..%d", t.opts.StartStep, n)
	}

	// The timer may emit from inside a command issued by Update, so events
	// are queued and forwarded instead of sent to the program directly.
	events := make(chan event.Event, eventBuffer)
	tm, err := timer.New(t.opts.Workout, timer.Config{
		Player:   t.opts.Player,
		WakeLock: t.opts.WakeLock,
		OnEvent: func(ev event.Event) {
			select {
			case events <- ev:
			default:
				debug.Logf("tui: event queue full, dropped %s", ev.Kind)
			}
		},
	})
	if err != nil {
		return err
	}
	defer tm.Close()

	if restore := redirectDebugLog(); restore != nil {
		defer restore()
	}

	tm.SetMuted(t.opts.Muted)
	if t.opts.StartStep > 0 {
		tm.JumpToStep(t.opts.StartStep - 1)
	}

	model := NewModel(tm, t.opts.Catalog)
	model.SetHideHelp(t.opts.HideHelp)
	t.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case ev := <-events:
				t.program.Send(EventMsg{Event: ev})
			case <-done:
				return
			}
		}
	}()

	_, err = t.program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// redirectDebugLog sends debug output to the state dir while the alternate
// screen owns the terminal. It returns a restore func, or nil when debug
// logging is off or the file cannot be opened.
func redirectDebugLog() func() {
	if !debug.Enabled() {
		return nil
	}
	path := dirs.DebugLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path under the state dir
	if err != nil {
		return nil
	}
	prev := debug.SetOutput(f)
	return func() {
		debug.SetOutput(prev)
		f.Close()
	}
}
