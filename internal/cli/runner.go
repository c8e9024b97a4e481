package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/alexander-akhmetov/hangtimer/internal/catalog"
	"github.com/alexander-akhmetov/hangtimer/internal/cue"
	"github.com/alexander-akhmetov/hangtimer/internal/event"
	"github.com/alexander-akhmetov/hangtimer/internal/timer"
	"github.com/alexander-akhmetov/hangtimer/internal/wakelock"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// RunConfig holds all configuration needed to run a workout headless.
type RunConfig struct {
	Player    cue.Player
	WakeLock  wakelock.Lock
	Scheduler timer.Scheduler // default: wall clock
	Muted     bool
	StartStep int  // 1-based step to start at; 0 runs the pre-roll first
	Overview  bool // print the step table before starting

	Controls  io.Reader // line commands, usually stdin; nil disables them
	Out       io.Writer // output writer (default: os.Stdout)
	IsTTY     bool
	TermWidth int
}

// Result describes how a headless run ended.
type Result struct {
	Completed bool
	Final     timer.Snapshot
	Elapsed   time.Duration
}

// Run creates a timer for w, wires its events to a Writer, and blocks until
// the workout completes, the user quits, or ctx is cancelled (including on
// SIGINT/SIGTERM). It guarantees footer cleanup and wake-lock release.
func Run(ctx context.Context, w workout.Workout, cfg RunConfig) (*Result, error) {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	if cfg.StartStep < 0 || cfg.StartStep > w.StepCount() {
		return nil, fmt.Errorf("step %d out of range 1..%d", cfg.StartStep, w.StepCount())
	}

	wr := NewWriter(out, cfg.IsTTY, cfg.TermWidth)

	done := make(chan struct{})
	var doneOnce sync.Once
	var stopped atomic.Bool
	var t *timer.Timer

	t, err := timer.New(w, timer.Config{
		Player:    cfg.Player,
		WakeLock:  cfg.WakeLock,
		Scheduler: cfg.Scheduler,
		OnEvent: func(ev event.Event) {
			if stopped.Load() {
				return
			}
			wr.WriteEvent(ev)
			wr.UpdateFooter(t.Snapshot())
			if ev.Kind == event.KindComplete {
				doneOnce.Do(func() { close(done) })
			}
		},
	})
	if err != nil {
		return nil, err
	}
	defer t.Close()

	if cfg.Overview {
		wr.WriteMarkdown(catalog.Markdown(w, -1))
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	quit := make(chan struct{})
	if cfg.Controls != nil {
		wr.Notef("controls: %s", controlHelp)
		go readControls(cfg.Controls, t, wr, quit)
	}

	began := time.Now()
	if cfg.StartStep > 0 {
		t.SetMuted(cfg.Muted)
		t.JumpToStep(cfg.StartStep - 1)
		t.Resume()
	} else {
		t.Start(cfg.Muted)
	}

	result := &Result{}
	select {
	case <-done:
		result.Completed = true
	case <-quit:
	case <-ctx.Done():
	}
	result.Elapsed = time.Since(began)
	result.Final = t.Snapshot()

	// Late events from cue goroutines must not redraw a cleared footer.
	stopped.Store(true)
	t.Close()
	wr.ClearFooter()

	printRunSummary(wr, result)
	return result, nil
}

// printRunSummary prints a compact summary after the run finishes.
func printRunSummary(w *Writer, result *Result) {
	if result == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	snap := result.Final
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, w.style(colorDim, "────────────────────────────"))

	status := w.styleBold(colorGreen, "complete")
	if !result.Completed {
		status = w.styleBold(colorRed, "stopped")
	}
	fmt.Fprintf(w.out, "%s %s %s\n", w.style(colorDim, "Workout:"), w.styleBold(colorMagenta, snap.WorkoutName), status)

	reached := snap.StepCount
	if !snap.Complete() {
		reached = max(snap.StepIndex+1, 0)
	}
	fmt.Fprintf(w.out, "%s %s  %s %s\n",
		w.style(colorDim, "Steps:"), w.style(colorWhite, fmt.Sprintf("%d/%d", reached, snap.StepCount)),
		w.style(colorDim, "Elapsed:"), w.style(colorWhite, formatElapsed(result.Elapsed)),
	)
}
