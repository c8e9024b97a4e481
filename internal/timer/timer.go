// Package timer implements the workout Timer Engine. It owns the session,
// drives the one-second tick, and executes the side effects the pure state
// machine in package engine asks for: cue playback with unlock-and-retry
// recovery and the wake lock.
package timer

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexander-akhmetov/hangtimer/internal/cue"
	"github.com/alexander-akhmetov/hangtimer/internal/debug"
	"github.com/alexander-akhmetov/hangtimer/internal/engine"
	"github.com/alexander-akhmetov/hangtimer/internal/event"
	"github.com/alexander-akhmetov/hangtimer/internal/wakelock"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// Config holds the collaborators of a Timer. Nil fields get defaults.
type Config struct {
	Player    cue.Player    // default: cue.NopPlayer
	WakeLock  wakelock.Lock // default: wakelock.Nop
	Scheduler Scheduler     // default: RealScheduler
	OnEvent   event.Handler // optional
	Spawn     func(func())  // runs background work; default: go f()
}

// Timer is the Timer Engine for one workout widget. All methods are safe
// for concurrent use; mutations are serialized so no two of them overlap.
//
// Wake-lock calls are made while holding the timer lock, so a wakelock.Lock
// must not call back into the Timer.
type Timer struct {
	mu      sync.Mutex
	workout workout.Workout
	engine  engine.Engine
	session engine.Session
	muted   bool

	player    cue.Player
	wake      wakelock.Lock
	scheduler Scheduler
	onEvent   event.Handler
	spawn     func(func())

	pending Stopper
	gen     uint64 // bumped on every re-arm; stale ticks compare against it
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Timer in the READY state for w.
func New(w workout.Workout, cfg Config) (*Timer, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workout: %w", err)
	}
	if cfg.Player == nil {
		cfg.Player = cue.NopPlayer{}
	}
	if cfg.WakeLock == nil {
		cfg.WakeLock = wakelock.Nop{}
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = RealScheduler{}
	}
	if cfg.Spawn == nil {
		cfg.Spawn = func(f func()) { go f() }
	}

	ctx, cancel := context.WithCancel(context.Background())
	w = w.Clone()
	return &Timer{
		workout:   w,
		engine:    engine.New(w),
		session:   engine.NewSession(),
		player:    cfg.Player,
		wake:      cfg.WakeLock,
		scheduler: cfg.Scheduler,
		onEvent:   cfg.OnEvent,
		spawn:     cfg.Spawn,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start begins the pre-roll countdown. Ignored unless the session is READY.
func (t *Timer) Start(muted bool) {
	t.mu.Lock()
	t.muted = muted
	t.mu.Unlock()
	t.apply(t.engine.Start)
}

// TogglePause pauses a running session or resumes a paused one.
func (t *Timer) TogglePause() {
	t.apply(t.engine.TogglePause)
}

// Pause freezes the countdown.
func (t *Timer) Pause() {
	t.apply(t.engine.Pause)
}

// Resume unfreezes the countdown.
func (t *Timer) Resume() {
	t.apply(t.engine.Resume)
}

// Reset returns to READY and releases the wake lock.
func (t *Timer) Reset() {
	t.apply(t.engine.Reset)
}

// JumpToStep moves to step k, paused. Invalid targets are ignored and
// reported as false.
func (t *Timer) JumpToStep(k int) bool {
	return t.apply(func(s engine.Session) (engine.Session, engine.Action) {
		return t.engine.JumpTo(s, k)
	}).Applied()
}

// SetWorkout switches the active workout. The session always returns to
// READY; a running session is reset first.
func (t *Timer) SetWorkout(w workout.Workout) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("invalid workout: %w", err)
	}
	w = w.Clone()

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	wasStarted := t.session.Started
	next, action := t.engine.Reset(t.session)
	t.session = next
	t.workout = w
	t.engine = engine.New(w)
	t.rearm()
	t.applyWakeLock(action.WakeLock)
	t.mu.Unlock()

	if wasStarted {
		t.emit(event.New(event.KindReset, "Reset (workout switched)"))
	}
	t.emit(event.New(event.KindWorkout, fmt.Sprintf("Workout: %s (%d steps, %s)",
		w.Name, w.StepCount(), workout.FormatClock(w.TotalDuration()))))
	return nil
}

// SetMuted sets the mute flag checked before every cue.
func (t *Timer) SetMuted(muted bool) {
	t.mu.Lock()
	changed := t.muted != muted
	t.muted = muted
	t.mu.Unlock()

	if changed {
		text := "Sound on"
		if muted {
			text = "Muted"
		}
		t.emit(event.New(event.KindMuted, text))
	}
}

// Close stops the tick, releases the wake lock and cancels in-flight cue
// work. The Timer ignores all commands afterwards.
func (t *Timer) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.gen++
	t.applyWakeLock(engine.WakeLockDisable)
	t.mu.Unlock()
	t.cancel()
}

// apply runs one transition: commit the new session, re-arm the tick if
// the ticking inputs changed, then execute side effects.
func (t *Timer) apply(transition func(engine.Session) (engine.Session, engine.Action)) engine.Action {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return engine.Action{}
	}
	before := t.session
	next, action := transition(before)
	t.session = next
	if driveChanged(before, next) {
		t.rearm()
	}
	if action.Applied() {
		t.applyWakeLock(action.WakeLock)
	}
	ev, hasEvent := t.describe(next, action)
	t.mu.Unlock()

	if hasEvent {
		t.emit(ev)
	}
	t.execute(action)
	return action
}

// fire is the tick callback. gen identifies the arming it belongs to; a
// callback from a cancelled arming is dropped.
func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	if t.closed || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	next, action := t.engine.Tick(t.session)
	t.session = next
	t.rearm()
	ev, hasEvent := t.describe(next, action)
	t.mu.Unlock()

	if hasEvent {
		t.emit(ev)
	}
	t.execute(action)
}

// rearm cancels any pending tick and schedules the next one if the session
// is ticking. Caller must hold t.mu.
func (t *Timer) rearm() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.gen++
	if !t.session.Ticking() {
		return
	}
	gen := t.gen
	t.pending = t.scheduler.AfterFunc(Period, func() { t.fire(gen) })
}

func driveChanged(a, b engine.Session) bool {
	return a.Started != b.Started || a.Paused != b.Paused || a.StepIndex != b.StepIndex
}

// applyWakeLock performs a wake-lock operation. Caller must hold t.mu.
func (t *Timer) applyWakeLock(op engine.WakeLockOp) {
	var err error
	switch op {
	case engine.WakeLockEnable:
		err = t.wake.Enable()
	case engine.WakeLockDisable:
		err = t.wake.Disable()
	default:
		return
	}
	if err != nil {
		debug.Logf("timer: wake lock: %v", err)
		t.spawn(func() { t.emit(event.New(event.KindWakeLock, fmt.Sprintf("Wake lock: %v", err))) })
	}
}

// execute starts the audio side effects of an action in the background.
// Unlock runs before the cue so a first cue after start has a chance to play.
func (t *Timer) execute(action engine.Action) {
	if !action.UnlockAudio && !action.HasCue() {
		return
	}
	t.spawn(func() {
		if action.UnlockAudio {
			t.unlockAudio()
		}
		if action.HasCue() {
			t.requestCue(action.Cue)
		}
	})
}

// requestCue plays c unless muted. A failure triggers one unlock attempt
// while the audio latch is still unset.
func (t *Timer) requestCue(c workout.Cue) {
	t.mu.Lock()
	muted := t.muted
	t.mu.Unlock()
	if muted {
		return
	}

	if err := t.player.Play(t.ctx, c); err != nil {
		debug.Logf("timer: play %s: %v", c, err)
		t.emit(event.CueFailed(fmt.Sprintf("Cue %s failed: %v", c, err)))

		t.mu.Lock()
		unlocked := t.session.AudioUnlocked
		t.mu.Unlock()
		if !unlocked {
			t.unlockAudio()
		}
		return
	}
	t.emit(event.Cue(fmt.Sprintf("Cue: %s", c)))
}

func (t *Timer) unlockAudio() {
	if err := t.player.Unlock(t.ctx); err != nil {
		debug.Logf("timer: unlock audio: %v", err)
		t.emit(event.New(event.KindUnlockFailed, fmt.Sprintf("Audio unlock failed: %v", err)))
		return
	}

	t.mu.Lock()
	already := t.session.AudioUnlocked
	t.session = t.engine.MarkUnlocked(t.session)
	t.mu.Unlock()

	if !already {
		t.emit(event.New(event.KindUnlocked, "Audio unlocked"))
	}
}

func (t *Timer) emit(e event.Event) {
	if t.onEvent != nil {
		t.onEvent(e)
	}
}

// describe turns a transition into a user-facing event. Caller must hold t.mu.
func (t *Timer) describe(s engine.Session, a engine.Action) (event.Event, bool) {
	n := len(t.engine.Steps)
	switch a.Outcome {
	case engine.OutcomeStarted:
		return event.New(event.KindStarted, fmt.Sprintf("Started %s: get ready (%s)", t.workout.Name, workout.FormatClock(s.TimeLeft))), true
	case engine.OutcomeCountdown:
		return event.New(event.KindTick, workout.FormatClock(s.TimeLeft)), true
	case engine.OutcomeStepStarted:
		return event.Step(fmt.Sprintf("Step %d/%d: %s (%s)", s.StepIndex+1, n,
			t.engine.CurrentStepName(s), workout.FormatClock(s.TimeLeft))), true
	case engine.OutcomeCompleted:
		return event.New(event.KindComplete, fmt.Sprintf("%s: %s done", engine.NameComplete, t.workout.Name)), true
	case engine.OutcomePaused:
		return event.New(event.KindPaused, fmt.Sprintf("Paused at %s", workout.FormatClock(s.TimeLeft))), true
	case engine.OutcomeResumed:
		return event.New(event.KindResumed, fmt.Sprintf("Resumed at %s", workout.FormatClock(s.TimeLeft))), true
	case engine.OutcomeReset:
		return event.New(event.KindReset, "Reset"), true
	case engine.OutcomeJumped:
		return event.New(event.KindJumped, fmt.Sprintf("Jumped to step %d/%d: %s (paused)", s.StepIndex+1, n,
			t.engine.CurrentStepName(s))), true
	default:
		return event.Event{}, false
	}
}
