// Package engine implements the pure workout state machine. Every transition
// takes the current Session and returns the next Session together with an
// Action describing side effects (cue playback, audio unlock, wake lock) for
// the timer to execute after committing the new state.
package engine

import "github.com/alexander-akhmetov/hangtimer/internal/workout"

// WakeLockOp tells the executor what to do with the wake lock.
type WakeLockOp int

const (
	// WakeLockKeep leaves the wake lock untouched.
	WakeLockKeep WakeLockOp = iota
	// WakeLockEnable engages the wake lock.
	WakeLockEnable
	// WakeLockDisable releases the wake lock.
	WakeLockDisable
)

// Outcome classifies what a transition did, mostly for events and logs.
type Outcome int

const (
	// OutcomeNone means the command was rejected or had no effect.
	OutcomeNone Outcome = iota
	// OutcomeStarted is the READY countdown starting.
	OutcomeStarted
	// OutcomeCountdown is a plain one-second decrement.
	OutcomeCountdown
	// OutcomeStepStarted is entering a new step (from READY or a previous step).
	OutcomeStepStarted
	// OutcomeCompleted is the last step running out.
	OutcomeCompleted
	// OutcomePaused is the countdown being frozen.
	OutcomePaused
	// OutcomeResumed is the countdown being unfrozen.
	OutcomeResumed
	// OutcomeReset is the session returning to READY.
	OutcomeReset
	// OutcomeJumped is a manual jump to a step.
	OutcomeJumped
)

// Action is the instruction returned by the engine to the timer.
type Action struct {
	Outcome Outcome

	// Cue is the cue to request, or CueNone.
	Cue workout.Cue

	// UnlockAudio asks the executor to attempt an audio unlock in the
	// background. Set by Start when the latch is not yet set.
	UnlockAudio bool

	WakeLock WakeLockOp
}

// Applied reports whether the transition changed anything.
func (a Action) Applied() bool {
	return a.Outcome != OutcomeNone
}

// HasCue reports whether a cue should be requested.
func (a Action) HasCue() bool {
	return a.Cue != workout.CueNone
}
