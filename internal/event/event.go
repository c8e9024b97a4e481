// Package event defines typed events emitted by the workout timer, consumed
// by the TUI log pane and the headless writer.
package event

import "time"

// Kind identifies the type of event.
type Kind int

const (
	// KindStarted is the pre-roll countdown starting.
	KindStarted Kind = iota
	// KindTick is a one-second countdown decrement.
	KindTick
	// KindStep is a new step beginning.
	KindStep
	// KindComplete is the last step finishing.
	KindComplete
	// KindPaused is the countdown being frozen.
	KindPaused
	// KindResumed is the countdown being unfrozen.
	KindResumed
	// KindReset is the session returning to READY.
	KindReset
	// KindJumped is a manual jump to a step.
	KindJumped
	// KindWorkout is the active workout being switched.
	KindWorkout
	// KindMuted is the mute flag changing.
	KindMuted
	// KindCue is a cue that played.
	KindCue
	// KindCueFailed is a cue that failed to play.
	KindCueFailed
	// KindUnlocked is the audio latch being set.
	KindUnlocked
	// KindUnlockFailed is an unlock attempt that failed.
	KindUnlockFailed
	// KindWakeLock is a wake-lock failure.
	KindWakeLock
)

var kindNames = map[Kind]string{
	KindStarted:      "started",
	KindTick:         "tick",
	KindStep:         "step",
	KindComplete:     "complete",
	KindPaused:       "paused",
	KindResumed:      "resumed",
	KindReset:        "reset",
	KindJumped:       "jumped",
	KindWorkout:      "workout",
	KindMuted:        "muted",
	KindCue:          "cue",
	KindCueFailed:    "cue-failed",
	KindUnlocked:     "unlocked",
	KindUnlockFailed: "unlock-failed",
	KindWakeLock:     "wake-lock",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Failure reports whether the kind describes a degraded collaborator.
func (k Kind) Failure() bool {
	return k == KindCueFailed || k == KindUnlockFailed || k == KindWakeLock
}

// Event is a single typed event emitted by the timer.
type Event struct {
	Kind Kind
	Text string // human-readable payload (meaning depends on Kind)
	At   time.Time
}

// Handler is a callback that receives typed events.
type Handler func(Event)

// New creates an event of the given kind stamped with the current time.
func New(kind Kind, text string) Event {
	return Event{Kind: kind, Text: text, At: time.Now()}
}

// Step creates a KindStep event.
func Step(text string) Event { return New(KindStep, text) }

// Cue creates a KindCue event.
func Cue(text string) Event { return New(KindCue, text) }

// CueFailed creates a KindCueFailed event.
func CueFailed(text string) Event { return New(KindCueFailed, text) }

// Multi fans an event out to every non-nil handler.
func Multi(handlers ...Handler) Handler {
	return func(e Event) {
		for _, h := range handlers {
			if h != nil {
				h(e)
			}
		}
	}
}
