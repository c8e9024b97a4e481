package timer

import (
	"github.com/alexander-akhmetov/hangtimer/internal/engine"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// Snapshot is a consistent read-only view of the timer for rendering.
type Snapshot struct {
	WorkoutID   string
	WorkoutName string

	StepIndex int
	StepCount int
	TimeLeft  int
	Remaining int

	Started       bool
	Paused        bool
	Muted         bool
	AudioUnlocked bool
	JustJumped    bool

	Current string
	Next    string
	Cue     workout.Cue // cue of the current step, CueNone outside steps
}

// Ready reports whether the session is in the pre-roll phase.
func (s Snapshot) Ready() bool { return s.StepIndex == engine.StepReady }

// Complete reports whether the workout has finished.
func (s Snapshot) Complete() bool { return s.StepIndex == engine.StepComplete }

// Running reports whether the clock is counting down.
func (s Snapshot) Running() bool { return s.Started && !s.Paused && !s.Complete() }

// Clock renders TimeLeft as M:SS.
func (s Snapshot) Clock() string { return workout.FormatClock(s.TimeLeft) }

// Progress returns the fraction of steps reached, in [0, 1].
func (s Snapshot) Progress() float64 {
	switch {
	case s.Complete():
		return 1
	case s.Ready() || s.StepCount == 0:
		return 0
	}
	return float64(s.StepIndex+1) / float64(s.StepCount)
}

// Snapshot returns the current state.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session
	snap := Snapshot{
		WorkoutID:     t.workout.ID,
		WorkoutName:   t.workout.Name,
		StepIndex:     s.StepIndex,
		StepCount:     len(t.engine.Steps),
		TimeLeft:      s.TimeLeft,
		Remaining:     t.engine.Remaining(s),
		Started:       s.Started,
		Paused:        s.Paused,
		Muted:         t.muted,
		AudioUnlocked: s.AudioUnlocked,
		JustJumped:    s.JustJumped,
		Current:       t.engine.CurrentStepName(s),
		Next:          t.engine.NextStepName(s),
	}
	if step, ok := t.engine.CurrentStep(s); ok {
		snap.Cue = step.Cue
	}
	return snap
}

// Workout returns a copy of the active workout.
func (t *Timer) Workout() workout.Workout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.workout.Clone()
}

// Muted reports the mute flag.
func (t *Timer) Muted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.muted
}
