// Package workout defines the immutable catalog model used by hangtimer:
// Workout, Step, Cue and their helper methods.
package workout

import (
	"errors"
	"fmt"
)

// Cue is the categorical audio signal requested at a transition.
type Cue string

const (
	// CueNone means no cue is requested.
	CueNone Cue = ""
	// CueBegin marks the start of the pre-roll countdown.
	CueBegin Cue = "begin"
	// CueActive marks the start of a hang or other active step.
	CueActive Cue = "hang"
	// CueRest marks a rest step and workout completion.
	CueRest Cue = "rest"
)

// legacyActive is the tag used for active steps by the first catalog version.
const legacyActive = "start"

var (
	// ErrNoSteps is returned when a workout has an empty step sequence.
	ErrNoSteps = errors.New("workout has no steps")
	// ErrInvalidStep is returned for steps with a bad duration or cue.
	ErrInvalidStep = errors.New("invalid step")
)

// ParseCue maps a catalog sound tag onto a Cue.
func ParseCue(s string) (Cue, error) {
	switch s {
	case string(CueBegin):
		return CueBegin, nil
	case string(CueActive), legacyActive:
		return CueActive, nil
	case string(CueRest):
		return CueRest, nil
	default:
		return CueNone, fmt.Errorf("unknown cue %q", s)
	}
}

// Valid reports whether c is one of the known cue kinds.
func (c Cue) Valid() bool {
	return c == CueBegin || c == CueActive || c == CueRest
}

func (c Cue) String() string {
	if c == CueNone {
		return "none"
	}
	return string(c)
}

// UnmarshalText lets catalog files use any accepted tag, including "start".
func (c *Cue) UnmarshalText(text []byte) error {
	parsed, err := ParseCue(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Step is a single named interval of a workout.
type Step struct {
	Name     string `yaml:"name"`
	Duration int    `yaml:"duration"` // seconds
	Cue      Cue    `yaml:"cue"`
}

// Attribution credits the source of a workout.
type Attribution struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Workout is an ordered, non-empty sequence of steps.
type Workout struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Attribution Attribution `yaml:"attribution,omitempty"`
	Steps       []Step      `yaml:"steps"`
}

// TotalDuration returns the sum of all step durations in seconds.
func (w *Workout) TotalDuration() int {
	total := 0
	for _, s := range w.Steps {
		total += s.Duration
	}
	return total
}

// StepCount returns the number of steps.
func (w *Workout) StepCount() int {
	return len(w.Steps)
}

// ActiveCount returns the number of active (hang) steps.
func (w *Workout) ActiveCount() int {
	n := 0
	for _, s := range w.Steps {
		if s.Cue == CueActive {
			n++
		}
	}
	return n
}

// Validate checks the invariants a catalog entry must satisfy.
func (w *Workout) Validate() error {
	if w.ID == "" {
		return errors.New("workout id is required")
	}
	if len(w.Steps) == 0 {
		return fmt.Errorf("%s: %w", w.ID, ErrNoSteps)
	}
	for i, s := range w.Steps {
		if s.Duration <= 0 {
			return fmt.Errorf("%s: step %d (%q): duration must be positive: %w", w.ID, i+1, s.Name, ErrInvalidStep)
		}
		if !s.Cue.Valid() {
			return fmt.Errorf("%s: step %d (%q): unknown cue %q: %w", w.ID, i+1, s.Name, s.Cue, ErrInvalidStep)
		}
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate shared catalog data.
func (w Workout) Clone() Workout {
	w.Steps = append([]Step(nil), w.Steps...)
	return w
}
