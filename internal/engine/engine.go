package engine

import "github.com/alexander-akhmetov/hangtimer/internal/workout"

const (
	// StepReady is the step index of the pre-roll phase.
	StepReady = -1
	// StepComplete is the step index once the last step has run out.
	StepComplete = -2

	// Preroll is the length of the "get ready" countdown in seconds.
	Preroll = 15
)

// Display names for the non-step phases.
const (
	NameGetReady = "Get Ready!"
	NameComplete = "Workout Complete!"
	NameUnknown  = "Unknown Step"
)

// Session is the mutable state of one workout run. It is a plain value; the
// engine never mutates a Session in place.
type Session struct {
	StepIndex int
	TimeLeft  int
	Started   bool
	Paused    bool

	// AudioUnlocked is a latch: once set it survives Reset.
	AudioUnlocked bool

	// JustJumped is set by JumpTo and cleared by the next TogglePause.
	JustJumped bool
}

// NewSession returns the initial READY session.
func NewSession() Session {
	return Session{StepIndex: StepReady, TimeLeft: Preroll}
}

// Ready reports whether the session is in the pre-roll phase.
func (s Session) Ready() bool { return s.StepIndex == StepReady }

// Complete reports whether the last step has finished.
func (s Session) Complete() bool { return s.StepIndex == StepComplete }

// Ticking reports whether the clock should be driving this session.
func (s Session) Ticking() bool {
	return s.Started && !s.Paused && !s.Complete()
}

// Engine makes pure decisions for a single workout. It holds no I/O
// references, only the immutable step sequence.
type Engine struct {
	Steps []workout.Step
}

// New creates an Engine for the given workout.
func New(w workout.Workout) Engine {
	return Engine{Steps: w.Clone().Steps}
}

// Start begins the pre-roll countdown. It is a no-op unless the session is
// in READY and not already counting down.
func (e Engine) Start(s Session) (Session, Action) {
	if !s.Ready() || s.Started {
		return s, Action{}
	}
	s.Started = true
	s.Paused = false
	s.TimeLeft = Preroll
	return s, Action{
		Outcome:     OutcomeStarted,
		Cue:         workout.CueBegin,
		UnlockAudio: !s.AudioUnlocked,
		WakeLock:    WakeLockEnable,
	}
}

// Tick performs one clock evaluation. The countdown decrements by one and,
// once it reaches zero, the session advances in the same tick. Ticks on a
// session that is not ticking are ignored.
func (e Engine) Tick(s Session) (Session, Action) {
	if !s.Ticking() {
		return s, Action{}
	}
	if s.TimeLeft > 0 {
		s.TimeLeft--
	}
	if s.TimeLeft > 0 {
		return s, Action{Outcome: OutcomeCountdown}
	}
	return e.advance(s)
}

func (e Engine) advance(s Session) (Session, Action) {
	next := 0
	if !s.Ready() {
		next = s.StepIndex + 1
	}
	if next >= len(e.Steps) {
		s.StepIndex = StepComplete
		s.TimeLeft = 0
		s.Started = false
		return s, Action{Outcome: OutcomeCompleted, Cue: workout.CueRest}
	}
	s.StepIndex = next
	s.TimeLeft = e.Steps[next].Duration
	return s, Action{Outcome: OutcomeStepStarted, Cue: e.Steps[next].Cue}
}

// TogglePause flips the paused flag of a started session. The first resume
// after a jump requests the step's cue if it is an active step.
func (e Engine) TogglePause(s Session) (Session, Action) {
	if s.Paused {
		return e.Resume(s)
	}
	return e.Pause(s)
}

// Pause freezes a running countdown.
func (e Engine) Pause(s Session) (Session, Action) {
	if !s.Started || s.Paused || s.Complete() {
		return s, Action{}
	}
	s.Paused = true
	return s, Action{Outcome: OutcomePaused}
}

// Resume unfreezes a paused countdown.
func (e Engine) Resume(s Session) (Session, Action) {
	if !s.Started || !s.Paused || s.Complete() {
		return s, Action{}
	}
	s.Paused = false
	a := Action{Outcome: OutcomeResumed}
	if s.JustJumped {
		if step, ok := e.step(s.StepIndex); ok && step.Cue == workout.CueActive {
			a.Cue = step.Cue
		}
	}
	s.JustJumped = false
	return s, a
}

// Reset returns the session to READY from any state. The audio latch is kept.
func (e Engine) Reset(s Session) (Session, Action) {
	next := NewSession()
	next.AudioUnlocked = s.AudioUnlocked
	return next, Action{Outcome: OutcomeReset, WakeLock: WakeLockDisable}
}

// JumpTo moves a READY or running session to step k, paused, without a cue.
// Out of range targets and completed sessions are ignored.
func (e Engine) JumpTo(s Session, k int) (Session, Action) {
	if k < 0 || k >= len(e.Steps) || s.Complete() {
		return s, Action{}
	}
	s.StepIndex = k
	s.TimeLeft = e.Steps[k].Duration
	s.Started = true
	s.Paused = true
	s.JustJumped = true
	return s, Action{Outcome: OutcomeJumped, WakeLock: WakeLockEnable}
}

// MarkUnlocked sets the audio latch.
func (e Engine) MarkUnlocked(s Session) Session {
	s.AudioUnlocked = true
	return s
}

// CurrentStepName returns the display name of the current phase.
func (e Engine) CurrentStepName(s Session) string {
	switch s.StepIndex {
	case StepReady:
		return NameGetReady
	case StepComplete:
		return NameComplete
	}
	step, ok := e.step(s.StepIndex)
	if !ok || step.Name == "" {
		return NameUnknown
	}
	return step.Name
}

// NextStepName returns the name of the upcoming step, or "" when there is
// none.
func (e Engine) NextStepName(s Session) string {
	if s.Complete() {
		return ""
	}
	next := 0
	if !s.Ready() {
		next = s.StepIndex + 1
	}
	step, ok := e.step(next)
	if !ok {
		return ""
	}
	return step.Name
}

// CurrentStep returns the step being run, if any.
func (e Engine) CurrentStep(s Session) (workout.Step, bool) {
	return e.step(s.StepIndex)
}

// Remaining returns the seconds left in the whole workout, including the
// rest of the current phase.
func (e Engine) Remaining(s Session) int {
	switch {
	case s.Complete():
		return 0
	case s.Ready():
		total := s.TimeLeft
		for _, st := range e.Steps {
			total += st.Duration
		}
		return total
	}
	total := s.TimeLeft
	for i := s.StepIndex + 1; i < len(e.Steps); i++ {
		total += e.Steps[i].Duration
	}
	return total
}

func (e Engine) step(i int) (workout.Step, bool) {
	if i < 0 || i >= len(e.Steps) {
		return workout.Step{}, false
	}
	return e.Steps[i], true
}
