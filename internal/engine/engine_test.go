package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

func newTestEngine() Engine {
	return New(workout.Workout{
		ID: "test",
		Steps: []workout.Step{
			{Name: "A", Duration: 10, Cue: workout.CueActive},
			{Name: "B", Duration: 20, Cue: workout.CueRest},
		},
	})
}

// run applies n ticks and returns the final session plus every non-empty cue.
func run(e Engine, s Session, n int) (Session, []workout.Cue) {
	var cues []workout.Cue
	for range n {
		var a Action
		s, a = e.Tick(s)
		if a.HasCue() {
			cues = append(cues, a.Cue)
		}
	}
	return s, cues
}

func TestNewSession(t *testing.T) {
	s := NewSession()
	require.Equal(t, StepReady, s.StepIndex)
	require.Equal(t, Preroll, s.TimeLeft)
	require.False(t, s.Started)
	require.False(t, s.Paused)
	require.False(t, s.Ticking())
}

func TestStart(t *testing.T) {
	e := newTestEngine()

	s, a := e.Start(NewSession())
	require.Equal(t, OutcomeStarted, a.Outcome)
	require.Equal(t, workout.CueBegin, a.Cue)
	require.True(t, a.UnlockAudio)
	require.Equal(t, WakeLockEnable, a.WakeLock)
	require.True(t, s.Started)
	require.Equal(t, StepReady, s.StepIndex)
	require.Equal(t, Preroll, s.TimeLeft)
	require.True(t, s.Ticking())

	t.Run("no unlock once latched", func(t *testing.T) {
		_, a := e.Start(e.MarkUnlocked(NewSession()))
		require.False(t, a.UnlockAudio)
	})

	t.Run("second start is a no-op", func(t *testing.T) {
		s2, a := e.Start(s)
		require.False(t, a.Applied())
		require.Equal(t, s, s2)
	})

	t.Run("start outside READY is a no-op", func(t *testing.T) {
		jumped, _ := e.JumpTo(NewSession(), 1)
		s2, a := e.Start(jumped)
		require.False(t, a.Applied())
		require.Equal(t, jumped, s2)
	})
}

func TestFullRun(t *testing.T) {
	e := newTestEngine()
	s, _ := e.Start(NewSession())

	s, cues := run(e, s, 15)
	require.Equal(t, 0, s.StepIndex)
	require.Equal(t, 10, s.TimeLeft)
	require.Equal(t, []workout.Cue{workout.CueActive}, cues)

	s, cues = run(e, s, 10)
	require.Equal(t, 1, s.StepIndex)
	require.Equal(t, 20, s.TimeLeft)
	require.Equal(t, []workout.Cue{workout.CueRest}, cues)

	s, cues = run(e, s, 20)
	require.Equal(t, StepComplete, s.StepIndex)
	require.False(t, s.Started)
	require.Equal(t, 0, s.TimeLeft)
	require.Equal(t, []workout.Cue{workout.CueRest}, cues)
	require.False(t, s.Ticking())

	t.Run("complete session ignores ticks", func(t *testing.T) {
		s2, cues := run(e, s, 5)
		require.Equal(t, s, s2)
		require.Empty(t, cues)
	})
}

func TestTickDecrementsByOne(t *testing.T) {
	e := newTestEngine()
	s, _ := e.Start(NewSession())
	total := Preroll + 10 + 20
	for i := 0; i < total; i++ {
		prev := s
		var a Action
		s, a = e.Tick(s)
		require.GreaterOrEqual(t, s.TimeLeft, 0)
		if a.Outcome == OutcomeCountdown {
			require.Equal(t, prev.TimeLeft-1, s.TimeLeft)
			require.Equal(t, prev.StepIndex, s.StepIndex)
		}
	}
	require.True(t, s.Complete())
}

func TestTickIgnoredWhenNotTicking(t *testing.T) {
	e := newTestEngine()

	s, a := e.Tick(NewSession())
	require.False(t, a.Applied())
	require.Equal(t, Preroll, s.TimeLeft)

	started, _ := e.Start(NewSession())
	paused, _ := e.Pause(started)
	s, a = e.Tick(paused)
	require.False(t, a.Applied())
	require.Equal(t, paused, s)
}

func TestPauseResume(t *testing.T) {
	e := newTestEngine()
	s, _ := e.Start(NewSession())
	s, _ = run(e, s, 5)
	require.Equal(t, 10, s.TimeLeft)

	s, a := e.TogglePause(s)
	require.Equal(t, OutcomePaused, a.Outcome)
	require.True(t, s.Paused)

	s, _ = run(e, s, 100)
	require.Equal(t, 10, s.TimeLeft)
	require.Equal(t, StepReady, s.StepIndex)

	s, a = e.TogglePause(s)
	require.Equal(t, OutcomeResumed, a.Outcome)
	require.False(t, a.HasCue())

	s, _ = run(e, s, 10)
	require.Equal(t, 0, s.StepIndex)
	require.Equal(t, 10, s.TimeLeft)
}

func TestPauseRejected(t *testing.T) {
	e := newTestEngine()
	tests := []struct {
		name string
		s    Session
	}{
		{name: "not started", s: NewSession()},
		{name: "complete", s: Session{StepIndex: StepComplete}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, a := e.TogglePause(tc.s)
			require.False(t, a.Applied())
			require.Equal(t, tc.s, s)
		})
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine()
	started, _ := e.Start(NewSession())
	mid, _ := run(e, started, 20)
	paused, _ := e.Pause(mid)
	jumped, _ := e.JumpTo(started, 1)
	done, _ := run(e, started, 100)

	for name, s := range map[string]Session{
		"ready":    NewSession(),
		"started":  started,
		"mid-step": mid,
		"paused":   paused,
		"jumped":   jumped,
		"complete": done,
	} {
		t.Run(name, func(t *testing.T) {
			got, a := e.Reset(s)
			require.Equal(t, OutcomeReset, a.Outcome)
			require.Equal(t, WakeLockDisable, a.WakeLock)
			require.False(t, a.HasCue())
			require.Equal(t, NewSession(), got)
		})
	}

	t.Run("keeps audio latch", func(t *testing.T) {
		got, _ := e.Reset(e.MarkUnlocked(started))
		require.True(t, got.AudioUnlocked)
	})
}

func TestJumpTo(t *testing.T) {
	e := newTestEngine()
	started, _ := e.Start(NewSession())
	done, _ := run(e, started, 45)
	require.True(t, done.Complete())

	tests := []struct {
		name      string
		s         Session
		k         int
		wantApply bool
	}{
		{name: "from ready", s: NewSession(), k: 1, wantApply: true},
		{name: "from countdown", s: started, k: 0, wantApply: true},
		{name: "negative", s: started, k: -1},
		{name: "past end", s: started, k: 2},
		{name: "complete", s: done, k: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, a := e.JumpTo(tc.s, tc.k)
			if !tc.wantApply {
				require.False(t, a.Applied())
				require.Equal(t, tc.s, s)
				return
			}
			require.Equal(t, OutcomeJumped, a.Outcome)
			require.False(t, a.HasCue())
			require.Equal(t, WakeLockEnable, a.WakeLock)
			require.Equal(t, tc.k, s.StepIndex)
			require.Equal(t, e.Steps[tc.k].Duration, s.TimeLeft)
			require.True(t, s.Started)
			require.True(t, s.Paused)
			require.True(t, s.JustJumped)
		})
	}
}

func TestResumeAfterJump(t *testing.T) {
	e := newTestEngine()

	t.Run("active step cues once", func(t *testing.T) {
		s, _ := e.JumpTo(NewSession(), 0)
		s, a := e.TogglePause(s)
		require.Equal(t, workout.CueActive, a.Cue)
		require.False(t, s.JustJumped)

		s, _ = e.TogglePause(s)
		_, a = e.TogglePause(s)
		require.False(t, a.HasCue())
	})

	t.Run("rest step never cues", func(t *testing.T) {
		s, _ := e.JumpTo(NewSession(), 1)
		s, a := e.TogglePause(s)
		require.False(t, a.HasCue())
		require.False(t, s.JustJumped)
	})
}

func TestStepNames(t *testing.T) {
	e := newTestEngine()
	tests := []struct {
		name        string
		s           Session
		wantCurrent string
		wantNext    string
	}{
		{name: "ready", s: NewSession(), wantCurrent: NameGetReady, wantNext: "A"},
		{name: "first", s: Session{StepIndex: 0}, wantCurrent: "A", wantNext: "B"},
		{name: "last", s: Session{StepIndex: 1}, wantCurrent: "B", wantNext: ""},
		{name: "complete", s: Session{StepIndex: StepComplete}, wantCurrent: NameComplete, wantNext: ""},
		{name: "out of range", s: Session{StepIndex: 7}, wantCurrent: NameUnknown, wantNext: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantCurrent, e.CurrentStepName(tc.s))
			assert.Equal(t, tc.wantNext, e.NextStepName(tc.s))
		})
	}
}

func TestRemaining(t *testing.T) {
	e := newTestEngine()
	assert.Equal(t, 45, e.Remaining(NewSession()))
	assert.Equal(t, 25, e.Remaining(Session{StepIndex: 0, TimeLeft: 5}))
	assert.Equal(t, 3, e.Remaining(Session{StepIndex: 1, TimeLeft: 3}))
	assert.Equal(t, 0, e.Remaining(Session{StepIndex: StepComplete}))
}
