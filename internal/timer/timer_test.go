package timer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-akhmetov/hangtimer/internal/cue"
	"github.com/alexander-akhmetov/hangtimer/internal/engine"
	"github.com/alexander-akhmetov/hangtimer/internal/event"
	"github.com/alexander-akhmetov/hangtimer/internal/wakelock"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

type fakeTimer struct {
	f       func()
	d       time.Duration
	stopped bool
	fired   bool
}

func (ft *fakeTimer) Stop() bool {
	if ft.stopped || ft.fired {
		return false
	}
	ft.stopped = true
	return true
}

// fakeScheduler fires callbacks only when the test advances it.
type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	ft := &fakeTimer{f: f, d: d}
	s.timers = append(s.timers, ft)
	return ft
}

func (s *fakeScheduler) armed() []*fakeTimer {
	var out []*fakeTimer
	for _, ft := range s.timers {
		if !ft.stopped && !ft.fired {
			out = append(out, ft)
		}
	}
	return out
}

// advance fires up to n ticks, one second each.
func (s *fakeScheduler) advance(n int) {
	for range n {
		armed := s.armed()
		if len(armed) == 0 {
			return
		}
		ft := armed[0]
		ft.fired = true
		ft.f()
	}
}

type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) handle(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []event.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Kind, 0, len(r.events))
	for _, e := range r.events {
		if e.Kind == event.KindTick {
			continue
		}
		out = append(out, e.Kind)
	}
	return out
}

type harness struct {
	timer  *Timer
	sched  *fakeScheduler
	player *cue.MockPlayer
	lock   *wakelock.MockLock
	rec    *recorder
}

func testWorkout() workout.Workout {
	return workout.Workout{
		ID:   "test",
		Name: "Test",
		Steps: []workout.Step{
			{Name: "A", Duration: 10, Cue: workout.CueActive},
			{Name: "B", Duration: 20, Cue: workout.CueRest},
		},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		sched:  &fakeScheduler{},
		player: cue.NewMockPlayer(),
		lock:   wakelock.NewMockLock(),
		rec:    &recorder{},
	}
	tm, err := New(testWorkout(), Config{
		Player:    h.player,
		WakeLock:  h.lock,
		Scheduler: h.sched,
		OnEvent:   h.rec.handle,
		Spawn:     func(f func()) { f() },
	})
	require.NoError(t, err)
	h.timer = tm
	return h
}

func TestNewRejectsInvalidWorkout(t *testing.T) {
	_, err := New(workout.Workout{ID: "empty"}, Config{})
	require.ErrorIs(t, err, workout.ErrNoSteps)
}

func TestInitialState(t *testing.T) {
	h := newHarness(t)
	s := h.timer.Snapshot()
	assert.Equal(t, engine.StepReady, s.StepIndex)
	assert.Equal(t, engine.Preroll, s.TimeLeft)
	assert.Equal(t, "0:15", s.Clock())
	assert.Equal(t, engine.NameGetReady, s.Current)
	assert.Equal(t, "A", s.Next)
	assert.Equal(t, 45, s.Remaining)
	assert.False(t, s.Started)
	assert.Empty(t, h.sched.armed())
}

func TestStartAndRunToCompletion(t *testing.T) {
	h := newHarness(t)

	h.timer.Start(false)
	s := h.timer.Snapshot()
	require.True(t, s.Started)
	require.Len(t, h.sched.armed(), 1)
	require.Equal(t, Period, h.sched.armed()[0].d)
	require.Equal(t, []workout.Cue{workout.CueBegin}, h.player.Played())
	require.Equal(t, 1, h.player.Unlocks())
	require.True(t, s.AudioUnlocked)
	require.True(t, h.lock.Enabled())

	h.sched.advance(15)
	s = h.timer.Snapshot()
	require.Equal(t, 0, s.StepIndex)
	require.Equal(t, 10, s.TimeLeft)
	require.Equal(t, "A", s.Current)
	require.Equal(t, workout.CueActive, s.Cue)

	h.sched.advance(10)
	s = h.timer.Snapshot()
	require.Equal(t, 1, s.StepIndex)
	require.Equal(t, 20, s.TimeLeft)

	h.sched.advance(20)
	s = h.timer.Snapshot()
	require.True(t, s.Complete())
	require.False(t, s.Started)
	require.Equal(t, engine.NameComplete, s.Current)
	require.Equal(t, 1.0, s.Progress())
	require.Empty(t, h.sched.armed(), "no tick after completion")

	require.Equal(t, []workout.Cue{
		workout.CueBegin, workout.CueActive, workout.CueRest, workout.CueRest,
	}, h.player.Played())

	require.Equal(t, []event.Kind{
		event.KindStarted, event.KindUnlocked, event.KindCue,
		event.KindStep, event.KindCue,
		event.KindStep, event.KindCue,
		event.KindComplete, event.KindCue,
	}, h.rec.kinds())
}

func TestStartIgnoredWhenStarted(t *testing.T) {
	h := newHarness(t)
	h.timer.Start(false)
	h.sched.advance(3)
	h.timer.Start(false)

	assert.Equal(t, 12, h.timer.Snapshot().TimeLeft)
	assert.Len(t, h.sched.armed(), 1)
	assert.Equal(t, []workout.Cue{workout.CueBegin}, h.player.Played())
}

func TestPauseFreezesClock(t *testing.T) {
	h := newHarness(t)
	h.timer.Start(false)
	h.sched.advance(5)
	require.Equal(t, 10, h.timer.Snapshot().TimeLeft)

	h.timer.TogglePause()
	require.True(t, h.timer.Snapshot().Paused)
	require.Empty(t, h.sched.armed())

	h.sched.advance(100)
	require.Equal(t, 10, h.timer.Snapshot().TimeLeft)

	h.timer.TogglePause()
	require.False(t, h.timer.Snapshot().Paused)
	h.sched.advance(10)

	s := h.timer.Snapshot()
	require.Equal(t, 0, s.StepIndex)
	require.Equal(t, 10, s.TimeLeft)
}

func TestStaleTickIgnored(t *testing.T) {
	h := newHarness(t)
	h.timer.Start(false)
	h.sched.advance(2)

	stale := h.sched.armed()[0]
	h.timer.Pause()
	require.True(t, stale.stopped)

	// A callback that slipped past Stop must not move the clock.
	stale.f()
	require.Equal(t, 13, h.timer.Snapshot().TimeLeft)

	h.timer.Resume()
	stale.f()
	require.Equal(t, 13, h.timer.Snapshot().TimeLeft)
	require.Len(t, h.sched.armed(), 1)
}

func TestMutedPlaysNothing(t *testing.T) {
	h := newHarness(t)
	h.timer.Start(true)
	h.sched.advance(45)

	require.True(t, h.timer.Snapshot().Complete())
	require.Empty(t, h.player.Played())
	require.Equal(t, 1, h.player.Unlocks(), "unlock is not a cue")
}

func TestSetMuted(t *testing.T) {
	h := newHarness(t)
	h.timer.Start(false)
	h.timer.SetMuted(true)
	require.True(t, h.timer.Muted())

	h.sched.advance(25)
	require.Equal(t, []workout.Cue{workout.CueBegin}, h.player.Played())

	h.timer.SetMuted(false)
	h.sched.advance(20)
	require.Equal(t, []workout.Cue{workout.CueBegin, workout.CueRest}, h.player.Played())

	kinds := h.rec.kinds()
	assert.Contains(t, kinds, event.KindMuted)
}

func TestUnlockRetriedOnCueFailure(t *testing.T) {
	h := newHarness(t)
	h.player.PlayFunc = func(workout.Cue) error { return errors.New("blocked") }
	h.player.UnlockFunc = func() error { return errors.New("no gesture") }

	h.timer.Start(false)
	// unlock on start, then one more after the begin cue fails
	require.Equal(t, 2, h.player.Unlocks())
	require.False(t, h.timer.Snapshot().AudioUnlocked)

	h.sched.advance(15)
	require.Equal(t, 3, h.player.Unlocks())
	require.Len(t, h.player.Played(), 2)

	// The next cue after a successful unlock plays normally.
	h.player.UnlockFunc = nil
	h.sched.advance(10)
	require.Equal(t, 4, h.player.Unlocks())
	require.True(t, h.timer.Snapshot().AudioUnlocked)

	h.player.PlayFunc = nil
	h.sched.advance(20)
	require.Equal(t, 4, h.player.Unlocks())
	require.Equal(t, workout.CueRest, h.player.Played()[3])

	assert.Contains(t, h.rec.kinds(), event.KindCueFailed)
	assert.Contains(t, h.rec.kinds(), event.KindUnlockFailed)
}

func TestUnlockLatchSurvivesReset(t *testing.T) {
	h := newHarness(t)
	h.timer.Start(false)
	require.Equal(t, 1, h.player.Unlocks())
	require.True(t, h.timer.Snapshot().AudioUnlocked)

	h.player.PlayFunc = func(workout.Cue) error { return errors.New("interrupted") }
	h.sched.advance(15)
	require.Equal(t, 1, h.player.Unlocks(), "latched: failures do not unlock again")

	h.timer.Reset()
	require.True(t, h.timer.Snapshot().AudioUnlocked)
	h.timer.Start(false)
	require.Equal(t, 1, h.player.Unlocks())
}

func TestResetReleasesWakeLock(t *testing.T) {
	h := newHarness(t)
	h.timer.Start(false)
	h.sched.advance(20)
	h.timer.Reset()

	s := h.timer.Snapshot()
	require.Equal(t, engine.StepReady, s.StepIndex)
	require.Equal(t, engine.Preroll, s.TimeLeft)
	require.False(t, s.Started)
	require.Empty(t, h.sched.armed())
	require.False(t, h.lock.Enabled())

	enable, disable := h.lock.Calls()
	assert.Equal(t, 1, enable)
	assert.Equal(t, 1, disable)
}

func TestWakeLockFailureDoesNotBlockStart(t *testing.T) {
	h := newHarness(t)
	h.lock.EnableFunc = func() error { return errors.New("no inhibitor") }

	h.timer.Start(false)
	require.True(t, h.timer.Snapshot().Started)
	assert.Contains(t, h.rec.kinds(), event.KindWakeLock)
}

func TestJumpToStep(t *testing.T) {
	tests := []struct {
		name    string
		step    int
		wantCue []workout.Cue
	}{
		{name: "active step cues on resume", step: 0, wantCue: []workout.Cue{workout.CueActive}},
		{name: "rest step stays silent", step: 1, wantCue: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			require.True(t, h.timer.JumpToStep(tc.step))

			s := h.timer.Snapshot()
			require.Equal(t, tc.step, s.StepIndex)
			require.True(t, s.Paused)
			require.True(t, s.Started)
			require.True(t, s.JustJumped)
			require.Empty(t, h.sched.armed())
			require.Empty(t, h.player.Played())
			require.True(t, h.lock.Enabled())

			h.timer.TogglePause()
			require.Equal(t, tc.wantCue, h.player.Played())
			require.Len(t, h.sched.armed(), 1)

			h.timer.TogglePause()
			h.timer.TogglePause()
			require.Equal(t, tc.wantCue, h.player.Played(), "only the first resume cues")
		})
	}
}

func TestJumpToStepRejected(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.timer.JumpToStep(-1))
	assert.False(t, h.timer.JumpToStep(2))
	assert.Equal(t, engine.StepReady, h.timer.Snapshot().StepIndex)

	h.timer.Start(false)
	h.sched.advance(45)
	assert.False(t, h.timer.JumpToStep(0))
	assert.True(t, h.timer.Snapshot().Complete())
}

func TestJumpDuringCountdownCancelsTick(t *testing.T) {
	h := newHarness(t)
	h.timer.Start(false)
	h.sched.advance(3)

	require.True(t, h.timer.JumpToStep(1))
	h.sched.advance(50)
	s := h.timer.Snapshot()
	require.Equal(t, 1, s.StepIndex)
	require.Equal(t, 20, s.TimeLeft)
}

func TestSetWorkout(t *testing.T) {
	h := newHarness(t)
	h.timer.Start(false)
	h.sched.advance(20)

	next := workout.Workout{
		ID:    "other",
		Name:  "Other",
		Steps: []workout.Step{{Name: "Only", Duration: 7, Cue: workout.CueActive}},
	}
	require.NoError(t, h.timer.SetWorkout(next))

	s := h.timer.Snapshot()
	require.Equal(t, "other", s.WorkoutID)
	require.Equal(t, engine.StepReady, s.StepIndex)
	require.Equal(t, engine.Preroll, s.TimeLeft)
	require.False(t, s.Started)
	require.Equal(t, "Only", s.Next)
	require.Equal(t, 1, s.StepCount)
	require.Empty(t, h.sched.armed())
	require.False(t, h.lock.Enabled())

	kinds := h.rec.kinds()
	require.Equal(t, event.KindWorkout, kinds[len(kinds)-1])
	require.Equal(t, event.KindReset, kinds[len(kinds)-2])

	t.Run("invalid workout keeps the current one", func(t *testing.T) {
		err := h.timer.SetWorkout(workout.Workout{ID: "bad"})
		require.ErrorIs(t, err, workout.ErrNoSteps)
		assert.Equal(t, "other", h.timer.Workout().ID)
	})
}

func TestClose(t *testing.T) {
	h := newHarness(t)
	h.timer.Start(false)
	h.sched.advance(2)

	pending := h.sched.armed()[0]
	h.timer.Close()
	require.True(t, pending.stopped)
	require.False(t, h.lock.Enabled())

	pending.f()
	h.timer.Reset()
	h.timer.Start(false)
	assert.Equal(t, 13, h.timer.Snapshot().TimeLeft)
	assert.Empty(t, h.sched.armed())

	h.timer.Close()
}

func TestSnapshotProgress(t *testing.T) {
	tests := []struct {
		name string
		s    Snapshot
		want float64
	}{
		{name: "ready", s: Snapshot{StepIndex: engine.StepReady, StepCount: 4}, want: 0},
		{name: "first", s: Snapshot{StepIndex: 0, StepCount: 4}, want: 0.25},
		{name: "last", s: Snapshot{StepIndex: 3, StepCount: 4}, want: 1},
		{name: "complete", s: Snapshot{StepIndex: engine.StepComplete, StepCount: 4}, want: 1},
		{name: "empty", s: Snapshot{StepIndex: 0}, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.s.Progress(), 1e-9)
		})
	}
}
