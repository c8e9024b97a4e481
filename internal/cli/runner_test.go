package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-akhmetov/hangtimer/internal/cue"
	"github.com/alexander-akhmetov/hangtimer/internal/timer"
	"github.com/alexander-akhmetov/hangtimer/internal/wakelock"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// syncBuffer is a bytes.Buffer safe for the writer and cue goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type noopStopper struct{}

func (noopStopper) Stop() bool { return false }

// instantScheduler fires every tick immediately on its own goroutine.
type instantScheduler struct{}

func (instantScheduler) AfterFunc(_ time.Duration, f func()) timer.Stopper {
	go f()
	return noopStopper{}
}

// idleScheduler never fires, freezing the clock.
type idleScheduler struct{}

func (idleScheduler) AfterFunc(time.Duration, func()) timer.Stopper {
	return noopStopper{}
}

func shortWorkout() workout.Workout {
	return workout.Workout{
		ID:   "short",
		Name: "Short",
		Steps: []workout.Step{
			{Name: "Hang", Duration: 2, Cue: workout.CueActive},
			{Name: "Rest", Duration: 1, Cue: workout.CueRest},
		},
	}
}

func TestRunToCompletion(t *testing.T) {
	var out syncBuffer
	player := cue.NewMockPlayer()
	lock := wakelock.NewMockLock()

	result, err := Run(context.Background(), shortWorkout(), RunConfig{
		Player:    player,
		WakeLock:  lock,
		Scheduler: instantScheduler{},
		Out:       &out,
	})
	require.NoError(t, err)

	assert.True(t, result.Completed)
	assert.True(t, result.Final.Complete())
	assert.False(t, lock.Enabled(), "wake lock released on exit")

	output := out.String()
	assert.Contains(t, output, "Started Short")
	assert.Contains(t, output, "Step 1/2: Hang")
	assert.Contains(t, output, "Step 2/2: Rest")
	assert.Contains(t, output, "Workout Complete!")
	assert.Contains(t, output, "Steps: 2/2")
	assert.NotContains(t, output, "tick ", "ticks are not printed")
}

func TestRunStartStep(t *testing.T) {
	var out syncBuffer
	player := cue.NewMockPlayer()

	result, err := Run(context.Background(), shortWorkout(), RunConfig{
		Player:    player,
		Scheduler: instantScheduler{},
		StartStep: 2,
		Muted:     true,
		Out:       &out,
	})
	require.NoError(t, err)

	assert.True(t, result.Completed)
	assert.True(t, result.Final.Muted)
	assert.Empty(t, player.Played(), "muted run plays nothing")
	assert.Contains(t, out.String(), "Jumped to step 2/2: Rest")
	assert.NotContains(t, out.String(), "Step 1/2")
}

func TestRunStartStepOutOfRange(t *testing.T) {
	_, err := Run(context.Background(), shortWorkout(), RunConfig{StartStep: 3, Out: &syncBuffer{}})
	require.ErrorContains(t, err, "out of range")
}

func TestRunInvalidWorkout(t *testing.T) {
	_, err := Run(context.Background(), workout.Workout{ID: "empty"}, RunConfig{Out: &syncBuffer{}})
	require.ErrorIs(t, err, workout.ErrNoSteps)
}

func TestRunCancelled(t *testing.T) {
	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, shortWorkout(), RunConfig{Scheduler: idleScheduler{}, Out: &out})
	require.NoError(t, err)

	assert.False(t, result.Completed)
	assert.True(t, result.Final.Ready())
	assert.Contains(t, out.String(), "stopped")
	assert.Contains(t, out.String(), "Steps: 0/2")
}

func TestRunControls(t *testing.T) {
	var out syncBuffer

	result, err := Run(context.Background(), shortWorkout(), RunConfig{
		Scheduler: idleScheduler{},
		Controls:  strings.NewReader("p\nm\nbogus\n9\n2\nq\n"),
		Out:       &out,
	})
	require.NoError(t, err)

	assert.False(t, result.Completed)
	assert.Equal(t, 1, result.Final.StepIndex)
	assert.True(t, result.Final.Paused)
	assert.True(t, result.Final.Muted)

	output := out.String()
	assert.Contains(t, output, "controls: ")
	assert.Contains(t, output, "Paused at 0:15")
	assert.Contains(t, output, `unknown command "bogus"`)
	assert.Contains(t, output, "no step 9")
	assert.Contains(t, output, "Jumped to step 2/2")
}

func TestRunOverview(t *testing.T) {
	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, shortWorkout(), RunConfig{Scheduler: idleScheduler{}, Overview: true, Out: &out})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "# Short")
	assert.Contains(t, out.String(), "| 1 | Hang | 0:02 | hang |")
}

func TestPrintRunSummary(t *testing.T) {
	tests := []struct {
		name     string
		result   *Result
		contains []string
		empty    bool
	}{
		{
			name: "complete",
			result: &Result{
				Completed: true,
				Final:     timer.Snapshot{WorkoutName: "Dave's Routine", StepIndex: -2, StepCount: 35},
				Elapsed:   31 * time.Minute,
			},
			contains: []string{"Dave's Routine", "complete", "35/35", "31m 0s"},
		},
		{
			name: "stopped mid-workout",
			result: &Result{
				Final:   timer.Snapshot{WorkoutName: "Metolius Entry", StepIndex: 4, StepCount: 20},
				Elapsed: 90 * time.Second,
			},
			contains: []string{"stopped", "5/20", "1m 30s"},
		},
		{
			name:   "nil result",
			result: nil,
			empty:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, false, 80)

			printRunSummary(w, tt.result)

			output := buf.String()
			if tt.empty {
				assert.Empty(t, output)
			} else {
				for _, s := range tt.contains {
					assert.Contains(t, output, s)
				}
			}
		})
	}
}
