package cue

import (
	"context"
	"sync"

	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// MockPlayer implements the Player interface for testing.
type MockPlayer struct {
	mu sync.Mutex

	PlayFunc   func(c workout.Cue) error
	UnlockFunc func() error

	PlayCalls   []workout.Cue
	UnlockCalls int
}

var _ Player = (*MockPlayer)(nil)

// NewMockPlayer creates a new MockPlayer.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{PlayCalls: make([]workout.Cue, 0)}
}

// Play records the cue.
func (m *MockPlayer) Play(_ context.Context, c workout.Cue) error {
	m.mu.Lock()
	m.PlayCalls = append(m.PlayCalls, c)
	m.mu.Unlock()

	if m.PlayFunc != nil {
		return m.PlayFunc(c)
	}
	return nil
}

// Unlock records the call.
func (m *MockPlayer) Unlock(context.Context) error {
	m.mu.Lock()
	m.UnlockCalls++
	m.mu.Unlock()

	if m.UnlockFunc != nil {
		return m.UnlockFunc()
	}
	return nil
}

// Played returns a copy of the recorded cues.
func (m *MockPlayer) Played() []workout.Cue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]workout.Cue(nil), m.PlayCalls...)
}

// Unlocks returns how many times Unlock was called.
func (m *MockPlayer) Unlocks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.UnlockCalls
}
