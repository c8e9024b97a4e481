// Package cue defines the audio cue player collaborator and its
// implementations. A Player may fail, for example when the audio system is
// not ready yet; callers recover by calling Unlock and retrying later.
package cue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// ErrNoSound is returned when a player has nothing configured for a cue.
var ErrNoSound = errors.New("no sound configured for cue")

// Player plays cue sounds.
type Player interface {
	// Play plays the sound for c. It may block until playback finishes.
	Play(ctx context.Context, c workout.Cue) error
	// Unlock prepares the audio system so later Play calls can succeed.
	// It is safe to call more than once.
	Unlock(ctx context.Context) error
}

// Kind names a Player implementation in configuration.
type Kind string

const (
	KindBell    Kind = "bell"
	KindCommand Kind = "command"
	KindNone    Kind = "none"
)

// Options selects and configures a Player.
type Options struct {
	Kind        Kind
	Commands    map[workout.Cue]string
	UnlockProbe string
	Out         io.Writer // bell output, defaults to stderr
}

// New builds the Player described by opts.
func New(opts Options) (Player, error) {
	switch opts.Kind {
	case KindBell, "":
		out := opts.Out
		if out == nil {
			out = os.Stderr
		}
		return NewBellPlayer(out), nil
	case KindCommand:
		return NewCommandPlayer(opts.Commands, opts.UnlockProbe), nil
	case KindNone:
		return NopPlayer{}, nil
	default:
		return nil, fmt.Errorf("unknown cue player %q (want bell, command or none)", opts.Kind)
	}
}

// NopPlayer accepts every cue and plays nothing.
type NopPlayer struct{}

var _ Player = NopPlayer{}

func (NopPlayer) Play(context.Context, workout.Cue) error { return nil }
func (NopPlayer) Unlock(context.Context) error            { return nil }
