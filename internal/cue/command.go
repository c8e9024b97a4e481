package cue

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/alexander-akhmetov/hangtimer/internal/debug"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// CommandPlayer plays cues by running an external command per cue, e.g.
// "afplay ~/sounds/start.mp3" or "paplay /usr/share/sounds/bell.oga".
type CommandPlayer struct {
	commands    map[workout.Cue]string
	unlockProbe string

	mu       sync.Mutex
	resolved map[string]string // binary name -> absolute path, filled by Unlock

	// Injectable for tests.
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

var _ Player = (*CommandPlayer)(nil)

// NewCommandPlayer creates a CommandPlayer. unlockProbe is an optional
// command run by Unlock to wake the audio server.
func NewCommandPlayer(commands map[workout.Cue]string, unlockProbe string) *CommandPlayer {
	cp := make(map[workout.Cue]string, len(commands))
	for k, v := range commands {
		cp[k] = v
	}
	return &CommandPlayer{
		commands:    cp,
		unlockProbe: unlockProbe,
		resolved:    make(map[string]string),
		lookPath:    exec.LookPath,
		run:         runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Play runs the command configured for c and waits for it to finish.
func (p *CommandPlayer) Play(ctx context.Context, c workout.Cue) error {
	fields := strings.Fields(p.commands[c])
	if len(fields) == 0 {
		return fmt.Errorf("%s: %w", c, ErrNoSound)
	}
	name := p.binary(fields[0])
	debug.Logf("cue: play %s via %s", c, name)
	if err := p.run(ctx, name, fields[1:]...); err != nil {
		return fmt.Errorf("play %s: %w", c, err)
	}
	return nil
}

// Unlock runs the probe command, if any, and resolves every player binary.
func (p *CommandPlayer) Unlock(ctx context.Context) error {
	var errs []error
	if fields := strings.Fields(p.unlockProbe); len(fields) > 0 {
		if err := p.run(ctx, fields[0], fields[1:]...); err != nil {
			errs = append(errs, fmt.Errorf("unlock probe: %w", err))
		}
	}

	for _, c := range []workout.Cue{workout.CueBegin, workout.CueActive, workout.CueRest} {
		fields := strings.Fields(p.commands[c])
		if len(fields) == 0 {
			continue
		}
		path, err := p.lookPath(fields[0])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s player: %w", c, err))
			continue
		}
		p.mu.Lock()
		p.resolved[fields[0]] = path
		p.mu.Unlock()
	}
	return errors.Join(errs...)
}

func (p *CommandPlayer) binary(name string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if path, ok := p.resolved[name]; ok {
		return path
	}
	return name
}
