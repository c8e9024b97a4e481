package config

import (
	"io"

	"github.com/alexander-akhmetov/hangtimer/internal/cue"
	"github.com/alexander-akhmetov/hangtimer/internal/wakelock"
	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

// ToCueOptions converts the cue section to cue.Options. out receives bell
// output.
func (c *Config) ToCueOptions(out io.Writer) cue.Options {
	commands := make(map[workout.Cue]string)
	for k, v := range map[workout.Cue]string{
		workout.CueBegin:  c.Cue.Commands.Begin,
		workout.CueActive: c.Cue.Commands.Hang,
		workout.CueRest:   c.Cue.Commands.Rest,
	} {
		if v != "" {
			commands[k] = v
		}
	}
	return cue.Options{
		Kind:        cue.Kind(c.Cue.Player),
		Commands:    commands,
		UnlockProbe: c.Cue.UnlockProbe,
		Out:         out,
	}
}

// ToWakeLock builds the wake lock described by the wake_lock section.
func (c *Config) ToWakeLock() wakelock.Lock {
	return wakelock.New(c.WakeLock.Enabled, c.WakeLock.Command)
}
