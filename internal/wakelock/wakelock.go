// Package wakelock keeps the machine awake while a workout is running.
package wakelock

import "runtime"

// Lock is engaged while a workout runs and released on reset. Both calls
// must be idempotent.
type Lock interface {
	Enable() error
	Disable() error
}

// Nop is a Lock that does nothing.
type Nop struct{}

var _ Lock = Nop{}

func (Nop) Enable() error  { return nil }
func (Nop) Disable() error { return nil }

// DefaultCommand returns the platform's sleep inhibitor command line, or ""
// when none is known.
func DefaultCommand() string {
	return defaultCommandFor(runtime.GOOS)
}

func defaultCommandFor(goos string) string {
	switch goos {
	case "darwin":
		return "caffeinate -d -i"
	case "linux":
		return "systemd-inhibit --what=idle:sleep --who=hangtimer --why=workout --mode=block sleep infinity"
	default:
		return ""
	}
}

// New returns an Inhibitor for command, or Nop when disabled or when no
// command is available.
func New(enabled bool, command string) Lock {
	if !enabled {
		return Nop{}
	}
	if command == "" {
		command = DefaultCommand()
	}
	if command == "" {
		return Nop{}
	}
	return NewInhibitor(command)
}
