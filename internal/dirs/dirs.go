// Package dirs resolves the XDG base directories hangtimer reads from and
// writes to.
package dirs

import (
	"os"
	"path/filepath"
)

const appName = "hangtimer"

// ConfigDir returns the hangtimer configuration directory.
// Resolution order: XDG_CONFIG_HOME/hangtimer > ~/.config/hangtimer.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", appName)
	}
	return filepath.Join(home, ".config", appName)
}

// WorkoutsDir returns the directory scanned for user workout files
// (ConfigDir/workouts).
func WorkoutsDir() string {
	return filepath.Join(ConfigDir(), "workouts")
}

// StateDir returns the hangtimer state directory.
// Resolution order: HANGTIMER_STATE_DIR > XDG_STATE_HOME/hangtimer > ~/.local/state/hangtimer.
func StateDir() string {
	if dir := os.Getenv("HANGTIMER_STATE_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".local", "state", appName)
	}
	return filepath.Join(home, ".local", "state", appName)
}

// DebugLogPath returns the file debug output goes to while the TUI owns
// the terminal (StateDir/debug.log).
func DebugLogPath() string {
	return filepath.Join(StateDir(), "debug.log")
}
