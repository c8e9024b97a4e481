package wakelock

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/alexander-akhmetov/hangtimer/internal/debug"
)

// Inhibitor holds a long-running inhibitor process (caffeinate,
// systemd-inhibit, ...) while enabled and stops it on Disable.
type Inhibitor struct {
	command string

	mu     sync.Mutex
	cmd    *exec.Cmd
	cancel chan struct{}
	pg     *processGroupCleanup
}

var _ Lock = (*Inhibitor)(nil)

// NewInhibitor creates an Inhibitor for the given command line.
func NewInhibitor(command string) *Inhibitor {
	return &Inhibitor{command: command}
}

// Active reports whether the inhibitor process is running.
func (in *Inhibitor) Active() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.cmd != nil
}

// Enable starts the inhibitor process unless it is already running.
func (in *Inhibitor) Enable() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.cmd != nil {
		return nil
	}

	fields := strings.Fields(in.command)
	if len(fields) == 0 {
		return errors.New("wake lock: empty command")
	}

	cmd := exec.Command(fields[0], fields[1:]...) //nolint:gosec // user-configured inhibitor
	setupProcessGroup(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("wake lock: start %s: %w", fields[0], err)
	}

	cancel := make(chan struct{})
	pg := newProcessGroupCleanup(cmd, cancel)
	in.cmd = cmd
	in.cancel = cancel
	in.pg = pg

	go in.watch(cmd, pg)
	debug.Logf("wakelock: enabled (pid %d)", cmd.Process.Pid)
	return nil
}

// watch clears the state if the inhibitor exits on its own.
func (in *Inhibitor) watch(cmd *exec.Cmd, pg *processGroupCleanup) {
	err := pg.Wait()

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.cmd != cmd {
		return
	}
	debug.Logf("wakelock: inhibitor exited: %v", err)
	in.cmd = nil
	in.cancel = nil
	in.pg = nil
}

// Disable stops the inhibitor process if it is running.
func (in *Inhibitor) Disable() error {
	in.mu.Lock()
	cmd, cancel, pg := in.cmd, in.cancel, in.pg
	in.cmd = nil
	in.cancel = nil
	in.pg = nil
	in.mu.Unlock()

	if cmd == nil {
		return nil
	}

	close(cancel)
	// A killed process reports a wait error; that is the expected outcome.
	_ = pg.Wait()
	debug.Logf("wakelock: disabled")
	return nil
}
