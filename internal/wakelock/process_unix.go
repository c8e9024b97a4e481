//go:build !windows

package wakelock

import (
	"fmt"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/alexander-akhmetov/hangtimer/internal/debug"
)

// gracefulShutdownDelay is the time to wait between SIGTERM and SIGKILL.
const gracefulShutdownDelay = 100 * time.Millisecond

// processGroupCleanup manages the inhibitor's process group so that child
// processes (e.g. "sleep infinity" under systemd-inhibit) die with it.
type processGroupCleanup struct {
	cmd  *exec.Cmd
	done chan struct{}
	once sync.Once
	err  error
}

func setupProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// newProcessGroupCleanup creates a cleanup handler for a started command.
func newProcessGroupCleanup(cmd *exec.Cmd, cancelCh <-chan struct{}) *processGroupCleanup {
	pg := &processGroupCleanup{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go pg.watchForCancel(cancelCh)
	return pg
}

func (pg *processGroupCleanup) watchForCancel(cancelCh <-chan struct{}) {
	select {
	case <-cancelCh:
		pg.killProcessGroup()
	case <-pg.done:
	}
}

func (pg *processGroupCleanup) killProcessGroup() {
	process := pg.cmd.Process
	if process == nil {
		return
	}

	pid := process.Pid
	if pid <= 0 {
		debug.Logf("wakelock: invalid PID %d, skipping process group kill", pid)
		return
	}

	pgid := -pid
	if err := syscall.Kill(pgid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
		debug.Logf("wakelock: SIGTERM failed for pgid %d: %v", pgid, err)
	}

	select {
	case <-pg.done:
		return
	case <-time.After(gracefulShutdownDelay):
	}

	if err := syscall.Kill(pgid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		debug.Logf("wakelock: SIGKILL failed for pgid %d: %v", pgid, err)
	}
}

// Wait waits for the command to exit. Safe to call from several goroutines.
func (pg *processGroupCleanup) Wait() error {
	pg.once.Do(func() {
		pg.err = pg.cmd.Wait()
		close(pg.done)
		if pg.err != nil {
			pg.err = fmt.Errorf("command wait: %w", pg.err)
		}
	})
	<-pg.done
	return pg.err
}
