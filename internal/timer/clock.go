package timer

import "time"

// Period is the interval between ticks.
const Period = time.Second

// Stopper cancels a scheduled callback. Stop reports whether the call
// prevented the callback from running.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f once after d. The timer arms exactly one callback at a
// time and re-arms it after every tick while the session is ticking.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

// RealScheduler schedules on the wall clock via time.AfterFunc.
type RealScheduler struct{}

var _ Scheduler = RealScheduler{}

// AfterFunc wraps time.AfterFunc.
func (RealScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}
