package clock

import "time"

// Clock provides time operations that can be faked for testing.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules f to run in its own goroutine after d.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled call that can be stopped before it fires.
type Timer interface {
	// Stop prevents the timer from firing. Returns false if the
	// timer already fired or was stopped.
	Stop() bool
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// New creates a new RealClock.
func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
