// Package clock provides wall time and timers behind an interface
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/NekroDarkmoon/Zen.A5E/internal/pkg/clock Clock

// Clock reads the current time and schedules timeouts
type Clock interface {
	Now() time.Time
	// After waits for the duration to elapse and then sends the current
	// time on the returned channel.
	After(d time.Duration) <-chan time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// After wraps time.After
func (c *Real) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}
