// Package clock abstracts wall-clock reads so time-derived UI text, like the
// port watch footer's "refreshed 5s ago", can be tested against a pinned
// instant instead of sleeping.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

// Now returns time.Now.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant. Tests pin it to make relative-time
// rendering deterministic.
type Fixed struct {
	At time.Time
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time {
	return f.At
}

var (
	_ Clock = System{}
	_ Clock = Fixed{}
)
