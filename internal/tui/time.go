package tui

import (
	"fmt"
	"time"

	"github.com/TomShaoquan/arduino-panda/internal/clock"
)

// defaultClock is the system clock used by RelativeTime.
//
//nolint:gochecknoglobals // Package-level default, overridden via RelativeTimeWith in tests
var defaultClock clock.Clock = clock.System{}

// RelativeTime formats a timestamp relative to now, e.g. "just now",
// "5s ago", "3m ago". Used by the port watch footer.
func RelativeTime(t time.Time) string {
	return RelativeTimeWith(defaultClock, t)
}

// RelativeTimeWith formats a timestamp relative to the given clock's now.
func RelativeTimeWith(c clock.Clock, t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	elapsed := c.Now().Sub(t)
	switch {
	case elapsed < 2*time.Second:
		return "just now"
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return t.Format("2006-01-02 15:04")
	}
}
