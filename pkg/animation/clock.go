package animation

import "time"

// Clock provides time for animations. The default implementation uses
// system time. Tests can inject a fake clock via SetClock, or build a
// dedicated [Scheduler] around one, to control animation timing
// deterministically.
type Clock interface {
	Now() time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SetClock replaces the clock of the default scheduler. Returns the
// previous clock so callers can restore it during cleanup.
func SetClock(c Clock) Clock {
	return defaultScheduler.setClock(c)
}

// Now returns the current time from the default scheduler's clock.
func Now() time.Time { return defaultScheduler.Now() }
