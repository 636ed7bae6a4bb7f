package cmd

import "time"

// frameClock is advanced by hand so rendered frames land on exact
// multiples of the frame interval regardless of how long encoding takes.
type frameClock struct {
	now time.Time
}

func newFrameClock() *frameClock {
	return &frameClock{now: time.Unix(0, 0)}
}

func (c *frameClock) Now() time.Time { return c.now }

func (c *frameClock) advance(d time.Duration) { c.now = c.now.Add(d) }
