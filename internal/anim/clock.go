package anim

import "time"

// Clock is the simulation clock. It only moves when the frame loop advances
// it, so timers freeze while a level is paused.
type Clock struct {
	now time.Duration
}

// Advance moves the clock forward by d. Negative values are ignored.
func (c *Clock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// Now returns the time elapsed since the clock was created.
func (c *Clock) Now() time.Duration { return c.now }
