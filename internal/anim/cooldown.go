package anim

import "time"

type timer struct {
	length  time.Duration
	started time.Duration
	running bool
}

// Cooldowns is a set of named timers read against a shared Clock.
// Operations on an unknown name are no-ops and Ready reports false.
type Cooldowns struct {
	clock  *Clock
	timers map[string]*timer
}

func NewCooldowns(clock *Clock) *Cooldowns {
	return &Cooldowns{
		clock:  clock,
		timers: make(map[string]*timer, 4),
	}
}

// Create registers a stopped timer of the given length, replacing any
// timer with the same name.
func (c *Cooldowns) Create(name string, length time.Duration) *Cooldowns {
	c.timers[name] = &timer{length: length}
	return c
}

// Start (re)starts the timer from the current clock time.
func (c *Cooldowns) Start(name string) *Cooldowns {
	if t := c.timers[name]; t != nil {
		t.started = c.clock.Now()
		t.running = true
	}
	return c
}

func (c *Cooldowns) Stop(name string) *Cooldowns {
	if t := c.timers[name]; t != nil {
		t.running = false
	}
	return c
}

// Offset shifts the start time of a timer. A positive offset delays it.
func (c *Cooldowns) Offset(name string, d time.Duration) *Cooldowns {
	if t := c.timers[name]; t != nil {
		t.started += d
	}
	return c
}

// Ready reports whether a running timer has covered its full length.
func (c *Cooldowns) Ready(name string) bool {
	t := c.timers[name]
	if t == nil || !t.running {
		return false
	}
	return c.clock.Now()-t.started >= t.length
}

// Elapsed returns how long ago the timer was started, or zero if it is not running.
func (c *Cooldowns) Elapsed(name string) time.Duration {
	t := c.timers[name]
	if t == nil || !t.running {
		return 0
	}
	return c.clock.Now() - t.started
}
