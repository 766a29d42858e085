package anim

import "time"

// Frame is an opaque handle to one image of a sprite sheet. The renderer
// decides what a sheet and index look like on screen.
type Frame struct {
	Sheet string
	Index int
}

// Clip is an ordered run of frames, each shown for its own duration.
type Clip struct {
	Frames    []Frame
	Durations []time.Duration
}

func (c Clip) total() time.Duration {
	var d time.Duration
	for _, x := range c.Durations {
		d += x
	}
	return d
}

// at returns the frame shown after elapsed time. When once is set the clip
// holds on its last frame instead of wrapping.
func (c Clip) at(elapsed time.Duration, once bool) Frame {
	if len(c.Frames) == 0 {
		return Frame{}
	}
	total := c.total()
	if total <= 0 || len(c.Durations) < len(c.Frames) {
		return c.Frames[0]
	}
	if once && elapsed >= total {
		return c.Frames[len(c.Frames)-1]
	}
	elapsed %= total
	for i, d := range c.Durations[:len(c.Frames)] {
		if elapsed < d {
			return c.Frames[i]
		}
		elapsed -= d
	}
	return c.Frames[len(c.Frames)-1]
}

// Set is one entity's animation state: a named collection of clips and the
// clip currently playing.
type Set struct {
	clock   *Clock
	clips   map[string]Clip
	current string
	once    bool
	started time.Duration
}

// Loop switches to the named clip and repeats it. The clip restarts only
// when it differs from the current one. Unknown names are ignored.
func (s *Set) Loop(name string) *Set {
	if _, ok := s.clips[name]; !ok {
		return s
	}
	if s.current != name {
		s.current = name
		s.started = s.clock.Now()
	}
	s.once = false
	return s
}

// Play runs the named clip once from the start and holds its last frame.
func (s *Set) Play(name string) *Set {
	if _, ok := s.clips[name]; !ok {
		return s
	}
	s.current = name
	s.once = true
	s.started = s.clock.Now()
	return s
}

// Clip returns the name of the current clip.
func (s *Set) Clip() string { return s.current }

// Has reports whether the set defines the named clip.
func (s *Set) Has(name string) bool {
	_, ok := s.clips[name]
	return ok
}

// Current returns the frame to draw now. ok is false when no clip has been
// selected yet.
func (s *Set) Current() (f Frame, ok bool) {
	clip, found := s.clips[s.current]
	if !found {
		return Frame{}, false
	}
	return clip.at(s.clock.Now()-s.started, s.once), true
}
