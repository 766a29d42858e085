// Package render is the boundary between the simulation and whatever draws it.
package render

import "github.com/skullrun/game/internal/anim"

// Target receives frames at world coordinates. Implementations own the
// camera transform and clipping.
type Target interface {
	Blit(f anim.Frame, x, y float64)
}

// Call records one Blit.
type Call struct {
	Frame anim.Frame
	X, Y  float64
}

// Recorder is a Target that keeps every Blit, in order. Used by headless runs and tests.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) Blit(f anim.Frame, x, y float64) {
	r.Calls = append(r.Calls, Call{Frame: f, X: x, Y: y})
}

// Reset drops recorded calls, keeping capacity.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

// Discard is a Target that draws nothing.
var Discard Target = discard{}

type discard struct{}

func (discard) Blit(anim.Frame, float64, float64) {}
