package collide

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectBoundaries(t *testing.T) {
	w := NewWorld(100, 100)
	a := w.NewRect(KindBlock, 0, 0, 0, 10, 10)

	tests := []struct {
		name      string
		x, y      float64
		strict    bool
		nonStrict bool
	}{
		{"overlapping", 5, 5, true, true},
		{"touching right edge", 10, 0, false, true},
		{"touching bottom edge", 0, 10, false, true},
		{"touching corner", 10, 10, false, true},
		{"separated", 10.5, 0, false, false},
		{"touching left edge", -10, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := w.NewRect(KindBlock, 0, tt.x, tt.y, 10, 10)
			defer b.Destroy()
			assert.Equal(t, tt.strict, a.Collides(b, Strict, false), "strict")
			assert.Equal(t, tt.nonStrict, a.Collides(b, NonStrict, false), "nonstrict")
			assert.Equal(t, tt.strict, b.Collides(a, Strict, false), "strict, reversed")
		})
	}
}

func TestNonSolidIgnoredUnlessRequested(t *testing.T) {
	w := NewWorld(100, 100)
	a := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	ghost := w.NewRect(KindBlock, 0, 5, 5, 10, 10)
	ghost.Solid = false

	assert.False(t, a.Collides(ghost, Strict, false))
	assert.True(t, a.Collides(ghost, Strict, true))
	// Solidity of the caller does not matter when the target is solid.
	assert.True(t, ghost.Collides(a, Strict, false))
}

func TestCircleAgainstRect(t *testing.T) {
	w := NewWorld(100, 100)
	r := w.NewRect(KindBlock, 0, 0, 0, 10, 10)

	// Bounding boxes overlap, but the corner is sqrt(32) > 5 away.
	c := w.NewCircle(KindBlock, 0, 14, 14, 5)
	assert.False(t, c.Collides(r, Strict, false))
	assert.False(t, r.Collides(c, Strict, false), "rect delegates to the circle")

	c.CollisionPriority = false
	assert.True(t, r.Collides(c, Strict, false), "without priority the rect test runs")
}

func TestCircleBoundaryConvention(t *testing.T) {
	w := NewWorld(100, 100)
	r := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	c := w.NewCircle(KindBlock, 0, 15, 5, 5)

	assert.True(t, c.Collides(r, Strict, false), "distance equal to radius counts when strict")
	assert.False(t, c.Collides(r, NonStrict, false))
	assert.True(t, r.Collides(c, Strict, false))
	assert.False(t, r.Collides(c, NonStrict, false))
}

func TestCircleUsesOtherRectangleExtent(t *testing.T) {
	w := NewWorld(100, 100)
	wide := w.NewRect(KindBlock, 0, 0, 0, 40, 4)
	c := w.NewCircle(KindBlock, 0, 35, 8, 3)
	// Nearest point is (35, 4): distance 4 > 3.
	assert.False(t, c.Collides(wide, Strict, false))
	c.SetCentre(35, 6)
	assert.True(t, c.Collides(wide, Strict, false))
}

func TestPriorityDelegationChecksCallerSolidity(t *testing.T) {
	w := NewWorld(100, 100)
	saw := w.NewCircle(KindBlock, 2, 5, 5, 5)
	box := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	box.Solid = false

	assert.False(t, box.Collides(saw, Strict, false), "delegated test sees the non-solid caller")
	assert.True(t, box.Collides(saw, Strict, true))
}
