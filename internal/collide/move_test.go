package collide

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveSnapsAgainstNeighbour(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	w.NewRect(KindBlock, 0, 10, 0, 10, 10)

	okX, okY := b.Move(5, 0, DefaultMove)
	assert.False(t, okX)
	assert.True(t, okY)
	assert.Equal(t, 0.0, b.X())
	assertMembership(t, b)
}

func TestMoveSnapsOutOfExistingOverlap(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	w.NewRect(KindBlock, 0, 8, 0, 10, 10)

	okX, _ := b.Move(5, 0, DefaultMove)
	assert.False(t, okX)
	assert.Equal(t, -2.0, b.X())
}

// A neighbour already inside the destination snaps the mover to its near
// edge, which can be behind the start point.
func TestMoveIntoAdjacentOverlap(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	w.NewRect(KindBlock, 0, 5, 0, 10, 10)

	okX, okY := b.Move(5, 0, DefaultMove)
	assert.False(t, okX)
	assert.True(t, okY)
	assert.Equal(t, -5.0, b.X())
	assertMembership(t, b)

	c := NewWorld(100, 100)
	d := c.NewRect(KindBlock, 0, 0, 0, 10, 10)
	c.NewRect(KindBlock, 0, 5, 0, 10, 10)
	okX, okY = d.Move(5, 0, MoveOpts{})
	assert.False(t, okX)
	assert.True(t, okY)
	assert.Equal(t, 5.0, d.X(), "without MoveBack the mover stays where it landed")
}

func TestMoveVertical(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	w.NewRect(KindBlock, 0, 0, 30, 50, 10)
	w.NewRect(KindBlock, 0, 0, -20, 50, 10)

	okX, okY := b.Move(0, 25, DefaultMove)
	assert.True(t, okX)
	assert.False(t, okY)
	assert.Equal(t, 20.0, b.Y())

	_, okY = b.Move(0, -40, DefaultMove)
	assert.False(t, okY)
	assert.Equal(t, -10.0, b.Y())
}

func TestZeroMove(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	w.NewRect(KindBlock, 0, 5, 5, 10, 10)

	okX, okY := b.Move(0, 0, DefaultMove)
	assert.True(t, okX)
	assert.True(t, okY)
	assert.Equal(t, 0.0, b.X())
	assert.Equal(t, 0.0, b.Y())
}

func TestMoveWithoutMoveBackReportsButStays(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	w.NewRect(KindBlock, 0, 10, 0, 10, 10)

	okX, _ := b.Move(5, 0, MoveOpts{})
	assert.False(t, okX)
	assert.Equal(t, 5.0, b.X())
}

func TestMoveSkipsKinds(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	w.NewRect(kindPlayer, 0, 10, 0, 10, 10)

	okX, _ := b.Move(5, 0, MoveOpts{MoveBack: true, Skip: []Kind{kindPlayer}})
	assert.True(t, okX)
	assert.Equal(t, 5.0, b.X())
}

func TestMoveIgnoresNonSolid(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	ghost := w.NewRect(KindBlock, 0, 10, 0, 10, 10)
	ghost.Solid = false

	okX, _ := b.Move(5, 0, DefaultMove)
	assert.True(t, okX)

	okX, _ = b.Move(5, 0, MoveOpts{MoveBack: true, IgnoreSolid: true})
	assert.False(t, okX)
	assert.Equal(t, 0.0, b.X())
}

func TestSafeMoveMatchesStepwiseMoves(t *testing.T) {
	w := NewWorld(100, 100)
	a := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	okX, okY := a.SafeMove(35, 0, DefaultMove)
	assert.True(t, okX)
	assert.True(t, okY)

	w2 := NewWorld(100, 100)
	b := w2.NewRect(KindBlock, 0, 0, 0, 10, 10)
	for i := 0; i < 3; i++ {
		b.Move(10, 0, DefaultMove)
	}
	b.Move(5, 0, DefaultMove)

	assert.Equal(t, b.X(), a.X())
	assert.Equal(t, 35.0, a.X())
	assertMembership(t, a)
}

func TestSafeMoveNegative(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	okX, _ := b.SafeMove(-35, -12, DefaultMove)
	assert.True(t, okX)
	assert.Equal(t, -35.0, b.X())
	assert.Equal(t, -12.0, b.Y())
}

func TestSafeMoveDoesNotTunnel(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	w.NewRect(KindBlock, 0, 50, 0, 10, 10)

	okX, okY := b.SafeMove(100, 0, DefaultMove)
	assert.False(t, okX)
	assert.True(t, okY)
	assert.Equal(t, 40.0, b.X())

	// A single large Move skips straight past the wall.
	c := w.NewRect(KindBlock, 0, 0, 20, 10, 10)
	w.NewRect(KindBlock, 0, 50, 20, 10, 10)
	okX, _ = c.Move(100, 0, DefaultMove)
	assert.True(t, okX)
	assert.Equal(t, 100.0, c.X())
}

func TestSafeMoveBlockedAxisKeepsOtherGoing(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	w.NewRect(KindBlock, 0, 0, 25, 200, 10)

	okX, okY := b.SafeMove(60, 60, DefaultMove)
	assert.True(t, okX)
	assert.False(t, okY)
	assert.Equal(t, 60.0, b.X())
	assert.Equal(t, 15.0, b.Y())
}

func TestCleverMove(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	w.NewRect(KindBlock, 0, 50, 0, 10, 10)

	b.CleverMove(100, 0, DefaultMove)
	assert.Equal(t, 40.0, b.X())

	b.CleverMove(-4, 0, DefaultMove)
	assert.Equal(t, 36.0, b.X())
}

func TestSimpleMoveIgnoresEverything(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	w.NewRect(KindBlock, 0, 5, 0, 10, 10)

	b.SimpleMove(7, 3)
	assert.Equal(t, 7.0, b.X())
	assert.Equal(t, 3.0, b.Y())
	assertMembership(t, b)
}
