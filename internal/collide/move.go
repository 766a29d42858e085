package collide

import "math"

// MoveOpts controls how a displacement is resolved.
type MoveOpts struct {
	IgnoreSolid bool
	Mode        Overlap
	// MoveBack snaps the mover flush against the body it ran into.
	MoveBack bool
	// Skip lists kinds the mover passes through.
	Skip []Kind
}

// DefaultMove resolves against solid bodies with strict boundaries and snaps back.
var DefaultMove = MoveOpts{MoveBack: true}

// Move applies dx, resolves against overlapping neighbours, then does the
// same for dy. It reports whether each axis moved the full distance.
// Axis separation can miss diagonal tunnelling; displacements should stay
// below the mover's own size (see SafeMove).
func (b *Body) Move(dx, dy float64, o MoveOpts) (okX, okY bool) {
	okX, okY = true, true
	if dx != 0 {
		b.x += dx
		for _, n := range b.world.neighbours(b, o.Skip) {
			if !b.Collides(n, o.Mode, o.IgnoreSolid) {
				continue
			}
			if o.MoveBack {
				if dx > 0 {
					b.x = n.x - b.w
				} else {
					b.x = n.x + n.w
				}
			}
			okX = false
		}
	}
	if dy != 0 {
		b.y += dy
		for _, n := range b.world.neighbours(b, o.Skip) {
			if !b.Collides(n, o.Mode, o.IgnoreSolid) {
				continue
			}
			if o.MoveBack {
				if dy > 0 {
					b.y = n.y - b.h
				} else {
					b.y = n.y + n.h
				}
			}
			okY = false
		}
	}
	if dx != 0 || dy != 0 {
		b.updateChunks()
	}
	return okX, okY
}

// SafeMove splits a large displacement into steps no larger than the body's
// own size and moves step by step. With MoveBack, an axis that gets blocked
// drops the rest of its displacement.
func (b *Body) SafeMove(dx, dy float64, o MoveOpts) (okX, okY bool) {
	if b.w <= 0 || b.h <= 0 {
		return b.Move(dx, dy, o)
	}
	movingX, movingY := true, true
	for (math.Abs(dx) > b.w || math.Abs(dy) > b.h) && (movingX || movingY) {
		var cdx, cdy float64
		switch {
		case dx > b.w:
			dx -= b.w
			cdx = b.w
		case dx < -b.w:
			dx += b.w
			cdx = -b.w
		}
		switch {
		case dy > b.h:
			dy -= b.h
			cdy = b.h
		case dy < -b.h:
			dy += b.h
			cdy = -b.h
		}

		rx, ry := b.Move(cdx, cdy, o)
		if !rx {
			if o.MoveBack {
				dx = 0
			}
			movingX = false
		}
		if !ry {
			if o.MoveBack {
				dy = 0
			}
			movingY = false
		}
	}
	if dx != 0 || dy != 0 {
		rx, ry := b.Move(dx, dy, o)
		if !rx {
			movingX = false
		}
		if !ry {
			movingY = false
		}
	}
	return movingX, movingY
}

// CleverMove picks SafeMove only when a displacement exceeds the body's size.
func (b *Body) CleverMove(dx, dy float64, o MoveOpts) (okX, okY bool) {
	if math.Abs(dx) > b.w || math.Abs(dy) > b.h {
		return b.SafeMove(dx, dy, o)
	}
	return b.Move(dx, dy, o)
}

// SimpleMove displaces the body with no collision checks.
func (b *Body) SimpleMove(dx, dy float64) {
	b.x += dx
	b.y += dy
	b.updateChunks()
}
