package collide

// Overlap selects how boundaries are treated by overlap tests.
//
// For rectangles, Strict treats touching edges as separate and NonStrict
// counts them as overlapping. Circle tests keep the opposite convention:
// Strict accepts a centre exactly one radius away, NonStrict does not.
type Overlap uint8

const (
	Strict Overlap = iota
	NonStrict
)

func (o Overlap) String() string {
	if o == NonStrict {
		return "nonstrict"
	}
	return "strict"
}

// Collides reports whether b overlaps o.
//
// Unless ignoreSolid is set, a non-solid o never collides. If o claims
// collision priority and b does not, the test is run from o's side, so a
// circle always performs its own distance test regardless of call order.
func (b *Body) Collides(o *Body, mode Overlap, ignoreSolid bool) bool {
	if !ignoreSolid && !o.Solid {
		return false
	}
	if o.CollisionPriority && !b.CollisionPriority {
		return o.Collides(b, mode, ignoreSolid)
	}
	if b.shape == Circle {
		return b.circleTest(o, mode)
	}
	return b.rectTest(o, mode)
}

func (b *Body) rectTest(o *Body, mode Overlap) bool {
	if mode == NonStrict {
		return !(o.x > b.x+b.w || o.x+o.w < b.x || o.y > b.y+b.h || o.y+o.h < b.y)
	}
	return !(o.x >= b.x+b.w || o.x+o.w <= b.x || o.y >= b.y+b.h || o.y+o.h <= b.y)
}

// circleTest clamps b's centre into o's rectangle and compares the squared
// distance to the squared radius.
func (b *Body) circleTest(o *Body, mode Overlap) bool {
	cx, cy := b.Centre()
	nx := min(max(cx, o.x), o.x+o.w)
	ny := min(max(cy, o.y), o.y+o.h)
	dx, dy := cx-nx, cy-ny
	d2 := dx*dx + dy*dy
	r2 := b.radius * b.radius
	if mode == NonStrict {
		return d2 < r2
	}
	return d2 <= r2
}
