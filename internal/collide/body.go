package collide

// ID identifies a body within its world.
type ID uint64

// Kind tags what a body represents. Queries and moves filter on it; the
// concrete values belong to the game layer.
type Kind string

const (
	KindBlock Kind = "block"
	KindProbe Kind = "probe"
)

// Shape selects the geometric test a body performs.
type Shape uint8

const (
	Rect Shape = iota
	Circle
)

func (s Shape) String() string {
	if s == Circle {
		return "circle"
	}
	return "rect"
}

// Body is a collidable hit-box. Position is the top-left corner of its
// axis-aligned bounding box; circles derive their centre from it.
//
// Every position or size change goes through a method that refreshes chunk
// membership, so Chunks() always equals OverlappingChunks(Bounds()).
type Body struct {
	world    *World
	id       ID
	kind     Kind
	shape    Shape
	priority int
	born     uint64
	alive    bool

	x, y, w, h float64
	radius     float64

	chunks []ChunkCoord

	// Solid bodies block movement and are the only ones seen by queries
	// that do not ignore solidity.
	Solid bool
	// CollisionPriority makes this body's geometric test authoritative when
	// the other side of an overlap check does not also claim priority.
	CollisionPriority bool
	// Owner is the game object driving this body.
	Owner any
}

// NewRect creates and registers a solid rectangular body.
func (w *World) NewRect(kind Kind, priority int, x, y, width, height float64) *Body {
	b := &Body{
		world:    w,
		kind:     kind,
		shape:    Rect,
		priority: max(priority, 0),
		x:        x,
		y:        y,
		w:        width,
		h:        height,
		Solid:    true,
	}
	w.adopt(b)
	return b
}

// NewCircle creates and registers a solid circular body centred on (cx, cy).
// Circles claim collision priority by default.
func (w *World) NewCircle(kind Kind, priority int, cx, cy, radius float64) *Body {
	b := &Body{
		world:             w,
		kind:              kind,
		shape:             Circle,
		priority:          max(priority, 0),
		x:                 cx - radius,
		y:                 cy - radius,
		w:                 radius * 2,
		h:                 radius * 2,
		radius:            radius,
		Solid:             true,
		CollisionPriority: true,
	}
	w.adopt(b)
	return b
}

func (w *World) adopt(b *Body) {
	b.id = w.NextID()
	b.born = w.frame
	b.alive = true
	w.register(b)
	b.updateChunks()
}

func (b *Body) ID() ID { return b.id }
func (b *Body) Kind() Kind { return b.kind }
func (b *Body) Shape() Shape { return b.shape }
func (b *Body) Priority() int { return b.priority }
func (b *Body) World() *World { return b.world }
func (b *Body) X() float64 { return b.x }
func (b *Body) Y() float64 { return b.y }
func (b *Body) W() float64 { return b.w }
func (b *Body) H() float64 { return b.h }
func (b *Body) Radius() float64 { return b.radius }
func (b *Body) Born() uint64 { return b.born }
func (b *Body) Alive() bool { return b.alive }

// Bounds returns the axis-aligned bounding box.
func (b *Body) Bounds() (x, y, w, h float64) { return b.x, b.y, b.w, b.h }

// Centre returns the centre of the bounding box (the circle centre for circles).
func (b *Body) Centre() (float64, float64) { return b.x + b.w/2, b.y + b.h/2 }

// Chunks returns a copy of the chunks the body currently belongs to.
func (b *Body) Chunks() []ChunkCoord {
	out := make([]ChunkCoord, len(b.chunks))
	copy(out, b.chunks)
	return out
}

// SetPosition moves the top-left corner without any collision checks.
func (b *Body) SetPosition(x, y float64) {
	b.x, b.y = x, y
	b.updateChunks()
}

// SetCentre moves the body so its centre sits at (cx, cy).
func (b *Body) SetCentre(cx, cy float64) {
	b.x, b.y = cx-b.w/2, cy-b.h/2
	b.updateChunks()
}

// Resize changes a rectangle's extent. Circles keep their centre and take
// the larger dimension as diameter.
func (b *Body) Resize(width, height float64) {
	if b.shape == Circle {
		cx, cy := b.Centre()
		d := max(width, height)
		b.radius = d / 2
		b.x, b.y, b.w, b.h = cx-b.radius, cy-b.radius, d, d
	} else {
		b.w, b.h = width, height
	}
	b.updateChunks()
}

// Destroy removes the body from every chunk and from its priority bucket.
func (b *Body) Destroy() {
	if !b.alive {
		return
	}
	for _, c := range b.chunks {
		if ch := b.world.chunks[c]; ch != nil {
			ch.remove(b)
		}
	}
	b.chunks = nil
	b.world.unregister(b)
	b.alive = false
}

// Neighbours returns the distinct bodies sharing a chunk with b.
func (b *Body) Neighbours() []*Body {
	return b.world.neighbours(b, nil)
}

// Overlapping reports whether b currently overlaps any neighbour.
func (b *Body) Overlapping(mode Overlap, ignoreSolid bool) bool {
	for _, n := range b.world.neighbours(b, nil) {
		if b.Collides(n, mode, ignoreSolid) {
			return true
		}
	}
	return false
}

// updateChunks recomputes membership: leave chunks no longer overlapped,
// join newly overlapped ones.
func (b *Body) updateChunks() {
	if !b.alive {
		return
	}
	w := b.world
	next := w.OverlappingChunks(b.x, b.y, b.w, b.h)
	for _, c := range b.chunks {
		if !hasCoord(next, c) {
			if ch := w.chunks[c]; ch != nil {
				ch.remove(b)
			}
		}
	}
	for _, c := range next {
		if !hasCoord(b.chunks, c) {
			w.Chunk(c).add(b)
		}
	}
	b.chunks = next
}

func hasCoord(cs []ChunkCoord, c ChunkCoord) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}
