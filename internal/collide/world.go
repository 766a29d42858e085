package collide

import "math"

// DefaultChunkSize is used when a world is created with a non-positive chunk dimension.
const DefaultChunkSize = 100

// ChunkCoord identifies a chunk by its grid position (not world position).
type ChunkCoord struct {
	X, Y int
}

// Chunk is a fixed-size spatial bucket. It references the bodies overlapping
// it but never owns their lifetime.
type Chunk struct {
	Coord   ChunkCoord
	members []*Body
}

// Len returns the number of bodies currently overlapping the chunk.
func (c *Chunk) Len() int { return len(c.members) }

func (c *Chunk) add(b *Body) {
	for _, m := range c.members {
		if m == b {
			return
		}
	}
	c.members = append(c.members, b)
}

func (c *Chunk) remove(b *Body) {
	for i, m := range c.members {
		if m == b {
			c.members = append(c.members[:i], c.members[i+1:]...)
			return
		}
	}
}

// World owns every body, grouped into priority buckets, and the sparse chunk
// grid used for broad-phase collision. Accessed only from the game loop
// goroutine, so there are no locks.
type World struct {
	chunkW, chunkH float64

	chunks      map[ChunkCoord]*Chunk
	buckets     map[int][]*Body
	maxPriority int
	nextID      ID
	frame       uint64
}

// NewWorld creates a world whose chunks are chunkW × chunkH world units.
// Chunks should be larger than the largest moving body.
func NewWorld(chunkW, chunkH float64) *World {
	if chunkW <= 0 {
		chunkW = DefaultChunkSize
	}
	if chunkH <= 0 {
		chunkH = DefaultChunkSize
	}
	return &World{
		chunkW:  chunkW,
		chunkH:  chunkH,
		chunks:  make(map[ChunkCoord]*Chunk, 64),
		buckets: make(map[int][]*Body, 8),
	}
}

// ChunkSize returns the configured chunk dimensions.
func (w *World) ChunkSize() (float64, float64) { return w.chunkW, w.chunkH }

// NextID returns a new identity, strictly greater than every previous one.
// Reset does not rewind the counter.
func (w *World) NextID() ID {
	w.nextID++
	return w.nextID
}

// ChunkOf maps a world position to the chunk containing it.
func (w *World) ChunkOf(x, y float64) ChunkCoord {
	return ChunkCoord{
		X: int(math.Floor(x / w.chunkW)),
		Y: int(math.Floor(y / w.chunkH)),
	}
}

// OverlappingChunks lists the chunks touched by the rectangle, inclusive of
// the chunk holding its far edge.
func (w *World) OverlappingChunks(x, y, width, height float64) []ChunkCoord {
	c0 := w.ChunkOf(x, y)
	c1 := w.ChunkOf(x+width, y+height)
	x0, x1 := min(c0.X, c1.X), max(c0.X, c1.X)
	y0, y1 := min(c0.Y, c1.Y), max(c0.Y, c1.Y)

	out := make([]ChunkCoord, 0, (x1-x0+1)*(y1-y0+1))
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			out = append(out, ChunkCoord{X: cx, Y: cy})
		}
	}
	return out
}

// Chunk returns the chunk at c, creating an empty one on first reference.
// Empty chunks are never pruned.
func (w *World) Chunk(c ChunkCoord) *Chunk {
	ch := w.chunks[c]
	if ch == nil {
		ch = &Chunk{Coord: c}
		w.chunks[c] = ch
	}
	return ch
}

// ChunkCount returns how many chunks have been created so far.
func (w *World) ChunkCount() int { return len(w.chunks) }

// Bucket returns a snapshot of the bodies registered at priority p, in
// registration order. Mutating the world does not affect the snapshot.
func (w *World) Bucket(p int) []*Body {
	src := w.buckets[p]
	if len(src) == 0 {
		return nil
	}
	out := make([]*Body, len(src))
	copy(out, src)
	return out
}

// MaxPriority returns the highest priority registered since the last Reset.
func (w *World) MaxPriority() int { return w.maxPriority }

// Len returns the number of live bodies.
func (w *World) Len() int {
	n := 0
	for _, b := range w.buckets {
		n += len(b)
	}
	return n
}

// Frame returns the current frame number.
func (w *World) Frame() uint64 { return w.frame }

// BeginFrame advances the frame counter. Bodies created after this call
// report Born() == the returned value until the next frame begins.
func (w *World) BeginFrame() uint64 {
	w.frame++
	return w.frame
}

// Reset drops every body and chunk. The identity counter and frame counter
// keep running so stale references can never alias a new body.
func (w *World) Reset() {
	for _, bucket := range w.buckets {
		for _, b := range bucket {
			b.alive = false
			b.chunks = nil
		}
	}
	w.chunks = make(map[ChunkCoord]*Chunk, 64)
	w.buckets = make(map[int][]*Body, 8)
	w.maxPriority = 0
}

// Reinsert registers a body that was dropped by Reset (or destroyed) again,
// keeping its identity and birth frame.
func (w *World) Reinsert(b *Body) {
	if b == nil || b.alive || b.world != w {
		return
	}
	b.alive = true
	b.chunks = nil
	w.register(b)
	b.updateChunks()
}

func (w *World) register(b *Body) {
	bucket, ok := w.buckets[b.priority]
	if !ok && b.priority > w.maxPriority {
		w.maxPriority = b.priority
	}
	for _, m := range bucket {
		if m == b {
			return
		}
	}
	w.buckets[b.priority] = append(bucket, b)
}

func (w *World) unregister(b *Body) {
	bucket := w.buckets[b.priority]
	for i, m := range bucket {
		if m == b {
			w.buckets[b.priority] = append(bucket[:i:i], bucket[i+1:]...)
			return
		}
	}
}

// neighbours returns the distinct bodies sharing a chunk with the rectangle
// of b, excluding b itself and any body whose kind is in skip.
func (w *World) neighbours(b *Body, skip []Kind) []*Body {
	var out []*Body
	seen := make(map[ID]struct{}, 8)
	for _, c := range w.OverlappingChunks(b.x, b.y, b.w, b.h) {
		ch := w.chunks[c]
		if ch == nil {
			continue
		}
		for _, m := range ch.members {
			if m == b {
				continue
			}
			if _, dup := seen[m.id]; dup {
				continue
			}
			seen[m.id] = struct{}{}
			if hasKind(skip, m.kind) {
				continue
			}
			out = append(out, m)
		}
	}
	return out
}

func hasKind(kinds []Kind, k Kind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}
