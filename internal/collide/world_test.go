package collide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMembership(t *testing.T, b *Body) {
	t.Helper()
	want := b.world.OverlappingChunks(b.Bounds())
	assert.ElementsMatch(t, want, b.Chunks(), "chunk list of body %d", b.ID())
	for _, c := range want {
		assert.Contains(t, b.world.Chunk(c).members, b, "chunk %v missing body %d", c, b.ID())
	}
	for coord, ch := range b.world.chunks {
		if hasCoord(want, coord) {
			continue
		}
		assert.NotContains(t, ch.members, b, "stale membership in chunk %v", coord)
	}
}

func TestChunkOfFloorsNegatives(t *testing.T) {
	w := NewWorld(100, 50)
	assert.Equal(t, ChunkCoord{0, 0}, w.ChunkOf(0, 0))
	assert.Equal(t, ChunkCoord{0, 0}, w.ChunkOf(99.9, 49.9))
	assert.Equal(t, ChunkCoord{1, 1}, w.ChunkOf(100, 50))
	assert.Equal(t, ChunkCoord{-1, -1}, w.ChunkOf(-0.5, -0.5))
	assert.Equal(t, ChunkCoord{-2, -3}, w.ChunkOf(-101, -101))
}

func TestNonPositiveChunkSizeFallsBack(t *testing.T) {
	w := NewWorld(0, -5)
	cw, ch := w.ChunkSize()
	assert.Equal(t, float64(DefaultChunkSize), cw)
	assert.Equal(t, float64(DefaultChunkSize), ch)
}

func TestMembershipFollowsEveryMutation(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 0, 10, 10, 20, 20)
	assertMembership(t, b)
	assert.Equal(t, []ChunkCoord{{0, 0}}, b.Chunks())

	b.SetPosition(90, 90)
	assertMembership(t, b)
	assert.Len(t, b.Chunks(), 4)

	b.SimpleMove(-200, 5)
	assertMembership(t, b)

	b.Move(0, 300, DefaultMove)
	assertMembership(t, b)

	b.Resize(250, 10)
	assertMembership(t, b)

	c := w.NewCircle(KindBlock, 2, 95, 5, 10)
	assertMembership(t, c)
	c.SetCentre(-40, 240)
	assertMembership(t, c)
	cx, cy := c.Centre()
	assert.Equal(t, -40.0, cx)
	assert.Equal(t, 240.0, cy)
}

func TestChunksAreCreatedLazilyAndKept(t *testing.T) {
	w := NewWorld(100, 100)
	assert.Equal(t, 0, w.ChunkCount())

	b := w.NewRect(KindBlock, 0, 10, 10, 20, 20)
	assert.Equal(t, 1, w.ChunkCount())

	b.SetPosition(90, 90)
	assert.Equal(t, 4, w.ChunkCount())

	b.Destroy()
	assert.Equal(t, 4, w.ChunkCount(), "emptied chunks stay")

	assert.Empty(t, w.QueryArea(-500, -500, 10, 10, Query{All: true}))
	assert.Equal(t, 5, w.ChunkCount())

	w.Reset()
	assert.Equal(t, 0, w.ChunkCount())
}

func TestIDsAreMonotonicAcrossReset(t *testing.T) {
	w := NewWorld(100, 100)
	a := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	b := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	assert.Less(t, a.ID(), b.ID())

	w.Reset()
	c := w.NewRect(KindBlock, 0, 0, 0, 10, 10)
	assert.Less(t, b.ID(), c.ID())
}

func TestPriorityBuckets(t *testing.T) {
	w := NewWorld(100, 100)
	a := w.NewRect(KindBlock, 3, 0, 0, 10, 10)
	b := w.NewRect(KindBlock, 1, 0, 0, 10, 10)
	c := w.NewRect(KindBlock, 3, 0, 0, 10, 10)
	neg := w.NewRect(KindBlock, -4, 0, 0, 10, 10)

	assert.Equal(t, 3, w.MaxPriority())
	assert.Equal(t, []*Body{a, c}, w.Bucket(3))
	assert.Equal(t, []*Body{b}, w.Bucket(1))
	assert.Equal(t, []*Body{neg}, w.Bucket(0))
	assert.Nil(t, w.Bucket(2))
	assert.Equal(t, 4, w.Len())

	snap := w.Bucket(3)
	a.Destroy()
	assert.Equal(t, []*Body{a, c}, snap, "snapshot is unaffected by later mutation")
	assert.Equal(t, []*Body{c}, w.Bucket(3))
}

func TestDestroyRemovesFromChunksAndBucket(t *testing.T) {
	w := NewWorld(100, 100)
	b := w.NewRect(KindBlock, 1, 95, 95, 10, 10)
	coords := b.Chunks()
	require.Len(t, coords, 4)

	b.Destroy()
	assert.False(t, b.Alive())
	assert.Empty(t, b.Chunks())
	for _, c := range coords {
		assert.Zero(t, w.Chunk(c).Len())
	}
	assert.Empty(t, w.Bucket(1))
	assert.Empty(t, w.QueryArea(0, 0, 300, 300, Query{All: true, IgnoreSolid: true}))

	// Destroy twice is harmless.
	b.Destroy()
}

func TestResetAndReinsert(t *testing.T) {
	w := NewWorld(100, 100)
	keep := w.NewRect(KindBlock, 4, 150, 10, 10, 10)
	drop := w.NewRect(KindBlock, 1, 0, 0, 10, 10)
	id := keep.ID()

	w.Reset()
	assert.False(t, keep.Alive())
	assert.False(t, drop.Alive())
	assert.Zero(t, w.Len())
	assert.Zero(t, w.MaxPriority())

	w.Reinsert(keep)
	assert.True(t, keep.Alive())
	assert.Equal(t, id, keep.ID())
	assert.Equal(t, []*Body{keep}, w.Bucket(4))
	assert.Equal(t, 4, w.MaxPriority())
	assertMembership(t, keep)

	// Reinserting a live body is a no-op.
	w.Reinsert(keep)
	assert.Len(t, w.Bucket(4), 1)
}

func TestBornFrame(t *testing.T) {
	w := NewWorld(100, 100)
	a := w.NewRect(KindBlock, 0, 0, 0, 1, 1)
	assert.Equal(t, uint64(0), a.Born())

	f := w.BeginFrame()
	b := w.NewRect(KindBlock, 0, 0, 0, 1, 1)
	assert.Equal(t, f, b.Born())
	assert.Equal(t, f, w.Frame())
}
