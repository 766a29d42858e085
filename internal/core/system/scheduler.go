package system

import (
	"time"

	"github.com/skullrun/game/internal/collide"
	"github.com/skullrun/game/internal/render"
)

// Priority orders update and draw inside one frame. Lower priorities are
// fully updated and drawn before higher ones start.
type Priority int

const (
	PriorityTile       Priority = iota // 0: background tiles, turrets
	PriorityWall                       // 1: walls, doors, buttons
	PriorityTrap                       // 2: spikes, bullets, saws
	PriorityCheckpoint                 // 3: checkpoints, finish line
	PrioritySkull                      // 4
	PriorityPlayer                     // 5
)

// Actor is the behaviour hung on a body through Body.Owner. C is the
// simulation context passed to every update.
//
// Update returns true to stop the remaining updates of its priority bucket
// for this frame.
type Actor[C any] interface {
	Update(ctx C, dt float64) bool
	Draw(t render.Target)
}

// Stats describes one scheduled frame.
type Stats struct {
	Frame   uint64
	Updated int
	Drawn   int
	Halted  int
}

// Scheduler drives the bodies of a world in priority order.
type Scheduler[C any] struct {
	world *collide.World
	last  Stats
}

func NewScheduler[C any](w *collide.World) *Scheduler[C] {
	return &Scheduler[C]{world: w}
}

// Tick runs one frame. Each bucket is iterated over a snapshot taken when
// the bucket is reached, so bodies spawned or destroyed by an update never
// disturb the walk. Bodies born during this frame are drawn but not
// updated. Draw runs for every live body even while paused.
func (s *Scheduler[C]) Tick(ctx C, dt time.Duration, paused bool, t render.Target) Stats {
	frame := s.world.BeginFrame()
	st := Stats{Frame: frame}
	secs := dt.Seconds()

	for p := 0; p <= s.world.MaxPriority(); p++ {
		halted := false
		for _, b := range s.world.Bucket(p) {
			if !b.Alive() {
				continue
			}
			a, ok := b.Owner.(Actor[C])
			if !ok {
				continue
			}
			if !paused && !halted && b.Born() < frame {
				st.Updated++
				if a.Update(ctx, secs) {
					halted = true
					st.Halted++
				}
			}
			if b.Alive() {
				a.Draw(t)
				st.Drawn++
			}
		}
	}
	s.last = st
	return st
}

// Last returns the stats of the most recent Tick.
func (s *Scheduler[C]) Last() Stats { return s.last }
