// Package level runs one playable level: it builds entities from a layout,
// drives them through the priority scheduler and owns the restart, death,
// checkpoint and finish rules.
package level

import (
	"time"

	"go.uber.org/zap"

	"github.com/skullrun/game/internal/anim"
	"github.com/skullrun/game/internal/collide"
	"github.com/skullrun/game/internal/config"
	"github.com/skullrun/game/internal/core/event"
	"github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/data"
	"github.com/skullrun/game/internal/geom"
	"github.com/skullrun/game/internal/input"
	"github.com/skullrun/game/internal/layout"
	"github.com/skullrun/game/internal/render"
)

// DamageFunc decides how much health one overlapping trap removes.
type DamageFunc func(kind string, base, health int) int

// Deps holds the collaborators of a level. Bus and Damage are optional.
type Deps struct {
	Log    *zap.Logger
	Config *config.Config
	Anims  *anim.Library
	Input  input.Provider
	Bus    *event.Bus
	Damage DamageFunc
}

type spawnPoint struct {
	pos    geom.Vec
	motion bool
	vel    geom.Vec
	acc    geom.Vec
}

type tileKey struct{ x, y int }

// Level is the simulation context handed to every entity update.
type Level struct {
	log    *zap.Logger
	cfg    *config.Config
	anims  *anim.Library
	input  input.Provider
	bus    *event.Bus
	damage DamageFunc

	key    data.RecordKey
	layout *layout.Layout
	world  *collide.World
	sched  *system.Scheduler[*Level]
	clock  *anim.Clock
	hooks  input.Hooks

	state     int
	player    *Player
	skulls    []*Skull
	doors     map[int][]*Door
	spawn     *spawnPoint
	spawnTile *tileKey

	timer    time.Duration
	paused   bool
	finished bool
	built    bool
	deaths   int
	mapW     float64
	mapH     float64
}

// New builds a level from a layout and spawns the player.
func New(deps Deps, key data.RecordKey, l *layout.Layout) *Level {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	anims := deps.Anims
	if anims == nil {
		anims = anim.NewLibrary(&anim.Clock{})
	}
	in := deps.Input
	if in == nil {
		in = input.State{}
	}
	lv := &Level{
		log:    log.With(zap.String("world", key.World), zap.String("level", key.Level)),
		cfg:    cfg,
		anims:  anims,
		input:  in,
		bus:    deps.Bus,
		damage: deps.Damage,
		key:    key,
		layout: l,
		world:  collide.NewWorld(cfg.Game.ChunkWidth, cfg.Game.ChunkHeight),
		clock:  anims.Clock(),
	}
	lv.sched = system.NewScheduler[*Level](lv.world)
	lv.Restart()
	return lv
}

func publish[T any](l *Level, ev T) {
	if l.bus != nil {
		event.Emit(l.bus, ev)
	}
}

func (l *Level) World() *collide.World  { return l.world }
func (l *Level) Key() data.RecordKey    { return l.key }
func (l *Level) Player() *Player        { return l.player }
func (l *Level) State() int             { return l.state }
func (l *Level) Paused() bool           { return l.paused }
func (l *Level) Finished() bool         { return l.finished }
func (l *Level) Deaths() int            { return l.deaths }
func (l *Level) Elapsed() time.Duration { return l.timer }

// Size returns the map extent in world units.
func (l *Level) Size() (w, h float64) { return l.mapW, l.mapH }

// Skulls returns the skulls currently kept, oldest first.
func (l *Level) Skulls() []*Skull {
	out := make([]*Skull, len(l.skulls))
	copy(out, l.skulls)
	return out
}

// Doors returns the doors sharing an id.
func (l *Level) Doors(id int) []*Door { return l.doors[id] }

// SetPaused pauses or resumes updates. A finished level stays paused.
func (l *Level) SetPaused(p bool) {
	if l.finished {
		return
	}
	l.paused = p
}

// Restart rebuilds every entity from the layout. The world keeps its
// identity counter, surviving skulls are put back and the player respawns
// at the last spawn point.
func (l *Level) Restart() {
	l.world.Reset()
	l.hooks.Clear()
	l.state = 0
	l.player = nil
	l.doors = make(map[int][]*Door)

	l.build()

	for _, s := range l.skulls {
		l.world.Reinsert(s.body)
	}
	l.state = 1
	l.Respawn()
}

// Respawn replaces the player at the spawn point, restoring the motion
// recorded by a checkpoint.
func (l *Level) Respawn() {
	if l.spawn == nil {
		l.log.Warn("level has no spawn point")
		return
	}
	if l.player != nil {
		l.hooks.Remove(l.player)
		l.player.body.Destroy()
	}
	l.player = newPlayer(l, l.spawn.pos.X, l.spawn.pos.Y)
	l.hooks.Add(l.player)
	if l.spawn.motion {
		l.player.vel = l.spawn.vel
		l.player.acc = l.spawn.acc
	}
}

// KillPlayer leaves a skull where the player died, dropping the oldest skull
// past the limit, and restarts the level.
func (l *Level) KillPlayer() {
	p := l.player
	if p == nil {
		return
	}
	sk := newSkull(l, p.body.X()+5, p.body.Y()+1, p.vel, p.facingLeft)
	limit := max(l.cfg.Game.SkullLimit, 1)
	for len(l.skulls) >= limit {
		l.skulls[0].body.Destroy()
		l.skulls = l.skulls[1:]
	}
	l.skulls = append(l.skulls, sk)
	l.deaths++

	l.log.Info("player killed",
		zap.Float64("x", p.body.X()), zap.Float64("y", p.body.Y()),
		zap.Int("deaths", l.deaths))
	publish(l, event.PlayerKilled{X: p.body.X(), Y: p.body.Y(), Skulls: len(l.skulls), Deaths: l.deaths})
	l.Restart()
}

// SetSpawn records the player's current position and motion the first time
// the player touches a checkpoint. Checkpoints are identified by their tile
// so the identity survives restarts.
func (l *Level) SetSpawn(cp *Checkpoint) {
	if l.player == nil {
		return
	}
	k := tileKey{cp.tx, cp.ty}
	if l.spawnTile != nil && *l.spawnTile == k {
		return
	}
	l.spawnTile = &k
	l.spawn = &spawnPoint{
		pos:    geom.V(l.player.body.X(), l.player.body.Y()),
		motion: true,
		vel:    l.player.vel,
		acc:    l.player.acc,
	}
	l.log.Info("checkpoint reached", zap.Int("tx", cp.tx), zap.Int("ty", cp.ty))
	publish(l, event.CheckpointReached{X: l.spawn.pos.X, Y: l.spawn.pos.Y})
}

// Finish pauses the level and reports the completion time, floored to
// whole milliseconds. Only the first call has any effect.
func (l *Level) Finish() {
	if l.finished {
		return
	}
	l.paused = true
	l.finished = true
	ms := l.timer.Milliseconds()
	l.log.Info("level finished", zap.Int64("time_ms", ms), zap.Int("deaths", l.deaths))
	publish(l, event.LevelFinished{World: l.key.World, Level: l.key.Level, TimeMS: ms, Deaths: l.deaths})
}

// CycleState advances the state observed by toggle walls: 1 → 2 → 1.
func (l *Level) CycleState() {
	l.state++
	if l.state > 2 {
		l.state = 1
	}
	publish(l, event.StateCycled{State: l.state})
}

// OpenDoors opens every door with the id. Unknown ids do nothing.
func (l *Level) OpenDoors(id int) { l.setDoors(id, true) }

// CloseDoors closes every door with the id. Unknown ids do nothing.
func (l *Level) CloseDoors(id int) { l.setDoors(id, false) }

func (l *Level) setDoors(id int, open bool) {
	doors := l.doors[id]
	if len(doors) == 0 {
		return
	}
	for _, d := range doors {
		d.setOpen(open)
	}
	publish(l, event.DoorsChanged{DoorID: id, Open: open, Doors: len(doors)})
}

func (l *Level) addDoor(d *Door) {
	l.doors[d.doorID] = append(l.doors[d.doorID], d)
}

// HandleKey applies level-wide keys and forwards every press to the hooks.
func (l *Level) HandleKey(ev input.Event) {
	switch ev.Key {
	case input.KeyToggle:
		if !l.paused {
			l.CycleState()
		}
	case input.KeyRestart:
		if !l.finished {
			l.KillPlayer()
		}
	case input.KeyPause:
		l.SetPaused(!l.paused)
	}
	l.hooks.Dispatch(ev)
}

// Tick advances the level by dt and draws it. dt is capped by the
// configured maximum frame step.
func (l *Level) Tick(dt time.Duration, t render.Target) system.Stats {
	if limit := l.cfg.Game.MaxFrameStep; limit > 0 && dt > limit {
		dt = limit
	}
	if t == nil {
		t = render.Discard
	}
	paused := l.paused
	if !paused {
		l.clock.Advance(dt)
	}
	st := l.sched.Tick(l, dt, paused, t)
	// A finish during this frame stops the timer at the time it reported.
	if !l.paused {
		l.timer += dt
	}
	return st
}

func (l *Level) keyHeld(k input.Key) bool { return l.input.Held(k) }

func (l *Level) trapDamage(kind string, base, health int) int {
	if l.damage == nil {
		return base
	}
	return l.damage(kind, base, health)
}
