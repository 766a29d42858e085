package level

import (
	"math"
	"strconv"
	"time"

	"github.com/skullrun/game/internal/anim"
	"github.com/skullrun/game/internal/collide"
	"github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/geom"
	"github.com/skullrun/game/internal/render"
)

// Damager is implemented by the owners of trap bodies.
type Damager interface {
	// Damage names the trap and returns its base damage per frame of overlap.
	Damage() (kind string, base int)
}

type trap struct {
	body   *collide.Body
	set    *anim.Set
	name   string
	damage int
}

func (t *trap) Body() *collide.Body         { return t.body }
func (t *trap) Damage() (string, int)       { return t.name, t.damage }
func (t *trap) Update(*Level, float64) bool { return false }
func (t *trap) Draw(r render.Target)        { blit(r, t.set, t.body.X(), t.body.Y()) }

// Spike is a static trap along the floor of its tile.
type Spike struct{ trap }

func newSpike(l *Level, tx, ty int) *Spike {
	x, y := l.tileOrigin(tx, ty)
	h := l.cfg.Hazards.SpikeHeight
	b := l.world.NewRect(KindTrap, int(system.PriorityTrap), x, y+l.cfg.Game.TileHeight-h, l.cfg.Game.TileWidth, h)
	b.Solid = false
	s := &Spike{trap{body: b, set: l.anims.Set("spike").Loop("on"), name: "spike", damage: l.cfg.Hazards.TrapDamage}}
	b.Owner = s
	return s
}

// Bullet flies at a constant velocity and dies on the frame after its
// first blocked move.
type Bullet struct {
	trap
	vel  geom.Vec
	dead bool
}

func newBullet(l *Level, x, y float64, vel geom.Vec) *Bullet {
	size := l.cfg.Hazards.BulletSize
	b := l.world.NewRect(KindTrap, int(system.PriorityTrap), x, y, size, size)
	b.Solid = false
	bl := &Bullet{
		trap: trap{body: b, set: l.anims.Set("bullet").Loop("moving"), name: "bullet", damage: l.cfg.Hazards.TrapDamage},
		vel:  vel,
	}
	b.Owner = bl
	return bl
}

var bulletMove = collide.MoveOpts{Mode: collide.NonStrict, MoveBack: true}

func (bl *Bullet) Update(_ *Level, dt float64) bool {
	if bl.dead {
		bl.body.Destroy()
		return false
	}
	okX, okY := bl.body.CleverMove(bl.vel.X*dt, bl.vel.Y*dt, bulletMove)
	if !okX || !okY {
		bl.dead = true
	}
	return false
}

// Turret is a solid tile that fires a bullet every interval.
type Turret struct {
	body   *collide.Body
	set    *anim.Set
	cds    *anim.Cooldowns
	dir    Direction
	vel    geom.Vec
	muzzle geom.Vec
}

func newTurret(l *Level, tx, ty int, dir Direction, offset time.Duration) *Turret {
	tw, th := l.cfg.Game.TileWidth, l.cfg.Game.TileHeight
	x, y := l.tileOrigin(tx, ty)
	b := l.world.NewRect(KindTurret, int(system.PriorityTile), x, y, tw, th)

	speed, size := l.cfg.Hazards.BulletSpeed, l.cfg.Hazards.BulletSize
	midX := math.Floor(tw/2) - size/2
	midY := math.Floor(th/2) - size/2
	var vel, muzzle geom.Vec
	switch dir {
	case Up:
		vel, muzzle = geom.V(0, -speed), geom.V(midX, -size-1)
	case Right:
		vel, muzzle = geom.V(speed, 0), geom.V(tw+1, midY)
	case Down:
		vel, muzzle = geom.V(0, speed), geom.V(midX, th+1)
	case Left:
		vel, muzzle = geom.V(-speed, 0), geom.V(-size-1, midY)
	}
	t := &Turret{
		body:   b,
		set:    l.anims.Set("turret").Loop("t" + strconv.Itoa(int(dir))),
		cds:    anim.NewCooldowns(l.clock).Create("shoot", l.cfg.Hazards.TurretInterval).Start("shoot").Offset("shoot", offset),
		dir:    dir,
		vel:    vel,
		muzzle: muzzle,
	}
	b.Owner = t
	return t
}

func (t *Turret) Update(l *Level, _ float64) bool {
	if t.cds.Ready("shoot") {
		newBullet(l, t.body.X()+t.muzzle.X, t.body.Y()+t.muzzle.Y, t.vel)
		t.cds.Start("shoot")
	}
	return false
}

func (t *Turret) Draw(r render.Target) { blit(r, t.set, t.body.X(), t.body.Y()) }

// Saw patrols a closed path of centre points at constant speed.
type Saw struct {
	trap
	path    []geom.Vec
	dist    []float64
	speed   float64
	step    int
	curdist float64
	vel     geom.Vec
}

func newSaw(l *Level, path []geom.Vec, speed, radius float64) *Saw {
	b := l.world.NewCircle(KindTrap, int(system.PriorityTrap), path[0].X, path[0].Y, radius)
	b.Solid = false
	s := &Saw{
		trap:  trap{body: b, set: l.anims.Set("saw").Loop("spin"), name: "saw", damage: l.cfg.Hazards.TrapDamage},
		path:  path,
		speed: speed,
		step:  -1,
	}
	if len(path) > 1 {
		s.dist = make([]float64, len(path))
		for i := range path {
			s.dist[i] = path[(i+1)%len(path)].Sub(path[i]).Mod()
		}
		s.next()
	}
	b.Owner = s
	return s
}

// next snaps the saw onto the start of the following segment.
func (s *Saw) next() {
	s.step = (s.step + 1) % len(s.path)
	p := s.path[s.step]
	s.body.SetCentre(p.X, p.Y)
	s.curdist = 0
	s.vel = s.path[(s.step+1)%len(s.path)].Sub(p).WithMod(s.speed)
}

// Segment returns the index of the segment being travelled.
func (s *Saw) Segment() int { return s.step }

func (s *Saw) Update(_ *Level, dt float64) bool {
	if len(s.path) < 2 {
		return false
	}
	d := s.vel.Scale(dt)
	s.body.SimpleMove(d.X, d.Y)
	s.curdist += d.Mod()
	if s.curdist >= s.dist[s.step] {
		s.next()
	}
	return false
}
