package level

import (
	"math"

	"github.com/skullrun/game/internal/anim"
	"github.com/skullrun/game/internal/collide"
	"github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/geom"
	"github.com/skullrun/game/internal/render"
)

// Skull is the ragdoll left behind by a death. It survives restarts until
// it is pushed out by newer skulls.
type Skull struct {
	body       *collide.Body
	set        *anim.Set
	cds        *anim.Cooldowns
	vel        geom.Vec
	acc        geom.Vec
	facingLeft bool
	airborne   bool
}

// Skulls pass through players and toggle walls.
var skullSkip = []collide.Kind{KindPlayer, KindToggleWall}

func newSkull(l *Level, x, y float64, vel geom.Vec, facingLeft bool) *Skull {
	cfg := l.cfg.Skull
	b := l.world.NewRect(KindSkull, int(system.PrioritySkull), x, y, cfg.Width, cfg.Height)
	b.Solid = false
	s := &Skull{
		body:       b,
		set:        l.anims.Set("player_skull"),
		vel:        vel,
		acc:        geom.V(-vel.X, l.cfg.Player.Gravity),
		facingLeft: facingLeft,
		airborne:   true,
		cds: anim.NewCooldowns(l.clock).
			Create("bounce_x", cfg.BounceX).Start("bounce_x").
			Create("bounce_y", cfg.BounceY).Start("bounce_y"),
	}
	s.face()
	b.Owner = s
	return s
}

func (s *Skull) Body() *collide.Body { return s.body }
func (s *Skull) Velocity() geom.Vec  { return s.vel }
func (s *Skull) FacingLeft() bool    { return s.facingLeft }

func (s *Skull) face() {
	if s.facingLeft {
		s.set.Loop("left")
	} else {
		s.set.Loop("right")
	}
}

// setVelX turns horizontal speed into opposing drag and faces the motion.
func (s *Skull) setVelX() {
	s.acc.X = -s.vel.X
	s.facingLeft = s.vel.X <= 0
	s.face()
}

func (s *Skull) Update(l *Level, dt float64) bool {
	cfg := l.cfg.Skull
	b := s.body
	x, y, w, h := b.Bounds()
	solid := collide.Query{Exclude: []*collide.Body{b}, Skip: skullSkip}

	if l.world.CheckArea(x+1, y, w-2, h+1, solid) {
		if s.airborne && s.cds.Ready("bounce_y") {
			s.vel.Y = -s.vel.Y * cfg.Restitution
			s.cds.Start("bounce_y")
		} else {
			s.vel.Y = 0
		}
		s.airborne = false
	} else {
		s.airborne = true
	}

	if l.world.CheckArea(x-1, y+1, w+2, h-2, solid) {
		if math.Abs(s.vel.X) < cfg.StopSpeed {
			s.vel.X = 0
		} else if s.cds.Ready("bounce_x") {
			s.vel.X = -s.vel.X * cfg.Restitution
			s.setVelX()
			s.cds.Start("bounce_x")
		}
	}
	// Drag never reverses the direction of travel.
	if s.facingLeft && s.vel.X >= 0 || !s.facingLeft && s.vel.X <= 0 {
		s.acc.X = 0
		s.vel.X = 0
	}

	players := l.world.QueryArea(x-2, y-2, w+4, h+4, collide.Query{
		Exclude: []*collide.Body{b},
		Only:    []collide.Kind{KindPlayer},
		All:     true,
	})
	if len(players) > 0 {
		var push geom.Vec
		for _, pb := range players {
			if p, ok := pb.Owner.(*Player); ok {
				push = push.Add(p.vel.Scale(cfg.PushFactor))
			}
		}
		s.vel = s.vel.Add(push)
		s.setVelX()
	}

	s.vel = s.vel.Add(s.acc.Scale(dt))
	if s.vel.Y > 0 {
		s.vel = s.vel.Cap(geom.V(cfg.TerminalX, cfg.FallTerminalY))
	} else {
		s.vel = s.vel.Cap(geom.V(cfg.TerminalX, cfg.TerminalY))
	}
	b.CleverMove(s.vel.X*dt, s.vel.Y*dt, collide.MoveOpts{MoveBack: true, Skip: skullSkip})
	return false
}

func (s *Skull) Draw(t render.Target) { blit(t, s.set, s.body.X(), s.body.Y()) }
