package level

import (
	"github.com/skullrun/game/internal/anim"
	"github.com/skullrun/game/internal/collide"
	"github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/geom"
	"github.com/skullrun/game/internal/input"
	"github.com/skullrun/game/internal/render"
)

// Player is the controlled character. It is also the level's input hook
// for jump presses; held keys are polled from the input provider.
type Player struct {
	body        *collide.Body
	set         *anim.Set
	cds         *anim.Cooldowns
	vel         geom.Vec
	acc         geom.Vec
	jumps       int
	health      int
	jumpInput   bool
	wasGrounded bool
	jumping     bool
	facingLeft  bool
	grounded    bool
}

func newPlayer(l *Level, x, y float64) *Player {
	cfg := l.cfg.Player
	b := l.world.NewRect(KindPlayer, int(system.PriorityPlayer), x, y, cfg.Width, cfg.Height)
	p := &Player{
		body:       b,
		set:        l.anims.Set("player").Loop("stand_left"),
		acc:        geom.V(0, cfg.Gravity),
		jumps:      cfg.MaxJumps,
		health:     cfg.Health,
		facingLeft: true,
		cds: anim.NewCooldowns(l.clock).
			Create("jump", cfg.JumpCooldown).Start("jump").
			Create("airmove", cfg.AirCooldown).Start("airmove"),
	}
	b.Owner = p
	return p
}

func (p *Player) Body() *collide.Body { return p.body }
func (p *Player) Velocity() geom.Vec  { return p.vel }
func (p *Player) Jumps() int          { return p.jumps }
func (p *Player) Health() int         { return p.health }
func (p *Player) Grounded() bool      { return p.grounded }
func (p *Player) FacingLeft() bool    { return p.facingLeft }
func (p *Player) Clip() string        { return p.set.Clip() }

// Call latches a jump request for the next update.
func (p *Player) Call(ev input.Event) {
	if ev.Key == input.KeyJump {
		p.jumpInput = true
	}
}

func (p *Player) Update(l *Level, dt float64) bool {
	cfg := l.cfg.Player
	b := p.body
	x, y, w, h := b.Bounds()
	self := collide.Query{Exclude: []*collide.Body{b}}
	touching := self
	touching.Mode = collide.NonStrict

	left := l.keyHeld(input.KeyLeft)
	right := l.keyHeld(input.KeyRight)
	down := l.keyHeld(input.KeyDown)
	accMod := 1.0

	grounded := l.world.CheckArea(x+1, y, w-2, h+1, self)
	// Walking off a ledge without steering drops straight down.
	if !grounded && p.wasGrounded && !p.jumping && (!(left || right) || down) {
		p.vel.X = 0
	}
	if grounded && p.jumping {
		p.jumping = false
	}

	if left {
		switch {
		case grounded:
			p.vel.X = -cfg.WalkSpeed
		case l.world.CheckArea(x, y+1, w-1, h-2, touching) && p.cds.Ready("airmove"):
			if p.vel.Y >= 0 {
				accMod = cfg.WallSlideMod
			}
			p.vel.X = 0
		default:
			p.acc.X = -cfg.AirAccel
		}
	}
	if right {
		switch {
		case grounded:
			p.vel.X = cfg.WalkSpeed
		case l.world.CheckArea(x+1, y+1, w-1, h-2, touching) && p.cds.Ready("airmove"):
			if p.vel.Y >= 0 {
				accMod = cfg.WallSlideMod
			}
			p.vel.X = 0
		default:
			p.acc.X = cfg.AirAccel
		}
	}
	if left == right {
		if grounded {
			p.vel.X = 0
		} else {
			p.acc.X = 0
		}
	}

	if p.jumpInput && p.jumps > 0 && p.cds.Ready("jump") {
		switch {
		case grounded:
			p.vel.Y = -cfg.JumpSpeed
			p.jumped(false)
		case l.world.CheckArea(x-1, y, w, h, self):
			p.vel = geom.V(cfg.WallJumpX, -cfg.WallJumpY)
			p.jumped(true)
		case l.world.CheckArea(x+1, y, w, h, self):
			p.vel = geom.V(-cfg.WallJumpX, -cfg.WallJumpY)
			p.jumped(true)
		}
	}

	if grounded {
		p.acc.X = 0
	}
	p.vel = p.vel.Add(p.acc.Scale(dt * accMod))
	if grounded {
		p.vel = p.vel.Cap(geom.V(cfg.TerminalX, cfg.TerminalY))
	} else {
		p.vel = p.vel.Cap(geom.V(cfg.AirTerminalX, cfg.AirTerminalY))
	}
	if p.vel.X > 0 {
		p.facingLeft = false
	} else if p.vel.X < 0 {
		p.facingLeft = true
	}

	dy := p.vel.Y * dt
	if _, okY := b.CleverMove(p.vel.X*dt, dy, collide.DefaultMove); !okY {
		p.vel.Y = 0
		if dy > 0 {
			p.jumps = cfg.MaxJumps
		}
	}
	p.jumpInput = false
	p.wasGrounded = grounded
	p.grounded = grounded

	traps := l.world.QueryArea(b.X(), b.Y(), w, h, collide.Query{
		Exclude:     []*collide.Body{b},
		Mode:        collide.NonStrict,
		Only:        []collide.Kind{KindTrap},
		IgnoreSolid: true,
		All:         true,
	})
	for _, tb := range traps {
		if d, ok := tb.Owner.(Damager); ok {
			kind, base := d.Damage()
			p.health -= l.trapDamage(kind, base, p.health)
		}
	}
	if p.health <= 0 {
		l.KillPlayer()
		return true
	}

	p.animate(grounded, accMod < 1)
	return false
}

func (p *Player) jumped(offWall bool) {
	p.acc.X = 0
	p.jumps--
	p.jumping = true
	p.cds.Start("jump")
	if offWall {
		p.cds.Start("airmove")
	}
}

func (p *Player) animate(grounded, hanging bool) {
	side := "right"
	if p.facingLeft {
		side = "left"
	}
	switch {
	case !grounded && hanging:
		// Hanging frames face away from the wall.
		if p.facingLeft {
			p.set.Loop("hang_right")
		} else {
			p.set.Loop("hang_left")
		}
	case !grounded:
		p.set.Loop("jump_" + side)
	case p.vel.X == 0:
		p.set.Loop("stand_" + side)
	default:
		p.set.Loop("walk_" + side)
	}
}

func (p *Player) Draw(t render.Target) { blit(t, p.set, p.body.X(), p.body.Y()) }
