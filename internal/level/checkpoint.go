package level

import (
	"github.com/skullrun/game/internal/anim"
	"github.com/skullrun/game/internal/collide"
	"github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/render"
)

// Flag poles are drawn inset within their tile.
const (
	flagInsetX = 8
	flagInsetY = 6
	flagWidth  = 16
	flagHeight = 26
)

// Checkpoint moves the spawn point to wherever the player first touches it.
type Checkpoint struct {
	body   *collide.Body
	set    *anim.Set
	tx, ty int
	finish bool
}

func newFlag(l *Level, tx, ty int, finish bool) *Checkpoint {
	x, y := l.tileOrigin(tx, ty)
	b := l.world.NewRect(KindCheckpoint, int(system.PriorityCheckpoint), x+flagInsetX, y+flagInsetY, flagWidth, flagHeight)
	b.Solid = false
	set := "checkpoint"
	if finish {
		set = "finishline"
	}
	c := &Checkpoint{body: b, set: l.anims.Set(set).Loop("on"), tx: tx, ty: ty, finish: finish}
	b.Owner = c
	return c
}

func (c *Checkpoint) Body() *collide.Body { return c.body }

// Finish reports whether this is the level's finish line.
func (c *Checkpoint) Finish() bool { return c.finish }

func (c *Checkpoint) Update(l *Level, _ float64) bool {
	x, y, w, h := c.body.Bounds()
	if !l.world.CheckArea(x, y, w, h, collide.Query{Only: []collide.Kind{KindPlayer}}) {
		return false
	}
	if c.finish {
		l.Finish()
	} else {
		l.SetSpawn(c)
	}
	return false
}

func (c *Checkpoint) Draw(t render.Target) { blit(t, c.set, c.body.X(), c.body.Y()) }
