package level

import (
	"fmt"
	"strconv"

	"github.com/skullrun/game/internal/anim"
	"github.com/skullrun/game/internal/collide"
	"github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/render"
)

func blit(t render.Target, s *anim.Set, x, y float64) {
	if f, ok := s.Current(); ok {
		t.Blit(f, x, y)
	}
}

func (l *Level) tileOrigin(tx, ty int) (float64, float64) {
	return float64(tx) * l.cfg.Game.TileWidth, float64(ty) * l.cfg.Game.TileHeight
}

// Background is a decorative tile. Its body sits off-map with no size so it
// never takes part in collisions.
type Background struct {
	body *collide.Body
	set  *anim.Set
	x, y float64
}

func newBackground(l *Level, tx, ty, frame int) *Background {
	b := l.world.NewRect(KindBackground, int(system.PriorityTile), -100, -100, 0, 0)
	b.Solid = false
	x, y := l.tileOrigin(tx, ty)
	bg := &Background{body: b, set: l.anims.Set("background").Loop(strconv.Itoa(frame)), x: x, y: y}
	b.Owner = bg
	return bg
}

func (bg *Background) Update(*Level, float64) bool { return false }
func (bg *Background) Draw(t render.Target)        { blit(t, bg.set, bg.x, bg.y) }

// Wall is a solid block. Walls with a non-zero tile id toggle: they are
// solid only while the level state equals their id.
type Wall struct {
	body      *collide.Body
	set       *anim.Set
	tileID    int
	lastState int
}

var wallSets = [...]string{"black_block", "red_block", "green_block"}

func newWall(l *Level, tx, ty, tileID int) *Wall {
	kind := KindWall
	if tileID == 1 || tileID == 2 {
		kind = KindToggleWall
	} else {
		tileID = 0
	}
	x, y := l.tileOrigin(tx, ty)
	b := l.world.NewRect(kind, int(system.PriorityWall), x, y, l.cfg.Game.TileWidth, l.cfg.Game.TileHeight)
	w := &Wall{body: b, set: l.anims.Set(wallSets[tileID]).Loop("on"), tileID: tileID, lastState: l.state}
	b.Owner = w
	return w
}

func (w *Wall) Body() *collide.Body { return w.body }

// Update flips a toggle wall when the level state changes. Turning solid on
// top of the player kills it and ends the bucket for this frame.
func (w *Wall) Update(l *Level, _ float64) bool {
	if w.tileID == 0 || l.state == w.lastState {
		return false
	}
	w.lastState = l.state
	if l.state != w.tileID {
		w.set.Loop("off")
		w.body.Solid = false
		return false
	}
	w.set.Loop("on")
	w.body.Solid = true
	if p := l.player; p != nil && w.body.Collides(p.body, collide.Strict, false) {
		l.KillPlayer()
		return true
	}
	return false
}

func (w *Wall) Draw(t render.Target) { blit(t, w.set, w.body.X(), w.body.Y()) }

// Door blocks its side of a tile while closed. Doors sharing an id open and
// close together.
type Door struct {
	body   *collide.Body
	set    *anim.Set
	lock   *anim.Set
	dir    Direction
	doorID int
	open   bool
	x, y   float64
	lockX  float64
	lockY  float64
}

func newDoor(l *Level, tx, ty int, dir Direction, doorID int) *Door {
	tw, th := l.cfg.Game.TileWidth, l.cfg.Game.TileHeight
	thick := l.cfg.Hazards.DoorThickness
	bx, by, bw, bh := 0.0, 0.0, tw, thick
	switch dir {
	case Right:
		bx, bw, bh = tw-thick, thick, th
	case Down:
		by = th - thick
	case Left:
		bw, bh = thick, th
	}
	x, y := l.tileOrigin(tx, ty)
	b := l.world.NewRect(KindDoor, int(system.PriorityWall), x+bx, y+by, bw, bh)
	d := &Door{
		body:   b,
		set:    l.anims.Set("door").Loop(fmt.Sprintf("closed_%d", dir)),
		lock:   l.anims.Set("lock").Loop(strconv.Itoa(doorID)),
		dir:    dir,
		doorID: doorID,
		x:      x,
		y:      y,
	}
	if dir == Right || dir == Left {
		d.lockX, d.lockY = bx+3, by+11
	} else {
		d.lockX, d.lockY = bx+13, by+1
	}
	b.Owner = d
	return d
}

func (d *Door) Body() *collide.Body { return d.body }
func (d *Door) Open() bool          { return d.open }
func (d *Door) ID() int             { return d.doorID }

func (d *Door) setOpen(open bool) {
	d.open = open
	d.body.Solid = !open
	if open {
		d.set.Loop(fmt.Sprintf("open_%d", d.dir))
	} else {
		d.set.Loop(fmt.Sprintf("closed_%d", d.dir))
	}
}

func (d *Door) Update(*Level, float64) bool { return false }

func (d *Door) Draw(t render.Target) {
	blit(t, d.set, d.x, d.y)
	if !d.open {
		blit(t, d.lock, d.x+d.lockX, d.y+d.lockY)
	}
}

// Button watches a press zone in front of its plate. A player or skull in
// the zone opens the button's doors; leaving it closes them again unless
// the button locks.
type Button struct {
	body    *collide.Body
	set     *anim.Set
	dir     Direction
	doorID  int
	lock    bool
	pressed bool
	x, y    float64
	zone    [4]float64
}

func newButton(l *Level, tx, ty int, dir Direction, doorID int, lock bool) *Button {
	tw, th := l.cfg.Game.TileWidth, l.cfg.Game.TileHeight
	depth, press := l.cfg.Hazards.ButtonDepth, l.cfg.Hazards.PressDepth
	x, y := l.tileOrigin(tx, ty)

	bounds := [4]float64{0, th - depth, tw, depth}
	zone := [4]float64{x, y + th - press, tw, press}
	switch dir {
	case Right:
		bounds = [4]float64{0, 0, depth, th}
		zone = [4]float64{x, y, press, th}
	case Down:
		bounds = [4]float64{0, 0, tw, depth}
		zone = [4]float64{x, y, tw, press}
	case Left:
		bounds = [4]float64{tw - depth, 0, depth, th}
		zone = [4]float64{x + tw - press, y, press, th}
	}
	b := l.world.NewRect(KindButton, int(system.PriorityWall), x+bounds[0], y+bounds[1], bounds[2], bounds[3])
	b.Solid = false
	bt := &Button{
		body:   b,
		set:    l.anims.Set("button"),
		dir:    dir,
		doorID: doorID,
		lock:   lock,
		x:      x,
		y:      y,
		zone:   zone,
	}
	bt.set.Loop(bt.clip("up"))
	b.Owner = bt
	return bt
}

func (bt *Button) clip(state string) string {
	return fmt.Sprintf("%s_%d_%d", state, bt.dir, bt.doorID)
}

func (bt *Button) Pressed() bool { return bt.pressed }

var pressers = []collide.Kind{KindPlayer, KindSkull}

// Update acts on transitions only. A locked button stays down once pressed.
func (bt *Button) Update(l *Level, _ float64) bool {
	if bt.pressed && bt.lock {
		return false
	}
	z := bt.zone
	down := l.world.CheckArea(z[0], z[1], z[2], z[3], collide.Query{Only: pressers, IgnoreSolid: true})
	if down == bt.pressed {
		return false
	}
	bt.pressed = down
	if down {
		bt.set.Loop(bt.clip("down"))
		l.OpenDoors(bt.doorID)
	} else {
		bt.set.Loop(bt.clip("up"))
		l.CloseDoors(bt.doorID)
	}
	return false
}

func (bt *Button) Draw(t render.Target) { blit(t, bt.set, bt.x, bt.y) }
