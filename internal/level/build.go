package level

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/skullrun/game/internal/geom"
	"github.com/skullrun/game/internal/layout"
)

// Layout image sets with behaviour. Any other set becomes a background tile.
const (
	setBlocks = "blocks"
	setSpawn  = "spawn"
	setSpikes = "spikes"
	setTurret = "turrets"
	setSaw    = "saw_block"
	setDoor   = "door"
	setButton = "button"
	setFlag   = "flag"
)

// sawPath collects the waypoints of one saw, indexed by saw_pos.
type sawPath struct {
	points []*geom.Vec
	speed  float64
	radius float64
}

// build creates every entity described by the layout. Problems are logged
// on the first build only, since restarts replay the same layout.
func (l *Level) build() {
	log := l.log
	if l.built {
		log = zap.NewNop()
	}
	l.built = true
	if l.layout == nil {
		return
	}
	tw, th := l.cfg.Game.TileWidth, l.cfg.Game.TileHeight
	l.mapW = float64(l.layout.Width) * tw
	l.mapH = float64(l.layout.Height) * th

	saws := make(map[string]*sawPath)
	for _, r := range l.layout.Records() {
		switch r.Set {
		case setBlocks:
			switch r.Frame {
			case 0:
				newWall(l, r.X, r.Y, 0)
			case 1, 2:
				newWall(l, r.X, r.Y, 1)
			default:
				newWall(l, r.X, r.Y, 2)
			}
		case setSpawn:
			if l.spawn == nil {
				x, y := l.tileOrigin(r.X, r.Y)
				l.spawn = &spawnPoint{pos: geom.V(x, y)}
			}
		case setSpikes:
			newSpike(l, r.X, r.Y)
		case setTurret:
			dir := Direction(r.Frame)
			if !dir.valid() {
				log.Warn("turret direction out of range", zap.Int("x", r.X), zap.Int("y", r.Y), zap.Int("frame", r.Frame))
				continue
			}
			newTurret(l, r.X, r.Y, dir, time.Duration(r.IntProp("offset", 0))*time.Millisecond)
		case setSaw:
			l.addSawPoint(saws, r, log)
		case setDoor:
			l.addDoor(newDoor(l, r.X, r.Y, doorDirection(r.Frame), r.IntProp("doorid", 0)))
		case setButton:
			dir, doorID := buttonFrame(r.Frame)
			newButton(l, r.X, r.Y, dir, doorID, r.BoolProp("button lock"))
		case setFlag:
			switch r.Frame {
			case 0:
				newFlag(l, r.X, r.Y, false)
			case 1:
				newFlag(l, r.X, r.Y, true)
			default:
				log.Warn("unknown flag", zap.Int("x", r.X), zap.Int("y", r.Y), zap.Int("frame", r.Frame))
			}
		default:
			newBackground(l, r.X, r.Y, r.Frame)
		}
	}

	ids := make([]string, 0, len(saws))
	for id := range saws {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		sp := saws[id]
		path := make([]geom.Vec, 0, len(sp.points))
		for _, pt := range sp.points {
			if pt == nil {
				break
			}
			path = append(path, *pt)
		}
		if len(path) != len(sp.points) {
			log.Warn("saw path incomplete", zap.String("saw_id", id), zap.Int("have", len(path)), zap.Int("want", len(sp.points)))
			continue
		}
		newSaw(l, path, sp.speed, sp.radius)
	}
}

func (l *Level) addSawPoint(saws map[string]*sawPath, r *layout.Record, log *zap.Logger) {
	id, ok := r.Prop("saw_id")
	if !ok {
		log.Warn("saw block without saw_id", zap.Int("x", r.X), zap.Int("y", r.Y))
		return
	}
	sp := saws[id]
	if sp == nil {
		n := r.IntProp("path_length", 0)
		if n <= 0 {
			log.Warn("saw path length must be positive", zap.String("saw_id", id), zap.Int("path_length", n))
			return
		}
		sp = &sawPath{
			points: make([]*geom.Vec, n),
			speed:  float64(r.IntProp("speed", int(l.cfg.Hazards.SawSpeed))),
			radius: float64(r.IntProp("radius", int(l.cfg.Hazards.SawRadius))),
		}
		saws[id] = sp
	}
	pos := r.IntProp("saw_pos", -1)
	if pos < 0 || pos >= len(sp.points) {
		log.Warn("saw position out of range", zap.String("saw_id", id), zap.Int("saw_pos", pos))
		return
	}
	tw, th := l.cfg.Game.TileWidth, l.cfg.Game.TileHeight
	x, y := l.tileOrigin(r.X, r.Y)
	c := geom.V(x+math.Floor(tw/2), y+math.Floor(th/2))
	sp.points[pos] = &c
}

// doorDirection maps a door frame id to the side of the tile it covers.
func doorDirection(frame int) Direction {
	switch frame {
	case 0:
		return Left
	case 1:
		return Right
	case 2:
		return Up
	}
	return Down
}

// buttonFrame splits a button frame id into its direction and door id.
// Frames come in groups of twenty per direction, two per door.
func buttonFrame(frame int) (Direction, int) {
	raw := frame / 20
	dir := Up
	switch raw {
	case 1:
		dir = Down
	case 2:
		dir = Right
	case 3:
		dir = Left
	}
	return dir, (frame - raw*20) / 2
}
