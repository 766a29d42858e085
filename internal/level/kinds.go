package level

import "github.com/skullrun/game/internal/collide"

// Body kinds used by queries and movement filters.
const (
	KindTile       collide.Kind = "tile"
	KindWall       collide.Kind = "wall"
	KindToggleWall collide.Kind = "toggle_wall"
	KindTurret     collide.Kind = "turret"
	KindDoor       collide.Kind = "door"
	KindButton     collide.Kind = "button"
	KindTrap       collide.Kind = "trap"
	KindCheckpoint collide.Kind = "checkpoint"
	KindBackground collide.Kind = "background"
	KindSkull      collide.Kind = "skull"
	KindPlayer     collide.Kind = "player"
)

// Direction is a facing for doors, buttons and turrets.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "unknown"
}

func (d Direction) valid() bool { return d >= Up && d <= Left }
