package event

// LevelFinished is emitted when the player reaches a finish line.
type LevelFinished struct {
	World  string
	Level  string
	TimeMS int64
	Deaths int
}

// PlayerKilled is emitted before the level restarts after a death.
type PlayerKilled struct {
	X, Y   float64
	Skulls int
	Deaths int
}

// DoorsChanged reports a button opening or closing a door group.
type DoorsChanged struct {
	DoorID int
	Open   bool
	Doors  int
}

// CheckpointReached is emitted once per new checkpoint.
type CheckpointReached struct {
	X, Y float64
}

// StateCycled reports a change of the level state observed by toggle walls.
type StateCycled struct {
	State int
}
