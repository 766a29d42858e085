package anim

// Library holds every named animation set. Each entity gets its own Set
// instance so that clip state is never shared.
type Library struct {
	clock *Clock
	sets  map[string]map[string]Clip
}

func NewLibrary(clock *Clock) *Library {
	return &Library{
		clock: clock,
		sets:  make(map[string]map[string]Clip, 16),
	}
}

// Define adds or replaces a set.
func (l *Library) Define(set string, clips map[string]Clip) {
	l.sets[set] = clips
}

// Set returns a fresh instance of the named set. An unknown name yields an
// empty set whose Loop and Play calls do nothing.
func (l *Library) Set(name string) *Set {
	return &Set{clock: l.clock, clips: l.sets[name]}
}

// Clock returns the clock shared by every set of this library.
func (l *Library) Clock() *Clock { return l.clock }

// Len returns the number of defined sets.
func (l *Library) Len() int { return len(l.sets) }
