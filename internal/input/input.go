// Package input carries key state from the front end into the simulation.
package input

// Key is a logical game key, independent of the physical binding.
type Key uint8

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyDown
	KeyJump
	KeyToggle
	KeyRestart
	KeyPause
	KeyQuit
)

var keyNames = [...]string{"none", "left", "right", "down", "jump", "toggle", "restart", "pause", "quit"}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// Provider exposes the held state of every key for the current frame.
type Provider interface {
	Held(k Key) bool
}

// State is a Provider backed by a map. The zero value has nothing held.
type State map[Key]bool

func (s State) Held(k Key) bool { return s[k] }

// Event is a discrete key press.
type Event struct {
	Key Key
}

// Hook receives key presses.
type Hook interface {
	Call(ev Event)
}

// HookFunc adapts a function to Hook. Function hooks cannot be passed to
// Remove; use Clear or a pointer type instead.
type HookFunc func(ev Event)

func (f HookFunc) Call(ev Event) { f(ev) }

// Hooks is an ordered observer list. Hooks are called in registration order.
type Hooks struct {
	list []Hook
}

func (h *Hooks) Add(hook Hook) {
	h.list = append(h.list, hook)
}

// Remove drops every registration of hook.
func (h *Hooks) Remove(hook Hook) {
	out := h.list[:0]
	for _, x := range h.list {
		if x != hook {
			out = append(out, x)
		}
	}
	clear(h.list[len(out):])
	h.list = out
}

func (h *Hooks) Clear() {
	clear(h.list)
	h.list = h.list[:0]
}

func (h *Hooks) Len() int { return len(h.list) }

// Dispatch delivers ev to a snapshot of the current hooks, so a hook may
// add or remove registrations while being called.
func (h *Hooks) Dispatch(ev Event) {
	snap := make([]Hook, len(h.list))
	copy(snap, h.list)
	for _, hook := range snap {
		hook.Call(ev)
	}
}
