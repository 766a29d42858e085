// Package term is the terminal front end: key translation, held-key
// tracking and a character-cell render target with a following camera.
package term

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/skullrun/game/internal/input"
)

// Translate maps a terminal key event to a game key.
func Translate(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyUp:
		return input.KeyJump
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.KeyQuit
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'a':
			return input.KeyLeft
		case 'd':
			return input.KeyRight
		case 's':
			return input.KeyDown
		case 'w', ' ':
			return input.KeyJump
		case 't':
			return input.KeyToggle
		case 'r':
			return input.KeyRestart
		case 'p':
			return input.KeyPause
		case 'q':
			return input.KeyQuit
		}
	}
	return input.KeyNone
}

// Keys tracks held keys. Terminals report presses and auto-repeat but never
// releases, so a key stays held until Hold passes without another press.
// Not safe for concurrent use.
type Keys struct {
	hold time.Duration
	now  func() time.Time
	last map[input.Key]time.Time
}

func NewKeys(hold time.Duration) *Keys {
	return &Keys{
		hold: hold,
		now:  time.Now,
		last: make(map[input.Key]time.Time, 8),
	}
}

// Press records a press or repeat of k.
func (k *Keys) Press(key input.Key) {
	if key == input.KeyNone {
		return
	}
	k.last[key] = k.now()
}

// Release forgets k immediately.
func (k *Keys) Release(key input.Key) { delete(k.last, key) }

func (k *Keys) Held(key input.Key) bool {
	t, ok := k.last[key]
	return ok && k.now().Sub(t) < k.hold
}
