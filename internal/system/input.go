package system

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	coresys "github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/input"
	"github.com/skullrun/game/internal/term"
)

// KeyHandler receives translated key presses.
type KeyHandler interface {
	HandleKey(ev input.Event)
}

// InputSystem drains terminal events queued by the poll goroutine and turns
// key presses into game keys. Phase 0 (Input).
type InputSystem struct {
	events     <-chan tcell.Event
	keys       *term.Keys
	target     KeyHandler
	maxPerTick int
	quit       func()
	resize     func()
	log        *zap.Logger
}

func NewInputSystem(events <-chan tcell.Event, keys *term.Keys, target KeyHandler, maxPerTick int, log *zap.Logger) *InputSystem {
	return &InputSystem{
		events:     events,
		keys:       keys,
		target:     target,
		maxPerTick: maxPerTick,
		quit:       func() {},
		resize:     func() {},
		log:        log,
	}
}

// OnQuit sets the callback run when the quit key is pressed.
func (s *InputSystem) OnQuit(fn func()) { s.quit = fn }

// OnResize sets the callback run when the terminal changes size.
func (s *InputSystem) OnResize(fn func()) { s.resize = fn }

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for i := 0; i < s.maxPerTick; i++ {
		select {
		case ev := <-s.events:
			s.handle(ev)
		default:
			return
		}
	}
}

func (s *InputSystem) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k := term.Translate(ev)
		if k == input.KeyNone {
			return
		}
		s.keys.Press(k)
		if k == input.KeyQuit {
			s.log.Info("quit requested")
			s.quit()
			return
		}
		s.target.HandleKey(input.Event{Key: k})
	case *tcell.EventResize:
		s.resize()
	}
}
