package system

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	coresys "github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/data"
	"github.com/skullrun/game/internal/level"
	"github.com/skullrun/game/internal/term"
)

var (
	hudStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	doneStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLime)
)

// OutputSystem draws the status line and presents the frame. Phase 3 (Output).
type OutputSystem struct {
	level *level.Level
	view  *term.View
}

func NewOutputSystem(lv *level.Level, view *term.View) *OutputSystem {
	return &OutputSystem{level: lv, view: view}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.view.Status(StatusLine(s.level), s.style())
	s.view.Show()
}

func (s *OutputSystem) style() tcell.Style {
	if s.level.Finished() {
		return doneStyle
	}
	return hudStyle
}

// StatusLine summarises a level for the bottom row.
func StatusLine(lv *level.Level) string {
	key := lv.Key()
	line := fmt.Sprintf(" %s / %s  %s  deaths %d  skulls %d  state %d ",
		key.World, key.Level, data.FormatTime(lv.Elapsed().Milliseconds()),
		lv.Deaths(), len(lv.Skulls()), lv.State())
	switch {
	case lv.Finished():
		line += " FINISHED (q to quit)"
	case lv.Paused():
		line += " PAUSED"
	}
	return line
}
