package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/level"
	"github.com/skullrun/game/internal/term"
)

// PlaySystem simulates and draws one level frame. The camera follows the
// player's position from the previous frame. Phase 2 (Update).
type PlaySystem struct {
	level *level.Level
	view  *term.View
	log   *zap.Logger
}

func NewPlaySystem(lv *level.Level, view *term.View, log *zap.Logger) *PlaySystem {
	return &PlaySystem{level: lv, view: view, log: log}
}

func (s *PlaySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *PlaySystem) Update(dt time.Duration) {
	if p := s.level.Player(); p != nil {
		x, y := p.Body().Centre()
		w, h := s.level.Size()
		s.view.Follow(x, y, w, h)
	}
	s.view.Begin()
	st := s.level.Tick(dt, s.view)
	if st.Halted > 0 {
		s.log.Debug("frame halted early", zap.Uint64("frame", st.Frame), zap.Int("buckets", st.Halted))
	}
}
