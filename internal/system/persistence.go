package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/skullrun/game/internal/core/event"
	coresys "github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/data"
	"github.com/skullrun/game/internal/persist"
)

// PersistenceSystem stores finished levels: best times go to the record
// store as soon as they arrive, and run history is flushed in batches every
// interval ticks. Phase 4 (Persist).
type PersistenceSystem struct {
	records   persist.Records
	runs      *persist.RunBuffer
	timeout   time.Duration
	log       *zap.Logger
	tickCount int
	interval  int // flush every N ticks
}

// NewPersistenceSystem builds the system. runs may be nil when no run
// history is kept.
func NewPersistenceSystem(records persist.Records, runs *persist.RunBuffer, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	return &PersistenceSystem{
		records:  records,
		runs:     runs,
		timeout:  5 * time.Second,
		log:      log,
		interval: intervalTicks,
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.FlushRuns()
}

// OnFinished submits a completion time. Subscribe it to event.LevelFinished.
func (s *PersistenceSystem) OnFinished(ev event.LevelFinished) {
	key := data.NewRecordKey(ev.World, ev.Level)
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	improved, err := s.records.Submit(ctx, key, ev.TimeMS)
	if err != nil {
		s.log.Error("submit record", zap.Stringer("key", key), zap.Error(err))
	} else if improved {
		s.log.Info("new best time", zap.Stringer("key", key), zap.Int64("time_ms", ev.TimeMS))
	}
	if s.runs != nil {
		s.runs.Add(persist.Run{Key: key, TimeMS: ev.TimeMS, Deaths: ev.Deaths})
	}
}

// FlushRuns writes buffered runs now. Called on shutdown as well.
func (s *PersistenceSystem) FlushRuns() {
	if s.runs == nil || s.runs.Pending() == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	n := s.runs.Pending()
	if err := s.runs.Flush(ctx); err != nil {
		s.log.Error("flush runs", zap.Int("pending", n), zap.Error(err))
		return
	}
	s.log.Debug("runs flushed", zap.Int("count", n))
}
