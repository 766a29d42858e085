package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skullrun/game/internal/core/event"
	coresys "github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/data"
	"github.com/skullrun/game/internal/input"
	"github.com/skullrun/game/internal/layout"
	"github.com/skullrun/game/internal/level"
	"github.com/skullrun/game/internal/persist"
	"github.com/skullrun/game/internal/term"
)

type keyLog struct{ keys []input.Key }

func (k *keyLog) HandleKey(ev input.Event) { k.keys = append(k.keys, ev.Key) }

func TestInputSystemTranslatesAndLimits(t *testing.T) {
	events := make(chan tcell.Event, 8)
	events <- tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)
	events <- tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)
	events <- tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	events <- tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone)

	keys := term.NewKeys(time.Second)
	target := &keyLog{}
	s := NewInputSystem(events, keys, target, 3, zap.NewNop())

	s.Update(0)
	assert.Equal(t, []input.Key{input.KeyLeft, input.KeyJump}, target.keys)
	assert.True(t, keys.Held(input.KeyLeft))
	assert.Len(t, events, 1)

	s.Update(0)
	assert.Equal(t, input.KeyToggle, target.keys[2])
	s.Update(0)
}

func TestInputSystemQuitAndResize(t *testing.T) {
	events := make(chan tcell.Event, 4)
	target := &keyLog{}
	s := NewInputSystem(events, term.NewKeys(time.Second), target, 10, zap.NewNop())
	quit, resized := false, false
	s.OnQuit(func() { quit = true })
	s.OnResize(func() { resized = true })

	events <- tcell.NewEventResize(80, 24)
	events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	s.Update(0)
	assert.True(t, quit)
	assert.True(t, resized)
	assert.Empty(t, target.keys, "quit is not forwarded to the level")
}

func TestEventSystemDeliversPreviousFrame(t *testing.T) {
	bus := event.NewBus()
	var got []int
	event.Subscribe(bus, func(e event.StateCycled) { got = append(got, e.State) })
	s := NewEventSystem(bus)

	event.Emit(bus, event.StateCycled{State: 2})
	assert.Empty(t, got)
	s.Update(0)
	assert.Equal(t, []int{2}, got)
	s.Update(0)
	assert.Equal(t, []int{2}, got)
}

type failingWriter struct {
	fail  bool
	wrote []persist.Run
}

func (w *failingWriter) WriteRuns(_ context.Context, runs []persist.Run) error {
	if w.fail {
		return errors.New("db down")
	}
	w.wrote = append(w.wrote, runs...)
	return nil
}

func TestPersistenceSystemRecordsAndFlushes(t *testing.T) {
	records := persist.NewMemoryRecords()
	w := &failingWriter{fail: true}
	runs := persist.NewRunBuffer(w)
	s := NewPersistenceSystem(records, runs, zap.NewNop(), 2)

	s.OnFinished(event.LevelFinished{World: "Crypt", Level: "One", TimeMS: 9000, Deaths: 2})
	s.OnFinished(event.LevelFinished{World: "Crypt", Level: "One", TimeMS: 9500, Deaths: 0})

	key := data.NewRecordKey("Crypt", "One")
	best, ok, err := records.Best(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(9000), best)

	s.Update(0)
	s.Update(0)
	assert.Equal(t, 2, runs.Pending(), "failed flush keeps runs")

	w.fail = false
	s.Update(0)
	assert.Equal(t, 2, runs.Pending(), "flush waits for the interval")
	s.Update(0)
	assert.Zero(t, runs.Pending())
	require.Len(t, w.wrote, 2)
	assert.Equal(t, 2, w.wrote[0].Deaths)
}

func TestPersistenceSystemWithoutRunHistory(t *testing.T) {
	s := NewPersistenceSystem(persist.NewMemoryRecords(), nil, zap.NewNop(), 1)
	s.OnFinished(event.LevelFinished{World: "w", Level: "l", TimeMS: 1})
	s.Update(0)
	s.FlushRuns()
}

func TestPhasesOrderOuterLoop(t *testing.T) {
	lv := level.New(level.Deps{}, data.NewRecordKey("Crypt", "One"), layout.New(4, 4))
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 10)
	view := term.NewView(screen, 16, 32, nil)

	r := coresys.NewRunner()
	r.Register(NewOutputSystem(lv, view))
	r.Register(NewPersistenceSystem(persist.NewMemoryRecords(), nil, zap.NewNop(), 1))
	r.Register(NewPlaySystem(lv, view, zap.NewNop()))
	r.Register(NewEventSystem(event.NewBus()))
	r.Register(NewInputSystem(make(chan tcell.Event), term.NewKeys(time.Second), lv, 4, zap.NewNop()))
	r.Tick(16 * time.Millisecond)

	assert.Equal(t, 16*time.Millisecond, lv.Elapsed())
	ch, _, _, _ := screen.GetContent(1, 9)
	assert.Equal(t, 'C', ch, "status line starts with the world name")
}

func TestStatusLine(t *testing.T) {
	lv := level.New(level.Deps{}, data.NewRecordKey("Crypt", "One"), layout.New(2, 2))
	assert.Contains(t, StatusLine(lv), "Crypt / One")
	assert.Contains(t, StatusLine(lv), "0:00.000")
	lv.SetPaused(true)
	assert.Contains(t, StatusLine(lv), "PAUSED")
}
