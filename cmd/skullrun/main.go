package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/skullrun/game/internal/anim"
	"github.com/skullrun/game/internal/config"
	"github.com/skullrun/game/internal/core/event"
	coresys "github.com/skullrun/game/internal/core/system"
	"github.com/skullrun/game/internal/data"
	"github.com/skullrun/game/internal/layout"
	"github.com/skullrun/game/internal/level"
	"github.com/skullrun/game/internal/persist"
	"github.com/skullrun/game/internal/scripting"
	"github.com/skullrun/game/internal/system"
	"github.com/skullrun/game/internal/term"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// store bundles the record backend chosen at startup.
type store struct {
	records persist.Records
	runs    *persist.RunBuffer
	close   func()
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*store, error) {
	if cfg.Database.DSN == "" {
		fr, err := persist.OpenFileRecords(cfg.Data.SaveFile, log)
		if err != nil {
			return nil, err
		}
		return &store{records: fr, close: func() {}}, nil
	}

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := persist.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return &store{
		records: persist.NewRecordRepo(db),
		runs:    persist.NewRunBuffer(persist.NewRunRepo(db)),
		close:   db.Close,
	}, nil
}

// pickLevel resolves "[world [level]]" arguments against the catalog,
// defaulting to the first level of the first world.
func pickLevel(cat *data.Catalog, args []string) (data.RecordKey, *data.LevelInfo, error) {
	worlds := cat.Worlds()
	if len(worlds) == 0 || len(worlds[0].Levels) == 0 {
		return data.RecordKey{}, nil, errors.New("catalog has no levels")
	}
	world := worlds[0].Name
	if len(args) > 0 {
		world = args[0]
	}
	w, err := cat.World(world)
	if err != nil {
		return data.RecordKey{}, nil, err
	}
	if len(w.Levels) == 0 {
		return data.RecordKey{}, nil, fmt.Errorf("world %q has no levels: %w", w.Name, data.ErrUnknownLevel)
	}
	name := w.Levels[0].Name
	if len(args) > 1 {
		name = args[1]
	}
	key := data.NewRecordKey(w.Name, name)
	info, err := cat.Level(key)
	if err != nil {
		return data.RecordKey{}, nil, err
	}
	return key, info, nil
}

func run(args []string) error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("SKULLRUN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Record store: PostgreSQL when configured, the save file otherwise
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("records: %w", err)
	}
	defer st.close()

	// 4. Data tables
	cat, err := data.LoadCatalog(cfg.Data.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	key, info, err := pickLevel(cat, args)
	if err != nil {
		return fmt.Errorf("pick level: %w", err)
	}

	clock := &anim.Clock{}
	anims, err := data.LoadAnimations(cfg.Data.Animations, clock)
	if err != nil {
		return fmt.Errorf("load animations: %w", err)
	}

	// 5. Lua rules
	lua, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer lua.Close()
	cfg.Game.SkullLimit = lua.SkullLimit(cfg.Game.SkullLimit)

	lay, err := layout.Load(filepath.Join(cfg.Data.LevelsDir, info.Map), log)
	if err != nil {
		return fmt.Errorf("load level %s: %w", key, err)
	}
	log.Info("level loaded",
		zap.Stringer("key", key), zap.Int("records", lay.Len()),
		zap.Int("levels", cat.Count()), zap.Int("anim_sets", anims.Len()))

	// 6. Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	// 7. Level and systems
	bus := event.NewBus()
	keys := term.NewKeys(cfg.Terminal.KeyHold)
	view := term.NewView(screen, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight, term.DefaultPalette())
	lv := level.New(level.Deps{
		Log:    log,
		Config: cfg,
		Anims:  anims,
		Input:  keys,
		Bus:    bus,
		Damage: lua.TrapDamage,
	}, key, lay)

	persistSys := system.NewPersistenceSystem(st.records, st.runs, log, int(time.Minute/cfg.Game.FrameTime))
	event.Subscribe(bus, persistSys.OnFinished)
	event.Subscribe(bus, func(ev event.LevelFinished) {
		log.Info("grade",
			zap.String("time", data.FormatTime(ev.TimeMS)),
			zap.String("grade", lua.Grade(ev.TimeMS, info.Grades)))
	})

	quit := make(chan struct{})
	var quitOnce sync.Once
	inputSys := system.NewInputSystem(events, keys, lv, 64, log)
	inputSys.OnQuit(func() { quitOnce.Do(func() { close(quit) }) })
	inputSys.OnResize(screen.Sync)

	runner := coresys.NewRunner()
	runner.Register(inputSys)
	runner.Register(system.NewEventSystem(bus))
	runner.Register(system.NewPlaySystem(lv, view, log))
	runner.Register(system.NewOutputSystem(lv, view))
	runner.Register(persistSys)

	// 8. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.FrameTime)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			runner.Tick(now.Sub(last))
			last = now
		case <-quit:
			bus.Flush()
			persistSys.FlushRuns()
			log.Info("game stopped", zap.Int("deaths", lv.Deaths()))
			return nil
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			bus.Flush()
			persistSys.FlushRuns()
			return nil
		}
	}
}

// newLogger builds the process logger. The terminal is owned by the game,
// so output goes to the configured file, or nowhere when none is set.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	zapCfg.OutputPaths = []string{cfg.File}
	zapCfg.ErrorOutputPaths = []string{cfg.File}

	return zapCfg.Build()
}
