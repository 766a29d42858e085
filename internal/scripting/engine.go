package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/skullrun/game/internal/data"
)

// Engine wraps a single gopher-lua VM for tunable game formulas.
// Single-goroutine access only (game loop). Every formula has a Go fallback
// used when the script is missing or fails.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Core helpers first, then rule scripts that may use them.
	for _, sub := range []string{"core", "rules"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// TrapContext is passed to calc_trap_damage.
type TrapContext struct {
	Kind   string // "spike", "bullet", "saw"
	Base   int
	Health int
}

// CalcTrapDamage calls the Lua calc_trap_damage function. Falls back to the
// trap's base damage.
func (e *Engine) CalcTrapDamage(ctx TrapContext) int {
	fn := e.vm.GetGlobal("calc_trap_damage")
	if fn == lua.LNil {
		return ctx.Base
	}

	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(ctx.Kind))
	t.RawSetString("base", lua.LNumber(ctx.Base))
	t.RawSetString("health", lua.LNumber(ctx.Health))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_trap_damage error", zap.Error(err))
		return ctx.Base
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_trap_damage returned non-number", zap.String("type", result.Type().String()))
		return ctx.Base
	}
	return int(n)
}

// TrapDamage adapts CalcTrapDamage to the level's damage hook.
func (e *Engine) TrapDamage(kind string, base, health int) int {
	return e.CalcTrapDamage(TrapContext{Kind: kind, Base: base, Health: health})
}

// CalcGrade returns the grade index for a time. The script receives the time
// and a 1-based array of boundaries and returns a 0-based index.
func (e *Engine) CalcGrade(ms int64, boundaries []int64) int {
	fallback := data.GradeIndex(ms, boundaries)
	fn := e.vm.GetGlobal("calc_grade")
	if fn == lua.LNil {
		return fallback
	}

	gb := e.vm.NewTable()
	for _, b := range boundaries {
		gb.Append(lua.LNumber(b))
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(ms), gb); err != nil {
		e.log.Error("lua calc_grade error", zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_grade returned non-number")
		return fallback
	}
	return int(n)
}

// Grade returns the letter for a time.
func (e *Engine) Grade(ms int64, boundaries []int64) string {
	return data.GradeLetter(e.CalcGrade(ms, boundaries), len(boundaries))
}

// callIntFunc calls a Lua function with int args and returns an int result.
// ok is false when the function is missing or fails.
func (e *Engine) callIntFunc(name string, args ...int) (int, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, false
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result)), true
}

// SkullLimit asks the optional skull_limit script how many skulls a level
// keeps, falling back to def.
func (e *Engine) SkullLimit(def int) int {
	if n, ok := e.callIntFunc("skull_limit", def); ok && n > 0 {
		return n
	}
	return def
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
