package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, sub, name, src string) {
	t.Helper()
	p := filepath.Join(dir, sub)
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, name), []byte(src), 0o644))
}

func TestRepositoryScripts(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	gb := []int64{15000, 20000, 30000, 45000, 60000}
	assert.Equal(t, 0, e.CalcGrade(100, gb))
	assert.Equal(t, 1, e.CalcGrade(15000, gb))
	assert.Equal(t, 5, e.CalcGrade(70000, gb))
	assert.Equal(t, "B", e.Grade(25000, gb))

	assert.Equal(t, 1, e.CalcTrapDamage(TrapContext{Kind: "spike", Base: 1, Health: 1}))
	assert.Equal(t, 0, e.TrapDamage("saw", 1, 0))
	assert.Equal(t, 3, e.SkullLimit(3))
}

func TestFallbacksWithoutScripts(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 2, e.CalcGrade(25000, []int64{15000, 20000, 30000}))
	assert.Equal(t, 4, e.CalcTrapDamage(TrapContext{Base: 4, Health: 1}))
	assert.Equal(t, 3, e.SkullLimit(3))
}

func TestFallbackOnScriptError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "rules", "broken.lua", `
function calc_trap_damage(ctx) error("boom") end
function calc_grade(ms, gb) return "fast" end
function skull_limit(d) return 0 end
`)
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 2, e.CalcTrapDamage(TrapContext{Base: 2, Health: 5}))
	assert.Equal(t, 0, e.CalcGrade(1, []int64{10}))
	assert.Equal(t, 3, e.SkullLimit(3), "non-positive results are ignored")
}

func TestScriptOverrides(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "rules", "hard.lua", `
function calc_trap_damage(ctx)
  if ctx.kind == "saw" then return ctx.base * 2 end
  return ctx.base
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 2, e.TrapDamage("saw", 1, 1))
	assert.Equal(t, 1, e.TrapDamage("spike", 1, 1))
}

func TestSyntaxErrorFailsLoad(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "bad.lua", "function (")
	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}
