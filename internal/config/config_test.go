package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "game.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadLayersOverDefaults(t *testing.T) {
	p := writeConfig(t, `
[game]
skull_limit = 5
frame_time = "20ms"

[player]
walk_speed = 250
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Game.SkullLimit)
	assert.Equal(t, 20*time.Millisecond, cfg.Game.FrameTime)
	assert.Equal(t, 250.0, cfg.Player.WalkSpeed)

	// Untouched values keep their defaults.
	assert.Equal(t, 32.0, cfg.Game.TileWidth)
	assert.Equal(t, 370.0, cfg.Player.JumpSpeed)
	assert.Equal(t, 750*time.Millisecond, cfg.Hazards.TurretInterval)
}

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "game.toml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Database.DSN)
	assert.Equal(t, "data/save.jsv", cfg.Data.SaveFile)
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "[game]\nskull_limit = 0\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[game]\ntile_width = -1\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "not toml ["))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
