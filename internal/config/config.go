package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game     GameConfig     `toml:"game"`
	Player   PlayerConfig   `toml:"player"`
	Skull    SkullConfig    `toml:"skull"`
	Hazards  HazardsConfig  `toml:"hazards"`
	Database DatabaseConfig `toml:"database"`
	Data     DataConfig     `toml:"data"`
	Terminal TerminalConfig `toml:"terminal"`
	Logging  LoggingConfig  `toml:"logging"`
}

type GameConfig struct {
	TileWidth   float64       `toml:"tile_width"`
	TileHeight  float64       `toml:"tile_height"`
	ChunkWidth  float64       `toml:"chunk_width"`
	ChunkHeight float64       `toml:"chunk_height"`
	SkullLimit  int           `toml:"skull_limit"`
	FrameTime   time.Duration `toml:"frame_time"`
	// MaxFrameStep caps the simulated time of one frame after a stall.
	MaxFrameStep time.Duration `toml:"max_frame_step"`
}

type PlayerConfig struct {
	Width        float64       `toml:"width"`
	Height       float64       `toml:"height"`
	Health       int           `toml:"health"`
	Gravity      float64       `toml:"gravity"`
	WalkSpeed    float64       `toml:"walk_speed"`
	AirAccel     float64       `toml:"air_accel"`
	JumpSpeed    float64       `toml:"jump_speed"`
	WallJumpX    float64       `toml:"wall_jump_x"`
	WallJumpY    float64       `toml:"wall_jump_y"`
	WallSlideMod float64       `toml:"wall_slide_mod"`
	MaxJumps     int           `toml:"max_jumps"`
	JumpCooldown time.Duration `toml:"jump_cooldown"`
	AirCooldown  time.Duration `toml:"air_cooldown"`
	TerminalX    float64       `toml:"terminal_x"`
	TerminalY    float64       `toml:"terminal_y"`
	AirTerminalX float64       `toml:"air_terminal_x"`
	AirTerminalY float64       `toml:"air_terminal_y"`
}

type SkullConfig struct {
	Width         float64       `toml:"width"`
	Height        float64       `toml:"height"`
	TerminalX     float64       `toml:"terminal_x"`
	TerminalY     float64       `toml:"terminal_y"`
	FallTerminalY float64       `toml:"fall_terminal_y"`
	BounceX       time.Duration `toml:"bounce_x"`
	BounceY       time.Duration `toml:"bounce_y"`
	Restitution   float64       `toml:"restitution"`
	StopSpeed     float64       `toml:"stop_speed"`
	PushFactor    float64       `toml:"push_factor"`
}

type HazardsConfig struct {
	TurretInterval time.Duration `toml:"turret_interval"`
	BulletSpeed    float64       `toml:"bullet_speed"`
	BulletSize     float64       `toml:"bullet_size"`
	SpikeHeight    float64       `toml:"spike_height"`
	TrapDamage     int           `toml:"trap_damage"`
	SawSpeed       float64       `toml:"saw_speed"`
	SawRadius      float64       `toml:"saw_radius"`
	DoorThickness  float64       `toml:"door_thickness"`
	ButtonDepth    float64       `toml:"button_depth"`
	PressDepth     float64       `toml:"press_depth"`
}

type DatabaseConfig struct {
	// DSN selects PostgreSQL storage. Empty keeps records in the save file.
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type DataConfig struct {
	Catalog    string `toml:"catalog"`
	Animations string `toml:"animations"`
	LevelsDir  string `toml:"levels_dir"`
	ScriptsDir string `toml:"scripts_dir"`
	SaveFile   string `toml:"save_file"`
}

type TerminalConfig struct {
	// CellWidth and CellHeight are the world units covered by one terminal cell.
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	// KeyHold is how long a key counts as held after its last press event.
	KeyHold time.Duration `toml:"key_hold"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	// File receives log output while the terminal is in use. Empty discards it.
	File string `toml:"file"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Game.TileWidth <= 0 || c.Game.TileHeight <= 0 {
		return fmt.Errorf("tile size must be positive, got %vx%v", c.Game.TileWidth, c.Game.TileHeight)
	}
	if c.Game.SkullLimit < 1 {
		return fmt.Errorf("skull_limit must be at least 1, got %d", c.Game.SkullLimit)
	}
	if c.Game.FrameTime <= 0 {
		return fmt.Errorf("frame_time must be positive, got %s", c.Game.FrameTime)
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal cell size must be positive")
	}
	return nil
}

// Default returns the built-in settings every config file is layered over.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			TileWidth:    32,
			TileHeight:   32,
			ChunkWidth:   100,
			ChunkHeight:  100,
			SkullLimit:   3,
			FrameTime:    16 * time.Millisecond,
			MaxFrameStep: 50 * time.Millisecond,
		},
		Player: PlayerConfig{
			Width:        22,
			Height:       22,
			Health:       1,
			Gravity:      980,
			WalkSpeed:    200,
			AirAccel:     600,
			JumpSpeed:    370,
			WallJumpX:    330,
			WallJumpY:    320,
			WallSlideMod: 0.1,
			MaxJumps:     10,
			JumpCooldown: 100 * time.Millisecond,
			AirCooldown:  200 * time.Millisecond,
			TerminalX:    1500,
			TerminalY:    1500,
			AirTerminalX: 200,
			AirTerminalY: 1500,
		},
		Skull: SkullConfig{
			Width:         11,
			Height:        12,
			TerminalX:     450,
			TerminalY:     300,
			FallTerminalY: 700,
			BounceX:       200 * time.Millisecond,
			BounceY:       400 * time.Millisecond,
			Restitution:   0.5,
			StopSpeed:     10,
			PushFactor:    0.35,
		},
		Hazards: HazardsConfig{
			TurretInterval: 750 * time.Millisecond,
			BulletSpeed:    100,
			BulletSize:     10,
			SpikeHeight:    19,
			TrapDamage:     1,
			SawSpeed:       100,
			SawRadius:      16,
			DoorThickness:  12,
			ButtonDepth:    3,
			PressDepth:     6,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Data: DataConfig{
			Catalog:    "data/yaml/levels.yaml",
			Animations: "data/yaml/animations.yaml",
			LevelsDir:  "data/levels",
			ScriptsDir: "scripts",
			SaveFile:   "data/save.jsv",
		},
		Terminal: TerminalConfig{
			CellWidth:  16,
			CellHeight: 32,
			KeyHold:    120 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
