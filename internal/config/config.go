package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

var ErrInvalid = errors.New("invalid config")

// Scheduling modes for the world systems.
const (
	ModeAll  = "all"  // every system once per tick
	ModeStep = "step" // one system per tick, cycling
)

type Config struct {
	World   WorldConfig   `toml:"world"`
	Loop    LoopConfig    `toml:"loop"`
	Scene   SceneConfig   `toml:"scene"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type WorldConfig struct {
	Name      string `toml:"name"`
	MaskWidth int    `toml:"mask_width"` // 8, 16, 32, 64, 128 or 256
	Mode      string `toml:"mode"`       // "all" or "step"
}

type LoopConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	MaxTicks int           `toml:"max_ticks"` // 0 = run until signalled
}

type SceneConfig struct {
	Path       string `toml:"path"`
	ScriptsDir string `toml:"scripts_dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Profile    string `toml:"profile"` // "", "cpu", "mem" or "trace"
	ProfileDir string `toml:"profile_dir"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse overlays a TOML document onto the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.World.MaskWidth {
	case 8, 16, 32, 64, 128, 256:
	default:
		return fmt.Errorf("%w: mask_width %d", ErrInvalid, c.World.MaskWidth)
	}
	switch c.World.Mode {
	case ModeAll, ModeStep:
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalid, c.World.Mode)
	}
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate %s", ErrInvalid, c.Loop.TickRate)
	}
	if c.Loop.MaxTicks < 0 {
		return fmt.Errorf("%w: max_ticks %d", ErrInvalid, c.Loop.MaxTicks)
	}
	switch c.Debug.Profile {
	case "", "cpu", "mem", "trace":
	default:
		return fmt.Errorf("%w: profile %q", ErrInvalid, c.Debug.Profile)
	}
	return nil
}

// Defaults returns the configuration used when a file leaves a key unset.
func Defaults() *Config {
	return &Config{
		World: WorldConfig{
			Name:      "bitworld",
			MaskWidth: 128,
			Mode:      ModeAll,
		},
		Loop: LoopConfig{
			TickRate: 200 * time.Millisecond,
		},
		Scene: SceneConfig{
			Path:       "config/scene.yaml",
			ScriptsDir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			ProfileDir: ".",
		},
	}
}
