package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration, loaded from a TOML file at
// startup. Every field has a default so the file is optional.
type Config struct {
	Window WindowConfig `toml:"window"`
	Assets AssetsConfig `toml:"assets"`
	Shadow ShadowConfig `toml:"shadow"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
	PosX   uint32 `toml:"pos_x"`
	PosY   uint32 `toml:"pos_y"`
}

type AssetsConfig struct {
	// Directory holding textures/ and shaders/, relative to the working
	// directory unless absolute.
	Dir string `toml:"dir"`
}

type ShadowConfig struct {
	// Shadow map resolution (width == height). Fixed for the session once
	// the scene is prepared.
	Resolution int32 `toml:"resolution"`
}

type LogConfig struct {
	// One of debug, info, warn, error.
	Level string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Tavolo",
			Width:  1000,
			Height: 800,
			PosX:   100,
			PosY:   100,
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
		Shadow: ShadowConfig{
			Resolution: 1024,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if cfg.Window.Width == 0 || cfg.Window.Height == 0 {
		return nil, fmt.Errorf("config: window dimensions must be non-zero")
	}
	if cfg.Shadow.Resolution <= 0 {
		return nil, fmt.Errorf("config: shadow resolution must be positive")
	}

	return cfg, nil
}
