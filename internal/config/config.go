// Application settings loaded from YAML with environment overrides
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config carries the app-level settings of the workbench. Processing
// semantics are fixed; only presentation and logging are configurable.
type Config struct {
	Debug  bool   `yaml:"debug"`
	Window Window `yaml:"window"`
	Log    Log    `yaml:"log"`
}

type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Window: Window{Width: 1400, Height: 900},
		Log:    Log{Level: "info"},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file is absent, then applies WORKBENCH_* environment overrides. A file
// that exists but cannot be parsed is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults apply.
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return cfg, fmt.Errorf("invalid window size: %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WORKBENCH_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if v := os.Getenv("WORKBENCH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WORKBENCH_WINDOW_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window.Width = n
		}
	}
	if v := os.Getenv("WORKBENCH_WINDOW_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window.Height = n
		}
	}
}
