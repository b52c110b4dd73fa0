// Package config provides configuration loading for the fire commands.
// It supports a YAML file, environment variables and preset selection.
package config

import (
	"fmt"
	"os"
	"strconv"

	"fire-ca/internal/fire"
	"fire-ca/internal/logging"

	"gopkg.in/yaml.v3"
)

// DefaultPreset is the preset used when neither the file nor the caller
// names one.
const DefaultPreset = "fire"

// Config contains all fire command settings.
type Config struct {
	// Preset names the base grid configuration the grid section overlays.
	Preset string `yaml:"preset"`

	// Grid is the simulation configuration.
	Grid fire.Config `yaml:"grid"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `yaml:"logging"`

	// View configures the interactive viewers.
	View ViewConfig `yaml:"view"`

	// Run configures headless runs and sweeps.
	Run RunConfig `yaml:"run"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level sets the log verbosity: "debug", "info" (default), "warn" or "error".
	Level string `yaml:"level"`
}

// ViewConfig configures the terminal and window viewers.
type ViewConfig struct {
	// Scale is the pixel size of one cell in the window viewer.
	Scale int `yaml:"scale"`
	// TPS is the number of simulation ticks per second.
	TPS int `yaml:"tps"`
}

// RunConfig configures headless stepping.
type RunConfig struct {
	// Ticks is the number of advancing steps to run.
	Ticks int `yaml:"ticks"`
	// DT is the fixed tick length in seconds.
	DT float64 `yaml:"dt"`
	// LogEvery emits a stats line every N ticks; 0 disables it.
	LogEvery int `yaml:"log_every"`
}

// Default returns a Config with the default preset and sensible defaults.
func Default() *Config {
	return &Config{
		Preset:  DefaultPreset,
		Grid:    fire.DefaultConfig(),
		Logging: LoggingConfig{Level: "info"},
		View:    ViewConfig{Scale: 8, TPS: 30},
		Run:     RunConfig{Ticks: 300, DT: 1.0 / 30, LogEvery: 50},
	}
}

// Load builds the configuration in order: defaults -> preset -> file (if path
// is set) -> environment variables. A non-empty preset wins over the preset
// named in the file.
func Load(path, preset string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = LoadFromFile(path, preset)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = Default()
		if preset != "" {
			if err := cfg.usePreset(preset); err != nil {
				return nil, err
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file. The grid
// section overlays the selected preset field by field.
func LoadFromFile(path, preset string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var header struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	name := preset
	if name == "" {
		name = header.Preset
	}
	if name == "" {
		name = DefaultPreset
	}

	cfg := Default()
	if err := cfg.usePreset(name); err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.Preset = name
	return cfg, nil
}

func (c *Config) usePreset(name string) error {
	grid, err := fire.Preset(name)
	if err != nil {
		return err
	}
	c.Preset = name
	c.Grid = grid
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	if c.View.Scale <= 0 {
		return fmt.Errorf("view scale must be positive, got %d", c.View.Scale)
	}
	if c.View.TPS <= 0 {
		return fmt.Errorf("view tps must be positive, got %d", c.View.TPS)
	}
	if c.Run.Ticks < 0 {
		return fmt.Errorf("run ticks must be non-negative, got %d", c.Run.Ticks)
	}
	if c.Run.DT <= 0 {
		return fmt.Errorf("run dt must be positive, got %g", c.Run.DT)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) error {
	ints := []struct {
		env string
		dst *int
	}{
		{"FIRE_WIDTH", &config.Grid.CountX},
		{"FIRE_HEIGHT", &config.Grid.CountZ},
		{"FIRE_WORKERS", &config.Grid.Workers},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", o.env, err)
		}
		*o.dst = n
	}

	if v := os.Getenv("FIRE_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("FIRE_SEED: %w", err)
		}
		config.Grid.Seed = seed
	}

	if v := os.Getenv("FIRE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	return nil
}
