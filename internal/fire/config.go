package fire

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidConfig is returned when a Config cannot produce a consistent grid.
var ErrInvalidConfig = errors.New("invalid fire config")

// Palette holds the colours a cell blends between.
type Palette struct {
	Unlit   mgl64.Vec4 `yaml:"unlit"`
	LitLow  mgl64.Vec4 `yaml:"lit_low"`
	LitHigh mgl64.Vec4 `yaml:"lit_high"`
}

// Config controls grid dimensions, placement and the initial fires.
type Config struct {
	CountX int        `yaml:"count_x"`
	CountZ int        `yaml:"count_z"`
	Origin mgl64.Vec3 `yaml:"origin"`

	Seed int64 `yaml:"seed"`

	MinInitialFires   int     `yaml:"min_initial_fires"`
	MaxInitialFires   int     `yaml:"max_initial_fires"`
	StartFireAmount   float64 `yaml:"start_fire_amount"`
	StartFireVelocity float64 `yaml:"start_fire_velocity"`

	// CellSize is the XZ spacing between cells and the footprint of a flame.
	CellSize float64 `yaml:"cell_size"`
	// CellHeight is the full height of a flame at temperature 1.
	CellHeight float64 `yaml:"cell_height"`

	Palette Palette `yaml:"palette"`

	// Workers bounds the tick parallelism; 0 uses one worker per CPU.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		CountX:            50,
		CountZ:            50,
		Seed:              1337,
		MinInitialFires:   4,
		MaxInitialFires:   12,
		StartFireAmount:   0.5,
		StartFireVelocity: 0.3,
		CellSize:          0.3,
		CellHeight:        1,
		Palette: Palette{
			Unlit:   mgl64.Vec4{0.18, 0.42, 0.16, 1},
			LitLow:  mgl64.Vec4{1, 0.82, 0.2, 1},
			LitHigh: mgl64.Vec4{0.9, 0.12, 0.04, 1},
		},
	}
}

// Total returns the number of cells the configuration describes.
func (c Config) Total() int { return c.CountX * c.CountZ }

// WorkerCount resolves the effective number of tick workers.
func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Validate rejects configurations that cannot produce a consistent grid.
func (c Config) Validate() error {
	if c.CountX <= 0 || c.CountZ <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.CountX, c.CountZ)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"start_fire_amount", c.StartFireAmount},
		{"start_fire_velocity", c.StartFireVelocity},
		{"cell_size", c.CellSize},
		{"cell_height", c.CellHeight},
		{"origin_x", c.Origin.X()},
		{"origin_y", c.Origin.Y()},
		{"origin_z", c.Origin.Z()},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidConfig, f.name, f.v)
		}
	}
	if c.MinInitialFires < 0 {
		return fmt.Errorf("%w: min_initial_fires must be non-negative, got %d", ErrInvalidConfig, c.MinInitialFires)
	}
	if c.MinInitialFires > c.MaxInitialFires {
		return fmt.Errorf("%w: min_initial_fires %d exceeds max_initial_fires %d", ErrInvalidConfig, c.MinInitialFires, c.MaxInitialFires)
	}
	if c.StartFireAmount < 0 || c.StartFireAmount > 1 {
		return fmt.Errorf("%w: start_fire_amount must be within [0,1], got %g", ErrInvalidConfig, c.StartFireAmount)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size must be positive, got %g", ErrInvalidConfig, c.CellSize)
	}
	if c.CellHeight < 0 {
		return fmt.Errorf("%w: cell_height must be non-negative, got %g", ErrInvalidConfig, c.CellHeight)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// FromMap populates the default config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) (Config, error) {
	return ApplyOverrides(DefaultConfig(), cfg)
}

// ApplyOverrides applies key/value overrides on top of c. Unknown keys and
// unparsable values are errors.
func ApplyOverrides(c Config, cfg map[string]string) (Config, error) {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := cfg[key]
		var err error
		switch key {
		case "w":
			c.CountX, err = strconv.Atoi(v)
		case "h":
			c.CountZ, err = strconv.Atoi(v)
		case "seed":
			c.Seed, err = strconv.ParseInt(v, 10, 64)
		case "origin_x":
			c.Origin[0], err = strconv.ParseFloat(v, 64)
		case "origin_y":
			c.Origin[1], err = strconv.ParseFloat(v, 64)
		case "origin_z":
			c.Origin[2], err = strconv.ParseFloat(v, 64)
		case "min_fires":
			c.MinInitialFires, err = strconv.Atoi(v)
		case "max_fires":
			c.MaxInitialFires, err = strconv.Atoi(v)
		case "start_amount":
			c.StartFireAmount, err = strconv.ParseFloat(v, 64)
		case "start_velocity":
			c.StartFireVelocity, err = strconv.ParseFloat(v, 64)
		case "cell_size":
			c.CellSize, err = strconv.ParseFloat(v, 64)
		case "cell_height":
			c.CellHeight, err = strconv.ParseFloat(v, 64)
		case "workers":
			c.Workers, err = strconv.Atoi(v)
		default:
			return c, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
		}
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
		}
	}
	return c, nil
}

var presets = map[string]func() Config{
	"fire": func() Config {
		return DefaultConfig()
	},
	"campfire": func() Config {
		c := DefaultConfig()
		c.CountX, c.CountZ = 12, 12
		c.MinInitialFires, c.MaxInitialFires = 3, 6
		c.StartFireAmount = 1
		return c
	},
	"field": func() Config {
		c := DefaultConfig()
		c.CountX, c.CountZ = 160, 120
		c.MinInitialFires, c.MaxInitialFires = 10, 30
		c.StartFireVelocity = 0.2
		return c
	},
}

// Preset returns the named starting configuration.
func Preset(name string) (Config, error) {
	build, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	return build(), nil
}

// PresetNames lists the available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
