package fire

import (
	"errors"
	"math"
	"slices"
	"testing"

	"fire-ca/internal/core"
)

func TestSpawnSingleFireScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountX, cfg.CountZ = 3, 3
	cfg.Seed = 42
	cfg.MinInitialFires, cfg.MaxInitialFires = 1, 1
	cfg.StartFireAmount = 1.0
	cfg.StartFireVelocity = -0.1

	g := mustSpawn(t, cfg)

	lit := 0
	for i, c := range g.Cells {
		switch c.Temperature {
		case 1.0:
			lit++
			if c.Velocity != -0.1 {
				t.Fatalf("expected lit cell %d velocity -0.1, got %f", i, c.Velocity)
			}
		case 0:
			if c.Velocity != 0 {
				t.Fatalf("expected unlit cell %d to be at rest, got velocity %f", i, c.Velocity)
			}
		default:
			t.Fatalf("unexpected temperature %f at cell %d", c.Temperature, i)
		}
	}
	if lit != 1 {
		t.Fatalf("expected exactly one lit cell, got %d", lit)
	}
}

func TestSpawnDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountX, cfg.CountZ = 24, 16
	cfg.Seed = 99

	a := mustSpawn(t, cfg)
	b := mustSpawn(t, cfg)

	if !slices.Equal(a.Ignited(), b.Ignited()) {
		t.Fatalf("ignited draws diverged: %v vs %v", a.Ignited(), b.Ignited())
	}
	if !slices.Equal(a.Cells, b.Cells) {
		t.Fatal("expected bit-identical cells for the same seed")
	}

	cfg.Seed = 100
	c := mustSpawn(t, cfg)
	same := true
	for i := range a.Cells {
		if a.Cells[i].IgnitionVariance != c.Cells[i].IgnitionVariance {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds should produce different variances")
	}
}

func TestSpawnDrawOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountX, cfg.CountZ = 4, 3
	cfg.Seed = 5

	g := mustSpawn(t, cfg)

	rng := core.NewRNG(cfg.Seed)
	for i := range g.Cells {
		iv := rng.Range(0, 0.5)
		hv := rng.Range(0.055, 0.065)
		if g.Cells[i].IgnitionVariance != iv || g.Cells[i].StartHeightVariance != hv {
			t.Fatalf("cell %d variance mismatch: got (%f,%f) expected (%f,%f)",
				i, g.Cells[i].IgnitionVariance, g.Cells[i].StartHeightVariance, iv, hv)
		}
	}
	count := rng.IntRange(cfg.MinInitialFires, cfg.MaxInitialFires)
	ignited := g.Ignited()
	if len(ignited) != count {
		t.Fatalf("expected %d fire draws, got %d", count, len(ignited))
	}
	for i, idx := range ignited {
		if want := rng.IntRange(0, len(g.Cells)-1); idx != want {
			t.Fatalf("fire draw %d: expected index %d, got %d", i, want, idx)
		}
	}
}

func TestSpawnIgnitedMatchesLitCells(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountX, cfg.CountZ = 4, 4
	cfg.MinInitialFires, cfg.MaxInitialFires = 30, 30
	cfg.Seed = 3

	g := mustSpawn(t, cfg)
	ignited := g.Ignited()
	if len(ignited) != 30 {
		t.Fatalf("expected 30 draws, got %d", len(ignited))
	}

	drawn := map[int]bool{}
	for _, idx := range ignited {
		drawn[idx] = true
	}
	lit := 0
	for i, c := range g.Cells {
		isLit := c.Temperature == cfg.StartFireAmount
		if isLit != drawn[i] {
			t.Fatalf("cell %d lit=%v but drawn=%v", i, isLit, drawn[i])
		}
		if isLit {
			lit++
		}
		if c.FireOut == isLit {
			t.Fatalf("cell %d FireOut=%v inconsistent with temperature %f", i, c.FireOut, c.Temperature)
		}
	}
	// 30 draws over 16 cells must repeat; duplicates are not redrawn.
	if lit != len(drawn) || lit >= 30 {
		t.Fatalf("expected %d distinct lit cells below the draw count, got %d", len(drawn), lit)
	}
}

func TestSpawnPlacesCellsAroundOrigin(t *testing.T) {
	cfg := quietConfig(3, 2)
	cfg.CellSize = 2
	cfg.Origin[0], cfg.Origin[1], cfg.Origin[2] = 10, 1, -4

	g := mustSpawn(t, cfg)

	// x offsets: -1, 0, 1 cells; z offsets: -0.5, 0.5 cells.
	expects := [][3]float64{
		{8, 0.99, -5}, {10, 0.99, -5}, {12, 0.99, -5},
		{8, 0.99, -3}, {10, 0.99, -3}, {12, 0.99, -3},
	}
	for i, want := range expects {
		got := g.Cells[i].Position
		for k := 0; k < 3; k++ {
			if math.Abs(got[k]-want[k]) > 1e-9 {
				t.Fatalf("cell %d position %v, expected %v", i, got, want)
			}
		}
		if g.Cells[i].Index != i {
			t.Fatalf("cell %d has index %d", i, g.Cells[i].Index)
		}
		if g.Cells[i].Color != cfg.Palette.Unlit {
			t.Fatalf("cell %d should start with the unlit colour", i)
		}
	}

	p := g.GroundPoint(1, 0.5)
	if math.Abs(p.X()-10) > 1e-9 || math.Abs(p.Y()-1) > 1e-9 || math.Abs(p.Z()+4) > 1e-9 {
		t.Fatalf("expected ground point at origin, got %v", p)
	}
}

func TestSpawnVarianceRanges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountX, cfg.CountZ = 20, 20
	g := mustSpawn(t, cfg)
	for i, c := range g.Cells {
		if c.IgnitionVariance < 0 || c.IgnitionVariance >= 0.5 {
			t.Fatalf("cell %d ignition variance %f out of range", i, c.IgnitionVariance)
		}
		if c.StartHeightVariance < 0.055 || c.StartHeightVariance >= 0.065 {
			t.Fatalf("cell %d height variance %f out of range", i, c.StartHeightVariance)
		}
		if c.StartVelocity != cfg.StartFireVelocity {
			t.Fatalf("cell %d start velocity %f", i, c.StartVelocity)
		}
	}
}

func TestSpawnRejectsInvalidConfig(t *testing.T) {
	cases := map[string]func(c *Config){
		"zero width":      func(c *Config) { c.CountX = 0 },
		"negative height": func(c *Config) { c.CountZ = -1 },
		"min above max":   func(c *Config) { c.MinInitialFires, c.MaxInitialFires = 5, 2 },
		"negative min":    func(c *Config) { c.MinInitialFires = -1 },
		"hot start":       func(c *Config) { c.StartFireAmount = 1.5 },
		"zero cell size":  func(c *Config) { c.CellSize = 0 },
		"negative worker": func(c *Config) { c.Workers = -2 },
		"nan amount":      func(c *Config) { c.StartFireAmount = math.NaN() },
		"nan velocity":    func(c *Config) { c.StartFireVelocity = math.NaN() },
		"inf velocity":    func(c *Config) { c.StartFireVelocity = math.Inf(1) },
		"inf cell size":   func(c *Config) { c.CellSize = math.Inf(1) },
		"nan cell height": func(c *Config) { c.CellHeight = math.NaN() },
		"nan origin":      func(c *Config) { c.Origin[1] = math.NaN() },
		"inf origin":      func(c *Config) { c.Origin[0] = math.Inf(-1) },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		g, err := Spawn(cfg, core.NewRNG(1))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
		if g != nil {
			t.Fatalf("%s: expected no partial grid", name)
		}
	}
}
