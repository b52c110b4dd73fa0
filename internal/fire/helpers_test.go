package fire

import (
	"testing"

	"fire-ca/internal/core"
)

// quietConfig returns a small grid with no initial fires and one worker.
func quietConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.CountX = w
	cfg.CountZ = h
	cfg.MinInitialFires = 0
	cfg.MaxInitialFires = 0
	cfg.Workers = 1
	return cfg
}

func mustSpawn(t *testing.T, cfg Config) *Grid {
	t.Helper()
	g, err := Spawn(cfg, core.NewRNG(cfg.Seed))
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	return g
}

// mutate runs fn against the live grid between ticks. It reports false before
// initialization.
func (s *Simulation) mutate(fn func(g *Grid)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grid == nil {
		return false
	}
	fn(s.grid)
	return true
}

func assertTemperatureBounds(t *testing.T, g *Grid, tick int) {
	t.Helper()
	for i, c := range g.Cells {
		if !(c.Temperature >= 0 && c.Temperature <= 1) {
			t.Fatalf("tick %d: cell %d temperature %f outside [0,1]", tick, i, c.Temperature)
		}
	}
}
