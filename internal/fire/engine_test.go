package fire

import (
	"math"
	"slices"
	"testing"
)

func TestTemperatureStaysBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountX, cfg.CountZ = 32, 20
	cfg.MinInitialFires, cfg.MaxInitialFires = 20, 40
	cfg.StartFireVelocity = 0.9
	g := mustSpawn(t, cfg)
	e := NewEngine(4)

	elapsed := 0.0
	for tick := 0; tick < 200; tick++ {
		dt := 0.05 + 0.1*float64(tick%3)
		elapsed += dt
		if tick == 60 {
			// push a few cells out of range between ticks
			g.Cells[0].Temperature = 3
			g.Cells[1].Temperature = -2
		}
		e.Tick(g, dt, elapsed)
		assertTemperatureBounds(t, g, tick)
	}
}

func TestReignitionThreshold(t *testing.T) {
	variance := 0.2
	threshold := ignitionThreshold - variance

	for _, tc := range []struct {
		name     string
		neighbor float64
		ignite   bool
	}{
		{name: "at threshold", neighbor: threshold, ignite: true},
		{name: "just above", neighbor: math.Nextafter(threshold, 1), ignite: true},
		{name: "just below", neighbor: math.Nextafter(threshold, 0), ignite: false},
	} {
		cfg := quietConfig(3, 3)
		g := mustSpawn(t, cfg)
		for i := range g.Cells {
			g.Cells[i].IgnitionVariance = variance
		}
		g.Cells[5].Temperature = tc.neighbor

		NewEngine(1).Tick(g, 0.1, 0.1)

		centre := g.Cells[4]
		want := 0.0
		if tc.ignite {
			want = centre.StartVelocity * (1 + variance)
		}
		if centre.Velocity != want {
			t.Fatalf("%s: expected velocity %f, got %f", tc.name, want, centre.Velocity)
		}
		if !centre.FireOut {
			t.Fatalf("%s: expected centre to report fireOut for this tick", tc.name)
		}
	}
}

func TestSingleFireCoolsScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountX, cfg.CountZ = 3, 3
	cfg.Seed = 42
	cfg.MinInitialFires, cfg.MaxInitialFires = 1, 1
	cfg.StartFireAmount = 1.0
	cfg.StartFireVelocity = -0.1
	cfg.Workers = 1
	g := mustSpawn(t, cfg)

	litIdx := g.Ignited()[0]
	e := NewEngine(1)
	const dt = 0.1

	prev := g.Cells[litIdx].Temperature
	elapsed := 0.0
	for tick := 1; tick <= 20; tick++ {
		elapsed += dt
		e.Tick(g, dt, elapsed)
		cur := g.Cells[litIdx].Temperature
		if math.Abs((prev-cur)-0.01) > 1e-9 {
			t.Fatalf("tick %d: expected a 0.01 drop, got %f -> %f", tick, prev, cur)
		}
		if g.Cells[litIdx].FireOut {
			t.Fatalf("tick %d: lit cell reported fireOut at %f", tick, prev)
		}
		for i, c := range g.Cells {
			if i != litIdx && c.Temperature != 0 {
				t.Fatalf("tick %d: cell %d warmed to %f", tick, i, c.Temperature)
			}
		}
		prev = cur
	}
	if math.Abs(prev-0.8) > 1e-9 {
		t.Fatalf("expected 0.8 after 20 ticks, got %f", prev)
	}

	reachedZero := false
	for tick := 21; tick <= 200; tick++ {
		elapsed += dt
		e.Tick(g, dt, elapsed)
		c := g.Cells[litIdx]
		if reachedZero {
			if !c.FireOut || c.Velocity != 0 {
				t.Fatalf("tick %d: expected the fire out at rest, got fireOut=%v velocity=%f", tick, c.FireOut, c.Velocity)
			}
			return
		}
		if c.Temperature > prev {
			t.Fatalf("tick %d: temperature rose from %f to %f", tick, prev, c.Temperature)
		}
		prev = c.Temperature
		reachedZero = c.Temperature == 0
	}
	t.Fatal("expected the fire to burn out within 200 ticks")
}

func TestNeighborReignitesScenario(t *testing.T) {
	cfg := quietConfig(3, 3)
	cfg.StartFireVelocity = 0.4
	g := mustSpawn(t, cfg)

	g.Cells[4].IgnitionVariance = 0.1
	g.Cells[1].Temperature = 0.99

	NewEngine(1).Tick(g, 0.1, 0.1)

	centre := g.Cells[4]
	wantVelocity := centre.StartVelocity * (1 + 0.1)
	if centre.Velocity != wantVelocity {
		t.Fatalf("expected reignition velocity %f, got %f", wantVelocity, centre.Velocity)
	}
	if want := wantVelocity * 0.1; math.Abs(centre.Temperature-want) > 1e-12 {
		t.Fatalf("expected temperature %f after integrating, got %f", want, centre.Temperature)
	}
}

func TestNeighborReadsUseSnapshot(t *testing.T) {
	// A 3x1 row: cell 0 is at the threshold, cell 1 starts cold, cell 2 is
	// out. Cell 1 ignites this tick but cell 2 must not see that until the
	// next snapshot.
	cfg := quietConfig(3, 1)
	cfg.StartFireVelocity = 5
	g := mustSpawn(t, cfg)
	for i := range g.Cells {
		g.Cells[i].IgnitionVariance = 0
	}
	g.Cells[0].Temperature = 1
	g.Cells[0].Velocity = 0

	e := NewEngine(1)
	e.Tick(g, 1, 1)

	if g.Cells[1].Temperature != 1 {
		t.Fatalf("expected cell 1 to ignite to 1, got %f", g.Cells[1].Temperature)
	}
	if g.Cells[2].Velocity != 0 || g.Cells[2].Temperature != 0 {
		t.Fatalf("cell 2 observed a same-tick write: velocity=%f temperature=%f", g.Cells[2].Velocity, g.Cells[2].Temperature)
	}

	e.Tick(g, 1, 2)
	if g.Cells[2].Temperature != 1 {
		t.Fatalf("expected cell 2 to ignite on the following tick, got %f", g.Cells[2].Temperature)
	}
}

func TestParallelTickMatchesSerial(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountX, cfg.CountZ = 37, 23
	cfg.MinInitialFires, cfg.MaxInitialFires = 10, 10
	cfg.StartFireVelocity = 0.6

	serial := mustSpawn(t, cfg)
	parallel := mustSpawn(t, cfg)
	se, pe := NewEngine(1), NewEngine(7)

	elapsed := 0.0
	for tick := 0; tick < 120; tick++ {
		elapsed += 1.0 / 30
		se.Tick(serial, 1.0/30, elapsed)
		pe.Tick(parallel, 1.0/30, elapsed)
	}
	if !slices.Equal(serial.Cells, parallel.Cells) {
		t.Fatal("parallel tick diverged from the serial tick")
	}
	st := gridStats(serial)
	if st.Lit <= 10 {
		t.Fatalf("expected the fire to spread beyond the initial cells, got %d lit", st.Lit)
	}
}

func TestEngineMoreWorkersThanCells(t *testing.T) {
	g := mustSpawn(t, quietConfig(2, 1))
	g.Cells[0].Temperature = 0.5
	g.Cells[0].Velocity = 1
	NewEngine(16).Tick(g, 0.25, 0.25)
	if g.Cells[0].Temperature != 0.75 {
		t.Fatalf("expected 0.75, got %f", g.Cells[0].Temperature)
	}
}

func TestApproximately(t *testing.T) {
	if !approximately(0, 0, epsilon) {
		t.Fatal("expected 0 to equal 0")
	}
	if approximately(1e-300, 0, epsilon) {
		t.Fatal("expected a tiny positive temperature to still be burning")
	}
	if !approximately(1, 1+1e-7, epsilon) {
		t.Fatal("expected relative tolerance to accept 1 and 1+1e-7")
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{3, 1},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Fatalf("clamp01(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestTickRestoresBoundsFromNaN(t *testing.T) {
	g := mustSpawn(t, quietConfig(3, 3))
	g.Cells[4].Temperature = math.NaN()
	g.Cells[4].Velocity = math.NaN()
	NewEngine(1).Tick(g, 0.1, 0.1)
	assertTemperatureBounds(t, g, 1)
}
