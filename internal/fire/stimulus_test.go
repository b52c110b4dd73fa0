package fire

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestStimulateIgniteAndExtinguish(t *testing.T) {
	cfg := quietConfig(9, 9)
	cfg.CellSize = 0.3
	g := mustSpawn(t, cfg)

	centre := g.Cells[40]
	point := centre.Position.Add(mgl64.Vec3{0.3, 0, 0})

	touched := g.stimulate(point, StimulusIgnite)
	if touched == 0 {
		t.Fatal("expected the stimulus to reach nearby cells")
	}

	d := g.Cells[40].Position.Sub(point)
	want := math.Min(0.5*d.Dot(d)/0.15, 1)
	if math.Abs(g.Cells[40].Temperature-want) > 1e-12 {
		t.Fatalf("expected centre temperature %f, got %f", want, g.Cells[40].Temperature)
	}

	for i, c := range g.Cells {
		d := c.Position.Sub(point)
		if d.Dot(d) >= StimulusRadius*StimulusRadius && c.Temperature != 0 {
			t.Fatalf("cell %d outside the radius changed to %f", i, c.Temperature)
		}
	}
	assertTemperatureBounds(t, g, 0)

	for i := 0; i < 10; i++ {
		g.stimulate(point, StimulusExtinguish)
	}
	for i, c := range g.Cells {
		if c.Temperature != 0 {
			t.Fatalf("cell %d should be extinguished, got %f", i, c.Temperature)
		}
	}
}

func TestStimulateClampsHot(t *testing.T) {
	cfg := quietConfig(5, 5)
	g := mustSpawn(t, cfg)
	point := g.GroundPoint(2, 2)
	for i := 0; i < 20; i++ {
		g.stimulate(point, StimulusIgnite)
	}
	assertTemperatureBounds(t, g, 0)
	if g.Cells[0].Temperature != 1 {
		t.Fatalf("expected a corner within reach to saturate, got %f", g.Cells[0].Temperature)
	}
}

func TestStimulusString(t *testing.T) {
	if StimulusIgnite.String() != "ignite" || StimulusExtinguish.String() != "extinguish" {
		t.Fatalf("unexpected names %q %q", StimulusIgnite, StimulusExtinguish)
	}
}

func TestStimulateIgnoresNonFinitePoint(t *testing.T) {
	sim, err := New(quietConfig(3, 3))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := sim.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	points := []mgl64.Vec3{
		{math.NaN(), 0, 0},
		{0, math.Inf(1), 0},
		{0, 0, math.Inf(-1)},
	}
	for _, p := range points {
		for _, kind := range []Stimulus{StimulusIgnite, StimulusExtinguish} {
			if n := sim.Stimulate(p, kind); n != 0 {
				t.Fatalf("%v %v: expected no cells touched, got %d", kind, p, n)
			}
		}
	}
	if err := sim.Step(0.1); err != nil {
		t.Fatalf("step: %v", err)
	}
	sim.mutate(func(g *Grid) { assertTemperatureBounds(t, g, 1) })
}
