package fire

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Stimulus selects the direction of a point perturbation.
type Stimulus int

const (
	// StimulusIgnite raises temperature around the point.
	StimulusIgnite Stimulus = iota
	// StimulusExtinguish lowers temperature around the point.
	StimulusExtinguish
)

// StimulusRadius is the world-space reach of a point stimulus.
const StimulusRadius = 1.0

const stimulusStrength = 0.5

func (s Stimulus) String() string {
	switch s {
	case StimulusIgnite:
		return "ignite"
	case StimulusExtinguish:
		return "extinguish"
	default:
		return "unknown"
	}
}

// stimulate perturbs every cell within StimulusRadius of point and returns
// how many cells were touched. The effect grows with the squared distance
// relative to half a cell. A point with a non-finite coordinate touches
// nothing.
func (g *Grid) stimulate(point mgl64.Vec3, kind Stimulus) int {
	for _, v := range point {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
	}
	extent := g.cfg.CellSize / 2
	sign := 1.0
	if kind == StimulusExtinguish {
		sign = -1
	}

	touched := 0
	for i := range g.Cells {
		c := &g.Cells[i]
		d := c.Position.Sub(point)
		distSq := d.Dot(d)
		if distSq >= StimulusRadius*StimulusRadius {
			continue
		}
		affect := distSq / extent
		c.Temperature = clamp01(c.Temperature + sign*stimulusStrength*affect)
		touched++
	}
	return touched
}
