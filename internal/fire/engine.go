package fire

import (
	"math"

	"fire-ca/internal/core"

	"golang.org/x/sync/errgroup"
)

const (
	// ignitionThreshold is the neighbour temperature that relights a cell
	// with zero ignition variance.
	ignitionThreshold = 0.95

	epsilon = math.SmallestNonzeroFloat64
)

// Engine advances a grid by one tick. It owns the temperature snapshot that
// neighbour lookups read, so a single Engine must not tick two grids at once.
type Engine struct {
	workers  int
	snapshot []float64
}

// NewEngine returns an engine that splits each pass across workers ranges.
func NewEngine(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{workers: workers}
}

// Workers reports the configured parallelism.
func (e *Engine) Workers() int { return e.workers }

// Tick runs one frame: snapshot every temperature, then transition and map
// every cell from that snapshot. dt and elapsed are in seconds.
func (e *Engine) Tick(g *Grid, dt, elapsed float64) {
	n := len(g.Cells)
	if n == 0 {
		return
	}
	if cap(e.snapshot) < n {
		e.snapshot = make([]float64, n)
	}
	snap := e.snapshot[:n]
	cells := g.Cells

	e.parallel(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			snap[i] = cells[i].Temperature
		}
	})

	look := newLook(g.cfg, dt, elapsed)
	e.parallel(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			c := &cells[i]
			fireOut := advance(c, g.Topology, snap, dt)
			look.apply(c, fireOut)
		}
	})
}

// parallel splits [0,n) into contiguous ranges and returns once every range
// has been processed.
func (e *Engine) parallel(n int, fn func(lo, hi int)) {
	workers := min(e.workers, n)
	if workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// advance applies the extinguish/reignite rules to c and integrates its
// velocity. It reports whether the cell was out at the start of the tick.
func advance(c *Cell, topo core.Topology, snap []float64, dt float64) bool {
	temp := clamp01(c.Temperature)

	fireOut := approximately(temp, 0, epsilon)
	if fireOut {
		c.Velocity = 0
		if hottestNeighbor(topo.Neighbors(c.Index), snap) >= ignitionThreshold-c.IgnitionVariance {
			c.Velocity = c.StartVelocity * (1 + c.IgnitionVariance)
		}
	}

	c.Temperature = clamp01(temp + c.Velocity*dt)
	c.FireOut = fireOut
	return fireOut
}

func hottestNeighbor(n core.Neighbors, snap []float64) float64 {
	hottest := 0.0
	for _, nb := range n.All() {
		if !nb.Valid {
			continue
		}
		hottest = math.Max(hottest, snap[nb.Index])
	}
	return hottest
}

// approximately compares with a relative tolerance, falling back to an
// absolute one near zero.
func approximately(a, b, eps float64) bool {
	return math.Abs(b-a) < math.Max(1e-6*math.Max(math.Abs(a), math.Abs(b)), eps*8)
}

// clamp01 maps v into [0,1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Min(v, 1)
}
