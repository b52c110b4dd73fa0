package fire

import (
	"fire-ca/internal/core"

	"github.com/go-gl/mathgl/mgl64"
)

// restingDepth lowers an unlit flame slightly below the grid plane.
const restingDepth = 0.01

// Cell is the per-position fire record. Only the engine and the stimulus
// write Temperature and Velocity; only the visual mapping writes Position.Y
// and Color.
type Cell struct {
	Index int

	Temperature   float64
	Velocity      float64
	StartVelocity float64

	IgnitionVariance    float64
	StartHeight         float64
	StartHeightVariance float64

	Position mgl64.Vec3
	Color    mgl64.Vec4

	// FireOut is the extinguished flag evaluated at the start of the last tick.
	FireOut bool
}

// Grid owns the cells of one simulation. Its shape never changes after Spawn.
type Grid struct {
	Topology core.Topology
	Cells    []Cell

	cfg     Config
	ignited []int
}

// Config returns the configuration the grid was spawned from.
func (g *Grid) Config() Config { return g.cfg }

// Ignited returns the drawn initial fire indices in draw order. Duplicates are
// kept, so the number of distinct lit cells may be smaller.
func (g *Grid) Ignited() []int { return append([]int(nil), g.ignited...) }

// Spawn builds a grid from cfg, drawing all randomness from rng in a fixed
// order: per cell ignition variance then height variance, then the fire
// count, then the fire indices.
func Spawn(cfg Config, rng *core.RNG) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	topo := core.NewTopology(cfg.CountX, cfg.CountZ)
	total := topo.Total()
	cells := make([]Cell, total)

	startHeight := cfg.Origin.Y() - restingDepth
	halfX := float64(cfg.CountX-1) / 2
	halfZ := float64(cfg.CountZ-1) / 2

	for i := range cells {
		x, z := topo.Coords(i)
		c := &cells[i]
		c.Index = i
		c.StartVelocity = cfg.StartFireVelocity
		c.StartHeight = startHeight
		c.Position = mgl64.Vec3{
			cfg.Origin.X() + cfg.CellSize*(float64(x)-halfX),
			startHeight,
			cfg.Origin.Z() + cfg.CellSize*(float64(z)-halfZ),
		}
		c.Color = cfg.Palette.Unlit
		c.IgnitionVariance = rng.Range(0, 0.5)
		c.StartHeightVariance = rng.Range(0.055, 0.065)
	}

	numberOfFires := rng.IntRange(cfg.MinInitialFires, cfg.MaxInitialFires)
	ignited := make([]int, numberOfFires)
	for i := range ignited {
		ignited[i] = rng.IntRange(0, total-1)
	}
	for _, idx := range ignited {
		cells[idx].Temperature = cfg.StartFireAmount
		cells[idx].Velocity = cfg.StartFireVelocity
	}
	for i := range cells {
		cells[i].FireOut = cells[i].Temperature == 0
	}

	return &Grid{Topology: topo, Cells: cells, cfg: cfg, ignited: ignited}, nil
}

// GroundPoint maps fractional grid coordinates (cell centres at integers) to
// the world-space point on the plane through the origin.
func (g *Grid) GroundPoint(gx, gz float64) mgl64.Vec3 {
	cfg := g.cfg
	halfX := float64(cfg.CountX-1) / 2
	halfZ := float64(cfg.CountZ-1) / 2
	return mgl64.Vec3{
		cfg.Origin.X() + cfg.CellSize*(gx-halfX),
		cfg.Origin.Y(),
		cfg.Origin.Z() + cfg.CellSize*(gz-halfZ),
	}
}
