package fire

import (
	"log/slog"
	"sync"

	"fire-ca/internal/core"

	"github.com/go-gl/mathgl/mgl64"
)

// State is the initialization lifecycle of a Simulation.
type State int

const (
	// StateUninitialized means no grid has been spawned yet.
	StateUninitialized State = iota
	// StateInitialized means the grid exists and ticks advance it.
	StateInitialized
)

func (s State) String() string {
	if s == StateInitialized {
		return "initialized"
	}
	return "uninitialized"
}

// Simulation owns a fire grid and its lifecycle. All methods are safe for
// concurrent use; stimuli and ticks are serialized so a stimulus never lands
// between the snapshot and the update of a tick.
type Simulation struct {
	mu sync.Mutex

	name   string
	cfg    Config
	seed   int64
	state  State
	grid   *Grid
	engine *Engine
	logger *slog.Logger

	elapsed float64
	ticks   int64
}

// Option customizes a Simulation.
type Option func(*Simulation)

// WithLogger routes lifecycle logging to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// WithName overrides the simulation name reported to viewers.
func WithName(name string) Option {
	return func(s *Simulation) { s.name = name }
}

// New validates cfg and returns an uninitialized simulation.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		name:   "fire",
		cfg:    cfg,
		seed:   cfg.Seed,
		engine: NewEngine(cfg.WorkerCount()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s, nil
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return s.name }

// Size reports the grid dimensions.
func (s *Simulation) Size() core.Size {
	return core.Size{W: s.cfg.CountX, H: s.cfg.CountZ}
}

// Config returns the configuration the next initialization will use.
func (s *Simulation) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Seed returns the seed the next initialization will use.
func (s *Simulation) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// State reports the lifecycle state.
func (s *Simulation) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Initialize spawns the grid once. Calling it again is a no-op.
func (s *Simulation) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.ensureInitialized()
	return err
}

func (s *Simulation) ensureInitialized() (bool, error) {
	if s.state == StateInitialized {
		return false, nil
	}
	grid, err := Spawn(s.cfg, core.NewRNG(s.seed))
	if err != nil {
		return false, err
	}
	s.grid = grid
	s.state = StateInitialized
	s.elapsed = 0
	s.ticks = 0
	s.logger.Info("fire grid initialized",
		"grid", s.Size(),
		"cells", len(grid.Cells),
		"fires", len(grid.ignited),
		"seed", s.seed,
		"workers", s.engine.Workers())
	return true, nil
}

// Reset tears the grid down and schedules a fresh initialization. A zero seed
// keeps the configured seed.
func (s *Simulation) Reset(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = seed
	if seed == 0 {
		s.seed = s.cfg.Seed
	}
	s.grid = nil
	s.state = StateUninitialized
	s.elapsed = 0
	s.ticks = 0
}

// Step advances the simulation by dt seconds. The first call on an
// uninitialized simulation only spawns the grid and does not advance it.
func (s *Simulation) Step(dt float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	spawned, err := s.ensureInitialized()
	if err != nil || spawned {
		return err
	}
	s.elapsed += dt
	s.ticks++
	s.engine.Tick(s.grid, dt, s.elapsed)
	return nil
}

// Stimulate perturbs the temperature around point and reports how many cells
// were affected. It does nothing before initialization.
func (s *Simulation) Stimulate(point mgl64.Vec3, kind Stimulus) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grid == nil {
		return 0
	}
	n := s.grid.stimulate(point, kind)
	s.logger.Debug("stimulus applied", "kind", kind, "point", point, "cells", n)
	return n
}

// GroundPoint maps fractional grid coordinates to the world point a viewer
// should stimulate. Cell centres sit on integer coordinates.
func (s *Simulation) GroundPoint(gx, gz float64) mgl64.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.grid
	if g == nil {
		g = &Grid{cfg: s.cfg}
	}
	return g.GroundPoint(gx, gz)
}

// Elapsed returns the simulated seconds since initialization.
func (s *Simulation) Elapsed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Ticks returns the number of advancing steps since initialization.
func (s *Simulation) Ticks() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Cells returns a copy of every cell, or nil before initialization.
func (s *Simulation) Cells() []Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grid == nil {
		return nil
	}
	return append([]Cell(nil), s.grid.Cells...)
}

// Ignited returns the initial fire draws, including duplicates.
func (s *Simulation) Ignited() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grid == nil {
		return nil
	}
	return s.grid.Ignited()
}

// Colors fills dst with each cell's RGBA colour and returns it, growing dst
// when needed.
func (s *Simulation) Colors(dst []mgl64.Vec4) []mgl64.Vec4 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grid == nil {
		return dst[:0]
	}
	dst = dst[:0]
	for i := range s.grid.Cells {
		dst = append(dst, s.grid.Cells[i].Color)
	}
	return dst
}

// Temperatures fills dst with each cell's temperature and returns it.
func (s *Simulation) Temperatures(dst []float64) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	dst = dst[:0]
	if s.grid == nil {
		return dst
	}
	for i := range s.grid.Cells {
		dst = append(dst, s.grid.Cells[i].Temperature)
	}
	return dst
}

// Positions fills dst with each cell's world position and returns it.
func (s *Simulation) Positions(dst []mgl64.Vec3) []mgl64.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	dst = dst[:0]
	if s.grid == nil {
		return dst
	}
	for i := range s.grid.Cells {
		dst = append(dst, s.grid.Cells[i].Position)
	}
	return dst
}
