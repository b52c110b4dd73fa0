package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a grid simulation must implement so the
// viewers can drive it. Step advances the simulation by dt seconds.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step(dt float64) error
}
