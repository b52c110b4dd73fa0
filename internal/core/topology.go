package core

// Neighbor is a neighbouring cell index that may be absent at a grid edge.
type Neighbor struct {
	Index int
	Valid bool
}

// Neighbors holds the four orthogonal neighbours of a cell.
type Neighbors struct {
	Top, Bottom, Left, Right Neighbor
}

// All returns the neighbours in top, bottom, left, right order.
func (n Neighbors) All() [4]Neighbor {
	return [4]Neighbor{n.Top, n.Bottom, n.Left, n.Right}
}

// Count reports how many neighbours exist.
func (n Neighbors) Count() int {
	c := 0
	for _, nb := range n.All() {
		if nb.Valid {
			c++
		}
	}
	return c
}

// Topology resolves linear cell indices on a W*H row-major grid.
// Edges clamp rather than wrap.
type Topology struct {
	W, H int
}

// NewTopology returns a topology for a grid of the given dimensions.
func NewTopology(w, h int) Topology {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Topology{W: w, H: h}
}

// Total returns the number of cells.
func (t Topology) Total() int { return t.W * t.H }

// Index returns the linear slice index for coordinates (x, z).
func (t Topology) Index(x, z int) int { return z*t.W + x }

// Coords returns the column and row of a linear index. Both come from the
// width: the row is index / W, also on non-square grids.
func (t Topology) Coords(index int) (x, z int) {
	return index % t.W, index / t.W
}

// Neighbors resolves the top, bottom, left and right neighbours of index.
// A direction whose clamped coordinate lands back on index is reported as
// absent.
func (t Topology) Neighbors(index int) Neighbors {
	col, row := t.Coords(index)

	topRow := clampInt(row-1, 0, t.H-1)
	bottomRow := clampInt(row+1, 0, t.H-1)
	leftCol := clampInt(col-1, 0, t.W-1)
	rightCol := clampInt(col+1, 0, t.W-1)

	return Neighbors{
		Top:    t.neighbor(index, t.Index(col, topRow)),
		Bottom: t.neighbor(index, t.Index(col, bottomRow)),
		Left:   t.neighbor(index, t.Index(leftCol, row)),
		Right:  t.neighbor(index, t.Index(rightCol, row)),
	}
}

func (t Topology) neighbor(index, candidate int) Neighbor {
	if candidate == index {
		return Neighbor{Index: -1}
	}
	return Neighbor{Index: candidate, Valid: true}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
