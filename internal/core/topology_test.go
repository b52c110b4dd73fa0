package core

import "testing"

func TestNeighborCountsByPosition(t *testing.T) {
	for _, size := range []Size{{W: 4, H: 4}, {W: 5, H: 3}, {W: 2, H: 7}} {
		topo := NewTopology(size.W, size.H)
		for i := 0; i < topo.Total(); i++ {
			x, z := topo.Coords(i)
			edgeX := x == 0 || x == size.W-1
			edgeZ := z == 0 || z == size.H-1
			want := 4
			switch {
			case edgeX && edgeZ:
				want = 2
			case edgeX || edgeZ:
				want = 3
			}
			if got := topo.Neighbors(i).Count(); got != want {
				t.Fatalf("%dx%d cell %d (%d,%d): expected %d neighbors, got %d", size.W, size.H, i, x, z, want, got)
			}
		}
	}
}

func TestNeighborsNonSquareUseWidthForRows(t *testing.T) {
	topo := NewTopology(5, 3)
	// index 7 is column 2, row 1: the centre of a 5x3 grid.
	n := topo.Neighbors(7)
	expects := map[string]Neighbor{
		"top":    {Index: 2, Valid: true},
		"bottom": {Index: 12, Valid: true},
		"left":   {Index: 6, Valid: true},
		"right":  {Index: 8, Valid: true},
	}
	got := map[string]Neighbor{"top": n.Top, "bottom": n.Bottom, "left": n.Left, "right": n.Right}
	for dir, want := range expects {
		if got[dir] != want {
			t.Fatalf("%s neighbor: expected %+v, got %+v", dir, want, got[dir])
		}
	}

	// index 14 is the bottom-right corner.
	corner := topo.Neighbors(14)
	if corner.Bottom.Valid || corner.Right.Valid {
		t.Fatalf("expected no bottom/right neighbor at corner, got %+v", corner)
	}
	if corner.Top.Index != 9 || corner.Left.Index != 13 {
		t.Fatalf("expected top 9 and left 13, got %+v", corner)
	}
}

func TestNeighborsAbsentCarrySentinelIndex(t *testing.T) {
	topo := NewTopology(1, 1)
	n := topo.Neighbors(0)
	if n.Count() != 0 {
		t.Fatalf("expected a 1x1 grid to have no neighbors, got %d", n.Count())
	}
	for _, nb := range n.All() {
		if nb.Index != -1 {
			t.Fatalf("expected absent neighbor index -1, got %d", nb.Index)
		}
	}

	strip := NewTopology(1, 3)
	if got := strip.Neighbors(1).Count(); got != 2 {
		t.Fatalf("expected middle of a 1x3 strip to have 2 neighbors, got %d", got)
	}
}

func TestNewTopologyClampsDimensions(t *testing.T) {
	topo := NewTopology(0, -3)
	if topo.W != 1 || topo.H != 1 {
		t.Fatalf("expected 1x1, got %dx%d", topo.W, topo.H)
	}
}
