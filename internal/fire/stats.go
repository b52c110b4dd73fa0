package fire

import "math"

// Stats summarizes the temperature field at one instant.
type Stats struct {
	Tick    int64   `json:"tick"`
	Cells   int     `json:"cells"`
	Lit     int     `json:"lit"`
	Out     int     `json:"out"`
	Mean    float64 `json:"mean_temperature"`
	Max     float64 `json:"max_temperature"`
	Elapsed float64 `json:"elapsed"`
}

// LitFraction is the share of cells with a positive temperature.
func (s Stats) LitFraction() float64 {
	if s.Cells == 0 {
		return 0
	}
	return float64(s.Lit) / float64(s.Cells)
}

// Stats computes a summary of the current grid. It is zero before
// initialization.
func (s *Simulation) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Tick: s.ticks, Elapsed: s.elapsed}
	if s.grid == nil {
		return st
	}
	st = gridStats(s.grid)
	st.Tick = s.ticks
	st.Elapsed = s.elapsed
	return st
}

func gridStats(g *Grid) Stats {
	st := Stats{Cells: len(g.Cells)}
	sum := 0.0
	for i := range g.Cells {
		t := g.Cells[i].Temperature
		sum += t
		st.Max = math.Max(st.Max, t)
		if t > 0 {
			st.Lit++
		} else {
			st.Out++
		}
	}
	if st.Cells > 0 {
		st.Mean = sum / float64(st.Cells)
	}
	return st
}
