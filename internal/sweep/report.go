package sweep

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// WriteSummary prints the top results as an aligned table. limit <= 0 prints
// every result.
func WriteSummary(w io.Writer, results []Result, limit int) error {
	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "rank\tseed\tdraws\tignited\tpeak\tpeak_tick\tburnout\tfinal_lit\tfinal_mean")
	for i := 0; i < limit; i++ {
		r := results[i]
		burnout := "-"
		if r.BurnoutTick >= 0 {
			burnout = fmt.Sprint(r.BurnoutTick)
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%s\t%d\t%.4f\n",
			i+1, r.Seed, r.Draws, r.Ignited, r.PeakLit, r.PeakTick, burnout, r.Final.Lit, r.Final.Mean)
	}
	return tw.Flush()
}

var seriesColors = []drawing.Color{
	{R: 220, G: 50, B: 32, A: 255},
	{R: 255, G: 165, B: 0, A: 255},
	{R: 120, G: 60, B: 20, A: 255},
	{R: 200, G: 120, B: 160, A: 255},
	{R: 60, G: 110, B: 200, A: 255},
	{R: 40, G: 150, B: 90, A: 255},
}

// WriteChart renders the burning fraction over time of the first limit
// results as a PNG line chart.
func WriteChart(w io.Writer, results []Result, limit int) error {
	if len(results) == 0 {
		return errors.New("no results to chart")
	}
	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}

	var series []chart.Series
	xMax := 1.0
	for i := 0; i < limit; i++ {
		r := results[i]
		if len(r.Lit) < 2 {
			return fmt.Errorf("seed %d has %d samples, need at least 2", r.Seed, len(r.Lit))
		}
		cells := float64(r.Final.Cells)
		if cells == 0 {
			cells = 1
		}
		xs := make([]float64, len(r.Lit))
		ys := make([]float64, len(r.Lit))
		for tick, lit := range r.Lit {
			xs[tick] = float64(tick)
			ys[tick] = float64(lit) / cells
		}
		if last := xs[len(xs)-1]; last > xMax {
			xMax = last
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("seed %d", r.Seed),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: seriesColors[i%len(seriesColors)], StrokeWidth: 2.0},
		})
	}

	graph := chart.Chart{
		Width:  900,
		Height: 400,
		XAxis: chart.XAxis{
			Name:  "tick",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: xMax},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "burning fraction",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
