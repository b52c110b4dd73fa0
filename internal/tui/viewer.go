// Package tui draws a fire simulation in a terminal with tcell. Each
// terminal cell shows two grid rows using an upper half block.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fire-ca/internal/core"
	"fire-ca/internal/fire"
	"fire-ca/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Simulation is what the viewer needs from a fire simulation.
type Simulation interface {
	core.Sim
	Colors(dst []mgl64.Vec4) []mgl64.Vec4
	Stats() fire.Stats
	GroundPoint(gx, gz float64) mgl64.Vec3
	Stimulate(point mgl64.Vec3, kind fire.Stimulus) int
}

// maxCatchUp bounds how many ticks one timer wake-up may run.
const maxCatchUp = 4

const halfBlock = '▀'

// Viewer owns the terminal loop.
type Viewer struct {
	screen tcell.Screen
	sim    Simulation
	clock  *core.FixedStep
	logger *slog.Logger

	colors []mgl64.Vec4
	paused bool
	seed   int64
}

// New builds a viewer for sim on an initialized screen, stepping at tps
// ticks per second.
func New(screen tcell.Screen, sim Simulation, seed int64, tps int, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Viewer{
		screen: screen,
		sim:    sim,
		clock:  core.NewFixedStep(tps),
		logger: logger,
		seed:   seed,
	}
}

// Run processes events and ticks until the user quits or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	v.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	v.screen.Clear()

	// The first step spawns the grid.
	if err := v.sim.Step(0); err != nil {
		return err
	}

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(v.clock.Interval())
	defer ticker.Stop()

	v.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			done, err := v.handleEvent(ev)
			if err != nil || done {
				return err
			}
		case <-ticker.C:
			if err := v.advance(); err != nil {
				return err
			}
		}
		v.draw()
	}
}

// advance runs the ticks the clock has granted since the last call.
func (v *Viewer) advance() error {
	for i := 0; i < maxCatchUp && v.clock.ShouldStep(); i++ {
		if v.paused {
			continue
		}
		if err := v.sim.Step(v.clock.Delta()); err != nil {
			return err
		}
	}
	return nil
}

// handleEvent applies one input event and reports whether the viewer should
// exit.
func (v *Viewer) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyEnter:
			v.paused = false
		case tcell.KeyRune:
			return v.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		v.handleMouse(ev)
	}
	return false, nil
}

func (v *Viewer) handleRune(r rune) (bool, error) {
	switch r {
	case 'q':
		return true, nil
	case ' ':
		v.paused = !v.paused
	case 'n':
		if err := v.sim.Step(v.clock.Delta()); err != nil {
			return false, err
		}
	case 'r':
		v.reset(v.seed)
	case 's':
		v.reset(time.Now().UnixNano())
	}
	return false, nil
}

func (v *Viewer) reset(seed int64) {
	v.seed = seed
	v.sim.Reset(seed)
	if err := v.sim.Step(0); err != nil {
		v.logger.Error("reset failed", "seed", seed, "error", err)
		return
	}
	v.logger.Debug("simulation reset", "seed", seed)
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	var kind fire.Stimulus
	switch buttons := ev.Buttons(); {
	case buttons&tcell.Button1 != 0:
		kind = fire.StimulusIgnite
	case buttons&tcell.Button2 != 0:
		kind = fire.StimulusExtinguish
	default:
		return
	}
	x, y := ev.Position()
	gx, gz, ok := TerminalToGrid(x, y, v.sim.Size())
	if !ok {
		return
	}
	v.sim.Stimulate(v.sim.GroundPoint(gx, gz), kind)
}

// TerminalToGrid maps a terminal cell to fractional grid coordinates. A
// terminal row covers grid rows 2y and 2y+1, so the point lands between them.
func TerminalToGrid(x, y int, size core.Size) (gx, gz float64, ok bool) {
	if x < 0 || y < 0 || x >= size.W || 2*y >= size.H {
		return 0, 0, false
	}
	gz = float64(2*y) + 0.5
	if 2*y+1 >= size.H {
		gz = float64(2 * y)
	}
	return float64(x), gz, true
}

func (v *Viewer) draw() {
	v.screen.Clear()
	size := v.sim.Size()
	tw, th := v.screen.Size()
	rows := th - 1

	v.colors = v.sim.Colors(v.colors)
	if len(v.colors) == size.W*size.H {
		for ty := 0; ty < rows && 2*ty < size.H; ty++ {
			for x := 0; x < tw && x < size.W; x++ {
				top := v.colors[2*ty*size.W+x]
				style := tcell.StyleDefault.Foreground(termColor(top)).Background(tcell.ColorBlack)
				if 2*ty+1 < size.H {
					style = style.Background(termColor(v.colors[(2*ty+1)*size.W+x]))
				}
				v.screen.SetContent(x, ty, halfBlock, nil, style)
			}
		}
	}

	drawText(v.screen, 0, th-1, tcell.StyleDefault.Foreground(tcell.ColorSilver), v.status())
	v.screen.Show()
}

func (v *Viewer) status() string {
	st := v.sim.Stats()
	line := fmt.Sprintf("%s tick %d  burning %d/%d  mean %.3f  max %.3f  seed %d",
		v.sim.Name(), st.Tick, st.Lit, st.Cells, st.Mean, st.Max, v.seed)
	if v.paused {
		line += "  [paused]"
	}
	return line
}

func termColor(c mgl64.Vec4) tcell.Color {
	rgba := render.ToRGBA(c)
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
