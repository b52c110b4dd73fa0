//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"fire-ca/internal/core"
	"fire-ca/internal/fire"
	"fire-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type temperatureProvider interface {
	Temperatures(dst []float64) []float64
}

type configProvider interface {
	Config() fire.Config
}

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim      core.Sim
	scale    int
	showHeat bool
	showTool bool

	painter *render.GridPainter
	temps   []float64
	pixel   *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	o := &Overlay{
		sim:      sim,
		scale:    scale,
		showTool: true,
		painter:  render.NewGridPainter(size.W, size.H),
	}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay layers: 1 for the heat map, 2 for the stimulus
// reach around the cursor.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showTool = !o.showTool
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showHeat {
		if provider, ok := o.sim.(temperatureProvider); ok {
			o.temps = provider.Temperatures(o.temps)
			o.painter.BlitHeat(screen, o.temps, scale)
		}
	}

	if o.showTool {
		if provider, ok := o.sim.(configProvider); ok {
			o.drawReach(screen, provider.Config(), size, scale)
		}
	}
}

// drawReach outlines the stimulus radius around the cursor.
func (o *Overlay) drawReach(screen *ebiten.Image, cfg fire.Config, size core.Size, scale int) {
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= size.W*scale || my >= size.H*scale {
		return
	}
	radius := fire.StimulusRadius / cfg.CellSize * float64(scale)
	if radius <= 1 {
		return
	}

	const segments = 48
	col := color.RGBA{R: 255, G: 230, B: 180, A: 140}
	cx, cy := float64(mx), float64(my)
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / segments
		a1 := 2 * math.Pi * float64(i+1) / segments
		o.drawLine(screen,
			cx+radius*math.Cos(a0), cy+radius*math.Sin(a0),
			cx+radius*math.Cos(a1), cy+radius*math.Sin(a1),
			1, col)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
