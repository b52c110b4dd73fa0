//go:build ebiten

package app

import (
	"time"

	"fire-ca/internal/core"
	"fire-ca/internal/fire"
	"fire-ca/internal/render"
	"fire-ca/internal/ui"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the pixel width of the parameter panel.
const HUDWidth = 240

type colorProvider interface {
	Colors(dst []mgl64.Vec4) []mgl64.Vec4
}

type stimulator interface {
	GroundPoint(gx, gz float64) mgl64.Vec3
	Stimulate(point mgl64.Vec3, kind fire.Stimulus) int
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	colors  []mgl64.Vec4

	scale    int
	dt       float64
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation. The simulation advances
// by 1/tps seconds per update.
func New(sim core.Sim, scale int, seed int64, tps int) *Game {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	return &Game{
		sim:     sim,
		painter: gp,
		overlay: ui.NewOverlay(sim, scale),
		hud:     ui.NewHUD(sim, HUDWidth),
		scale:   scale,
		dt:      1 / float64(tps),
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth())
	g.handleMouse()

	if !g.paused || g.tickOnce {
		g.tickOnce = false
		if err := g.sim.Step(g.dt); err != nil {
			return err
		}
	}
	return nil
}

// handleMouse ignites under a held left button and extinguishes under a held
// right button.
func (g *Game) handleMouse() {
	st, ok := g.sim.(stimulator)
	if !ok {
		return
	}
	var kind fire.Stimulus
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		kind = fire.StimulusIgnite
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		kind = fire.StimulusExtinguish
	default:
		return
	}
	mx, my := ebiten.CursorPosition()
	gx, gz, inside := PixelToGrid(mx, my, g.scale, g.sim.Size())
	if !inside {
		return
	}
	st.Stimulate(st.GroundPoint(gx, gz), kind)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	if provider, ok := g.sim.(colorProvider); ok {
		g.colors = provider.Colors(g.colors)
		g.painter.Blit(screen, g.colors, g.scale)
	}
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

func (g *Game) viewWidth() int {
	return g.sim.Size().W * g.scale
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
