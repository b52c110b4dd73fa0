//go:build ebiten

package render

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads cell colours into an offscreen image and draws it
// scaled onto the screen.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a w x h grid.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		w:   w,
		h:   h,
		img: ebiten.NewImage(w, h),
		buf: make([]byte, 4*w*h),
	}
}

// Blit draws colors onto screen with each cell covering scale x scale pixels.
func (p *GridPainter) Blit(screen *ebiten.Image, colors []mgl64.Vec4, scale int) {
	if len(colors) != p.w*p.h {
		return
	}
	FillRGBA(p.buf, colors)
	p.draw(screen, scale)
}

// BlitHeat draws a translucent temperature map onto screen.
func (p *GridPainter) BlitHeat(screen *ebiten.Image, temps []float64, scale int) {
	if len(temps) != p.w*p.h {
		return
	}
	FillHeat(p.buf, temps)
	p.draw(screen, scale)
}

func (p *GridPainter) draw(screen *ebiten.Image, scale int) {
	if scale <= 0 {
		scale = 1
	}
	p.img.WritePixels(p.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}
