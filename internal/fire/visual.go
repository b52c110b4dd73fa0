package fire

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// smoothingRate is the per-second rate at which height and colour chase
// their targets. The blend factor is capped at 1 so long frames land on the
// target instead of overshooting it.
const smoothingRate = 8

// look derives flame height and colour from a cell's temperature.
type look struct {
	halfHeight float64
	palette    Palette
	elapsed    float64
	blend      float64
}

func newLook(cfg Config, dt, elapsed float64) look {
	return look{
		halfHeight: cfg.CellHeight / 2,
		palette:    cfg.Palette,
		elapsed:    elapsed,
		blend:      math.Min(dt*smoothingRate, 1),
	}
}

func (l look) apply(c *Cell, fireOut bool) {
	t := c.Temperature

	flicker := math.Sin(5*t*l.elapsed+100*(1+c.IgnitionVariance)) * c.StartHeightVariance * t
	target := c.StartHeight + (l.halfHeight+flicker)*t
	c.Position[1] = lerp(c.Position.Y(), target, l.blend)

	targetColor := l.palette.Unlit
	if !fireOut {
		targetColor = lerpVec4(l.palette.LitLow, l.palette.LitHigh, t)
	}
	c.Color = lerpVec4(c.Color, targetColor, l.blend)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpVec4(a, b mgl64.Vec4, t float64) mgl64.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}
