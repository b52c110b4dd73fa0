package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ToRGBA converts a linear [0,1] colour vector into 8-bit RGBA. Components
// outside the range are clamped.
func ToRGBA(v mgl64.Vec4) color.RGBA {
	return color.RGBA{
		R: toByte(v[0]),
		G: toByte(v[1]),
		B: toByte(v[2]),
		A: toByte(v[3]),
	}
}

func toByte(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// FillRGBA converts cell colours into RGBA pixels in buf. buf must hold at
// least 4*len(colors) bytes.
func FillRGBA(buf []byte, colors []mgl64.Vec4) {
	for i, v := range colors {
		base := i * 4
		c := ToRGBA(v)
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}

// FillHeat converts temperatures into a translucent heat map. Cold cells are
// fully transparent.
func FillHeat(buf []byte, temps []float64) {
	const maxAlpha = 200.0
	for i, t := range temps {
		base := i * 4
		if t <= 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		c := HeatColor(t)
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = uint8(math.Round(maxAlpha * math.Sqrt(math.Min(t, 1))))
	}
}

var heatStops = []struct {
	t   float64
	col color.RGBA
}{
	{0.0, color.RGBA{R: 40, G: 0, B: 60, A: 255}},
	{0.35, color.RGBA{R: 200, G: 30, B: 20, A: 255}},
	{0.7, color.RGBA{R: 255, G: 160, B: 20, A: 255}},
	{1.0, color.RGBA{R: 255, G: 250, B: 220, A: 255}},
}

// HeatColor maps a temperature in [0,1] onto a dark-red-to-white ramp.
func HeatColor(t float64) color.RGBA {
	t = math.Max(0, math.Min(t, 1))
	for i := 1; i < len(heatStops); i++ {
		curr := heatStops[i]
		if t <= curr.t {
			prev := heatStops[i-1]
			local := (t - prev.t) / (curr.t - prev.t)
			return color.RGBA{
				R: lerpComponent(prev.col.R, curr.col.R, local),
				G: lerpComponent(prev.col.G, curr.col.G, local),
				B: lerpComponent(prev.col.B, curr.col.B, local),
				A: 255,
			}
		}
	}
	return heatStops[len(heatStops)-1].col
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// Image builds a w x h image with one pixel per cell, row-major.
func Image(w, h int, colors []mgl64.Vec4) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	n := w * h
	if len(colors) < n {
		n = len(colors)
	}
	FillRGBA(img.Pix, colors[:n])
	return img
}

// Upscale returns img enlarged by an integer factor with nearest-neighbour
// sampling.
func Upscale(img *image.RGBA, scale int) *image.RGBA {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < out.Rect.Dy(); y++ {
		for x := 0; x < out.Rect.Dx(); x++ {
			out.SetRGBA(x, y, img.RGBAAt(b.Min.X+x/scale, b.Min.Y+y/scale))
		}
	}
	return out
}

// EncodePNG writes the cell colours as a PNG, enlarging each cell to a
// scale x scale block.
func EncodePNG(w io.Writer, width, height, scale int, colors []mgl64.Vec4) error {
	return png.Encode(w, Upscale(Image(width, height, colors), scale))
}
