package app

import "fire-ca/internal/core"

// PixelToGrid converts a pixel position on a view drawn at scale pixels per
// cell into fractional grid coordinates with cell centres on integers. inside
// is false when the pixel falls outside the grid.
func PixelToGrid(px, py, scale int, size core.Size) (gx, gz float64, inside bool) {
	if scale <= 0 {
		scale = 1
	}
	if px < 0 || py < 0 || px >= size.W*scale || py >= size.H*scale {
		return 0, 0, false
	}
	gx = float64(px)/float64(scale) - 0.5
	gz = float64(py)/float64(scale) - 0.5
	return gx, gz, true
}
