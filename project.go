package arcball

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Project maps a screen-space point onto the arcball surface for a viewport
// of w×h and returns the (unnormalized) 3D point.
//
// Screen coordinates are centered on the viewport and divided by the larger
// viewport side, so both axes span roughly [-1, 1]. Points with
// x²+y² <= radius²/2 land on the sphere of the given radius; points further out
// land on the hyperbolic sheet z = radius²/(2·sqrt(x²+y²)), which meets the
// sphere at the boundary with the same height. The X axis is flipped so that
// dragging right turns the front of the sphere right.
func Project(x, y, w, h, radius float64) r3.Vec {
	s := math.Max(w, h) - 1
	if s <= 0 {
		s = 1
	}
	nx := (2*x - w - 1) / s
	ny := (2*y - h - 1) / s

	r2 := radius * radius
	xySq := nx*nx + ny*ny
	var z float64
	if xySq <= r2/2 {
		z = math.Sqrt(r2 - xySq)
	} else {
		z = r2 / (2 * math.Sqrt(xySq))
	}
	return r3.Vec{X: -nx, Y: ny, Z: z}
}
