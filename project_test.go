package arcball

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pixelFor returns the pixel coordinate that normalizes to n on an axis of
// the given size in a square viewport.
func pixelFor(n, size float64) float64 {
	return (n*(size-1) + size + 1) / 2
}

func TestProjectCenter(t *testing.T) {
	p := Project(250.5, 250.5, 500, 500, 2)
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 0, p.Y, 1e-12)
	assert.InDelta(t, 2, p.Z, 1e-12)
}

func TestProjectFlipsX(t *testing.T) {
	right := Project(400, 250.5, 500, 500, 2)
	left := Project(100, 250.5, 500, 500, 2)
	assert.Less(t, right.X, 0.0)
	assert.Greater(t, left.X, 0.0)

	below := Project(250.5, 400, 500, 500, 2)
	assert.Greater(t, below.Y, 0.0)
}

func TestProjectOnSphereInside(t *testing.T) {
	p := Project(300, 200, 500, 500, 2)
	assert.InDelta(t, 4, p.X*p.X+p.Y*p.Y+p.Z*p.Z, 1e-12)
}

func TestProjectContinuousAtBoundary(t *testing.T) {
	const size = 501
	boundary := math.Sqrt2 // x²+y² = r²/2 with r = 2

	for _, dir := range []struct{ x, y float64 }{{1, 0}, {0, 1}, {math.Sqrt2 / 2, math.Sqrt2 / 2}, {-0.6, 0.8}} {
		inside := Project(pixelFor(dir.x*(boundary-1e-9), size), pixelFor(dir.y*(boundary-1e-9), size), size, size, 2)
		outside := Project(pixelFor(dir.x*(boundary+1e-9), size), pixelFor(dir.y*(boundary+1e-9), size), size, size, 2)

		assert.InDelta(t, math.Sqrt2, inside.Z, 1e-6, "sphere branch at %v", dir)
		assert.InDelta(t, inside.Z, outside.Z, 1e-6, "jump at %v", dir)
	}
}

func TestProjectHyperbolicSheet(t *testing.T) {
	const size = 501
	// Far out, z falls off as r²/(2·d).
	p := Project(pixelFor(4, size), pixelFor(0, size), size, size, 2)
	assert.InDelta(t, 0.5, p.Z, 1e-9)

	prev := math.Inf(1)
	for n := 1.5; n < 20; n += 0.5 {
		z := Project(pixelFor(n, size), pixelFor(0, size), size, size, 2).Z
		require.Less(t, z, prev)
		require.Greater(t, z, 0.0)
		prev = z
	}
}

func TestProjectNonSquareUsesLargerSide(t *testing.T) {
	// 801x401: the larger side sets the scale, so the vertical range is half
	// the horizontal one.
	top := Project(401, 1, 801, 401, 2)
	rightEdge := Project(801, 201, 801, 401, 2)
	assert.InDelta(t, 0.5, top.Y*-1, 1e-12)
	assert.InDelta(t, -1, rightEdge.X, 1e-12)
}

func TestProjectDegenerateViewport(t *testing.T) {
	p := Project(0, 0, 0, 0, 2)
	assert.False(t, math.IsNaN(p.Z))
	assert.False(t, math.IsInf(p.Z, 0))
}
