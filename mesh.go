package arcball

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// maxStretch caps the velocity-driven stretch distance in world units.
	maxStretch = 0.15
	// stretchGain converts rotation velocity into stretch distance.
	stretchGain = 15
	// drawVelocityGain scales the controller velocity handed to the stretch.
	drawVelocityGain = 1.1
)

// stretchVertex pulls a disc vertex along the direction the sphere is
// spinning, then projects it onto the sphere through the disc center.
// Vertices on the leading and trailing rim move the most, the disc center
// not at all. Flat discs are curved onto the sphere even at rest.
func stretchVertex(world, center, axis r3.Vec, velocity float64) r3.Vec {
	radius := r3.Norm(center)
	if radius == 0 || r3.Norm2(world) == 0 {
		return world
	}

	rv := math.Min(maxStretch, velocity*stretchGain)
	dir := r3.Cross(center, axis)
	rel := r3.Sub(world, center)
	if rv > 0 && r3.Norm2(dir) >= 1e-12 && r3.Norm2(rel) >= 1e-12 {
		dir = r3.Unit(dir)
		strength := r3.Dot(dir, r3.Unit(rel))
		inv := math.Min(0, math.Abs(strength)-1)
		strength = rv * sign(strength) * math.Abs(inv*inv*inv+1)
		if moved := r3.Add(world, r3.Scale(strength, dir)); r3.Norm2(moved) > 0 {
			world = moved
		}
	}
	return r3.Scale(radius, r3.Unit(world))
}

// vertexAlpha fades vertices that face away from the camera.
func vertexAlpha(world r3.Vec) float64 {
	if r3.Norm2(world) == 0 {
		return 1
	}
	return smoothstep(0.5, 1, r3.Unit(world).Z)*0.9 + 0.1
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// squareCrop returns the largest centered square of a w×h image.
func squareCrop(w, h float64) (x, y, side float64) {
	side = math.Min(w, h)
	return (w - side) / 2, (h - side) / 2, side
}

// discVertices writes the screen-space mesh of one disc into dst and
// returns it. srcW and srcH are the size of the image sampled by the disc.
// ok is false if any vertex falls outside the camera's depth range.
func (m *Menu) discVertices(inst Instance, srcW, srcH float64, tint Color, dst []ebiten.Vertex) ([]ebiten.Vertex, bool) {
	dst = dst[:0]
	axis := m.control.RotationAxis()
	velocity := m.control.RotationVelocity() * drawVelocityGain
	cropX, cropY, side := squareCrop(srcW, srcH)

	for i, lv := range m.disc.Vertices {
		local := r3.Add(r3.Scale(lv.X, inst.Right), r3.Scale(lv.Y, inst.Up))
		world := r3.Add(inst.Center, r3.Scale(inst.Scale, local))
		world = stretchVertex(world, inst.Center, axis, velocity)

		sx, sy, _, ok := m.camera.WorldToScreen(world)
		if !ok {
			return dst, false
		}
		a := float32(clamp01(tint.A * vertexAlpha(world)))
		uv := m.disc.UVs[i]
		dst = append(dst, ebiten.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			SrcX:   float32(cropX + uv.X*side),
			SrcY:   float32(cropY + (1-uv.Y)*side),
			ColorR: float32(tint.R) * a,
			ColorG: float32(tint.G) * a,
			ColorB: float32(tint.B) * a,
			ColorA: a,
		})
	}
	return dst, true
}

// computeMeshAABB scans DstX/DstY of the given vertices and returns their
// screen-space bounding box.
func computeMeshAABB(verts []ebiten.Vertex) Rect {
	if len(verts) == 0 {
		return Rect{}
	}
	minX := float64(verts[0].DstX)
	minY := float64(verts[0].DstY)
	maxX := minX
	maxY := minY
	for i := 1; i < len(verts); i++ {
		x := float64(verts[i].DstX)
		y := float64(verts[i].DstY)
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- White pixel singleton (single-threaded, created on first draw) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used by discs without an image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
