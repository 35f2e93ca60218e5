package arcball

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	cameraNear = 0.1
	cameraFar  = 40
	// cameraFrame is the half-height of the region kept in view at the
	// resting distance.
	cameraFrame = 0.7
)

// Camera is a perspective camera on the +Z axis looking at the origin.
type Camera struct {
	// Z is the distance from the origin along +Z.
	Z float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	fov float64

	dolly     *gween.Tween
	dollyDone bool
}

// newCamera creates a camera at distance z with the given viewport.
func newCamera(z float64, viewport Rect) *Camera {
	c := &Camera{Z: z}
	c.SetViewport(viewport)
	return c
}

// SetViewport resizes the camera and recomputes the vertical field of view
// so that the sphere stays framed in both landscape and portrait layouts.
// The field of view is derived from the current distance, so call this while
// the camera is at rest.
func (c *Camera) SetViewport(vp Rect) {
	c.Viewport = vp
	aspect := c.Aspect()
	z := math.Max(c.Z, cameraNear)
	if aspect > 1 {
		c.fov = 2 * math.Atan(cameraFrame/z)
	} else {
		c.fov = 2 * math.Atan(cameraFrame/aspect/z)
	}
}

// Aspect returns the viewport width divided by its height.
func (c *Camera) Aspect() float64 {
	if c.Viewport.Height <= 0 {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

// FOV returns the vertical field of view in radians.
func (c *Camera) FOV() float64 { return c.fov }

// WorldToScreen projects a world point to screen coordinates. pxPerUnit is
// the on-screen size of one world unit at the point's depth. ok is false for
// points behind the near plane or beyond the far plane.
func (c *Camera) WorldToScreen(p r3.Vec) (sx, sy, pxPerUnit float64, ok bool) {
	d := c.Z - p.Z
	if d < cameraNear || d > cameraFar {
		return 0, 0, 0, false
	}
	f := 1 / math.Tan(c.fov/2)
	ndcX := f / c.Aspect() * p.X / d
	ndcY := f * p.Y / d

	vp := c.Viewport
	sx = vp.X + (ndcX+1)/2*vp.Width
	sy = vp.Y + (1-ndcY)/2*vp.Height
	pxPerUnit = f / d * vp.Height / 2
	return sx, sy, pxPerUnit, true
}

// Ease moves Z toward target, covering 1/(divisor/ts) of the remaining
// distance. ts is the elapsed time in nominal frames. An active dolly takes
// precedence.
func (c *Camera) Ease(target, divisor, ts float64) {
	if c.dolly != nil && !c.dollyDone {
		return
	}
	if divisor <= 0 {
		c.Z = target
		return
	}
	step := ts / divisor
	if step > 1 {
		step = 1
	}
	c.Z += (target - c.Z) * step
}

// DollyTo animates Z to z over duration seconds, overriding easing until it
// finishes.
func (c *Camera) DollyTo(z float64, duration float32, easeFn ease.TweenFunc) {
	c.dolly = gween.New(float32(c.Z), float32(z), duration, easeFn)
	c.dollyDone = false
}

// Dollying reports whether a DollyTo animation is in progress.
func (c *Camera) Dollying() bool {
	return c.dolly != nil && !c.dollyDone
}

// update advances an active dolly by dt seconds.
func (c *Camera) update(dt float32) {
	if c.dolly == nil || c.dollyDone {
		return
	}
	z, done := c.dolly.Update(dt)
	c.Z = float64(z)
	if done {
		c.dollyDone = true
		c.dolly = nil
	}
}
