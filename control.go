package arcball

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Phase is the pointer state of a Controller.
type Phase uint8

const (
	PhaseIdle     Phase = iota // pointer released; drag rotation decays, snap applies
	PhaseDragging              // pointer engaged; drag deltas drive the rotation
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// ControlState is the output of one Controller tick.
type ControlState struct {
	// Orientation is the cumulative rotation of the controlled object.
	Orientation r3.Rotation
	// Axis is the unit axis of the smoothed per-frame rotation.
	Axis r3.Vec
	// Velocity is the smoothed spin rate in revolutions per nominal frame.
	Velocity float64
	// Phase is the pointer state the tick ran in.
	Phase Phase
}

// Controller turns pointer drags into a damped 3D orientation.
//
// It is passive: the owner delivers pointer events and calls Update once per
// frame with the elapsed time, on one goroutine. A Controller never schedules
// work of its own.
type Controller struct {
	cfg ControlConfig

	width, height float64

	engaged     bool
	pointer     Vec2
	prevPointer Vec2

	orientation      r3.Rotation
	dragRotation     r3.Rotation
	combinedSmoothed r3.Rotation

	axis        r3.Vec
	rawVelocity float64
	velocity    float64

	snapDirection r3.Vec
	snapTarget    r3.Vec
	hasSnapTarget bool
}

// NewController creates a Controller at rest with identity orientation.
// The viewport defaults to 1×1 until SetViewport is called.
func NewController(cfg ControlConfig) *Controller {
	c := &Controller{cfg: cfg, width: 1, height: 1}
	c.Reset()
	return c
}

// Reset returns the controller to its initial state: identity orientation,
// no velocity, pointer released and no snap target. Config and viewport are
// kept.
func (c *Controller) Reset() {
	c.engaged = false
	c.pointer = Vec2{}
	c.prevPointer = Vec2{}
	c.orientation = Identity
	c.dragRotation = Identity
	c.combinedSmoothed = Identity
	c.axis = r3.Vec{X: 1}
	c.rawVelocity = 0
	c.velocity = 0
	c.snapDirection = r3.Vec{Z: -1}
	c.snapTarget = r3.Vec{}
	c.hasSnapTarget = false
}

// Config returns the controller's tuning constants.
func (c *Controller) Config() ControlConfig { return c.cfg }

// SetConfig replaces the tuning constants. State is kept, so the change
// takes effect smoothly on the next tick.
func (c *Controller) SetConfig(cfg ControlConfig) { c.cfg = cfg }

// SetViewport sets the size of the area pointer positions are reported in.
func (c *Controller) SetViewport(w, h float64) {
	c.width = w
	c.height = h
}

// Viewport returns the current viewport size.
func (c *Controller) Viewport() (w, h float64) { return c.width, c.height }

// PointerEngage starts a drag at (x, y). The previous position is reset to
// the current one so the first tick does not jump. Non-finite positions are
// ignored.
func (c *Controller) PointerEngage(x, y float64) {
	if !finite2(x, y) {
		return
	}
	c.pointer = Vec2{X: x, Y: y}
	c.prevPointer = c.pointer
	c.engaged = true
}

// PointerMove records the pointer position. It is ignored unless engaged.
func (c *Controller) PointerMove(x, y float64) {
	if !c.engaged || !finite2(x, y) {
		return
	}
	c.pointer = Vec2{X: x, Y: y}
}

// PointerRelease ends the drag.
func (c *Controller) PointerRelease() {
	c.engaged = false
}

// Dragging reports whether the pointer is engaged.
func (c *Controller) Dragging() bool { return c.engaged }

// Phase returns the current pointer state.
func (c *Controller) Phase() Phase {
	if c.engaged {
		return PhaseDragging
	}
	return PhaseIdle
}

// SetSnapTarget sets a direction in object-local space. While idle, the
// orientation eases until that direction, rotated into world space, points
// along the snap direction. The vector is normalized; a zero or non-finite
// vector clears the target.
func (c *Controller) SetSnapTarget(dir r3.Vec) {
	n := r3.Norm(dir)
	if !(n > c.cfg.AxisEpsilon) || !vecFinite(dir) {
		c.ClearSnapTarget()
		return
	}
	c.snapTarget = r3.Scale(1/n, dir)
	c.hasSnapTarget = true
}

// ClearSnapTarget removes the snap target; the orientation then only coasts.
func (c *Controller) ClearSnapTarget() {
	c.snapTarget = r3.Vec{}
	c.hasSnapTarget = false
}

// SnapTarget returns the object-local snap target and whether one is set.
func (c *Controller) SnapTarget() (r3.Vec, bool) { return c.snapTarget, c.hasSnapTarget }

// SnapDirection returns the world-space rest direction the snap target is
// eased onto.
func (c *Controller) SnapDirection() r3.Vec { return c.snapDirection }

// Orientation returns the current unit orientation.
func (c *Controller) Orientation() r3.Rotation { return c.orientation }

// DragRotation returns the rotation applied by the pointer on the last tick.
func (c *Controller) DragRotation() r3.Rotation { return c.dragRotation }

// RotationAxis returns the unit axis of the smoothed rotation.
func (c *Controller) RotationAxis() r3.Vec { return c.axis }

// RotationVelocity returns the smoothed spin rate in revolutions per nominal
// frame.
func (c *Controller) RotationVelocity() float64 { return c.velocity }

// State returns the current output without advancing.
func (c *Controller) State() ControlState {
	return ControlState{
		Orientation: c.orientation,
		Axis:        c.axis,
		Velocity:    c.velocity,
		Phase:       c.Phase(),
	}
}

// Update advances the controller by dtMs milliseconds and returns the new
// state. Step sizes and damping scale with dtMs relative to the nominal frame,
// so the feel does not depend on the frame rate. A zero dtMs still advances
// by the time epsilon. A negative or non-finite dtMs leaves the state
// unchanged.
func (c *Controller) Update(dtMs float64) ControlState {
	if !(dtMs >= 0) || math.IsInf(dtMs, 0) {
		return c.State()
	}
	ts := dtMs/c.cfg.NominalFrameMs + c.cfg.TimeEpsilon

	snapRotation := Identity
	if c.engaged {
		c.updateDrag(ts)
	} else {
		c.decayDrag(ts)
		if c.hasSnapTarget {
			snapRotation = c.snapStep(ts)
		}
	}

	combined := Compose(snapRotation, c.dragRotation)
	if next := Normalize(Compose(combined, c.orientation)); isFinite(next) {
		c.orientation = next
	}

	c.trackVelocity(combined, ts)
	return c.State()
}

// updateDrag moves the previous pointer position a scaled step toward the
// current one and turns that step into the drag rotation.
func (c *Controller) updateDrag(ts float64) {
	k := c.cfg.DragScale * ts
	move := Vec2{X: (c.pointer.X - c.prevPointer.X) * k, Y: (c.pointer.Y - c.prevPointer.Y) * k}
	if move.X*move.X+move.Y*move.Y <= c.cfg.DragThresholdSq {
		c.decayDrag(ts)
		return
	}

	next := Vec2{X: c.prevPointer.X + move.X, Y: c.prevPointer.Y + move.Y}
	a := r3.Unit(Project(next.X, next.Y, c.width, c.height, c.cfg.ArcballRadius))
	b := r3.Unit(Project(c.prevPointer.X, c.prevPointer.Y, c.width, c.height, c.cfg.ArcballRadius))
	c.prevPointer = next

	axis := r3.Cross(a, b)
	n := r3.Norm(axis)
	if !(n > c.cfg.AxisEpsilon) {
		c.decayDrag(ts)
		return
	}
	angle := vecAngle(a, b, n) * c.cfg.AngleGain
	if r := AxisAngle(r3.Scale(1/n, axis), angle); isFinite(r) {
		c.dragRotation = r
	}
}

// decayDrag eases the drag rotation toward identity.
func (c *Controller) decayDrag(ts float64) {
	r := Normalize(Slerp(c.dragRotation, Identity, unitFactor(c.cfg.Damping*ts)))
	if isFinite(r) {
		c.dragRotation = r
	}
}

// snapStep returns the corrective rotation that turns the world-space snap
// target a fraction of the way toward the snap direction. The fraction
// shrinks with distance so far targets are approached gently.
func (c *Controller) snapStep(ts float64) r3.Rotation {
	a := c.orientation.Rotate(c.snapTarget)
	b := c.snapDirection

	sqrDist := r3.Norm2(r3.Sub(a, b))
	factor := math.Max(c.cfg.SnapMinFactor, 1-sqrDist*c.cfg.SnapDistanceGain) * c.cfg.SnapStrength * ts

	axis := r3.Cross(a, b)
	n := r3.Norm(axis)
	if !(n > c.cfg.AxisEpsilon) {
		return Identity
	}
	angle := vecAngle(a, b, n) * factor
	r := AxisAngle(r3.Scale(1/n, axis), angle)
	if !isFinite(r) {
		return Identity
	}
	return r
}

// trackVelocity smooths the per-tick rotation and derives axis and speed
// from it.
func (c *Controller) trackVelocity(combined r3.Rotation, ts float64) {
	smoothed := Normalize(Slerp(c.combinedSmoothed, combined, unitFactor(c.cfg.VelocitySmoothing*ts)))
	if !isFinite(smoothed) {
		return
	}
	c.combinedSmoothed = smoothed

	rad := Angle(smoothed)
	if s := math.Sin(rad / 2); s > c.cfg.AxisEpsilon {
		c.axis = r3.Vec{X: smoothed.Imag / s, Y: smoothed.Jmag / s, Z: smoothed.Kmag / s}
	}
	c.rawVelocity += (rad/(2*math.Pi) - c.rawVelocity) * unitFactor(c.cfg.VelocityDecay*ts)
	c.velocity = c.rawVelocity / ts
}

// unitFactor clamps an interpolation factor to [0, 1] so long frames never
// overshoot their target.
func unitFactor(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func finite2(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}
