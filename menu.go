package arcball

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Item is one entry of the menu. Items repeat around the sphere when there
// are fewer items than disc positions.
type Item struct {
	Title       string
	Description string
	Link        string
	// Image is drawn on the disc, center-cropped to a square. Nil draws a
	// solid disc in Color.
	Image *ebiten.Image
	// Color tints the disc. The zero value is treated as white.
	Color Color
}

// Instance is the per-frame placement of one disc.
type Instance struct {
	// Index is the disc's position on the icosphere.
	Index int
	// Item is the index into the menu items this disc shows.
	Item int
	// Position is the layout position rotated by the current orientation.
	Position r3.Vec
	// Center is where the disc is drawn. Discs are mirrored through the
	// sphere center, so the item nearest the rest direction faces the camera.
	Center r3.Vec
	// Scale is the disc radius; discs near the front and back are larger.
	Scale float64
	// Right and Up span the disc plane.
	Right, Up r3.Vec
}

// Menu lays items out on an icosphere and lets the user spin it with an
// arcball. When the pointer is released, the disc nearest the rest direction
// becomes active and the sphere eases until it faces the camera.
type Menu struct {
	cfg   Config
	items []Item

	positions []r3.Vec
	disc      Disc
	instances []Instance

	control *Controller
	camera  *Camera

	nearest int
	active  int
	moving  bool

	labelAlpha float64
	labelFade  *Fade

	// OnActiveItemChange fires when the active item changes.
	OnActiveItemChange func(index int, item Item)
	// OnMovementChange fires when the menu starts or stops moving.
	OnMovementChange func(moving bool)

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	log    *zap.Logger
	debug  bool
	stats  debugStats
	render renderState

	// Input state
	source      PointerSource
	pointer     pointerState
	handlers    []pointerHandler
	nextID      uint32
	injectQueue []syntheticPointerEvent
	runner      *ScriptRunner

	screenshotQueue []string
}

// NewMenu creates a menu for the given items. The config is validated.
func NewMenu(items []Item, cfg Config) (*Menu, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new menu: %w", err)
	}
	m := &Menu{
		items:         append([]Item(nil), items...),
		control:       NewController(cfg.Control),
		active:        -1,
		labelAlpha:    1,
		log:           zap.NewNop(),
		ScreenshotDir: "screenshots",
	}
	m.camera = newCamera(cfg.Menu.CameraDistance*cfg.Menu.Scale, Rect{Width: 1, Height: 1})
	m.applyLayout(cfg)
	m.computeInstances()
	return m, nil
}

// applyLayout rebuilds geometry when the layout constants change.
func (m *Menu) applyLayout(cfg Config) {
	old := m.cfg.Menu
	m.cfg = cfg
	if m.positions == nil || old.Subdivisions != cfg.Menu.Subdivisions || old.SphereRadius != cfg.Menu.SphereRadius {
		m.positions = Icosphere(cfg.Menu.Subdivisions, cfg.Menu.SphereRadius)
		m.instances = make([]Instance, len(m.positions))
		if m.nearest >= len(m.positions) {
			m.nearest = 0
		}
	}
	if m.disc.Vertices == nil || old.DiscSteps != cfg.Menu.DiscSteps {
		m.disc = NewDisc(cfg.Menu.DiscSteps, 1)
	}
}

// SetConfig applies a new tuning without resetting the orientation.
func (m *Menu) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	m.control.SetConfig(cfg.Control)
	m.applyLayout(cfg)
	m.computeInstances()
	m.log.Debug("config applied",
		zap.Int("discs", len(m.positions)),
		zap.Float64("drag_scale", cfg.Control.DragScale),
		zap.Float64("damping", cfg.Control.Damping))
	return nil
}

// Config returns the current tuning.
func (m *Menu) Config() Config { return m.cfg }

// SetLogger sets the logger used for menu events. Nil disables logging.
func (m *Menu) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	m.log = l
}

// SetPointerSource sets where Update reads platform pointer input from.
// Injected events take precedence. Nil disables platform input.
func (m *Menu) SetPointerSource(src PointerSource) { m.source = src }

// SetViewport resizes the menu to a w×h screen area.
func (m *Menu) SetViewport(w, h float64) {
	m.control.SetViewport(w, h)
	m.camera.SetViewport(Rect{Width: w, Height: h})
}

// Controller returns the orientation controller driving the menu.
func (m *Menu) Controller() *Controller { return m.control }

// Camera returns the menu camera.
func (m *Menu) Camera() *Camera { return m.camera }

// Items returns the menu items. The returned slice MUST NOT be mutated.
func (m *Menu) Items() []Item { return m.items }

// Instances returns the disc placements of the last update. The returned
// slice MUST NOT be mutated.
func (m *Menu) Instances() []Instance { return m.instances }

// ActiveIndex returns the index of the active item, or -1 before the first
// selection or when there are no items.
func (m *Menu) ActiveIndex() int { return m.active }

// ActiveItem returns the active item and whether there is one.
func (m *Menu) ActiveItem() (Item, bool) {
	if m.active < 0 || m.active >= len(m.items) {
		return Item{}, false
	}
	return m.items[m.active], true
}

// NearestInstance returns the icosphere index of the disc nearest the rest
// direction, as of the last idle update.
func (m *Menu) NearestInstance() int { return m.nearest }

// Moving reports whether the user is dragging or the sphere is still
// spinning faster than the moving threshold.
func (m *Menu) Moving() bool { return m.moving }

// LabelAlpha returns the opacity of the active item label.
func (m *Menu) LabelAlpha() float64 { return m.labelAlpha }

// Update advances the menu by dtMs milliseconds: scripted and injected
// input, pointer processing, the controller tick, selection, snapping and
// camera easing. dtMs is capped at the configured maximum frame time.
func (m *Menu) Update(dtMs float64) {
	var t0 time.Time
	if m.debug {
		t0 = time.Now()
	}

	if dtMs > m.cfg.Menu.MaxFrameMs {
		dtMs = m.cfg.Menu.MaxFrameMs
	}
	if !(dtMs >= 0) {
		dtMs = 0
	}

	if m.runner != nil {
		m.runner.step(m)
	}
	m.processInput()

	m.camera.update(float32(dtMs / 1000))
	m.control.Update(dtMs)
	m.computeInstances()
	m.onControl(dtMs)
	m.labelFade.Update(float32(dtMs / 1000))

	if m.debug {
		m.stats.updateTime += time.Since(t0)
		m.stats.frames++
		m.debugLog()
	}
}

// computeInstances places every disc for the current orientation.
func (m *Menu) computeInstances() {
	ori := m.control.Orientation()
	radius := m.cfg.Menu.SphereRadius
	n := len(m.items)
	if n < 1 {
		n = 1
	}
	for i, pos := range m.positions {
		p := ori.Rotate(pos)
		s := math.Abs(p.Z)/radius*0.6 + 0.4
		scale := s * 0.25

		right, up := discBasis(p)
		m.instances[i] = Instance{
			Index:    i,
			Item:     i % n,
			Position: p,
			Center:   r3.Scale(-(1 - scale), p),
			Scale:    scale,
			Right:    right,
			Up:       up,
		}
	}
}

// discBasis returns two unit vectors spanning the plane perpendicular to p,
// with up as close to world +Y as possible.
func discBasis(p r3.Vec) (right, up r3.Vec) {
	forward := r3.Unit(r3.Scale(-1, p))
	right = r3.Cross(r3.Vec{Y: 1}, forward)
	if r3.Norm2(right) < 1e-12 {
		right = r3.Vec{X: 1}
	} else {
		right = r3.Unit(right)
	}
	up = r3.Cross(forward, right)
	return right, up
}

// onControl runs after each controller tick: movement detection, nearest
// item selection, snap target and camera distance.
func (m *Menu) onControl(dtMs float64) {
	mc := m.cfg.Menu
	ts := dtMs/m.cfg.Control.NominalFrameMs + m.cfg.Control.TimeEpsilon
	targetZ := mc.CameraDistance * mc.Scale

	velocity := m.control.RotationVelocity()
	dragging := m.control.Dragging()
	moving := dragging || math.Abs(velocity) > mc.MovingThreshold
	if moving != m.moving {
		m.moving = moving
		m.fadeLabel(moving)
		m.log.Debug("movement changed", zap.Bool("moving", moving), zap.Float64("velocity", velocity))
		if m.OnMovementChange != nil {
			m.OnMovementChange(moving)
		}
	}

	if !dragging {
		m.selectNearest()
	} else {
		targetZ += velocity*mc.DragZoomGain + mc.DragZoomOffset
	}

	if dtMs > 0 {
		m.camera.Ease(targetZ, mc.CameraEase, ts)
	}
}

// selectNearest finds the disc closest to the rest direction, activates its
// item and makes its layout position the controller's snap target.
func (m *Menu) selectNearest() {
	if len(m.positions) == 0 {
		return
	}
	ori := m.control.Orientation()
	local := Conjugate(ori).Rotate(m.control.SnapDirection())

	best, bestDot := 0, math.Inf(-1)
	for i, pos := range m.positions {
		if d := r3.Dot(local, pos); d > bestDot {
			best, bestDot = i, d
		}
	}
	m.nearest = best

	if len(m.items) > 0 {
		idx := best % len(m.items)
		if idx != m.active {
			m.active = idx
			m.log.Debug("active item changed", zap.Int("index", idx), zap.String("title", m.items[idx].Title))
			if m.OnActiveItemChange != nil {
				m.OnActiveItemChange(idx, m.items[idx])
			}
		}
	}

	m.control.SetSnapTarget(m.positions[best])
}

// fadeLabel hides the active label while moving and shows it when settled.
func (m *Menu) fadeLabel(moving bool) {
	d := float32(m.cfg.Menu.LabelFadeSeconds)
	if moving {
		m.labelFade = NewFade(&m.labelAlpha, 0, d, ease.OutQuad)
	} else {
		m.labelFade = NewFade(&m.labelAlpha, 1, d, ease.InOutQuad)
	}
}

// Reset returns the menu to identity orientation with no active item.
func (m *Menu) Reset() {
	m.control.Reset()
	m.nearest = 0
	m.active = -1
	m.moving = false
	m.labelAlpha = 1
	m.labelFade = nil
	m.pointer = pointerState{}
	m.injectQueue = m.injectQueue[:0]
	m.screenshotQueue = m.screenshotQueue[:0]
	m.camera.Z = m.cfg.Menu.CameraDistance * m.cfg.Menu.Scale
	m.computeInstances()
}
