package arcball

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// spin drags across the middle of a 500×500 menu and lets it settle.
func spin(m *Menu, settleFrames int) {
	m.InjectDrag(120, 210, 380, 300, 10)
	for i := 0; i < 10+settleFrames; i++ {
		m.Update(nominalMs)
	}
}

func TestNewMenuRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Menu.SphereRadius = 0
	_, err := NewMenu(nil, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMenuLayout(t *testing.T) {
	m := newTestMenu(t)
	require.Len(t, m.Instances(), 42)
	for i, inst := range m.Instances() {
		assert.Equal(t, i, inst.Index)
		assert.Equal(t, i%5, inst.Item)
		assert.InDelta(t, 2, r3.Norm(inst.Position), 1e-12)
	}
	assert.Equal(t, -1, m.ActiveIndex())
	_, ok := m.ActiveItem()
	assert.False(t, ok)
}

func TestMenuSelectsOnFirstIdleFrame(t *testing.T) {
	m := newTestMenu(t)
	var calls []int
	m.OnActiveItemChange = func(index int, item Item) {
		calls = append(calls, index)
		assert.Equal(t, m.Items()[index], item)
	}

	for i := 0; i < 10; i++ {
		m.Update(nominalMs)
	}
	require.Len(t, calls, 1)
	assert.Equal(t, m.ActiveIndex(), calls[0])

	item, ok := m.ActiveItem()
	require.True(t, ok)
	assert.Equal(t, m.Items()[calls[0]], item)

	// At rest the nearest disc sits exactly behind the sphere center.
	p := m.Instances()[m.NearestInstance()].Position
	assert.InDelta(t, -2, p.Z, 1e-9)
}

func TestMenuNoSelectionWhileDragging(t *testing.T) {
	m := newTestMenu(t)
	var changes int
	m.OnActiveItemChange = func(int, Item) { changes++ }

	m.InjectPress(120, 250)
	for x := 140.0; x <= 400; x += 20 {
		m.InjectMove(x, 250)
	}
	for m.PendingInjections() > 0 {
		m.Update(nominalMs)
	}
	require.True(t, m.Controller().Dragging())
	assert.Zero(t, changes)
	assert.Equal(t, -1, m.ActiveIndex())
}

func TestMenuSnapsNearestDiscToFront(t *testing.T) {
	m := newTestMenu(t)
	spin(m, 1200)

	require.False(t, m.Moving())
	assert.Greater(t, Angle(m.Controller().Orientation()), 1e-3, "drag should have turned the sphere")

	p := m.Instances()[m.NearestInstance()].Position
	assert.InDelta(t, 0, r3.Norm(r3.Sub(p, r3.Vec{Z: -2})), 1e-2, "nearest disc at %v", p)

	target, ok := m.Controller().SnapTarget()
	require.True(t, ok)
	assert.InDelta(t, 0, r3.Norm(r3.Sub(target, r3.Unit(m.positions[m.NearestInstance()]))), 1e-12)
}

func TestMenuMovementEvents(t *testing.T) {
	m := newTestMenu(t)
	var events []bool
	m.OnMovementChange = func(moving bool) { events = append(events, moving) }

	m.Update(nominalMs)
	assert.Empty(t, events, "a menu at rest does not report movement")

	spin(m, 1200)
	require.NotEmpty(t, events)
	assert.True(t, events[0])
	assert.False(t, events[len(events)-1])
	for i := 1; i < len(events); i++ {
		assert.NotEqual(t, events[i-1], events[i], "events must alternate")
	}
}

func TestMenuLabelFades(t *testing.T) {
	m := newTestMenu(t)
	assert.Equal(t, 1.0, m.LabelAlpha())

	m.InjectPress(200, 250)
	m.InjectMove(260, 250)
	for i := 0; i < 30; i++ {
		m.Update(nominalMs)
	}
	require.True(t, m.Moving())
	assert.Equal(t, 0.0, m.LabelAlpha())

	m.InjectRelease(260, 250)
	for i := 0; i < 1200; i++ {
		m.Update(nominalMs)
	}
	require.False(t, m.Moving())
	assert.Equal(t, 1.0, m.LabelAlpha())
}

func TestMenuCameraZoomsOutWhileDragging(t *testing.T) {
	m := newTestMenu(t)
	rest := m.Camera().Z
	assert.Equal(t, 3.0, rest)

	m.InjectPress(200, 250)
	m.InjectMove(240, 250)
	m.InjectMove(280, 250)
	for i := 0; i < 20; i++ {
		m.Update(nominalMs)
	}
	dragZ := m.Camera().Z
	assert.Greater(t, dragZ, rest+1)

	m.InjectRelease(280, 250)
	for i := 0; i < 1200; i++ {
		m.Update(nominalMs)
	}
	assert.InDelta(t, rest, m.Camera().Z, 1e-3)
}

func TestMenuCapsFrameTime(t *testing.T) {
	run := func(dt float64) r3.Rotation {
		m := newTestMenu(t)
		m.InjectPress(200, 250)
		m.InjectMove(300, 250)
		m.Update(nominalMs)
		m.Update(dt)
		return m.Controller().Orientation()
	}
	assert.Equal(t, run(DefaultMenuConfig().MaxFrameMs), run(5000))
}

func TestMenuNegativeFrameTime(t *testing.T) {
	run := func(dt float64) r3.Rotation {
		m := newTestMenu(t)
		spin(m, 0)
		m.Update(dt)
		return m.Controller().Orientation()
	}
	zero := run(0)
	requireUnit(t, zero)
	assert.Equal(t, zero, run(-10))
	assert.Equal(t, zero, run(math.NaN()))
}

func TestMenuReset(t *testing.T) {
	m := newTestMenu(t)
	spin(m, 5)
	m.InjectPress(250, 250)
	m.Reset()

	assert.Equal(t, Identity, m.Controller().Orientation())
	assert.Equal(t, -1, m.ActiveIndex())
	assert.False(t, m.Moving())
	assert.Equal(t, 1.0, m.LabelAlpha())
	assert.Equal(t, 3.0, m.Camera().Z)
	assert.Zero(t, m.PendingInjections())
	for i, inst := range m.Instances() {
		assert.Equal(t, m.positions[i], inst.Position)
	}
}

func TestMenuSetConfig(t *testing.T) {
	m := newTestMenu(t)
	spin(m, 5)
	ori := m.Controller().Orientation()

	cfg := DefaultConfig()
	cfg.Menu.Subdivisions = 2
	cfg.Menu.DiscSteps = 12
	cfg.Control.Damping = 0.2
	require.NoError(t, m.SetConfig(cfg))

	assert.Len(t, m.Instances(), 162)
	assert.Len(t, m.disc.Indices, 36)
	assert.Equal(t, 0.2, m.Controller().Config().Damping)
	assert.Equal(t, ori, m.Controller().Orientation(), "tuning keeps the orientation")

	bad := cfg
	bad.Menu.CameraEase = 0
	assert.ErrorIs(t, m.SetConfig(bad), ErrInvalidConfig)
	assert.Equal(t, cfg, m.Config())

	cfg.Menu.Subdivisions = 0
	require.NoError(t, m.SetConfig(cfg))
	assert.Len(t, m.Instances(), 12)
	assert.Less(t, m.NearestInstance(), 12)
}

func TestMenuWithoutItems(t *testing.T) {
	m, err := NewMenu(nil, DefaultConfig())
	require.NoError(t, err)
	m.SetViewport(300, 300)
	spin(m, 20)

	_, ok := m.ActiveItem()
	assert.False(t, ok)
	assert.Equal(t, -1, m.ActiveIndex())
}
