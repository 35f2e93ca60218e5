package arcball

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestDrawOrderBackToFront(t *testing.T) {
	m := newTestMenu(t)
	m.InjectDrag(150, 200, 330, 290, 8)
	for i := 0; i < 8; i++ {
		m.Update(nominalMs)
	}

	order := m.drawOrder()
	require.Len(t, order, len(m.Instances()))
	for i := 1; i < len(order); i++ {
		prev := m.instances[order[i-1]].Center.Z
		cur := m.instances[order[i]].Center.Z
		assert.LessOrEqual(t, prev, cur, "draw order position %d", i)
	}
}

func TestDrawOrderStable(t *testing.T) {
	m := newTestMenu(t)
	for i := range m.instances {
		m.instances[i].Center = r3.Vec{}
	}
	order := m.drawOrder()
	for i, idx := range order {
		assert.Equal(t, i, idx)
	}

	// The scratch slice is reused between frames.
	again := m.drawOrder()
	assert.Same(t, &order[0], &again[0])
}

func TestLargestDiscsAtPoles(t *testing.T) {
	m := newTestMenu(t)
	m.Update(nominalMs)
	front := m.Instances()[m.NearestInstance()]
	assert.InDelta(t, 0.25, front.Scale, 1e-9)

	for _, inst := range m.Instances() {
		assert.GreaterOrEqual(t, inst.Scale, 0.1-1e-12)
		assert.LessOrEqual(t, inst.Scale, 0.25+1e-12)
		// Mirrored through the center, scaled toward it by 1-scale.
		want := r3.Scale(-(1 - inst.Scale), inst.Position)
		assert.InDelta(t, 0, r3.Norm(r3.Sub(want, inst.Center)), 1e-12)
	}
}
