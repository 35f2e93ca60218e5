package arcball

import (
	"cmp"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	// debugGlyphW and debugGlyphH are the cell size of ebitenutil's debug font.
	debugGlyphW = 6
	debugGlyphH = 16
	labelMargin = 24
)

// renderState holds scratch buffers reused across frames.
type renderState struct {
	order []int
	verts []ebiten.Vertex
	// label is the rendered title of the active item, rebuilt when the
	// active item changes.
	label      *ebiten.Image
	labelIndex int
}

// drawOrder returns instance indices sorted back to front.
func (m *Menu) drawOrder() []int {
	r := &m.render
	r.order = r.order[:0]
	for i := range m.instances {
		r.order = append(r.order, i)
	}
	slices.SortStableFunc(r.order, func(a, b int) int {
		return cmp.Compare(m.instances[a].Center.Z, m.instances[b].Center.Z)
	})
	return r.order
}

// Draw renders the discs and the active item label onto screen. Call it from
// the game's Draw after Update has run at least once.
func (m *Menu) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if m.debug {
		t0 = time.Now()
	}

	bounds := m.camera.Viewport
	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.Filter = ebiten.FilterLinear
	triOp.AntiAlias = true

	for _, idx := range m.drawOrder() {
		inst := m.instances[idx]
		img := ensureWhitePixel()
		tint := ColorWhite
		if inst.Item < len(m.items) {
			item := m.items[inst.Item]
			if item.Image != nil {
				img = item.Image
			}
			if item.Color != (Color{}) {
				tint = item.Color
			}
		}
		b := img.Bounds()
		verts, ok := m.discVertices(inst, float64(b.Dx()), float64(b.Dy()), tint, m.render.verts)
		m.render.verts = verts
		if !ok || !computeMeshAABB(verts).Intersects(bounds) {
			m.stats.culled++
			continue
		}
		screen.DrawTriangles(verts, m.disc.Indices, img, &triOp)
		m.stats.drawn++
	}

	m.drawLabel(screen)

	if m.debug {
		m.stats.drawTime += time.Since(t0)
	}
	m.flushScreenshots(screen)
}

// drawLabel draws the active item's title centered near the bottom of the
// viewport with the current label opacity.
func (m *Menu) drawLabel(screen *ebiten.Image) {
	item, ok := m.ActiveItem()
	if !ok || item.Title == "" || m.labelAlpha <= 0 {
		return
	}
	r := &m.render
	if r.label == nil || r.labelIndex != m.active {
		if r.label != nil {
			r.label.Deallocate()
		}
		r.label = ebiten.NewImage(len(item.Title)*debugGlyphW+4, debugGlyphH+2)
		ebitenutil.DebugPrintAt(r.label, item.Title, 2, 0)
		r.labelIndex = m.active
	}

	vp := m.camera.Viewport
	lw := float64(r.label.Bounds().Dx())
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(vp.X+(vp.Width-lw)/2, vp.Y+vp.Height-labelMargin-debugGlyphH)
	op.ColorScale = ColorWhite.colorScale(m.labelAlpha)
	screen.DrawImage(r.label, &op)
}
