package arcball

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the overlay text is redrawn.
const fpsRefresh = 0.5

// fpsOverlay displays FPS, TPS and the menu's rotation velocity in the top
// left corner. It uses a private image and ebitenutil.DebugPrint.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

func newFPSOverlay() *fpsOverlay {
	// 120x48 is enough for three short lines.
	return &fpsOverlay{img: ebiten.NewImage(120, 48), elapsed: fpsRefresh}
}

// update redraws the text every fpsRefresh seconds.
func (o *fpsOverlay) update(dt float64, m *Menu) {
	o.elapsed += dt
	if o.elapsed < fpsRefresh {
		return
	}
	o.elapsed = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nVel: %.4f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), m.control.RotationVelocity()))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
