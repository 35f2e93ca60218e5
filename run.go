package arcball

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// introStartFactor is how far out, relative to the rest distance, the intro
// dolly starts.
const introStartFactor = 2.5

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// ClearColor fills the screen before the menu is drawn. The zero value
	// leaves the screen cleared to transparent black.
	ClearColor Color
	// IntroSeconds, if positive, dollies the camera in from a distance when
	// the window opens.
	IntroSeconds float32
	// ConfigUpdates, if non-nil, is drained once per frame and each received
	// config is applied with Menu.SetConfig.
	ConfigUpdates <-chan Config
}

// game adapts a Menu to ebiten.Game.
type game struct {
	menu    *Menu
	cfg     RunConfig
	fps     *fpsOverlay
	last    time.Time
	width   int
	height  int
	started bool
}

// Run opens a window and drives the menu until the window is closed. If no
// pointer source has been set, the menu reads the mouse and touch input of
// the window.
func Run(menu *Menu, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if menu.source == nil {
		menu.SetPointerSource(&EbitenPointerSource{})
	}
	g := &game{menu: menu, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	menu.log.Info("window opened", zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func (g *game) Update() error {
	now := time.Now()
	dt := 1000 / float64(ebiten.TPS())
	if !g.last.IsZero() {
		dt = float64(now.Sub(g.last)) / float64(time.Millisecond)
	}
	g.last = now

	if !g.started {
		g.started = true
		if g.cfg.IntroSeconds > 0 {
			cam := g.menu.camera
			rest := cam.Z
			cam.Z = rest * introStartFactor
			cam.DollyTo(rest, g.cfg.IntroSeconds, ease.OutCubic)
		}
	}

	g.applyConfigUpdates()
	g.menu.Update(dt)
	if g.fps != nil {
		g.fps.update(dt/1000, g.menu)
	}
	return nil
}

// applyConfigUpdates applies every config waiting on the channel without
// blocking.
func (g *game) applyConfigUpdates() {
	if g.cfg.ConfigUpdates == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.cfg.ConfigUpdates:
			if !ok {
				g.cfg.ConfigUpdates = nil
				return
			}
			if err := g.menu.SetConfig(c); err != nil {
				g.menu.log.Warn("config update rejected", zap.Error(err))
				continue
			}
			g.menu.log.Info("config reloaded")
		default:
			return
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor != (Color{}) {
		screen.Fill(g.cfg.ClearColor.toRGBA())
	}
	g.menu.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.menu.SetViewport(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
