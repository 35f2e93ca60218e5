package main

import (
	"context"
	"fmt"
	"math"

	"github.com/phanxgames/arcball"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watch         bool
	itemCount     int
	showFPS       bool
	runScript     string
	screenshotDir string
)

// runCmd opens the menu in a window
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the menu in a window",
	Long: `Opens a window showing a sphere of generated items.

With --watch, the --config file is reloaded whenever it changes, so the
feel can be tuned while dragging.

With --script, the pointer events of an input script are played into the
window; its screenshot steps are saved as PNG files in --screenshots.`,
	RunE: runMenu,
}

func init() {
	runCmd.Flags().BoolVar(&watch, "watch", false, "Reload --config when it changes")
	runCmd.Flags().IntVar(&itemCount, "items", 12, "Number of generated items")
	runCmd.Flags().BoolVar(&showFPS, "fps", false, "Show the FPS overlay")
	runCmd.Flags().StringVar(&runScript, "script", "", "Play an input script into the window")
	runCmd.Flags().StringVar(&screenshotDir, "screenshots", "screenshots", "Directory for script screenshots")
}

func runMenu(cmd *cobra.Command, args []string) error {
	if watch && configPath == "" {
		return fmt.Errorf("--watch requires --config")
	}
	if itemCount < 1 {
		return fmt.Errorf("--items must be at least 1, got %d", itemCount)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	menu, err := arcball.NewMenu(generateItems(itemCount), cfg)
	if err != nil {
		return err
	}
	menu.SetLogger(logger)
	menu.SetDebugMode(verbose)
	menu.OnActiveItemChange = func(i int, item arcball.Item) {
		logger.Info("active item", zap.Int("index", i), zap.String("title", item.Title))
	}
	menu.ScreenshotDir = screenshotDir
	if runScript != "" {
		runner, err := arcball.LoadScriptFile(runScript)
		if err != nil {
			return err
		}
		runner.OnSnapshot = func(s arcball.Snapshot) {
			logger.Info("snapshot",
				zap.String("label", s.Label),
				zap.Int("frame", s.Frame),
				zap.Float64("velocity", s.State.Velocity),
				zap.Int("active", s.Active))
		}
		menu.SetScriptRunner(runner)
	}

	rc := arcball.RunConfig{
		Title:        "arcball",
		Width:        width,
		Height:       height,
		ShowFPS:      showFPS,
		ClearColor:   arcball.Color{R: 0.06, G: 0.06, B: 0.08, A: 1},
		IntroSeconds: 1.2,
	}

	if watch {
		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, cancel := context.WithCancel(parent)
		defer cancel()
		w, err := newConfigWatcher(configPath, logger)
		if err != nil {
			return err
		}
		updates, err := w.Start(ctx)
		if err != nil {
			return err
		}
		defer w.Stop()
		rc.ConfigUpdates = updates
	}

	return arcball.Run(menu, rc)
}

// generateItems returns n solid-color items spread around the hue wheel.
func generateItems(n int) []arcball.Item {
	items := make([]arcball.Item, n)
	for i := range items {
		r, g, b := hsvToRGB(float64(i)/float64(n), 0.55, 0.95)
		items[i] = arcball.Item{
			Title:       fmt.Sprintf("Item %d", i+1),
			Description: fmt.Sprintf("Generated item number %d", i+1),
			Color:       arcball.Color{R: r, G: g, B: b, A: 1},
		}
	}
	return items
}

// hsvToRGB converts HSV (all [0,1]) to RGB.
func hsvToRGB(h, s, v float64) (r, g, b float64) {
	h -= math.Floor(h)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	switch i % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
