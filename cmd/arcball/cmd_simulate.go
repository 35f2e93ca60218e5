package main

import (
	"fmt"
	"io"

	"github.com/phanxgames/arcball"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scriptPath string
	frameMs    float64
	maxFrames  int
	simItems   int
)

// simulateCmd replays an input script without a window
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay an input script headlessly",
	Long: `Runs the menu at a fixed frame time, feeding it the pointer events of a
script, and prints every snapshot the script takes followed by the final
state.

Example script:
  steps:
    - action: drag
      from_x: 400
      from_y: 300
      to_x: 520
      to_y: 300
      frames: 20
    - action: wait
      frames: 120
    - action: snapshot
      label: settled`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&scriptPath, "script", "s", "", "Input script (required)")
	simulateCmd.Flags().Float64Var(&frameMs, "dt", 16.66, "Frame time in milliseconds")
	simulateCmd.Flags().IntVar(&maxFrames, "max-frames", 100000, "Abort after this many frames")
	simulateCmd.Flags().IntVar(&simItems, "items", 12, "Number of generated items")
	_ = simulateCmd.MarkFlagRequired("script")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if !(frameMs > 0) {
		return fmt.Errorf("--dt must be positive, got %v", frameMs)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runner, err := arcball.LoadScriptFile(scriptPath)
	if err != nil {
		return err
	}
	menu, err := arcball.NewMenu(generateItems(simItems), cfg)
	if err != nil {
		return err
	}
	menu.SetLogger(logger)
	menu.SetViewport(float64(width), float64(height))

	out := cmd.OutOrStdout()
	runner.OnSnapshot = func(s arcball.Snapshot) {
		printSnapshot(out, s)
	}
	menu.SetScriptRunner(runner)

	frames, err := simulate(menu, runner, frameMs, maxFrames)
	if err != nil {
		return err
	}
	logger.Debug("simulation finished", zap.Int("frames", frames), zap.Int("snapshots", len(runner.Snapshots)))

	printSnapshot(out, arcball.Snapshot{
		Label:   "final",
		Frame:   frames,
		State:   menu.Controller().State(),
		Active:  menu.ActiveIndex(),
		Nearest: menu.NearestInstance(),
		CameraZ: menu.Camera().Z,
	})
	return nil
}

// simulate steps the menu until the script is done and returns the number
// of frames run.
func simulate(menu *arcball.Menu, runner *arcball.ScriptRunner, dt float64, limit int) (int, error) {
	frames := 0
	for !runner.Done() {
		if frames >= limit {
			return frames, fmt.Errorf("script not finished after %d frames", limit)
		}
		menu.Update(dt)
		frames++
	}
	return frames, nil
}

func printSnapshot(w io.Writer, s arcball.Snapshot) {
	q := s.State.Orientation
	_, _ = fmt.Fprintf(w, "%-12s frame=%-5d q=(%.5f, %.5f, %.5f, %.5f) velocity=%.5f phase=%s active=%d nearest=%d z=%.3f\n",
		s.Label, s.Frame, q.Real, q.Imag, q.Jmag, q.Kmag,
		s.State.Velocity, s.State.Phase, s.Active, s.Nearest, s.CameraZ)
}
