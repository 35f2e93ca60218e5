package arcball

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScript is returned (wrapped) when a script fails to parse or
// contains an unknown action.
var ErrInvalidScript = errors.New("arcball: invalid script")

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"from_x,omitempty"`
	FromY  float64 `yaml:"from_y,omitempty"`
	ToX    float64 `yaml:"to_x,omitempty"`
	ToY    float64 `yaml:"to_y,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// script is the top-level structure of an input script.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true, "click": true,
	"drag": true, "wait": true, "snapshot": true, "screenshot": true,
}

// Snapshot is the menu state captured by a "snapshot" step.
type Snapshot struct {
	Label   string
	Frame   int
	State   ControlState
	Active  int
	Nearest int
	CameraZ float64
}

// ScriptRunner sequences injected input events and state snapshots across
// frames, for automated tests and headless simulation. Attach it to a Menu
// with SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	frame     int
	done      bool

	// Snapshots holds the captures taken so far, in order.
	Snapshots []Snapshot
	// OnSnapshot, if set, is called for every capture.
	OnSnapshot func(Snapshot)
}

// LoadScript parses a YAML (or JSON) input script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrInvalidScript, err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScript, i, st.Action)
		}
		if st.Frames < 0 {
			return nil, fmt.Errorf("%w: step %d: negative frames", ErrInvalidScript, i)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// LoadScriptFile reads and parses a script file.
func LoadScriptFile(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	r, err := LoadScript(data)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return r, nil
}

// SetScriptRunner attaches a runner to the menu. The runner's step method is
// called from Menu.Update before input processing each frame.
func (m *Menu) SetScriptRunner(runner *ScriptRunner) {
	m.runner = runner
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Len returns the number of steps in the script.
func (r *ScriptRunner) Len() int { return len(r.steps) }

// step advances the runner by one frame. Called from Menu.Update.
func (r *ScriptRunner) step(m *Menu) {
	r.frame++
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(m.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		m.InjectPress(st.X, st.Y)
	case "move":
		m.InjectMove(st.X, st.Y)
	case "release":
		m.InjectRelease(st.X, st.Y)
	case "click":
		m.InjectPress(st.X, st.Y)
		m.InjectRelease(st.X, st.Y)
	case "drag":
		m.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snapshot":
		r.capture(m, st.Label)
	case "screenshot":
		m.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(m.injectQueue) == 0 {
		r.done = true
	}
}

// capture records the menu state. It runs before this frame's update, so it
// reflects the state after the previous frame.
func (r *ScriptRunner) capture(m *Menu, label string) {
	snap := Snapshot{
		Label:   label,
		Frame:   r.frame - 1,
		State:   m.control.State(),
		Active:  m.active,
		Nearest: m.nearest,
		CameraZ: m.camera.Z,
	}
	r.Snapshots = append(r.Snapshots, snap)
	if r.OnSnapshot != nil {
		r.OnSnapshot(snap)
	}
}
