package arcball

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned (wrapped) when a Config fails validation.
var ErrInvalidConfig = errors.New("arcball: invalid config")

// ControlConfig holds the tuning constants of a Controller. They set the
// perceived weight of the control.
type ControlConfig struct {
	// NominalFrameMs is the frame duration all per-tick factors are tuned for.
	NominalFrameMs float64 `yaml:"nominal_frame_ms"`
	// TimeEpsilon is added to the time scale so it is never exactly zero.
	TimeEpsilon float64 `yaml:"time_epsilon"`
	// ArcballRadius is the radius of the virtual sphere pointer positions
	// are projected onto.
	ArcballRadius float64 `yaml:"arcball_radius"`
	// DragScale scales the raw pointer delta each tick (before time scaling).
	DragScale float64 `yaml:"drag_scale"`
	// DragThresholdSq is the squared scaled delta below which a drag step is
	// treated as no movement.
	DragThresholdSq float64 `yaml:"drag_threshold_sq"`
	// AngleGain multiplies the arc angle between projected points.
	AngleGain float64 `yaml:"angle_gain"`
	// Damping is the per-nominal-frame slerp factor pulling the drag rotation
	// toward identity.
	Damping float64 `yaml:"damping"`
	// SnapStrength is the per-nominal-frame fraction of the remaining snap
	// angle applied each tick.
	SnapStrength float64 `yaml:"snap_strength"`
	// SnapMinFactor is the lower bound of the distance falloff of the snap.
	SnapMinFactor float64 `yaml:"snap_min_factor"`
	// SnapDistanceGain scales the squared snap distance in the falloff.
	SnapDistanceGain float64 `yaml:"snap_distance_gain"`
	// VelocitySmoothing is the slerp factor of the smoothed combined rotation.
	VelocitySmoothing float64 `yaml:"velocity_smoothing"`
	// VelocityDecay is the exponential smoothing factor of the scalar velocity.
	VelocityDecay float64 `yaml:"velocity_decay"`
	// AxisEpsilon guards normalization of near-zero axes and sines.
	AxisEpsilon float64 `yaml:"axis_epsilon"`
}

// MenuConfig holds the layout and camera constants of a Menu.
type MenuConfig struct {
	// SphereRadius is the radius items are laid out at.
	SphereRadius float64 `yaml:"sphere_radius"`
	// Subdivisions is the number of icosahedron subdivision passes.
	Subdivisions int `yaml:"subdivisions"`
	// DiscSteps is the number of segments of each rendered disc.
	DiscSteps int `yaml:"disc_steps"`
	// Scale multiplies the resting camera distance.
	Scale float64 `yaml:"scale"`
	// CameraDistance is the resting camera distance before Scale.
	CameraDistance float64 `yaml:"camera_distance"`
	// CameraEase divides the remaining distance each nominal frame.
	CameraEase float64 `yaml:"camera_ease"`
	// DragZoomGain pulls the camera back proportionally to spin speed while
	// dragging.
	DragZoomGain float64 `yaml:"drag_zoom_gain"`
	// DragZoomOffset pulls the camera back by a constant while dragging.
	DragZoomOffset float64 `yaml:"drag_zoom_offset"`
	// MovingThreshold is the velocity above which the menu counts as moving.
	MovingThreshold float64 `yaml:"moving_threshold"`
	// MaxFrameMs caps the delta time fed to the controller.
	MaxFrameMs float64 `yaml:"max_frame_ms"`
	// LabelFadeSeconds is the duration of the active label fade.
	LabelFadeSeconds float64 `yaml:"label_fade_seconds"`
}

// Config is the full tuning of a Menu and its Controller.
type Config struct {
	Control ControlConfig `yaml:"control"`
	Menu    MenuConfig    `yaml:"menu"`
}

// DefaultControlConfig returns the default controller constants.
func DefaultControlConfig() ControlConfig {
	return ControlConfig{
		NominalFrameMs:    16.66,
		TimeEpsilon:       0.0001,
		ArcballRadius:     2,
		DragScale:         0.3,
		DragThresholdSq:   0.1,
		AngleGain:         5,
		Damping:           0.1,
		SnapStrength:      0.2,
		SnapMinFactor:     0.1,
		SnapDistanceGain:  10,
		VelocitySmoothing: 0.8,
		VelocityDecay:     0.5,
		AxisEpsilon:       0.0001,
	}
}

// DefaultMenuConfig returns the default layout and camera constants.
func DefaultMenuConfig() MenuConfig {
	return MenuConfig{
		SphereRadius:     2,
		Subdivisions:     1,
		DiscSteps:        48,
		Scale:            1,
		CameraDistance:   3,
		CameraEase:       5,
		DragZoomGain:     80,
		DragZoomOffset:   2.5,
		MovingThreshold:  0.01,
		MaxFrameMs:       32,
		LabelFadeSeconds: 0.2,
	}
}

// DefaultConfig returns the complete default tuning.
func DefaultConfig() Config {
	return Config{
		Control: DefaultControlConfig(),
		Menu:    DefaultMenuConfig(),
	}
}

// LoadConfig decodes YAML (or JSON) on top of DefaultConfig, so a file only
// needs the keys it changes. Unknown keys are rejected.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes a config file. See LoadConfig.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Validate reports the first out-of-range field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if err := c.Control.Validate(); err != nil {
		return err
	}
	return c.Menu.Validate()
}

// Validate reports the first out-of-range controller constant.
func (c ControlConfig) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"nominal_frame_ms", c.NominalFrameMs},
		{"arcball_radius", c.ArcballRadius},
		{"drag_scale", c.DragScale},
		{"angle_gain", c.AngleGain},
		{"axis_epsilon", c.AxisEpsilon},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: control.%s must be positive, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}

	unit := []struct {
		name string
		v    float64
	}{
		{"damping", c.Damping},
		{"snap_strength", c.SnapStrength},
		{"snap_min_factor", c.SnapMinFactor},
		{"velocity_smoothing", c.VelocitySmoothing},
		{"velocity_decay", c.VelocityDecay},
	}
	for _, u := range unit {
		if !(u.v > 0 && u.v <= 1) {
			return fmt.Errorf("%w: control.%s must be in (0, 1], got %v", ErrInvalidConfig, u.name, u.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"time_epsilon", c.TimeEpsilon},
		{"drag_threshold_sq", c.DragThresholdSq},
		{"snap_distance_gain", c.SnapDistanceGain},
	}
	for _, n := range nonNegative {
		if !(n.v >= 0) || math.IsInf(n.v, 0) {
			return fmt.Errorf("%w: control.%s must be finite and not negative, got %v", ErrInvalidConfig, n.name, n.v)
		}
	}
	return nil
}

// Validate reports the first out-of-range menu constant.
func (c MenuConfig) Validate() error {
	switch {
	case !finitePositive(c.SphereRadius):
		return fmt.Errorf("%w: menu.sphere_radius must be positive, got %v", ErrInvalidConfig, c.SphereRadius)
	case c.Subdivisions < 0 || c.Subdivisions > 5:
		return fmt.Errorf("%w: menu.subdivisions must be in [0, 5], got %d", ErrInvalidConfig, c.Subdivisions)
	case c.DiscSteps < 3 || c.DiscSteps > 1024:
		return fmt.Errorf("%w: menu.disc_steps must be in [3, 1024], got %d", ErrInvalidConfig, c.DiscSteps)
	case !finitePositive(c.Scale):
		return fmt.Errorf("%w: menu.scale must be positive, got %v", ErrInvalidConfig, c.Scale)
	case !finitePositive(c.CameraDistance):
		return fmt.Errorf("%w: menu.camera_distance must be positive, got %v", ErrInvalidConfig, c.CameraDistance)
	case !(c.CameraEase >= 1) || math.IsInf(c.CameraEase, 0):
		return fmt.Errorf("%w: menu.camera_ease must be finite and at least 1, got %v", ErrInvalidConfig, c.CameraEase)
	case math.IsNaN(c.DragZoomGain) || math.IsInf(c.DragZoomGain, 0):
		return fmt.Errorf("%w: menu.drag_zoom_gain must be finite, got %v", ErrInvalidConfig, c.DragZoomGain)
	case math.IsNaN(c.DragZoomOffset) || math.IsInf(c.DragZoomOffset, 0):
		return fmt.Errorf("%w: menu.drag_zoom_offset must be finite, got %v", ErrInvalidConfig, c.DragZoomOffset)
	case !(c.MovingThreshold >= 0) || math.IsInf(c.MovingThreshold, 0):
		return fmt.Errorf("%w: menu.moving_threshold must be finite and not negative, got %v", ErrInvalidConfig, c.MovingThreshold)
	case !finitePositive(c.MaxFrameMs):
		return fmt.Errorf("%w: menu.max_frame_ms must be positive, got %v", ErrInvalidConfig, c.MaxFrameMs)
	case !(c.LabelFadeSeconds >= 0) || math.IsInf(c.LabelFadeSeconds, 0):
		return fmt.Errorf("%w: menu.label_fade_seconds must be finite and not negative, got %v", ErrInvalidConfig, c.LabelFadeSeconds)
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
