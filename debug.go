package arcball

import (
	"time"

	"go.uber.org/zap"
)

// debugLogInterval is the number of frames aggregated per debug log line.
const debugLogInterval = 60

// debugStats holds accumulated frame timings and draw metrics.
// Only populated when Menu.debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	frames     int
	drawn      int
	culled     int
}

// SetDebugMode enables per-frame timing. Stats are logged at debug level
// every debugLogInterval frames.
func (m *Menu) SetDebugMode(enabled bool) {
	m.debug = enabled
	m.stats = debugStats{}
}

// DebugMode reports whether debug timing is enabled.
func (m *Menu) DebugMode() bool { return m.debug }

// debugLog emits the aggregated stats once enough frames have accumulated.
func (m *Menu) debugLog() {
	if !m.debug || m.stats.frames < debugLogInterval {
		return
	}
	s := m.stats
	n := time.Duration(s.frames)
	m.log.Debug("frame stats",
		zap.Int("frames", s.frames),
		zap.Duration("update_avg", s.updateTime/n),
		zap.Duration("draw_avg", s.drawTime/n),
		zap.Int("drawn", s.drawn/s.frames),
		zap.Int("culled", s.culled/s.frames),
		zap.Float64("velocity", m.control.RotationVelocity()),
		zap.Stringer("phase", m.control.Phase()))
	m.stats = debugStats{}
}
