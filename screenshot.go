package arcball

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshot queues a labeled capture of the next drawn frame. The PNG is
// written to ScreenshotDir with a timestamped filename at the end of Draw.
// Headless updates never draw, so queued captures wait until Reset.
func (m *Menu) Screenshot(label string) {
	m.screenshotQueue = append(m.screenshotQueue, label)
}

// PendingScreenshots returns the number of queued captures.
func (m *Menu) PendingScreenshots() int { return len(m.screenshotQueue) }

// flushScreenshots drains the capture queue against the frame just drawn.
func (m *Menu) flushScreenshots(screen *ebiten.Image) {
	if len(m.screenshotQueue) == 0 {
		return
	}
	paths, err := m.saveScreenshots(frameNRGBA(screen), time.Now())
	for _, p := range paths {
		m.log.Info("screenshot saved", zap.String("path", p))
	}
	if err != nil {
		m.log.Warn("screenshot", zap.String("dir", m.ScreenshotDir), zap.Error(err))
	}
}

// saveScreenshots encodes img once and writes it under every queued label.
// The queue is emptied even when a write fails. It returns the paths that
// were written.
func (m *Menu) saveScreenshots(img image.Image, now time.Time) ([]string, error) {
	labels := m.screenshotQueue
	m.screenshotQueue = nil

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	if err := os.MkdirAll(m.ScreenshotDir, 0o755); err != nil {
		return nil, fmt.Errorf("screenshot dir: %w", err)
	}

	stamp := now.Format("20060102_150405")
	paths := make([]string, 0, len(labels))
	var errs []error
	for _, label := range labels {
		p := filepath.Join(m.ScreenshotDir, stamp+"_"+screenshotName(label)+".png")
		if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
			errs = append(errs, err)
			continue
		}
		paths = append(paths, p)
	}
	return paths, errors.Join(errs...)
}

// frameNRGBA reads screen back as a straight-alpha image.
func frameNRGBA(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	straightenAlpha(img.Pix)
	return img
}

// straightenAlpha divides the color channels of premultiplied RGBA pixels
// by their alpha, in place.
func straightenAlpha(pix []byte) {
	for p := pix; len(p) >= 4; p = p[4:] {
		a := uint32(p[3])
		if a == 0 || a == 255 {
			continue
		}
		for c := range 3 {
			p[c] = uint8(min(uint32(p[c])*255/a, 255))
		}
	}
}

// screenshotName turns a label into a file name fragment. Anything but ASCII
// letters, digits, '-' and '.' becomes an underscore.
func screenshotName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, label)
}
