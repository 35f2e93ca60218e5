package arcball

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScreenshotName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"after-drag", "after-drag"},
		{"v1.2", "v1.2"},
		{"two words", "two_words"},
		{"../escape", ".._escape"},
		{"snap/front", "snap_front"},
		{"ünï", "_n_"},
	}
	for _, tt := range tests {
		got := screenshotName(tt.in)
		if got != tt.want {
			t.Errorf("screenshotName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	m := newTestMenu(t)
	m.Screenshot("a")
	m.Screenshot("b")
	if got := m.PendingScreenshots(); got != 2 {
		t.Fatalf("PendingScreenshots = %d, want 2", got)
	}
	if m.screenshotQueue[0] != "a" || m.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", m.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	m := newTestMenu(t)
	if m.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", m.ScreenshotDir, "screenshots")
	}
}

func TestStraightenAlpha(t *testing.T) {
	pix := []byte{
		100, 50, 0, 200, // partial alpha
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
		200, 200, 200, 100, // clamped
		7, 7, // short tail is left alone
	}
	straightenAlpha(pix)
	want := []byte{
		127, 63, 0, 200,
		10, 20, 30, 255,
		0, 0, 0, 0,
		255, 255, 255, 100,
		7, 7,
	}
	for i := range want {
		if pix[i] != want[i] {
			t.Errorf("pix[%d] = %d, want %d", i, pix[i], want[i])
		}
	}
}

func TestSaveScreenshots(t *testing.T) {
	m := newTestMenu(t)
	m.ScreenshotDir = filepath.Join(t.TempDir(), "shots")
	m.Screenshot("front")
	m.Screenshot("")

	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 255})
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	paths, err := m.saveScreenshots(img, now)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(m.ScreenshotDir, "20260304_050607_front.png"),
		filepath.Join(m.ScreenshotDir, "20260304_050607_unlabeled.png"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
	if got := m.PendingScreenshots(); got != 0 {
		t.Errorf("PendingScreenshots = %d, want 0", got)
	}

	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := got.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("bounds = %v, want 2x1", b)
	}
	if r, _, _, _ := got.At(0, 0).RGBA(); r != 0xffff {
		t.Errorf("red channel = %#x, want 0xffff", r)
	}
}

func TestSaveScreenshotsBadDir(t *testing.T) {
	m := newTestMenu(t)
	file := filepath.Join(t.TempDir(), "taken")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	m.ScreenshotDir = filepath.Join(file, "shots")
	m.Screenshot("x")

	paths, err := m.saveScreenshots(image.NewNRGBA(image.Rect(0, 0, 1, 1)), time.Now())
	if err == nil {
		t.Fatal("expected error when the directory cannot be created")
	}
	if len(paths) != 0 {
		t.Errorf("paths = %v, want none", paths)
	}
	if got := m.PendingScreenshots(); got != 0 {
		t.Errorf("queue kept %d captures after a failed save", got)
	}
}
