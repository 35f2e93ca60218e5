package arcball

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade animates a single float64 field toward a target value. Create one with
// NewFade and call Update(dt) each frame; the field is written on every
// update. There is no global animation manager; the owner drives it.
type Fade struct {
	tween *gween.Tween
	field *float64
	to    float64
	Done  bool
}

// NewFade creates a Fade that moves *field to the target over duration
// seconds using the easing function. A non-positive duration applies the
// target immediately.
func NewFade(field *float64, to float64, duration float32, fn ease.TweenFunc) *Fade {
	f := &Fade{field: field, to: to}
	if duration <= 0 {
		*field = to
		f.Done = true
		return f
	}
	f.tween = gween.New(float32(*field), float32(to), duration, fn)
	return f
}

// Update advances the fade by dt seconds and writes the value.
func (f *Fade) Update(dt float32) {
	if f == nil || f.Done {
		return
	}
	val, finished := f.tween.Update(dt)
	*f.field = float64(val)
	if finished {
		*f.field = f.to
		f.Done = true
	}
}

// Target returns the value the fade ends at.
func (f *Fade) Target() float64 { return f.to }
