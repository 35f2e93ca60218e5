package arcball

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// PointerSample is one frame's reading of the primary pointer.
type PointerSample struct {
	X, Y    float64
	Pressed bool
	Button  MouseButton
}

// PointerSource reports the primary pointer once per frame. Implementations
// adapt a platform input API; the menu never talks to the platform directly.
type PointerSource interface {
	Poll() PointerSample
}

// PointerEvent is delivered to handlers registered with OnPointer.
type PointerEvent struct {
	Type   EventType
	X, Y   float64
	Button MouseButton
}

// --- Per-pointer state ---

type pointerState struct {
	down bool
	// waitRelease is set when a press started outside the viewport or left
	// it mid-drag; the press is ignored until the button goes up.
	waitRelease bool
	lastX       float64
	lastY       float64
	button      MouseButton
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

// CallbackHandle allows removing a registered pointer callback.
type CallbackHandle struct {
	id   uint32
	menu *Menu
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.menu == nil {
		return
	}
	s := h.menu.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			h.menu.handlers = s[:len(s)-1]
			return
		}
	}
}

// OnPointer registers a callback for pointer events that reach the
// controller.
func (m *Menu) OnPointer(fn func(PointerEvent)) CallbackHandle {
	m.nextID++
	m.handlers = append(m.handlers, pointerHandler{id: m.nextID, fn: fn})
	return CallbackHandle{id: m.nextID, menu: m}
}

// --- Input processing ---

// processInput is called from Menu.Update. An injected event, if queued,
// replaces platform input for this frame.
func (m *Menu) processInput() {
	if m.processInjectedInput() {
		return
	}
	if m.source == nil {
		return
	}
	ps := m.source.Poll()
	m.processPointer(ps.X, ps.Y, ps.Pressed, ps.Button)
}

// processPointer runs the pointer state machine and forwards engage, move
// and release to the controller.
func (m *Menu) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &m.pointer
	w, h := m.control.Viewport()
	inside := Rect{Width: w, Height: h}.Contains(x, y)

	switch {
	case pressed && !ps.down:
		if ps.waitRelease {
			return
		}
		if !inside {
			ps.waitRelease = true
			return
		}
		ps.down = true
		ps.button = button
		ps.lastX, ps.lastY = x, y
		m.control.PointerEngage(x, y)
		m.firePointer(EventPointerDown, x, y, button)

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		if !inside {
			ps.down = false
			ps.waitRelease = true
			m.control.PointerRelease()
			m.firePointer(EventPointerLeave, x, y, ps.button)
			return
		}
		ps.lastX, ps.lastY = x, y
		m.control.PointerMove(x, y)
		m.firePointer(EventPointerMove, x, y, ps.button)

	case !pressed && ps.down:
		ps.down = false
		m.control.PointerRelease()
		m.firePointer(EventPointerUp, x, y, ps.button)

	default:
		ps.waitRelease = false
	}
}

func (m *Menu) firePointer(t EventType, x, y float64, button MouseButton) {
	if t != EventPointerMove {
		m.log.Debug("pointer", zap.Stringer("event", t), zap.Float64("x", x), zap.Float64("y", y))
	}
	ev := PointerEvent{Type: t, X: x, Y: y, Button: button}
	for _, h := range m.handlers {
		h.fn(ev)
	}
}

// --- Ebitengine source ---

// EbitenPointerSource reads the mouse and the first active touch from
// Ebitengine. A touch that started a drag is followed until it lifts, even
// when other fingers come and go.
type EbitenPointerSource struct {
	touchIDs    []ebiten.TouchID
	touch       ebiten.TouchID
	touchActive bool
	lastX       float64
	lastY       float64
}

// Poll implements PointerSource.
func (s *EbitenPointerSource) Poll() PointerSample {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	if s.touchActive {
		for _, id := range s.touchIDs {
			if id == s.touch {
				tx, ty := ebiten.TouchPosition(id)
				s.lastX, s.lastY = float64(tx), float64(ty)
				return PointerSample{X: s.lastX, Y: s.lastY, Pressed: true, Button: MouseButtonLeft}
			}
		}
		s.touchActive = false
		return PointerSample{X: s.lastX, Y: s.lastY, Pressed: false, Button: MouseButtonLeft}
	}
	if len(s.touchIDs) > 0 {
		s.touch = s.touchIDs[0]
		s.touchActive = true
		tx, ty := ebiten.TouchPosition(s.touch)
		s.lastX, s.lastY = float64(tx), float64(ty)
		return PointerSample{X: s.lastX, Y: s.lastY, Pressed: true, Button: MouseButtonLeft}
	}

	mx, my := ebiten.CursorPosition()
	sample := PointerSample{X: float64(mx), Y: float64(my)}
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		sample.Pressed, sample.Button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		sample.Pressed, sample.Button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		sample.Pressed, sample.Button = true, MouseButtonMiddle
	}
	return sample
}
