// Package input translates SDL2 events into viewer events.
package input

import (
	"math"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/panoview/internal/logger"
	"github.com/Faultbox/panoview/internal/pano"
)

// WheelNotch is the delta one wheel notch reports.
const WheelNotch = 120

// Action is a keyboard command the application handles itself.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionTogglePlayback
	ActionResetView
	ActionToggleFullscreen
	ActionScreenshot
)

// TouchLookup lists the fingers currently down on a touch device, in
// normalized 0-1 window coordinates.
type TouchLookup func(device sdl.TouchID) []sdl.Finger

// Input polls SDL and forwards pointer, touch and wheel events to the surface
// bus and resize and gyroscope events to the window bus.
type Input struct {
	surface *pano.Bus
	window  *pano.Bus
	size    func() (float64, float64)
	touches TouchLookup
	log     *zap.Logger

	actions []Action
}

// New creates an input handler. size returns the window size used to scale
// normalized touch coordinates.
func New(surface, window *pano.Bus, size func() (float64, float64)) *Input {
	return &Input{
		surface: surface,
		window:  window,
		size:    size,
		touches: sdlTouches,
		log:     logger.Named("input"),
		actions: make([]Action, 0, 4),
	}
}

// Update polls SDL events and dispatches them.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.actions = i.actions[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.Handle(event) {
			quit = true
		}
	}
	return quit
}

// Handle dispatches one SDL event. Returns true for a quit request.
func (i *Input) Handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.actions = append(i.actions, ActionQuit)
		return true

	case *sdl.WindowEvent:
		i.handleWindow(e)

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			if a := keyAction(e.Keysym.Scancode); a != ActionNone {
				i.actions = append(i.actions, a)
				return a == ActionQuit
			}
		}

	case *sdl.MouseMotionEvent:
		if e.Which == sdl.TOUCH_MOUSEID {
			return false
		}
		i.surface.Emit(mouseEvent(pano.EventMouseMove, e.X, e.Y))

	case *sdl.MouseButtonEvent:
		if e.Which == sdl.TOUCH_MOUSEID || e.Button != sdl.BUTTON_LEFT {
			return false
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			i.surface.Emit(mouseEvent(pano.EventMouseDown, e.X, e.Y))
		} else {
			i.surface.Emit(mouseEvent(pano.EventMouseUp, e.X, e.Y))
		}

	case *sdl.MouseWheelEvent:
		if e.Which == sdl.TOUCH_MOUSEID {
			return false
		}
		i.surface.Emit(&pano.Event{Type: pano.EventWheel, WheelDelta: wheelDelta(e.Y, e.Direction)})

	case *sdl.TouchFingerEvent:
		i.handleFinger(e)

	case *sdl.SensorEvent:
		i.window.Emit(&pano.Event{Type: pano.EventDeviceMotion, Motion: gyroMotion(e.Data)})
	}
	return false
}

func (i *Input) handleWindow(e *sdl.WindowEvent) {
	switch e.Event {
	case sdl.WINDOWEVENT_ENTER:
		i.surface.Emit(&pano.Event{Type: pano.EventMouseEnter})
	case sdl.WINDOWEVENT_LEAVE:
		i.surface.Emit(&pano.Event{Type: pano.EventMouseLeave})
	case sdl.WINDOWEVENT_SIZE_CHANGED:
		i.log.Debug("window size changed",
			zap.Int32("width", e.Data1),
			zap.Int32("height", e.Data2),
		)
		i.window.Emit(&pano.Event{Type: pano.EventResize})
	}
}

func (i *Input) handleFinger(e *sdl.TouchFingerEvent) {
	w, h := i.size()
	changed := []pano.TouchPoint{touchPoint(e.FingerID, e.X, e.Y, w, h)}

	var active []pano.TouchPoint
	for _, f := range i.touches(e.TouchID) {
		// A lifted finger can still be listed while the queue drains.
		if e.Type == sdl.FINGERUP && f.ID == e.FingerID {
			continue
		}
		active = append(active, touchPoint(f.ID, f.X, f.Y, w, h))
	}

	ev := &pano.Event{Touches: active, ChangedTouches: changed}
	switch e.Type {
	case sdl.FINGERDOWN:
		ev.Type = pano.EventTouchStart
		if len(ev.Touches) == 0 {
			ev.Touches = changed
		}
	case sdl.FINGERMOTION:
		ev.Type = pano.EventTouchMove
		if len(ev.Touches) == 0 {
			ev.Touches = changed
		}
	case sdl.FINGERUP:
		ev.Type = pano.EventTouchEnd
	default:
		return
	}
	i.surface.Emit(ev)
}

// Actions returns the keyboard actions from the last Update.
func (i *Input) Actions() []Action {
	return i.actions
}

// Triggered checks if an action was requested this frame.
func (i *Input) Triggered(a Action) bool {
	for _, got := range i.actions {
		if got == a {
			return true
		}
	}
	return false
}

func keyAction(code sdl.Scancode) Action {
	switch code {
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		return ActionQuit
	case sdl.SCANCODE_SPACE:
		return ActionTogglePlayback
	case sdl.SCANCODE_R:
		return ActionResetView
	case sdl.SCANCODE_F:
		return ActionToggleFullscreen
	case sdl.SCANCODE_P:
		return ActionScreenshot
	default:
		return ActionNone
	}
}

func mouseEvent(t pano.EventType, x, y int32) *pano.Event {
	return &pano.Event{Type: t, X: float64(x), Y: float64(y), HasPosition: true}
}

func touchPoint(id sdl.FingerID, x, y float32, w, h float64) pano.TouchPoint {
	return pano.TouchPoint{ID: int64(id), X: float64(x) * w, Y: float64(y) * h}
}

// wheelDelta converts notches to 1/120 units, positive away from the user.
func wheelDelta(y int32, direction uint32) float64 {
	d := float64(y) * WheelNotch
	if direction == sdl.MOUSEWHEEL_FLIPPED {
		d = -d
	}
	return d
}

// gyroMotion converts a gyroscope reading in rad/s about the device x, y and
// z axes. Alpha is the x rate and beta the y rate, which is the pairing
// browsers report for rotationRate on handheld devices.
func gyroMotion(data [6]float32) *pano.DeviceMotion {
	deg := func(rad float32) float64 { return float64(rad) * 180 / math.Pi }
	return &pano.DeviceMotion{
		RotationRate: &pano.RotationRate{
			Alpha: deg(data[0]),
			Beta:  deg(data[1]),
			Gamma: deg(data[2]),
		},
	}
}

func sdlTouches(device sdl.TouchID) []sdl.Finger {
	n := sdl.GetNumTouchFingers(device)
	fingers := make([]sdl.Finger, 0, n)
	for idx := 0; idx < n; idx++ {
		if f := sdl.GetTouchFinger(device, idx); f != nil {
			fingers = append(fingers, *f)
		}
	}
	return fingers
}
