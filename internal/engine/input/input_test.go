package input

import (
	"math"
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/panoview/internal/pano"
)

type recorder struct {
	events []pano.Event
}

func (r *recorder) listen(bus *pano.Bus, types ...pano.EventType) {
	for _, t := range types {
		bus.On(t, func(ev *pano.Event) { r.events = append(r.events, *ev) })
	}
}

func newTestInput(fingers []sdl.Finger) (*Input, *recorder, *recorder) {
	surface, window := pano.NewBus(), pano.NewBus()
	in := New(surface, window, func() (float64, float64) { return 800, 400 })
	in.touches = func(sdl.TouchID) []sdl.Finger { return fingers }

	s, w := &recorder{}, &recorder{}
	s.listen(surface,
		pano.EventMouseDown, pano.EventMouseMove, pano.EventMouseUp,
		pano.EventMouseEnter, pano.EventMouseLeave,
		pano.EventTouchStart, pano.EventTouchMove, pano.EventTouchEnd,
		pano.EventWheel,
	)
	w.listen(window, pano.EventResize, pano.EventDeviceMotion)
	return in, s, w
}

func TestMouseEvents(t *testing.T) {
	in, s, _ := newTestInput(nil)

	in.Handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 10, Y: 20})
	in.Handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 30, Y: 40})
	in.Handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 50, Y: 60})

	want := []struct {
		typ  pano.EventType
		x, y float64
	}{
		{pano.EventMouseDown, 10, 20},
		{pano.EventMouseMove, 30, 40},
		{pano.EventMouseUp, 50, 60},
	}
	if len(s.events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(s.events))
	}
	for i, w := range want {
		got := s.events[i]
		if got.Type != w.typ || got.X != w.x || got.Y != w.y || !got.HasPosition {
			t.Errorf("event %d = %+v, want %v at (%v, %v)", i, got, w.typ, w.x, w.y)
		}
	}
}

func TestIgnoresSynthesizedAndSecondaryMouse(t *testing.T) {
	in, s, _ := newTestInput(nil)

	in.Handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Which: sdl.TOUCH_MOUSEID, Button: sdl.BUTTON_LEFT})
	in.Handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, Which: sdl.TOUCH_MOUSEID})
	in.Handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_RIGHT})

	if len(s.events) != 0 {
		t.Errorf("expected no events, got %d", len(s.events))
	}
}

func TestFingerEvents(t *testing.T) {
	fingers := []sdl.Finger{{ID: 1, X: 0.5, Y: 0.5}, {ID: 2, X: 0.25, Y: 0.75}}
	in, s, _ := newTestInput(fingers)

	in.Handle(&sdl.TouchFingerEvent{Type: sdl.FINGERDOWN, FingerID: 2, X: 0.25, Y: 0.75})
	in.Handle(&sdl.TouchFingerEvent{Type: sdl.FINGERUP, FingerID: 2, X: 0.25, Y: 0.75})

	if len(s.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(s.events))
	}

	start := s.events[0]
	if start.Type != pano.EventTouchStart || len(start.Touches) != 2 {
		t.Fatalf("unexpected touchstart %+v", start)
	}
	if start.Touches[0].X != 400 || start.Touches[0].Y != 200 {
		t.Errorf("expected scaled first touch at (400, 200), got %+v", start.Touches[0])
	}
	if start.HasPosition {
		t.Error("touch events should not carry a mouse position")
	}

	end := s.events[1]
	if end.Type != pano.EventTouchEnd {
		t.Fatalf("expected touchend, got %v", end.Type)
	}
	if len(end.Touches) != 1 || end.Touches[0].ID != 1 {
		t.Errorf("lifted finger should be removed from touches, got %+v", end.Touches)
	}
	if len(end.ChangedTouches) != 1 || end.ChangedTouches[0].X != 200 || end.ChangedTouches[0].Y != 300 {
		t.Errorf("unexpected changed touches %+v", end.ChangedTouches)
	}

	p, ok := pano.ResolvePoint(&end)
	if !ok || p.X != 200 || p.Y != 300 {
		t.Errorf("release should resolve to the lifted finger, got %+v ok=%v", p, ok)
	}
}

func TestFingerMoveFallsBackToChanged(t *testing.T) {
	in, s, _ := newTestInput(nil)

	in.Handle(&sdl.TouchFingerEvent{Type: sdl.FINGERMOTION, FingerID: 7, X: 0.1, Y: 0.2})

	if len(s.events) != 1 || len(s.events[0].Touches) != 1 {
		t.Fatalf("expected one touchmove with one touch, got %+v", s.events)
	}
	if tp := s.events[0].Touches[0]; tp.ID != 7 || math.Abs(tp.X-80) > 1e-4 || math.Abs(tp.Y-80) > 1e-4 {
		t.Errorf("unexpected touch %+v", tp)
	}
}

func TestWindowEvents(t *testing.T) {
	in, s, w := newTestInput(nil)

	in.Handle(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_ENTER})
	in.Handle(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_LEAVE})
	in.Handle(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 640, Data2: 480})

	if len(s.events) != 2 || s.events[0].Type != pano.EventMouseEnter || s.events[1].Type != pano.EventMouseLeave {
		t.Errorf("unexpected surface events %+v", s.events)
	}
	if len(w.events) != 1 || w.events[0].Type != pano.EventResize {
		t.Errorf("expected one resize, got %+v", w.events)
	}
}

func TestWheelDelta(t *testing.T) {
	tests := []struct {
		name      string
		y         int32
		direction uint32
		want      float64
	}{
		{"away", 1, sdl.MOUSEWHEEL_NORMAL, 120},
		{"towards", -2, sdl.MOUSEWHEEL_NORMAL, -240},
		{"flipped", 1, sdl.MOUSEWHEEL_FLIPPED, -120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wheelDelta(tt.y, tt.direction); got != tt.want {
				t.Errorf("wheelDelta() = %v, want %v", got, tt.want)
			}
		})
	}

	in, s, _ := newTestInput(nil)
	in.Handle(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1})
	if len(s.events) != 1 || s.events[0].WheelDelta != 120 {
		t.Errorf("expected wheel event with delta 120, got %+v", s.events)
	}
}

func TestGyroMotion(t *testing.T) {
	in, _, w := newTestInput(nil)

	in.Handle(&sdl.SensorEvent{Type: sdl.SENSORUPDATE, Data: [6]float32{math.Pi / 2, -math.Pi, 0}})

	if len(w.events) != 1 || w.events[0].Motion == nil || w.events[0].Motion.RotationRate == nil {
		t.Fatalf("expected device motion, got %+v", w.events)
	}
	m := w.events[0].Motion
	if math.Abs(m.RotationRate.Alpha-90) > 1e-4 || math.Abs(m.RotationRate.Beta+180) > 1e-4 {
		t.Errorf("unexpected rotation rate %+v", *m.RotationRate)
	}
	if m.Portrait != nil || m.Landscape != nil || m.OrientationDegrees != nil {
		t.Error("orientation should be left to the screen")
	}
}

func TestKeyboardActions(t *testing.T) {
	tests := []struct {
		name     string
		code     sdl.Scancode
		repeat   uint8
		want     Action
		wantQuit bool
	}{
		{"escape quits", sdl.SCANCODE_ESCAPE, 0, ActionQuit, true},
		{"space toggles", sdl.SCANCODE_SPACE, 0, ActionTogglePlayback, false},
		{"r resets", sdl.SCANCODE_R, 0, ActionResetView, false},
		{"f fullscreen", sdl.SCANCODE_F, 0, ActionToggleFullscreen, false},
		{"p screenshot", sdl.SCANCODE_P, 0, ActionScreenshot, false},
		{"repeat ignored", sdl.SCANCODE_SPACE, 1, ActionNone, false},
		{"unbound", sdl.SCANCODE_A, 0, ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, _, _ := newTestInput(nil)
			quit := in.Handle(&sdl.KeyboardEvent{
				Type:   sdl.KEYDOWN,
				Repeat: tt.repeat,
				Keysym: sdl.Keysym{Scancode: tt.code},
			})
			if quit != tt.wantQuit {
				t.Errorf("quit = %v, want %v", quit, tt.wantQuit)
			}
			if tt.want == ActionNone {
				if len(in.Actions()) != 0 {
					t.Errorf("expected no actions, got %v", in.Actions())
				}
				return
			}
			if !in.Triggered(tt.want) {
				t.Errorf("expected action %v, got %v", tt.want, in.Actions())
			}
		})
	}
}

func TestQuitEvent(t *testing.T) {
	in, _, _ := newTestInput(nil)
	if !in.Handle(&sdl.QuitEvent{Type: sdl.QUIT}) {
		t.Error("expected quit")
	}
	if !in.Triggered(ActionQuit) {
		t.Error("expected quit action")
	}
}
