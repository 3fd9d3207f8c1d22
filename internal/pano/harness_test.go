package pano

import (
	"math"
	"testing"
	"time"

	"github.com/Faultbox/panoview/internal/engine/camera"
	"github.com/Faultbox/panoview/internal/engine/frame"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakePlayer struct {
	state  ReadyState
	paused bool
	plays  int
	pauses int
}

func (p *fakePlayer) ReadyState() ReadyState { return p.state }
func (p *fakePlayer) Paused() bool           { return p.paused }
func (p *fakePlayer) Play()                  { p.plays++; p.paused = false }
func (p *fakePlayer) Pause()                 { p.pauses++; p.paused = true }
func (p *fakePlayer) toggles() int           { return p.plays + p.pauses }

type fakeSurface struct {
	width, height float64
	left, top     float64
}

func (s *fakeSurface) Size() (float64, float64)   { return s.width, s.height }
func (s *fakeSurface) Offset() (float64, float64) { return s.left, s.top }

type fakeTarget struct {
	invalidations int
	renders       []camera.PanoramaCamera
	resizes       [][2]int
}

func (t *fakeTarget) InvalidateTexture()               { t.invalidations++ }
func (t *fakeTarget) Render(cam camera.PanoramaCamera) { t.renders = append(t.renders, cam) }
func (t *fakeTarget) Resize(w, h int)                  { t.resizes = append(t.resizes, [2]int{w, h}) }

type fakeScreen struct {
	portrait, landscape bool
	degrees             float64
	known               bool
}

func (s *fakeScreen) Portrait() bool  { return s.portrait }
func (s *fakeScreen) Landscape() bool { return s.landscape }
func (s *fakeScreen) Degrees() (float64, bool) {
	return s.degrees, s.known
}

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// harness wires a controller to fakes and a real frame scheduler.
type harness struct {
	t       *testing.T
	bus     *Bus
	sched   *frame.Scheduler
	clock   *fakeClock
	player  *fakePlayer
	surface *fakeSurface
	target  *fakeTarget
	screen  *fakeScreen
	ctrl    *Controller
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		bus:     NewBus(),
		sched:   frame.New(),
		clock:   &fakeClock{now: epoch},
		player:  &fakePlayer{state: HaveEnoughData, paused: true},
		surface: &fakeSurface{width: 800, height: 400},
		target:  &fakeTarget{},
		screen:  &fakeScreen{},
	}
	h.ctrl = NewController(opts, Host{
		Surface:   h.surface,
		Player:    h.player,
		Target:    h.target,
		Scheduler: h.sched,
		Events:    h.bus,
		Clock:     h.clock,
		Screen:    h.screen,
	})
	return h
}

// step advances the clock by d and runs one scheduled frame.
func (h *harness) step(d time.Duration) {
	h.clock.now = h.clock.now.Add(d)
	h.sched.RunFrame(h.clock.now)
}

func (h *harness) emit(ev *Event) *Event {
	h.bus.Emit(ev)
	return ev
}

func mouse(t EventType, x, y float64) *Event {
	return &Event{Type: t, X: x, Y: y, HasPosition: true}
}

func touch(t EventType, points ...TouchPoint) *Event {
	ev := &Event{Type: t}
	if t == EventTouchEnd {
		ev.ChangedTouches = points
	} else {
		ev.Touches = points
	}
	return ev
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
