// Package pano turns pointer, touch and gyroscope input into the view angles
// of a panoramic video surface and drives its render loop.
package pano

import (
	"go.uber.org/zap"

	"github.com/Faultbox/panoview/internal/engine/camera"
	"github.com/Faultbox/panoview/internal/logger"
)

// ReadyState is the media readiness ordinal.
type ReadyState int

const (
	HaveNothing ReadyState = iota
	HaveMetadata
	HaveCurrentData
	HaveFutureData
	HaveEnoughData
)

func (s ReadyState) String() string {
	switch s {
	case HaveNothing:
		return "nothing"
	case HaveMetadata:
		return "metadata"
	case HaveCurrentData:
		return "current-data"
	case HaveFutureData:
		return "future-data"
	case HaveEnoughData:
		return "enough-data"
	default:
		return "unknown"
	}
}

// Player is the media playback the viewer shows.
type Player interface {
	ReadyState() ReadyState
	Paused() bool
	Play()
	Pause()
}

// Surface is the element the panorama is drawn into.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (width, height float64)
	// Offset returns the surface's top-left corner in client pixels.
	Offset() (left, top float64)
}

// RenderTarget draws the panorama.
type RenderTarget interface {
	// InvalidateTexture asks for the current media frame to be uploaded
	// before the next draw.
	InvalidateTexture()
	// Render draws the sphere as seen by cam.
	Render(cam camera.PanoramaCamera)
}

// Resizer is implemented by render targets that track the surface size.
type Resizer interface {
	Resize(width, height int)
}

// Host bundles the collaborators a Controller needs.
type Host struct {
	Surface   Surface
	Player    Player
	Target    RenderTarget
	Scheduler FrameScheduler

	// Events carries surface input events; notifications are emitted on it.
	Events *Bus
	// Window carries resize and device-motion events. Nil means Events.
	Window *Bus

	// Optional
	Clock  Clock
	Screen ScreenOrientation
}

// Controller owns the orientation state. Every input handler goes through
// its methods, and the render loop reads the result each frame.
type Controller struct {
	opts    Options
	surface Surface
	player  Player
	target  RenderTarget
	screen  ScreenOrientation
	events  *Bus
	window  *Bus
	log     *zap.Logger

	width, height float64

	state  Orientation
	anchor DragAnchor
	flags  InteractionFlags
	pinch  PinchState
	camera *camera.PanoramaCamera

	loop     *Loop
	handles  []Handle
	disposed bool
}

// NewController creates a controller at the initial view and subscribes its
// input handlers. The render loop stays stopped until Start.
func NewController(opts Options, host Host) *Controller {
	c := &Controller{
		opts:    opts,
		surface: host.Surface,
		player:  host.Player,
		target:  host.Target,
		screen:  host.Screen,
		events:  host.Events,
		window:  host.Window,
		log:     logger.Named("pano"),
		state:   Orientation{Lon: opts.InitLon, Lat: opts.InitLat},
		camera:  camera.NewPanoramaCamera(opts.InitFov, opts.MinFov, opts.MaxFov),
	}
	if c.window == nil {
		c.window = c.events
	}
	c.width, c.height = c.surface.Size()

	c.loop = NewLoop(host.Scheduler, host.Clock, LoopHooks{
		Ready:          c.ready,
		TextureRefresh: c.refreshTexture,
		Render:         c.render,
	})

	c.attach()
	return c
}

func (c *Controller) attach() {
	on := func(bus *Bus, t EventType, fn Handler) {
		c.handles = append(c.handles, bus.On(t, fn))
	}

	on(c.events, EventMouseMove, c.handleMouseMove)
	on(c.events, EventTouchMove, c.handleTouchMove)
	on(c.events, EventMouseDown, c.handleMouseDown)
	on(c.events, EventTouchStart, c.handleTouchStart)
	on(c.events, EventMouseUp, c.handleMouseUp)
	on(c.events, EventTouchEnd, c.handleTouchEnd)
	on(c.events, EventMouseEnter, c.handleMouseEnter)
	on(c.events, EventMouseLeave, c.handleMouseLeave)
	if c.opts.Scrollable {
		on(c.events, EventWheel, c.handleWheel)
	}
	if c.opts.Resizable {
		on(c.window, EventResize, c.handleResize)
	}
	if c.opts.AutoMobileOrientation {
		on(c.window, EventDeviceMotion, c.handleDeviceMotion)
	}

	c.log.Debug("handlers attached", zap.Int("count", len(c.handles)))
}

func (c *Controller) detach() {
	for _, h := range c.handles {
		h.Remove()
	}
	c.handles = nil
}

// Start starts the render loop.
func (c *Controller) Start() {
	if c.disposed {
		return
	}
	c.loop.Start()
	c.log.Debug("render loop started")
}

// Stop stops the render loop. Input handlers stay attached.
func (c *Controller) Stop() {
	if c.loop.State() == LoopStopped {
		return
	}
	c.loop.Stop()
	c.log.Debug("render loop stopped")
}

// Dispose detaches every handler and stops the render loop. It may be called
// more than once.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.detach()
	c.Stop()
	c.log.Debug("controller disposed")
}

// LoopState returns the render loop state.
func (c *Controller) LoopState() LoopState {
	return c.loop.State()
}

// Orientation returns the current angles.
func (c *Controller) Orientation() Orientation {
	return c.state
}

// Flags returns the current interaction flags.
func (c *Controller) Flags() InteractionFlags {
	return c.flags
}

// Anchor returns the anchor of the current or last drag.
func (c *Controller) Anchor() DragAnchor {
	return c.anchor
}

// Pinch returns the last recorded pinch.
func (c *Controller) Pinch() PinchState {
	return c.pinch
}

// Camera returns a copy of the camera as last rendered.
func (c *Controller) Camera() camera.PanoramaCamera {
	return *c.camera
}

// SetOrientation moves the view to the given angles. Bounds apply on the next
// rendered frame.
func (c *Controller) SetOrientation(lon, lat float64) {
	c.state.Lon = lon
	c.state.Lat = lat
}

// SetHovering records whether the pointer is over the surface. Leaving the
// surface also ends any drag.
func (c *Controller) SetHovering(hovering bool) {
	c.flags.Hovering = hovering
	if !hovering {
		c.flags.Dragging = false
	}
}

// Resize re-reads the surface size and forwards it to the render target.
func (c *Controller) Resize() {
	c.width, c.height = c.surface.Size()
	if r, ok := c.target.(Resizer); ok {
		r.Resize(int(c.width), int(c.height))
	}
	c.log.Debug("surface resized",
		zap.Float64("width", c.width),
		zap.Float64("height", c.height),
	)
}

// Zoom changes the field of view by a wheel delta.
func (c *Controller) Zoom(delta float64) {
	c.camera.HandleZoom(delta)
}

func (c *Controller) ready() bool {
	return c.player.ReadyState() >= HaveCurrentData
}

func (c *Controller) refreshTexture() {
	c.target.InvalidateTexture()
	c.events.Emit(&Event{Type: EventTextureRender})
}

func (c *Controller) render() {
	c.settle()
	c.camera.Look(c.state.Phi, c.state.Theta)
	c.target.Render(*c.camera)
	c.events.Emit(&Event{Type: EventRender})
}

// Input handlers.

func (c *Controller) handleMouseEnter(*Event) {
	c.SetHovering(true)
}

func (c *Controller) handleMouseLeave(*Event) {
	c.SetHovering(false)
}

func (c *Controller) handleMouseDown(ev *Event) {
	ev.PreventDefault()
	if p, ok := ResolvePoint(ev); ok {
		c.BeginInteraction(p.X, p.Y)
	}
}

func (c *Controller) handleMouseMove(ev *Event) {
	if p, ok := ResolvePoint(ev); ok {
		c.UpdateInteraction(p.X, p.Y)
	}
}

func (c *Controller) handleMouseUp(ev *Event) {
	p, ok := ResolvePoint(ev)
	if !ok {
		c.flags.Dragging = false
		return
	}
	c.EndInteraction(p.X, p.Y)
}

func (c *Controller) handleTouchStart(ev *Event) {
	if pinch, ok := DetectPinch(ev.Touches); ok {
		c.flags.Pinching = true
		c.pinch = pinch
	}
	c.handleMouseDown(ev)
}

func (c *Controller) handleTouchMove(ev *Event) {
	c.events.Emit(&Event{Type: EventTouchMoved})
	if !c.flags.Pinching || len(ev.Touches) <= 1 {
		c.handleMouseMove(ev)
	}
}

func (c *Controller) handleTouchEnd(ev *Event) {
	c.flags.Pinching = false
	c.handleMouseUp(ev)
}

func (c *Controller) handleWheel(ev *Event) {
	ev.PreventDefault()
	c.Zoom(ev.WheelDelta)
}

func (c *Controller) handleResize(*Event) {
	c.Resize()
}

func (c *Controller) handleDeviceMotion(ev *Event) {
	c.applyMotion(ev.Motion)
}
