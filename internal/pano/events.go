package pano

// EventType names an input event or a controller notification.
type EventType string

// Input events delivered by the host surface.
const (
	EventMouseDown  EventType = "mousedown"
	EventMouseMove  EventType = "mousemove"
	EventMouseUp    EventType = "mouseup"
	EventMouseEnter EventType = "mouseenter"
	EventMouseLeave EventType = "mouseleave"
	EventTouchStart EventType = "touchstart"
	EventTouchMove  EventType = "touchmove"
	EventTouchEnd   EventType = "touchend"
	EventWheel      EventType = "mousewheel"
)

// Input events delivered by the host window.
const (
	EventResize       EventType = "resize"
	EventDeviceMotion EventType = "devicemotion"
)

// Notifications emitted by the controller.
const (
	EventTextureRender EventType = "textureRender"
	EventRender        EventType = "render"
	EventTouchMoved    EventType = "touchMove"
)

// Event carries one input event or notification. Only the fields that make
// sense for Type are set.
type Event struct {
	Type EventType

	// Mouse client coordinates. HasPosition is false for touch events.
	X, Y        float64
	HasPosition bool

	// Active touch points, and the ones that changed in this event.
	Touches        []TouchPoint
	ChangedTouches []TouchPoint

	// Wheel delta in 1/120 notch units, positive away from the user.
	WheelDelta float64

	// Device motion reading for EventDeviceMotion.
	Motion *DeviceMotion

	defaultPrevented bool
}

// PreventDefault marks the event as consumed by the viewer.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a handler consumed the event.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Handler receives events from a Bus.
type Handler func(ev *Event)

type subscription struct {
	id uint64
	fn Handler
}

// Bus dispatches events to handlers by type. It is not safe for concurrent
// use; handlers run synchronously on the dispatching goroutine.
type Bus struct {
	handlers map[EventType][]subscription
	nextID   uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]subscription)}
}

// Handle removes one subscription. The zero Handle is valid and does nothing.
type Handle struct {
	bus *Bus
	typ EventType
	id  uint64
}

// On subscribes fn to events of type t.
func (b *Bus) On(t EventType, fn Handler) Handle {
	b.nextID++
	b.handlers[t] = append(b.handlers[t], subscription{id: b.nextID, fn: fn})
	return Handle{bus: b, typ: t, id: b.nextID}
}

// Remove unsubscribes the handler. Calling it more than once is harmless.
func (h Handle) Remove() {
	if h.bus == nil {
		return
	}
	subs := h.bus.handlers[h.typ]
	for i := range subs {
		if subs[i].id == h.id {
			copy(subs[i:], subs[i+1:])
			subs[len(subs)-1] = subscription{}
			subs = subs[:len(subs)-1]
			break
		}
	}
	if len(subs) == 0 {
		delete(h.bus.handlers, h.typ)
		return
	}
	h.bus.handlers[h.typ] = subs
}

// Emit delivers ev to every handler subscribed to ev.Type at the time of the call.
func (b *Bus) Emit(ev *Event) {
	subs := b.handlers[ev.Type]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		s.fn(ev)
	}
}

// Count returns the number of handlers subscribed to t.
func (b *Bus) Count(t EventType) int {
	return len(b.handlers[t])
}

// Len returns the number of handlers across all event types.
func (b *Bus) Len() int {
	n := 0
	for _, subs := range b.handlers {
		n += len(subs)
	}
	return n
}
