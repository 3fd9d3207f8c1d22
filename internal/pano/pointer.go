package pano

import "math"

// Point is a position in client (window) pixels.
type Point struct {
	X, Y float64
}

// TouchPoint is one finger on the surface, in client pixels.
type TouchPoint struct {
	ID   int64
	X, Y float64
}

// ResolvePoint extracts the single coordinate an event refers to. Mouse events
// use their client position. Touch events use the first active touch, or the
// first changed touch on release since the active list may already be empty.
// The second result is false when no coordinate can be found.
func ResolvePoint(ev *Event) (Point, bool) {
	if ev.HasPosition {
		return Point{X: ev.X, Y: ev.Y}, true
	}

	touches := ev.Touches
	if isRelease(ev.Type) {
		touches = ev.ChangedTouches
	}
	if len(touches) == 0 {
		return Point{}, false
	}
	return Point{X: touches[0].X, Y: touches[0].Y}, true
}

func isRelease(t EventType) bool {
	return t == EventMouseUp || t == EventTouchEnd
}

// TouchDistance returns the distance between the first two touch points,
// or 0 with fewer than two.
func TouchDistance(touches []TouchPoint) float64 {
	if len(touches) < 2 {
		return 0
	}
	return math.Hypot(touches[0].X-touches[1].X, touches[0].Y-touches[1].Y)
}

// DetectPinch reports whether an interaction starting with these touches is a
// pinch, and the reference distance it starts from.
func DetectPinch(touches []TouchPoint) (PinchState, bool) {
	if len(touches) < 2 {
		return PinchState{}, false
	}
	return PinchState{ReferenceDistance: TouchDistance(touches)}, true
}
