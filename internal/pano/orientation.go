package pano

import (
	"math"

	"go.uber.org/zap"

	pmath "github.com/Faultbox/panoview/pkg/math"
)

// Interaction constants.
const (
	// DragSensitivity is degrees of rotation per pixel of drag.
	DragSensitivity = 0.2

	// TapThreshold is the largest per-axis movement, in pixels, between press
	// and release that still counts as a tap.
	TapThreshold = 0.1

	// LandscapePrimaryDegrees is the screen rotation whose gyroscope axes are
	// applied without sign inversion in landscape.
	LandscapePrimaryDegrees = -90.0
)

// Absolute pointer mapping. The longitude span deliberately exceeds 360
// degrees so the edges of the surface over-rotate a little.
const (
	absoluteLonSpan   = 430.0
	absoluteLonOffset = -225.0
	absoluteLatSpan   = -180.0
	absoluteLatOffset = 90.0
)

// Orientation is the camera angle state. Lon and Lat are degrees; Phi and
// Theta are radians derived from them right before each render.
type Orientation struct {
	Lon   float64
	Lat   float64
	Phi   float64
	Theta float64
}

// derive recomputes Phi and Theta from Lon and Lat.
func (o *Orientation) derive() {
	o.Phi = pmath.DegToRad(90 - o.Lat)
	o.Theta = pmath.DegToRad(o.Lon)
}

// DragAnchor is captured when a press starts and read while it lasts.
type DragAnchor struct {
	PointerX  float64
	PointerY  float64
	AnchorLon float64
	AnchorLat float64
}

// InteractionFlags tracks what the user is doing with the surface.
type InteractionFlags struct {
	Dragging bool
	Hovering bool
	Pinching bool
}

// Interacting reports whether idle return must hold off.
func (f InteractionFlags) Interacting() bool {
	return f.Hovering || f.Dragging
}

// PinchState records where a two-finger gesture started. It is tracked but
// not yet used for zoom.
type PinchState struct {
	ReferenceDistance float64
}

// RotationRate is a gyroscope reading in degrees per second.
type RotationRate struct {
	Alpha float64 // around the screen normal
	Beta  float64 // around the screen's horizontal axis
	Gamma float64 // around the screen's vertical axis
}

// DeviceMotion is one device-motion reading. Nil fields were not reported.
type DeviceMotion struct {
	RotationRate       *RotationRate
	Portrait           *bool
	Landscape          *bool
	OrientationDegrees *float64
}

// ScreenOrientation answers orientation queries when a motion event leaves them out.
type ScreenOrientation interface {
	Portrait() bool
	Landscape() bool
	// Degrees returns the screen rotation, false when unknown.
	Degrees() (float64, bool)
}

// BeginInteraction starts a drag at the given client coordinate.
func (c *Controller) BeginInteraction(x, y float64) {
	c.flags.Dragging = true
	c.anchor = DragAnchor{
		PointerX:  x,
		PointerY:  y,
		AnchorLon: c.state.Lon,
		AnchorLat: c.state.Lat,
	}
}

// UpdateInteraction moves the view for a pointer at the given client
// coordinate. In drag mode it only acts while a drag is active and rotates
// relative to the anchor. Otherwise the pointer position maps directly onto
// the angle range.
func (c *Controller) UpdateInteraction(x, y float64) {
	if c.opts.ClickAndDrag {
		if !c.flags.Dragging {
			return
		}
		c.state.Lon = (c.anchor.PointerX-x)*DragSensitivity + c.anchor.AnchorLon
		c.state.Lat = (y-c.anchor.PointerY)*DragSensitivity + c.anchor.AnchorLat
		return
	}

	if c.width <= 0 || c.height <= 0 {
		return
	}
	left, top := c.surface.Offset()
	c.state.Lon = ((x-left)/c.width)*absoluteLonSpan + absoluteLonOffset
	c.state.Lat = ((y-top)/c.height)*absoluteLatSpan + absoluteLatOffset
}

// EndInteraction finishes a drag released at the given client coordinate.
// A release that barely moved from the press toggles playback when
// click-to-toggle is on.
func (c *Controller) EndInteraction(x, y float64) {
	c.flags.Dragging = false
	if !c.opts.ClickToToggle {
		return
	}

	dx := math.Abs(x - c.anchor.PointerX)
	dy := math.Abs(y - c.anchor.PointerY)
	if dx < TapThreshold && dy < TapThreshold {
		c.togglePlayback()
	}
}

func (c *Controller) togglePlayback() {
	if c.player.Paused() {
		c.log.Debug("tap: play")
		c.player.Play()
		return
	}
	c.log.Debug("tap: pause")
	c.player.Pause()
}

// ApplyDeviceOrientation rotates the view by a gyroscope reading.
func (c *Controller) ApplyDeviceOrientation(alpha, beta float64, portrait, landscape bool, degrees float64) {
	k := c.opts.MobileVibrationValue
	switch {
	case portrait:
		c.state.Lon -= beta * k
		c.state.Lat += alpha * k
	case landscape:
		if degrees == LandscapePrimaryDegrees {
			c.state.Lon += alpha * k
			c.state.Lat += beta * k
		} else {
			c.state.Lon -= alpha * k
			c.state.Lat -= beta * k
		}
	}
}

// applyMotion fills in missing orientation fields from the screen and applies
// the reading. Readings without a rotation rate are ignored.
func (c *Controller) applyMotion(m *DeviceMotion) {
	if m == nil || m.RotationRate == nil {
		return
	}

	var portrait, landscape bool
	if m.Portrait != nil {
		portrait = *m.Portrait
	} else if c.screen != nil {
		portrait = c.screen.Portrait()
	}
	if m.Landscape != nil {
		landscape = *m.Landscape
	} else if c.screen != nil {
		landscape = c.screen.Landscape()
	}

	degrees := LandscapePrimaryDegrees
	if m.OrientationDegrees != nil {
		degrees = *m.OrientationDegrees
	} else if c.screen != nil {
		if d, ok := c.screen.Degrees(); ok {
			degrees = d
		}
	}

	if !portrait && !landscape {
		c.log.Debug("device motion ignored: orientation unknown",
			zap.Float64("alpha", m.RotationRate.Alpha),
			zap.Float64("beta", m.RotationRate.Beta),
		)
		return
	}
	c.ApplyDeviceOrientation(m.RotationRate.Alpha, m.RotationRate.Beta, portrait, landscape, degrees)
}
