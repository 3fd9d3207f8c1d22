package pano

import (
	"math"

	pmath "github.com/Faultbox/panoview/pkg/math"
)

// stepToward moves v one speed step toward target, snapping to target once
// v is strictly within one step of it.
func stepToward(v, target, speed float64) float64 {
	reach := math.Abs(speed)
	if v > target-reach && v < target+reach {
		return target
	}
	if v > target {
		return v - speed
	}
	return v + speed
}

// settle runs once per rendered frame: idle return when the user is not
// interacting, then the bounds clamp, then phi/theta derivation. The clamp
// always runs, dragging included.
func (c *Controller) settle() {
	if !c.flags.Interacting() {
		if c.opts.BackToInitLat {
			c.state.Lat = stepToward(c.state.Lat, c.opts.InitLat, c.opts.ReturnLatSpeed)
		}
		if c.opts.BackToInitLon {
			c.state.Lon = stepToward(c.state.Lon, c.opts.InitLon, c.opts.ReturnLonSpeed)
		}
	}

	c.state.Lat = pmath.Clamp(c.state.Lat, c.opts.MinLat, c.opts.MaxLat)
	c.state.Lon = pmath.Clamp(c.state.Lon, c.opts.MinLon, c.opts.MaxLon)
	c.state.derive()
}
