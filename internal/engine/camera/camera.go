// Package camera provides the camera used to look around a panoramic sphere.
package camera

import (
	gomath "math"

	"github.com/Faultbox/panoview/pkg/math"
)

// PanoramaCamera sits at the center of a unit sphere and looks outwards.
type PanoramaCamera struct {
	// Spherical view angles (radians)
	Phi   float64 // Polar angle from +Y, 0 looks straight up
	Theta float64 // Azimuth from +X towards +Z

	// Vertical field of view (degrees)
	Fov    float64
	MinFov float64
	MaxFov float64

	// Clip planes
	Near float32
	Far  float32

	// Degrees of FOV change per wheel delta unit
	ZoomSensitivity float64
}

// NewPanoramaCamera creates a camera looking at the horizon along +X.
func NewPanoramaCamera(fov, minFov, maxFov float64) *PanoramaCamera {
	return &PanoramaCamera{
		Phi:             gomath.Pi / 2,
		Theta:           0,
		Fov:             fov,
		MinFov:          minFov,
		MaxFov:          maxFov,
		Near:            0.1,
		Far:             100,
		ZoomSensitivity: 0.05,
	}
}

// Look points the camera at the given spherical angles.
func (c *PanoramaCamera) Look(phi, theta float64) {
	c.Phi = phi
	c.Theta = theta
}

// Target returns the unit direction the camera looks at.
func (c *PanoramaCamera) Target() math.Vec3 {
	return math.SphereDirection(c.Phi, c.Theta)
}

// ViewMatrix returns the view matrix for a camera at the origin.
func (c *PanoramaCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	target := c.Target()
	// Straight up or down: LookAt degenerates with a parallel up vector.
	if gomath.Abs(float64(target.Y)) > 0.9999 {
		up = math.SphereDirection(gomath.Pi/2, c.Theta)
		if target.Y > 0 {
			up = up.Scale(-1)
		}
	}
	return math.LookAt(math.Vec3{}, target, up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *PanoramaCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(float32(math.DegToRad(c.Fov)), aspect, c.Near, c.Far)
}

// HandleZoom narrows (positive delta) or widens the field of view.
func (c *PanoramaCamera) HandleZoom(delta float64) {
	c.Fov = math.Clamp(c.Fov-delta*c.ZoomSensitivity, c.MinFov, c.MaxFov)
}
