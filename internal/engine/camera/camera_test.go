package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/panoview/pkg/math"
)

func TestLookTarget(t *testing.T) {
	c := NewPanoramaCamera(75, 51, 105)
	c.Look(gomath.Pi/2, gomath.Pi/2)

	target := c.Target()
	if gomath.Abs(float64(target.Z)-1) > 1e-6 {
		t.Errorf("expected camera to look along +Z, got %v", target)
	}
}

func TestViewMatrixMapsTargetForward(t *testing.T) {
	tests := []struct {
		name       string
		phi, theta float64
	}{
		{"horizon", gomath.Pi / 2, 0},
		{"tilted", 1.0, 2.5},
		{"zenith", 0, 0.7},
		{"nadir", gomath.Pi, -1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPanoramaCamera(75, 51, 105)
			c.Look(tt.phi, tt.theta)

			// The look target must land on the view-space -Z axis.
			p := c.ViewMatrix().TransformVec3(c.Target())
			if gomath.IsNaN(float64(p.X)) || gomath.Abs(float64(p.X)) > 1e-4 ||
				gomath.Abs(float64(p.Y)) > 1e-4 || gomath.Abs(float64(p.Z)+1) > 1e-4 {
				t.Errorf("view space target = %v, want (0, 0, -1)", p)
			}
		})
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewPanoramaCamera(75, 51, 105)

	c.HandleZoom(120) // one notch towards the scene
	if c.Fov != 69 {
		t.Errorf("expected fov 69, got %v", c.Fov)
	}

	c.HandleZoom(120 * 100)
	if c.Fov != 51 {
		t.Errorf("expected fov clamped to 51, got %v", c.Fov)
	}

	c.HandleZoom(-120 * 100)
	if c.Fov != 105 {
		t.Errorf("expected fov clamped to 105, got %v", c.Fov)
	}
}

func TestProjectionMatrix(t *testing.T) {
	c := NewPanoramaCamera(90, 51, 105)
	m := c.ProjectionMatrix(2)
	want := math.Perspective(float32(math.DegToRad(90)), 2, c.Near, c.Far)
	if m != want {
		t.Errorf("ProjectionMatrix mismatch: got %v, want %v", m, want)
	}
}
