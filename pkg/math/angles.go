package math

import "math"

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Clamp limits v to [lo, hi]. Infinite bounds are allowed.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SphereDirection returns the unit vector for polar angle phi (measured from +Y)
// and azimuth theta (measured from +X towards +Z), both in radians.
func SphereDirection(phi, theta float64) Vec3 {
	sp := math.Sin(phi)
	return Vec3{
		X: float32(sp * math.Cos(theta)),
		Y: float32(math.Cos(phi)),
		Z: float32(sp * math.Sin(theta)),
	}
}
