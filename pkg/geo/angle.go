package geo

import "math"

// Angle represents a geographic angle, stored in degrees
type Angle float64

// FromRadians creates an angle from a value in radians
func FromRadians(rad float64) Angle {
	return Angle(rad * 180.0 / math.Pi)
}

// Degrees returns the angle value in degrees
func (a Angle) Degrees() float64 {
	return float64(a)
}

// Radians returns the angle value in radians
func (a Angle) Radians() float64 {
	return float64(a) * math.Pi / 180.0
}

// Add returns the sum of two angles
func (a Angle) Add(other Angle) Angle {
	return a + other
}

// Sub returns the difference between two angles
func (a Angle) Sub(other Angle) Angle {
	return a - other
}

// NormalizedLongitude wraps the angle into the [-180, 180) degree range
func (a Angle) NormalizedLongitude() Angle {
	deg := math.Mod(float64(a)+180.0, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return Angle(deg - 180.0)
}

// ClampedLatitude limits the angle to the [-90, 90] degree range
func (a Angle) ClampedLatitude() Angle {
	if a > 90 {
		return 90
	}
	if a < -90 {
		return -90
	}
	return a
}

// Clamped limits the angle to the [min, max] range
func (a Angle) Clamped(min, max Angle) Angle {
	if a < min {
		return min
	}
	if a > max {
		return max
	}
	return a
}
