package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used by Equiv for floating-point comparison.
const Epsilon = 1e-9

// Clamp returns v limited to the inclusive range [lo, hi].
//
// Parameters:
//   - v: value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float64: v clamped into [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Equiv reports whether two floats are equal within Epsilon.
//
// Parameters:
//   - a: first value
//   - b: second value
//
// Returns:
//   - bool: true if |a-b| < Epsilon
func Equiv(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// NormalizeAzimuth folds an angle in radians into [-pi, pi], removing whole
// multiples of 2*pi first.
//
// Parameters:
//   - rad: angle in radians
//
// Returns:
//   - float64: equivalent angle in [-pi, pi]
func NormalizeAzimuth(rad float64) float64 {
	if math.Abs(rad) > 2*math.Pi {
		rad = math.Mod(rad, 2*math.Pi)
	}
	if rad < -math.Pi {
		rad += 2 * math.Pi
	}
	if rad > math.Pi {
		rad -= 2 * math.Pi
	}
	return rad
}

// Lerp linearly interpolates between two points.
//
// Parameters:
//   - a: start point (t = 0)
//   - b: end point (t = 1)
//   - t: interpolation coefficient
//
// Returns:
//   - mgl64.Vec3: the interpolated point
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Mul(1.0 - t).Add(b.Mul(t))
}

// Nlerp interpolates between two points along a great-circle-like path by
// normalizing the linear interpolant and rescaling its length between the
// endpoint magnitudes. Used for center paths over a globe, where a straight
// lerp would cut through the surface.
//
// Parameters:
//   - a: start point (t = 0)
//   - b: end point (t = 1)
//   - t: interpolation coefficient
//
// Returns:
//   - mgl64.Vec3: the interpolated point
func Nlerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	am := a.Len()
	bm := b.Len()
	c := a.Mul(1.0 - t).Add(b.Mul(t))
	if l := c.Len(); l > 0 {
		c = c.Mul(1.0 / l)
	}
	return c.Mul((1.0-t)*am + t*bm)
}

// XAxis returns the first basis vector (column 0) of a 4x4 transform.
//
// Parameters:
//   - m: column-major transform
//
// Returns:
//   - mgl64.Vec3: the x axis of the frame
func XAxis(m mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{m[0], m[1], m[2]}
}

// YAxis returns the second basis vector (column 1) of a 4x4 transform.
//
// Parameters:
//   - m: column-major transform
//
// Returns:
//   - mgl64.Vec3: the y axis of the frame
func YAxis(m mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{m[4], m[5], m[6]}
}

// ZAxis returns the third basis vector (column 2) of a 4x4 transform.
//
// Parameters:
//   - m: column-major transform
//
// Returns:
//   - mgl64.Vec3: the z axis of the frame
func ZAxis(m mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{m[8], m[9], m[10]}
}

// Translation returns the translation component (column 3) of a 4x4 transform.
//
// Parameters:
//   - m: column-major transform
//
// Returns:
//   - mgl64.Vec3: the translation
func Translation(m mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{m[12], m[13], m[14]}
}

// StripTranslation returns a copy of m with the translation component zeroed,
// leaving only the rotational part of the frame.
//
// Parameters:
//   - m: column-major transform
//
// Returns:
//   - mgl64.Mat4: m with zero translation
func StripTranslation(m mgl64.Mat4) mgl64.Mat4 {
	m[12], m[13], m[14] = 0, 0, 0
	return m
}
