// Package geom holds the 3D primitives shared by the interaction core: rays,
// rigid poses, Euler conversion and the shapes pointers are tested against.
//
// Vectors and quaternions are mgl64 values. Angles are radians.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis constants in the right-handed, Y-up convention used by immersive platforms.
var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, -1} // target-ray spaces point down -Z
	Right   = mgl64.Vec3{1, 0, 0}
)

// Epsilon is the tolerance used for parallel and degenerate checks.
const Epsilon = 1e-8

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Degrees converts radians to degrees for logging/display.
func Degrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// Clamp limits a value to [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Horizontal returns v with its vertical component zeroed.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}
