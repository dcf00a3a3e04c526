package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned box in local space.
// Rotated boxes are expressed through the owning node's pose.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewBox creates a box from a center and half-extents
func NewBox(center, halfExtents mgl64.Vec3) *Box {
	return &Box{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// Hit uses the slab method; the normal is the axis of the entry face.
func (b *Box) Hit(ray Ray, tMin, tMax float64) (Hit, bool) {
	enterAxis, enterSign := -1, 0.0
	exitAxis, exitSign := -1, 0.0
	tNear, tFar := math.Inf(-1), math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin, dir := ray.Origin[axis], ray.Direction[axis]
		if math.Abs(dir) < Epsilon {
			if origin < b.Min[axis] || origin > b.Max[axis] {
				return Hit{}, false
			}
			continue
		}

		inv := 1.0 / dir
		t0 := (b.Min[axis] - origin) * inv
		t1 := (b.Max[axis] - origin) * inv
		sign := -1.0 // entering through the min face
		if t0 > t1 {
			t0, t1 = t1, t0
			sign = 1.0
		}
		if t0 > tNear {
			tNear, enterAxis, enterSign = t0, axis, sign
		}
		if t1 < tFar {
			tFar, exitAxis, exitSign = t1, axis, -sign
		}
		if tNear > tFar {
			return Hit{}, false
		}
	}

	t, axis, sign := tNear, enterAxis, enterSign
	if t < tMin || t > tMax {
		// Origin inside the box: report the exit face
		t, axis, sign = tFar, exitAxis, exitSign
		if t < tMin || t > tMax {
			return Hit{}, false
		}
	}
	if axis < 0 {
		return Hit{}, false
	}

	var normal mgl64.Vec3
	normal[axis] = sign
	return Hit{T: t, Point: ray.At(t), Normal: normal}, true
}
