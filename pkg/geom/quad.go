package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quad represents a rectangular surface defined by a corner and two edge vectors
type Quad struct {
	Corner mgl64.Vec3 // One corner of the quad
	U      mgl64.Vec3 // First edge vector
	V      mgl64.Vec3 // Second edge vector
	Normal mgl64.Vec3 // Normal vector (U × V, normalized)
	D      float64    // Plane equation constant: n·x = d
	W      mgl64.Vec3 // Cached n/(n·(U×V)) for planar coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v mgl64.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(corner),
		W:      normal.Mul(1.0 / normal.Dot(cross)),
	}
}

// NewFloor creates a width×depth quad centered on the origin facing +Y.
func NewFloor(width, depth float64) *Quad {
	return NewQuad(
		mgl64.Vec3{-width / 2, 0, depth / 2},
		mgl64.Vec3{width, 0, 0},
		mgl64.Vec3{0, 0, -depth},
	)
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray Ray, tMin, tMax float64) (Hit, bool) {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < Epsilon {
		return Hit{}, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return Hit{}, false
	}

	point := ray.At(t)

	// Planar coordinates must both lie in [0, 1]
	rel := point.Sub(q.Corner)
	alpha := q.W.Dot(rel.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(rel))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return Hit{}, false
	}

	return Hit{T: t, Point: point, Normal: q.Normal}, true
}
