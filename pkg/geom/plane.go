package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  mgl64.Vec3 // A point on the plane
	Normal mgl64.Vec3 // Unit normal
}

// NewPlane creates a new plane
func NewPlane(point, normal mgl64.Vec3) *Plane {
	return &Plane{Point: point, Normal: normal.Normalize()}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray Ray, tMin, tMax float64) (Hit, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays never hit
	if math.Abs(denominator) < Epsilon {
		return Hit{}, false
	}

	t := p.Point.Sub(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return Hit{}, false
	}

	return Hit{T: t, Point: ray.At(t), Normal: p.Normal}, true
}
