package geom

import "github.com/go-gl/mathgl/mgl64"

// Hit contains information about a ray-shape intersection
type Hit struct {
	T      float64    // Parameter t along the ray
	Point  mgl64.Vec3 // Point of intersection
	Normal mgl64.Vec3 // Geometric face normal, not flipped toward the ray
}

// Shape is anything a pointer probe can hit.
// Shapes live in their owner's local space.
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (Hit, bool)
}
