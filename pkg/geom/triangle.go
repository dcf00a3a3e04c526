package geom

import "github.com/go-gl/mathgl/mgl64"

// Triangle is a single face with counter-clockwise winding.
type Triangle struct {
	V0, V1, V2 mgl64.Vec3
	Normal     mgl64.Vec3
}

// NewTriangle creates a triangle and caches its face normal
func NewTriangle(v0, v1, v2 mgl64.Vec3) *Triangle {
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		Normal: v1.Sub(v0).Cross(v2.Sub(v0)).Normalize(),
	}
}

// Hit is the Möller–Trumbore test. Both faces are hittable.
func (tri *Triangle) Hit(ray Ray, tMin, tMax float64) (Hit, bool) {
	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)
	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -Epsilon && det < Epsilon {
		return Hit{}, false
	}

	invDet := 1 / det
	s := ray.Origin.Sub(tri.V0)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return Hit{}, false
	}
	q := s.Cross(edge1)
	v := invDet * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := invDet * edge2.Dot(q)
	if t < tMin || t > tMax {
		return Hit{}, false
	}
	return Hit{T: t, Point: ray.At(t), Normal: tri.Normal}, true
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Triangles []*Triangle
}

// NewMesh builds triangles from vertices and index triples.
func NewMesh(vertices []mgl64.Vec3, faces [][3]int) *Mesh {
	m := &Mesh{Triangles: make([]*Triangle, 0, len(faces))}
	for _, f := range faces {
		m.Triangles = append(m.Triangles, NewTriangle(vertices[f[0]], vertices[f[1]], vertices[f[2]]))
	}
	return m
}

// Hit returns the nearest face hit.
func (m *Mesh) Hit(ray Ray, tMin, tMax float64) (Hit, bool) {
	var best Hit
	found := false
	closest := tMax
	for _, tri := range m.Triangles {
		if hit, ok := tri.Hit(ray, tMin, closest); ok {
			best, found, closest = hit, true, hit.T
		}
	}
	return best, found
}
