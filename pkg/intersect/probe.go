package intersect

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/go-xr/pkg/geom"
)

// Probe is the geometry a pointer casts into the scene.
type Probe interface {
	cast(shape geom.Shape, world geom.Pose) (Intersection, bool)
	less(a, b Intersection) bool
}

// RayProbe is a straight pointer. MaxLength <= 0 means unbounded.
type RayProbe struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	MaxLength float64
}

// RayFrom builds a probe along the -Z axis of a target-ray pose.
func RayFrom(p geom.Pose, maxLength float64) RayProbe {
	r := p.Ray()
	return RayProbe{Origin: r.Origin, Direction: r.Direction, MaxLength: maxLength}
}

func (p RayProbe) cast(shape geom.Shape, world geom.Pose) (Intersection, bool) {
	tMax := p.MaxLength
	if tMax <= 0 {
		tMax = math.Inf(1)
	}
	ray := geom.NewRay(p.Origin, p.Direction)
	hit, ok := shape.Hit(world.ToLocal(ray), geom.Epsilon, tMax)
	if !ok {
		return Intersection{}, false
	}
	return toWorld(hit, world, hit.T), true
}

func (RayProbe) less(a, b Intersection) bool {
	return a.Distance < b.Distance
}

// CurveProbe is a world-space polyline, typically a transformed arc sample.
// Each segment is cast as a ray bounded by its own length.
type CurveProbe struct {
	Points []mgl64.Vec3
}

func (p CurveProbe) cast(shape geom.Shape, world geom.Pose) (Intersection, bool) {
	travelled := 0.0
	for i := 0; i+1 < len(p.Points); i++ {
		seg := p.Points[i+1].Sub(p.Points[i])
		length := seg.Len()
		if length < geom.Epsilon {
			continue
		}

		ray := geom.NewRay(p.Points[i], seg)
		if hit, ok := shape.Hit(world.ToLocal(ray), 0, length); ok {
			out := toWorld(hit, world, travelled+hit.T)
			out.SegmentIndex = i
			out.DistanceOnSegment = hit.T
			return out, true
		}
		travelled += length
	}
	return Intersection{}, false
}

func (CurveProbe) less(a, b Intersection) bool {
	if a.SegmentIndex != b.SegmentIndex {
		return a.SegmentIndex < b.SegmentIndex
	}
	return a.DistanceOnSegment < b.DistanceOnSegment
}

func toWorld(hit geom.Hit, world geom.Pose, distance float64) Intersection {
	out := Intersection{Point: world.Apply(hit.Point), Distance: distance}
	if hit.Normal.Len() > geom.Epsilon {
		out.Normal = world.ApplyDirection(hit.Normal).Normalize()
		out.HasNormal = true
	}
	return out
}
