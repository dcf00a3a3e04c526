// Package curve approximates the teleport arc with a fixed-resolution polyline.
//
// Sampling happens once at startup. The resulting ArcSample is immutable and is
// shared by every teleport pointer.
package curve

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"

	"github.com/teslashibe/go-xr/pkg/geom"
)

// ErrInvalidSampleCount is returned when fewer than two samples are requested.
var ErrInvalidSampleCount = errors.New("curve: sample count must be at least 2")

// DefaultSamples is the resolution of the stock teleport arc.
const DefaultSamples = 21

// QuadraticBezier is a parabolic arc from Start to End pulled toward Control.
type QuadraticBezier struct {
	Start   mgl64.Vec3
	Control mgl64.Vec3
	End     mgl64.Vec3
}

// TeleportArc is the stock arc: forward 8m then bending down 20m, ending 15m out.
var TeleportArc = QuadraticBezier{
	Start:   mgl64.Vec3{0, 0, 0},
	Control: mgl64.Vec3{0, 0, -8},
	End:     mgl64.Vec3{0, -20, -15},
}

// Point evaluates the curve at t in [0, 1].
func (b QuadraticBezier) Point(t float64) mgl64.Vec3 {
	switch t {
	case 0:
		return b.Start
	case 1:
		return b.End
	}
	u := 1 - t
	return b.Start.Mul(u * u).
		Add(b.Control.Mul(2 * u * t)).
		Add(b.End.Mul(t * t))
}

// Sample returns n evenly parameterized points and the n-1 segment lengths.
func (b QuadraticBezier) Sample(n int) (ArcSample, error) {
	if n < 2 {
		return ArcSample{}, fmt.Errorf("sample %d points: %w", n, ErrInvalidSampleCount)
	}

	points := make([]mgl64.Vec3, n)
	for i := range points {
		points[i] = b.Point(float64(i) / float64(n-1))
	}

	lengths := make([]float64, n-1)
	for i := range lengths {
		lengths[i] = points[i+1].Sub(points[i]).Len()
	}

	return ArcSample{points: points, lengths: lengths}, nil
}

// MustSample is Sample for startup constants; it panics on a bad count.
func (b QuadraticBezier) MustSample(n int) ArcSample {
	arc, err := b.Sample(n)
	if err != nil {
		panic(err)
	}
	return arc
}

// DefaultTeleportArc samples TeleportArc at DefaultSamples.
func DefaultTeleportArc() ArcSample {
	return TeleportArc.MustSample(DefaultSamples)
}

// ArcSample is an immutable polyline approximation of a curve.
// Invariant: len(Lengths()) == len(Points()) - 1.
type ArcSample struct {
	points  []mgl64.Vec3
	lengths []float64
}

// Len returns the number of sample points.
func (a ArcSample) Len() int {
	return len(a.points)
}

// Segments returns the number of segments (Len()-1).
func (a ArcSample) Segments() int {
	return len(a.lengths)
}

// Points returns a copy of the sample points.
func (a ArcSample) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(a.points))
	copy(out, a.points)
	return out
}

// Lengths returns a copy of the segment lengths.
func (a ArcSample) Lengths() []float64 {
	out := make([]float64, len(a.lengths))
	copy(out, a.lengths)
	return out
}

// Point returns sample i.
func (a ArcSample) Point(i int) mgl64.Vec3 {
	return a.points[i]
}

// SegmentLength returns the length of segment i.
func (a ArcSample) SegmentLength(i int) float64 {
	return a.lengths[i]
}

// Total is the polyline length.
func (a ArcSample) Total() float64 {
	return floats.Sum(a.lengths)
}

// Cumulative returns the running length at the end of every segment.
func (a ArcSample) Cumulative() []float64 {
	out := make([]float64, len(a.lengths))
	floats.CumSum(out, a.lengths)
	return out
}

// Transform maps every sample through pose into a fresh slice.
func (a ArcSample) Transform(pose geom.Pose) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(a.points))
	for i, p := range a.points {
		out[i] = pose.Apply(p)
	}
	return out
}
