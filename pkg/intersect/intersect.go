// Package intersect tests pointer probes against the scene and reports hits
// nearest-first.
//
// Results are only valid for the frame they were computed in. Callers must not
// hold an Intersection across frames; the object handle may be gone by then.
package intersect

import (
	"log/slog"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/go-xr/internal/log"
	"github.com/teslashibe/go-xr/pkg/debug"
	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/scene"
)

// Scene is the part of the scene graph the engine reads.
type Scene interface {
	Each(fn func(h scene.Handle, obj *scene.Object) bool)
	WorldTransform(h scene.Handle) (geom.Pose, bool)
	WorldVisible(h scene.Handle) bool
}

// Intersection is a single probe hit.
type Intersection struct {
	Point     mgl64.Vec3
	Normal    mgl64.Vec3 // world space, valid when HasNormal
	HasNormal bool
	Object    scene.Handle

	// Distance along the probe. For curves this is the arc length to the hit.
	Distance float64

	// Curve probes only.
	SegmentIndex      int
	DistanceOnSegment float64
}

// Engine runs probes against a scene.
type Engine struct {
	scene Scene
	log   *slog.Logger
}

// New creates an engine over scn.
func New(scn Scene) *Engine {
	return &Engine{scene: scn, log: log.Component("intersect")}
}

// Intersect returns every object hit by probe, nearest-first.
//
// eligible is always evaluated; nil means every visible object with a shape.
// filter runs after eligibility and may drop or reorder entries. Anything it
// returns that the probe did not produce is discarded.
func (e *Engine) Intersect(probe Probe, eligible Predicate, filter Filter) []Intersection {
	if eligible == nil {
		eligible = Visible(e.scene)
	}

	var hits []Intersection
	e.scene.Each(func(h scene.Handle, obj *scene.Object) bool {
		if obj.Shape == nil || !eligible(h, obj) {
			return true
		}
		world, ok := e.scene.WorldTransform(h)
		if !ok {
			return true
		}
		if hit, ok := probe.cast(obj.Shape, world); ok {
			hit.Object = h
			hits = append(hits, hit)
		}
		return true
	})

	if filter != nil && len(hits) > 0 {
		hits = guard(hits, filter(append([]Intersection(nil), hits...)))
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return probe.less(hits[i], hits[j])
	})

	if debug.Frames && len(hits) > 0 {
		debug.FrameLog("🎯 %d hit(s), nearest %v at %.3f\n", len(hits), hits[0].Object, hits[0].Distance)
	}
	return hits
}

// Nearest returns the first intersection, the current one for a device.
func Nearest(hits []Intersection) (Intersection, bool) {
	if len(hits) == 0 {
		return Intersection{}, false
	}
	return hits[0], true
}

// guard keeps only filtered entries that were produced by the probe, each at
// most once.
func guard(produced, filtered []Intersection) []Intersection {
	byObject := make(map[scene.Handle]Intersection, len(produced))
	for _, hit := range produced {
		byObject[hit.Object] = hit
	}

	out := filtered[:0]
	for _, hit := range filtered {
		orig, ok := byObject[hit.Object]
		if !ok || orig != hit {
			continue
		}
		delete(byObject, hit.Object)
		out = append(out, hit)
	}
	return out
}
