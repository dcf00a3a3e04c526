package intersect

import "github.com/teslashibe/go-xr/pkg/scene"

// Predicate decides whether an object takes part in a probe.
type Predicate func(h scene.Handle, obj *scene.Object) bool

// Filter post-processes eligible hits. It may drop or reorder, never add.
type Filter func([]Intersection) []Intersection

// Visible admits objects whose whole ancestor chain is visible.
func Visible(scn Scene) Predicate {
	return func(h scene.Handle, _ *scene.Object) bool {
		return scn.WorldVisible(h)
	}
}

// Tagged admits objects carrying tag.
func Tagged(tag scene.Tag) Predicate {
	return func(_ scene.Handle, obj *scene.Object) bool {
		return obj.HasTag(tag)
	}
}

// Interactive admits objects that have pointer handlers.
func Interactive() Predicate {
	return func(_ scene.Handle, obj *scene.Object) bool {
		return obj.Interactive
	}
}

// Except excludes a fixed set of objects (the pointer's own visuals, say).
func Except(handles ...scene.Handle) Predicate {
	return func(h scene.Handle, _ *scene.Object) bool {
		for _, ex := range handles {
			if ex == h {
				return false
			}
		}
		return true
	}
}

// All admits objects accepted by every predicate. Nil predicates are skipped.
func All(preds ...Predicate) Predicate {
	return func(h scene.Handle, obj *scene.Object) bool {
		for _, p := range preds {
			if p != nil && !p(h, obj) {
				return false
			}
		}
		return true
	}
}
