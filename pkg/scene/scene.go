// Package scene is the reference scene-graph collaborator for the interaction core.
//
// Objects live in an arena and are addressed by generation-checked handles, so
// an intersection kept past its frame can never resolve to a recycled slot.
// A Graph is not safe for concurrent use; hosts serialize access through the
// frame loop.
package scene

import (
	"errors"
	"fmt"

	"github.com/teslashibe/go-xr/pkg/geom"
)

// ErrStaleHandle is returned for handles whose object has been removed.
var ErrStaleHandle = errors.New("scene: stale or unknown handle")

// Handle is an opaque reference to an object. The zero Handle refers to nothing.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	if h.IsZero() {
		return "scene:none"
	}
	return fmt.Sprintf("scene:%d.%d", h.index, h.gen)
}

// Tag marks objects for a feature (teleport targets, UI panels...).
type Tag string

// Object is a node in the scene. Shape is expressed in the node's local space.
type Object struct {
	Name        string
	Local       geom.Pose  // relative to parent
	Shape       geom.Shape // nil objects are grouping nodes only
	Visible     bool
	Interactive bool // has pointer handlers; rays stop here

	parent Handle
	tags   map[Tag]struct{}
}

// NewObject creates a visible object at pose.
func NewObject(name string, local geom.Pose, shape geom.Shape) Object {
	return Object{Name: name, Local: local, Shape: shape, Visible: true}
}

// Parent returns the parent handle (zero for roots).
func (o *Object) Parent() Handle {
	return o.parent
}

// HasTag reports whether the object carries tag.
func (o *Object) HasTag(tag Tag) bool {
	_, ok := o.tags[tag]
	return ok
}

type slot struct {
	gen uint32
	obj *Object
}

// Graph owns every object in the scene.
type Graph struct {
	slots []slot
	free  []uint32
	count int
}

// NewGraph creates an empty scene graph
func NewGraph() *Graph {
	return &Graph{}
}

// Add inserts obj under parent (zero handle for a root) and returns its handle.
func (g *Graph) Add(obj Object, parent Handle) (Handle, error) {
	if !parent.IsZero() {
		if _, ok := g.Get(parent); !ok {
			return Handle{}, fmt.Errorf("add %q: parent %v: %w", obj.Name, parent, ErrStaleHandle)
		}
	}
	if obj.Local.Orientation.Len() == 0 {
		obj.Local.Orientation = geom.Identity().Orientation
	}

	o := obj
	o.parent = parent
	o.tags = make(map[Tag]struct{}, len(obj.tags))
	for t := range obj.tags {
		o.tags[t] = struct{}{}
	}

	var idx uint32
	if n := len(g.free); n > 0 {
		idx = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		idx = uint32(len(g.slots))
		g.slots = append(g.slots, slot{})
	}

	s := &g.slots[idx]
	s.gen++
	s.obj = &o
	g.count++

	return Handle{index: idx, gen: s.gen}, nil
}

// MustAdd is Add for scene construction code; it panics on a stale parent.
func (g *Graph) MustAdd(obj Object, parent Handle) Handle {
	h, err := g.Add(obj, parent)
	if err != nil {
		panic(err)
	}
	return h
}

// Get resolves a handle. Stale handles report false.
func (g *Graph) Get(h Handle) (*Object, bool) {
	if h.IsZero() || int(h.index) >= len(g.slots) {
		return nil, false
	}
	s := g.slots[h.index]
	if s.gen != h.gen || s.obj == nil {
		return nil, false
	}
	return s.obj, true
}

// Remove deletes an object and its whole subtree.
func (g *Graph) Remove(h Handle) bool {
	if _, ok := g.Get(h); !ok {
		return false
	}
	for _, child := range g.Children(h) {
		g.Remove(child)
	}
	g.slots[h.index].obj = nil
	g.free = append(g.free, h.index)
	g.count--
	return true
}

// Len returns the number of live objects.
func (g *Graph) Len() int {
	return g.count
}

// Each visits live objects in slot order until fn returns false.
func (g *Graph) Each(fn func(h Handle, obj *Object) bool) {
	for i := range g.slots {
		s := g.slots[i]
		if s.obj == nil {
			continue
		}
		if !fn(Handle{index: uint32(i), gen: s.gen}, s.obj) {
			return
		}
	}
}

// Children returns the direct children of h.
func (g *Graph) Children(h Handle) []Handle {
	var out []Handle
	g.Each(func(ch Handle, obj *Object) bool {
		if obj.parent == h {
			out = append(out, ch)
		}
		return true
	})
	return out
}

// SetLocal moves an object relative to its parent.
func (g *Graph) SetLocal(h Handle, local geom.Pose) error {
	obj, ok := g.Get(h)
	if !ok {
		return fmt.Errorf("set local %v: %w", h, ErrStaleHandle)
	}
	obj.Local = local
	return nil
}

// WorldTransform composes the parent chain of h.
func (g *Graph) WorldTransform(h Handle) (geom.Pose, bool) {
	obj, ok := g.Get(h)
	if !ok {
		return geom.Pose{}, false
	}
	world := obj.Local
	for p := obj.parent; !p.IsZero(); {
		parent, ok := g.Get(p)
		if !ok {
			return geom.Pose{}, false
		}
		world = parent.Local.Compose(world)
		p = parent.parent
	}
	return world, true
}

// WorldVisible reports whether h and all of its ancestors are visible.
// Handles that refer to nothing are not visible.
func (g *Graph) WorldVisible(h Handle) bool {
	if h.IsZero() {
		return false
	}
	for p := h; !p.IsZero(); {
		obj, ok := g.Get(p)
		if !ok || !obj.Visible {
			return false
		}
		p = obj.parent
	}
	return true
}
