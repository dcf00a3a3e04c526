package scene

import "fmt"

// Tag adds tag to a single object.
func (g *Graph) Tag(h Handle, tag Tag) error {
	obj, ok := g.Get(h)
	if !ok {
		return fmt.Errorf("tag %v with %q: %w", h, tag, ErrStaleHandle)
	}
	obj.tags[tag] = struct{}{}
	return nil
}

// Untag removes tag from a single object.
func (g *Graph) Untag(h Handle, tag Tag) error {
	obj, ok := g.Get(h)
	if !ok {
		return fmt.Errorf("untag %v with %q: %w", h, tag, ErrStaleHandle)
	}
	delete(obj.tags, tag)
	return nil
}

// HasTag reports whether h is live and carries tag.
func (g *Graph) HasTag(h Handle, tag Tag) bool {
	obj, ok := g.Get(h)
	return ok && obj.HasTag(tag)
}

// Walk visits h and all of its descendants, parents first.
func (g *Graph) Walk(h Handle, fn func(Handle, *Object)) {
	obj, ok := g.Get(h)
	if !ok {
		return
	}
	fn(h, obj)
	for _, child := range g.Children(h) {
		g.Walk(child, fn)
	}
}

// TagTree tags h and every descendant. Returns the number of objects tagged.
func (g *Graph) TagTree(h Handle, tag Tag) (int, error) {
	if _, ok := g.Get(h); !ok {
		return 0, fmt.Errorf("tag tree %v with %q: %w", h, tag, ErrStaleHandle)
	}
	n := 0
	g.Walk(h, func(_ Handle, obj *Object) {
		obj.tags[tag] = struct{}{}
		n++
	})
	return n, nil
}

// UntagTree removes tag from h and every descendant.
func (g *Graph) UntagTree(h Handle, tag Tag) error {
	if _, ok := g.Get(h); !ok {
		return fmt.Errorf("untag tree %v with %q: %w", h, tag, ErrStaleHandle)
	}
	g.Walk(h, func(_ Handle, obj *Object) {
		delete(obj.tags, tag)
	})
	return nil
}

// Tagged returns every live object carrying tag, in slot order.
func (g *Graph) Tagged(tag Tag) []Handle {
	var out []Handle
	g.Each(func(h Handle, obj *Object) bool {
		if obj.HasTag(tag) {
			out = append(out, h)
		}
		return true
	})
	return out
}
