package teleport

import (
	"fmt"

	"github.com/teslashibe/go-xr/pkg/intersect"
	"github.com/teslashibe/go-xr/pkg/scene"
)

// TargetTag marks surfaces the player may teleport onto.
const TargetTag scene.Tag = "teleport-target"

// MarkTarget makes h and its whole subtree teleport targets. Targets are also
// interactive so they stop straight pointers.
func MarkTarget(g *scene.Graph, h scene.Handle) error {
	if _, err := g.TagTree(h, TargetTag); err != nil {
		return fmt.Errorf("mark teleport target: %w", err)
	}
	g.Walk(h, func(_ scene.Handle, obj *scene.Object) {
		obj.Interactive = true
	})
	return nil
}

// UnmarkTarget removes the teleport tag from h and its subtree.
func UnmarkTarget(g *scene.Graph, h scene.Handle) error {
	if err := g.UntagTree(h, TargetTag); err != nil {
		return fmt.Errorf("unmark teleport target: %w", err)
	}
	return nil
}

// IsTarget reports whether obj is a teleport target.
func IsTarget(obj *scene.Object) bool {
	return obj.HasTag(TargetTag)
}

// Eligible admits visible teleport targets.
func Eligible(scn intersect.Scene) intersect.Predicate {
	return intersect.All(intersect.Visible(scn), intersect.Tagged(TargetTag))
}
