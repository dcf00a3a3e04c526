package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/scene"
	"github.com/teslashibe/go-xr/pkg/teleport"
)

// Landmark is a scene object as drawn by viewers.
type Landmark struct {
	Name     string
	Position mgl64.Vec3
	Extent   mgl64.Vec3 // half size on each axis
	Rune     rune
	Target   bool // teleport target
}

// BuildScene fills g with a small room: a floor and a raised deck to teleport
// onto, two balls and a panel to point at, and a hidden ball that must never
// be hit.
func BuildScene(g *scene.Graph) ([]Landmark, error) {
	type prop struct {
		name   string
		pose   geom.Pose
		shape  geom.Shape
		extent mgl64.Vec3
		r      rune
		target bool
		hidden bool
	}
	at := func(x, y, z float64) geom.Pose {
		return geom.NewPose(mgl64.Vec3{x, y, z}, mgl64.QuatIdent())
	}

	props := []prop{
		{"floor", geom.Identity(), geom.NewFloor(20, 20), mgl64.Vec3{10, 0, 10}, '.', true, false},
		{"deck", at(4, 0.25, -4), geom.NewBox(mgl64.Vec3{}, mgl64.Vec3{1.5, 0.25, 1.5}), mgl64.Vec3{1.5, 0.25, 1.5}, '#', true, false},
		{"red-ball", at(0.6, 1.3, -2.5), geom.NewSphere(mgl64.Vec3{}, 0.3), mgl64.Vec3{0.3, 0.3, 0.3}, 'o', false, false},
		{"blue-ball", at(-0.8, 1.0, -3), geom.NewSphere(mgl64.Vec3{}, 0.4), mgl64.Vec3{0.4, 0.4, 0.4}, 'O', false, false},
		{"panel", geom.Identity(), geom.NewQuad(mgl64.Vec3{-1, 0.5, -4}, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 1.5, 0}), mgl64.Vec3{1, 0.75, 0}, '=', false, false},
		{"ghost", at(0.2, 1.3, -1.5), geom.NewSphere(mgl64.Vec3{}, 0.2), mgl64.Vec3{0.2, 0.2, 0.2}, 'g', false, true},
	}

	var out []Landmark
	for _, s := range props {
		obj := scene.NewObject(s.name, s.pose, s.shape)
		obj.Visible = !s.hidden
		obj.Interactive = !s.target
		h, err := g.Add(obj, scene.Handle{})
		if err != nil {
			return nil, err
		}
		if s.target {
			if err := teleport.MarkTarget(g, h); err != nil {
				return nil, err
			}
		}
		if s.hidden {
			continue
		}

		pos := s.pose.Position
		if s.name == "panel" {
			pos = mgl64.Vec3{0, 1.25, -4}
		}
		out = append(out, Landmark{Name: s.name, Position: pos, Extent: s.extent, Rune: s.r, Target: s.target})
	}
	return out, nil
}
