package geom

import "github.com/go-gl/mathgl/mgl64"

// Pose is a rigid transform: rotation followed by translation.
// It is used both for raw device poses and for scene node transforms.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Identity returns the identity pose.
func Identity() Pose {
	return Pose{Orientation: mgl64.QuatIdent()}
}

// NewPose creates a pose, normalizing the orientation.
func NewPose(position mgl64.Vec3, orientation mgl64.Quat) Pose {
	return Pose{Position: position, Orientation: orientation.Normalize()}
}

// Apply maps a point from local to parent space.
func (p Pose) Apply(point mgl64.Vec3) mgl64.Vec3 {
	return p.Orientation.Rotate(point).Add(p.Position)
}

// ApplyDirection rotates a direction from local to parent space.
func (p Pose) ApplyDirection(dir mgl64.Vec3) mgl64.Vec3 {
	return p.Orientation.Rotate(dir)
}

// ApplyInverse maps a point from parent to local space.
func (p Pose) ApplyInverse(point mgl64.Vec3) mgl64.Vec3 {
	return p.Orientation.Conjugate().Rotate(point.Sub(p.Position))
}

// ApplyInverseDirection rotates a direction from parent to local space.
func (p Pose) ApplyInverseDirection(dir mgl64.Vec3) mgl64.Vec3 {
	return p.Orientation.Conjugate().Rotate(dir)
}

// Compose returns the pose of child expressed in p's parent space.
func (p Pose) Compose(child Pose) Pose {
	return Pose{
		Position:    p.Apply(child.Position),
		Orientation: p.Orientation.Mul(child.Orientation).Normalize(),
	}
}

// Ray returns the pose's local -Z axis as a world ray.
func (p Pose) Ray() Ray {
	return NewRay(p.Position, p.ApplyDirection(Forward))
}

// ToLocal converts a world ray into the pose's local frame.
// Rotation preserves length, so t values are shared between frames.
func (p Pose) ToLocal(r Ray) Ray {
	return Ray{
		Origin:    p.ApplyInverse(r.Origin),
		Direction: p.ApplyInverseDirection(r.Direction),
	}
}
