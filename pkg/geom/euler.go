package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Euler holds intrinsic Y-X-Z angles: yaw is applied outermost, then pitch,
// then roll. This is the order head-mounted rigs use for aiming.
type Euler struct {
	Pitch float64 // around X
	Yaw   float64 // around Y
	Roll  float64 // around Z
}

// gimbalLimit is where pitch is treated as ±90° and roll folds into yaw.
const gimbalLimit = 0.9999999

// EulerFromQuat extracts YXZ angles from a unit quaternion.
func EulerFromQuat(q mgl64.Quat) Euler {
	q = q.Normalize()
	w, x, y, z := q.W, q.V[0], q.V[1], q.V[2]

	// Rotation matrix entries (row, column), 1-based
	m11 := 1 - 2*(y*y+z*z)
	m13 := 2 * (x*z + w*y)
	m21 := 2 * (x*y + w*z)
	m22 := 1 - 2*(x*x+z*z)
	m23 := 2 * (y*z - w*x)
	m31 := 2 * (x*z - w*y)
	m33 := 1 - 2*(x*x+y*y)

	e := Euler{Pitch: math.Asin(-Clamp(m23, -1, 1))}
	if math.Abs(m23) < gimbalLimit {
		e.Yaw = math.Atan2(m13, m33)
		e.Roll = math.Atan2(m21, m22)
	} else {
		e.Yaw = math.Atan2(-m31, m11)
		e.Roll = 0
	}
	return e
}

// Quat rebuilds the rotation as yaw * pitch * roll.
func (e Euler) Quat() mgl64.Quat {
	yaw := mgl64.QuatRotate(e.Yaw, mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(e.Pitch, mgl64.Vec3{1, 0, 0})
	roll := mgl64.QuatRotate(e.Roll, mgl64.Vec3{0, 0, 1})
	return yaw.Mul(pitch).Mul(roll).Normalize()
}

// AlignUp returns the rotation that takes Up onto normal.
func AlignUp(normal mgl64.Vec3) mgl64.Quat {
	return FromUnitVectors(Up, normal)
}

// FromUnitVectors returns the shortest rotation taking from onto to.
// Opposite vectors rotate half a turn around an axis perpendicular to from.
func FromUnitVectors(from, to mgl64.Vec3) mgl64.Quat {
	from, to = from.Normalize(), to.Normalize()
	if from.Dot(to) < -1+1e-9 {
		axis := mgl64.Vec3{1, 0, 0}.Cross(from)
		if axis.Len() < 1e-6 {
			axis = mgl64.Vec3{0, 1, 0}.Cross(from)
		}
		return mgl64.QuatRotate(math.Pi, axis.Normalize())
	}
	return mgl64.QuatBetweenVectors(from, to).Normalize()
}
