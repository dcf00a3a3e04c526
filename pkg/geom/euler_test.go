package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

const floatTolerance = 1e-9

func TestEuler_RoundTrip(t *testing.T) {
	cases := []Euler{
		{},
		{Pitch: 0.3},
		{Yaw: -1.2},
		{Roll: 0.7},
		{Pitch: -0.4, Yaw: 2.1, Roll: 0.25},
		{Pitch: Radians(49.5), Yaw: Radians(-20), Roll: 0},
	}

	for _, want := range cases {
		got := EulerFromQuat(want.Quat())
		assert.InDelta(t, want.Pitch, got.Pitch, floatTolerance, "pitch for %+v", want)
		assert.InDelta(t, want.Yaw, got.Yaw, floatTolerance, "yaw for %+v", want)
		assert.InDelta(t, want.Roll, got.Roll, floatTolerance, "roll for %+v", want)
	}
}

func TestEuler_YawIsOutermost(t *testing.T) {
	// Pitch down 90° then yaw 90°: forward (-Z) ends up pointing down regardless of yaw.
	q := Euler{Pitch: -math.Pi / 2, Yaw: math.Pi / 2}.Quat()
	dir := q.Rotate(Forward)
	assert.InDelta(t, 0, dir.Sub(mgl64.Vec3{0, -1, 0}).Len(), 1e-9, "got %v", dir)

	// Pure yaw of 90° turns -Z into -X.
	q = Euler{Yaw: math.Pi / 2}.Quat()
	dir = q.Rotate(Forward)
	assert.InDelta(t, 0, dir.Sub(mgl64.Vec3{-1, 0, 0}).Len(), 1e-9, "got %v", dir)
}

func TestEuler_GimbalLock(t *testing.T) {
	e := EulerFromQuat(Euler{Pitch: math.Pi / 2, Yaw: 0.3}.Quat())
	assert.InDelta(t, math.Pi/2, e.Pitch, 1e-6)
	assert.Equal(t, 0.0, e.Roll)
}

func TestFromUnitVectors(t *testing.T) {
	targets := []mgl64.Vec3{
		{0, 1, 0},
		{1, 0, 0},
		{0, 0, 1},
		{0, -1, 0},
		mgl64.Vec3{1, 1, 0}.Normalize(),
	}
	for _, to := range targets {
		q := FromUnitVectors(Up, to)
		got := q.Rotate(Up)
		assert.InDelta(t, 0, got.Sub(to).Len(), 1e-9, "Up -> %v gave %v", to, got)
	}
}

func TestClampAndAngles(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3, -1, 1))
	assert.Equal(t, -1.0, Clamp(-3, -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, -1, 1))
	assert.InDelta(t, math.Pi, Radians(180), floatTolerance)
	assert.InDelta(t, 90.0, Degrees(math.Pi/2), floatTolerance)
	assert.Equal(t, mgl64.Vec3{1, 0, 3}, Horizontal(mgl64.Vec3{1, 2, 3}))
}
