package pose

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/go-xr/pkg/debug"
	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/input"
)

// Target returns the constrained aiming rotation for a raw orientation:
// roll removed, yaw biased by handedness, pitch biased down then clamped.
func Target(raw mgl64.Quat, hand input.Handedness, cfg Config) mgl64.Quat {
	e := geom.EulerFromQuat(raw)
	e.Roll = 0
	e.Yaw += yawSign(hand) * cfg.YawBias
	e.Pitch = geom.Clamp(e.Pitch-cfg.PitchBias, cfg.MinPitch, cfg.MaxPitch)
	return e.Quat()
}

// yawSign is +1 for right hands and -1 otherwise. Devices without a
// handedness aim like left hands.
func yawSign(hand input.Handedness) float64 {
	if hand == input.HandRight {
		return 1
	}
	return -1
}

// Step moves current toward target along the shortest arc by
// clamp(dt*rate, 0, 1).
func Step(current, target mgl64.Quat, dt, rate float64) mgl64.Quat {
	amount := geom.Clamp(dt*rate, 0, 1)
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	switch amount {
	case 0:
		return current.Normalize()
	case 1:
		return target.Normalize()
	}
	return mgl64.QuatSlerp(current, target, amount).Normalize()
}

// Stabilizer smooths a tracked hand bone into the teleport aiming pose.
// Position is copied each frame; orientation eases toward Target.
type Stabilizer struct {
	cfg     Config
	hand    input.Handedness
	current geom.Pose
}

// NewStabilizer starts at the identity pose.
func NewStabilizer(hand input.Handedness, cfg Config) *Stabilizer {
	return &Stabilizer{cfg: cfg, hand: hand, current: geom.Identity()}
}

// Update consumes the raw bone pose for a frame lasting dt seconds.
func (s *Stabilizer) Update(raw geom.Pose, dt float64) geom.Pose {
	target := Target(raw.Orientation, s.hand, s.cfg)
	s.current = geom.Pose{
		Position:    raw.Position,
		Orientation: Step(s.current.Orientation, target, dt, s.cfg.Rate),
	}

	if debug.Frames {
		e := geom.EulerFromQuat(s.current.Orientation)
		debug.FrameLog("✋ %s aim: yaw=%.1f° pitch=%.1f°\n", s.hand, geom.Degrees(e.Yaw), geom.Degrees(e.Pitch))
	}
	return s.current
}

// Pose returns the current stabilized pose.
func (s *Stabilizer) Pose() geom.Pose {
	return s.current
}

// Reset returns to the identity pose.
func (s *Stabilizer) Reset() {
	s.current = geom.Identity()
}

// Follower places a controller's aiming pose directly from the platform, with
// roll removed and pitch clamped. No smoothing, no bias.
type Follower struct {
	cfg     Config
	current geom.Pose
	visible bool
}

// NewFollower creates a hidden follower.
func NewFollower(cfg Config) *Follower {
	return &Follower{cfg: cfg, current: geom.Identity()}
}

// Update takes this frame's raw pose. ok=false (no reference space or lost
// tracking) hides the follower and keeps the last pose until data returns.
func (f *Follower) Update(raw geom.Pose, ok bool) (geom.Pose, bool) {
	if !ok {
		f.visible = false
		return f.current, false
	}
	e := geom.EulerFromQuat(raw.Orientation)
	e.Roll = 0
	e.Pitch = geom.Clamp(e.Pitch, f.cfg.MinPitch, f.cfg.MaxPitch)

	f.current = geom.Pose{Position: raw.Position, Orientation: e.Quat()}
	f.visible = true
	return f.current, true
}

// Pose returns the last valid pose.
func (f *Follower) Pose() geom.Pose {
	return f.current
}

// Visible reports whether the last frame had a pose.
func (f *Follower) Visible() bool {
	return f.visible
}

// Angle returns the rotation angle between two orientations in radians.
func Angle(a, b mgl64.Quat) float64 {
	d := math.Abs(a.Normalize().Dot(b.Normalize()))
	return 2 * math.Acos(geom.Clamp(d, 0, 1))
}
