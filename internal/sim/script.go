package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/input"
	"github.com/teslashibe/go-xr/pkg/session"
)

// Motion is a pose over time.
type Motion func(t float64) geom.Pose

// Window is a span of a period, [From, To).
type Window struct {
	From, To float64
}

// Press is a select held from Start to End within each period.
type Press struct {
	Start, End float64
}

// Scripted is a device with a motion, a press schedule and tracking gaps.
type Scripted struct {
	Device  input.Device
	Aim     Motion
	Period  float64
	Presses []Press
	Lost    []Window
}

func (s Scripted) tracked(t float64) bool {
	if s.Period <= 0 {
		return true
	}
	phase := math.Mod(t, s.Period)
	for _, w := range s.Lost {
		if phase >= w.From && phase < w.To {
			return false
		}
	}
	return true
}

// Script is everything the platform plays back.
type Script struct {
	Viewer  Motion
	Devices []Scripted
	Images  []session.ImageResult // nil: image tracking unsupported
}

// Sweep holds position and pitch while yaw swings ±amplitude over period.
func Sweep(position mgl64.Vec3, pitch, amplitude, period float64) Motion {
	return func(t float64) geom.Pose {
		yaw := amplitude * math.Sin(2*math.Pi*t/period)
		return geom.NewPose(position, geom.Euler{Pitch: pitch, Yaw: yaw}.Quat())
	}
}

// Spaces for the default devices.
var (
	leftRay   input.Space = "left/target-ray"
	leftGrip  input.Space = "left/grip"
	rightRay  input.Space = "right/target-ray"
	rightGrip input.Space = "right/grip"
)

// DefaultScript is a standing user teleporting with a left controller while
// pointing at things with a tracked right hand.
func DefaultScript() Script {
	return Script{
		Viewer: Sweep(mgl64.Vec3{0, 1.6, 0}, 0, geom.Radians(25), 11),
		Devices: []Scripted{
			{
				Device: input.Device{
					ID:             1,
					Handedness:     input.HandLeft,
					TargetRaySpace: leftRay,
					GripSpace:      &leftGrip,
				},
				Aim:     Sweep(mgl64.Vec3{-0.25, 1.2, -0.3}, geom.Radians(-25), geom.Radians(40), 8),
				Period:  5,
				Presses: []Press{{Start: 1, End: 3}},
			},
			{
				Device: input.Device{
					ID:             2,
					Handedness:     input.HandRight,
					TargetRaySpace: rightRay,
					GripSpace:      &rightGrip,
					Hand:           true,
				},
				Aim:     Sweep(mgl64.Vec3{0.25, 1.3, -0.3}, geom.Radians(-5), geom.Radians(30), 6),
				Period:  8,
				Presses: []Press{{Start: 0.5, End: 0.8}, {Start: 2.5, End: 2.9}},
				Lost:    []Window{{From: 5.5, To: 6}},
			},
		},
		Images: []session.ImageResult{
			{Index: 0, Pose: geom.NewPose(mgl64.Vec3{0, 1.2, -4}, mgl64.QuatIdent()), State: session.ImageTracked, MeasuredWidth: 0.2},
		},
	}
}
