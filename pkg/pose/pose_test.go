package pose

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/input"
)

const tolerance = 1e-9

func TestDefaultConfig_Limits(t *testing.T) {
	cfg := DefaultConfig()

	if math.Abs(geom.Degrees(cfg.MaxPitch)-49.5) > tolerance {
		t.Errorf("Expected MaxPitch=49.5°, got %v°", geom.Degrees(cfg.MaxPitch))
	}
	if math.Abs(geom.Degrees(cfg.MinPitch)+90) > tolerance {
		t.Errorf("Expected MinPitch=-90°, got %v°", geom.Degrees(cfg.MinPitch))
	}
	if math.Abs(geom.Degrees(cfg.YawBias)-20) > tolerance {
		t.Errorf("Expected YawBias=20°, got %v°", geom.Degrees(cfg.YawBias))
	}
	if cfg.Rate != 10 {
		t.Errorf("Expected Rate=10, got %v", cfg.Rate)
	}
}

func TestConfigPresets_Rate(t *testing.T) {
	if SmoothConfig().Rate >= DefaultConfig().Rate {
		t.Error("SmoothConfig should converge slower than default")
	}
	if SnappyConfig().Rate <= DefaultConfig().Rate {
		t.Error("SnappyConfig should converge faster than default")
	}
}

func TestTarget_PitchAlwaysClamped(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		raw := geom.Euler{
			Pitch: (rng.Float64() - 0.5) * math.Pi,
			Yaw:   (rng.Float64() - 0.5) * 2 * math.Pi,
			Roll:  (rng.Float64() - 0.5) * 2 * math.Pi,
		}.Quat()

		for _, hand := range []input.Handedness{input.HandLeft, input.HandRight, input.HandNone} {
			e := geom.EulerFromQuat(Target(raw, hand, cfg))
			if e.Pitch < cfg.MinPitch-1e-6 || e.Pitch > cfg.MaxPitch+1e-6 {
				t.Fatalf("pitch %.2f° out of range for %v", geom.Degrees(e.Pitch), hand)
			}
		}
	}
}

func TestTarget_RollRemovedYawBiased(t *testing.T) {
	cfg := DefaultConfig()
	raw := geom.Euler{Yaw: geom.Radians(30), Pitch: geom.Radians(-20), Roll: geom.Radians(45)}.Quat()

	tests := []struct {
		hand    input.Handedness
		wantYaw float64
	}{
		{input.HandRight, 50},
		{input.HandLeft, 10},
		{input.HandNone, 10},
	}
	for _, tt := range tests {
		e := geom.EulerFromQuat(Target(raw, tt.hand, cfg))
		if math.Abs(geom.Degrees(e.Yaw)-tt.wantYaw) > 1e-6 {
			t.Errorf("%v: expected yaw %v°, got %v°", tt.hand, tt.wantYaw, geom.Degrees(e.Yaw))
		}
		if math.Abs(geom.Degrees(e.Pitch)+30) > 1e-6 {
			t.Errorf("%v: expected pitch -30°, got %v°", tt.hand, geom.Degrees(e.Pitch))
		}
		if math.Abs(e.Roll) > 1e-6 {
			t.Errorf("%v: expected no roll, got %v°", tt.hand, geom.Degrees(e.Roll))
		}
	}
}

func TestTarget_UnhandedAimsLikeLeft(t *testing.T) {
	cfg := DefaultConfig()
	raw := mgl64.QuatIdent()

	none := geom.EulerFromQuat(Target(raw, input.HandNone, cfg))
	left := geom.EulerFromQuat(Target(raw, input.HandLeft, cfg))

	if math.Abs(geom.Degrees(none.Yaw)+20) > 1e-6 {
		t.Errorf("Expected yaw -20° for an unhanded device, got %v°", geom.Degrees(none.Yaw))
	}
	if math.Abs(none.Yaw-left.Yaw) > 1e-9 {
		t.Errorf("Expected unhanded yaw %v° to match left %v°", geom.Degrees(none.Yaw), geom.Degrees(left.Yaw))
	}
}

func TestTarget_RightBiasTurnsTowardNegativeX(t *testing.T) {
	aim := Target(mgl64.QuatIdent(), input.HandRight, Config{YawBias: DefaultYawBias, MinPitch: -math.Pi / 2, MaxPitch: math.Pi / 2})
	dir := aim.Rotate(geom.Forward)
	if dir.X() >= 0 {
		t.Errorf("Expected a right hand's aim to swing toward -X, got %v", dir)
	}
}

func TestTarget_AimingUpIsCapped(t *testing.T) {
	cfg := DefaultConfig()
	raw := geom.Euler{Pitch: geom.Radians(80)}.Quat()

	e := geom.EulerFromQuat(Target(raw, input.HandRight, cfg))
	if math.Abs(e.Pitch-cfg.MaxPitch) > 1e-6 {
		t.Errorf("Expected pitch capped at %v°, got %v°", geom.Degrees(cfg.MaxPitch), geom.Degrees(e.Pitch))
	}
}

func TestStep_Bounds(t *testing.T) {
	current := mgl64.QuatIdent()
	target := geom.Euler{Yaw: math.Pi / 2}.Quat()

	if got := Step(current, target, 0, 10); Angle(got, current) > tolerance {
		t.Errorf("dt=0 should not move, moved %v rad", Angle(got, current))
	}
	if got := Step(current, target, 1, 10); Angle(got, target) > tolerance {
		t.Errorf("amount>=1 should snap, %v rad left", Angle(got, target))
	}
	if got := Step(current, target, -1, 10); Angle(got, current) > tolerance {
		t.Errorf("negative dt should not move")
	}

	half := Step(current, target, 0.05, 10)
	if math.Abs(Angle(half, current)-math.Pi/4) > 1e-6 {
		t.Errorf("Expected half way (45°), got %v°", geom.Degrees(Angle(half, current)))
	}
}

func TestStep_ShortestPath(t *testing.T) {
	current := mgl64.QuatIdent()
	// Same rotation as a 10° yaw, but in the opposite hemisphere
	target := geom.Euler{Yaw: geom.Radians(10)}.Quat().Scale(-1)

	got := Step(current, target, 0.05, 10)
	if math.Abs(geom.Degrees(Angle(got, current))-5) > 1e-6 {
		t.Errorf("Expected 5° step along the short arc, got %v°", geom.Degrees(Angle(got, current)))
	}
}

func TestStabilizer_ConvergesAndCopiesPosition(t *testing.T) {
	s := NewStabilizer(input.HandRight, DefaultConfig())
	raw := geom.NewPose(mgl64.Vec3{0.2, 1.4, -0.3}, geom.Euler{Pitch: geom.Radians(-30)}.Quat())
	want := Target(raw.Orientation, input.HandRight, DefaultConfig())

	prev := Angle(s.Pose().Orientation, want)
	for i := 0; i < 90; i++ {
		got := s.Update(raw, 1.0/90)
		if got.Position != raw.Position {
			t.Fatalf("position must be copied, got %v", got.Position)
		}
		d := Angle(got.Orientation, want)
		if d > prev+tolerance {
			t.Fatalf("frame %d: moved away from target (%v > %v)", i, d, prev)
		}
		prev = d
	}
	if prev > geom.Radians(0.1) {
		t.Errorf("Expected convergence after one second, %v° left", geom.Degrees(prev))
	}

	s.Reset()
	if Angle(s.Pose().Orientation, mgl64.QuatIdent()) > tolerance {
		t.Error("Reset should return to identity")
	}
}

func TestFollower_HidesWithoutPose(t *testing.T) {
	f := NewFollower(DefaultConfig())
	if f.Visible() {
		t.Error("Follower should start hidden")
	}

	raw := geom.NewPose(mgl64.Vec3{1, 1, 1}, geom.Euler{Pitch: geom.Radians(70), Roll: 0.3}.Quat())
	got, ok := f.Update(raw, true)
	if !ok || !f.Visible() {
		t.Fatal("Follower should be visible with a pose")
	}
	e := geom.EulerFromQuat(got.Orientation)
	if math.Abs(e.Pitch-DefaultMaxPitch) > 1e-6 || math.Abs(e.Roll) > 1e-6 {
		t.Errorf("Expected clamped pitch and no roll, got %+v", e)
	}

	kept, ok := f.Update(geom.Pose{}, false)
	if ok || f.Visible() {
		t.Error("Follower should hide when tracking is lost")
	}
	if kept != got {
		t.Error("Follower should keep the last pose while hidden")
	}

	if _, ok := f.Update(raw, true); !ok {
		t.Error("Follower should resume when data returns")
	}
}
