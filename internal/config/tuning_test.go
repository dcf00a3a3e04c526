package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-xr/pkg/curve"
	"github.com/teslashibe/go-xr/pkg/engine"
	"github.com/teslashibe/go-xr/pkg/pointer"
	"github.com/teslashibe/go-xr/pkg/pose"
	"github.com/teslashibe/go-xr/pkg/session"
	"github.com/teslashibe/go-xr/pkg/teleport"
)

func TestLoadTuning_DefaultsMatchBuiltins(t *testing.T) {
	tun, err := LoadTuning(filepath.Join("..", "..", DefaultTuningPath))
	require.NoError(t, err)

	p := pointer.DefaultOptions()
	tun.ApplyPointer(&p)
	assert.Equal(t, pointer.DefaultOptions(), p)

	tp := teleport.DefaultOptions()
	require.NoError(t, tun.ApplyTeleport(&tp))
	assert.Equal(t, teleport.DefaultOptions().Arc.Points(), tp.Arc.Points())
	assert.Equal(t, teleport.DefaultOptions().CursorColor, tp.CursorColor)

	cfg := pose.DefaultConfig()
	tun.ApplyPose(&cfg)
	want := pose.DefaultConfig()
	assert.InDelta(t, want.YawBias, cfg.YawBias, 1e-12)
	assert.InDelta(t, want.PitchBias, cfg.PitchBias, 1e-12)
	assert.InDelta(t, want.MinPitch, cfg.MinPitch, 1e-12)
	assert.InDelta(t, want.MaxPitch, cfg.MaxPitch, 1e-12)
	assert.Equal(t, want.Rate, cfg.Rate)

	so := session.DefaultOptions()
	tun.ApplySession(&so)
	assert.Equal(t, session.DefaultOptions(), so)
}

func TestParseTuning_PartialKeepsDefaults(t *testing.T) {
	tun, err := ParseTuning([]byte(`{"cursor_press_color": "#ff0000", "pose_preset": "smooth", "frame_rate": 90}`))
	require.NoError(t, err)

	p := pointer.DefaultOptions()
	tun.ApplyPointer(&p)
	assert.Equal(t, 1.0, p.CursorPressColor.R)
	assert.Equal(t, 0.0, p.CursorPressColor.B)
	assert.Equal(t, pointer.White, p.CursorColor, "unset fields are untouched")
	assert.Equal(t, 0.5, p.CursorOpacity)

	cfg := pose.DefaultConfig()
	tun.ApplyPose(&cfg)
	assert.Equal(t, pose.SmoothConfig(), cfg)

	so := session.DefaultOptions()
	tun.ApplySession(&so)
	assert.Equal(t, 90.0, so.FrameRate)
	assert.Equal(t, session.LocalFloor, so.ReferenceSpaceType)
}

func TestParseTuning_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"bad colour", `{"ray_color": "blue-ish"}`},
		{"opacity above one", `{"cursor_opacity": 1.5}`},
		{"negative volume", `{"press_volume": -0.1}`},
		{"zero ray length", `{"ray_max_length": 0}`},
		{"one arc sample", `{"arc_samples": 1}`},
		{"unknown preset", `{"pose_preset": "wobbly"}`},
		{"inverted pitch range", `{"min_pitch_degrees": 60, "max_pitch_degrees": 30}`},
		{"unknown space", `{"reference_space": "orbit"}`},
		{"negative offset", `{"cursor_offset": -1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTuning([]byte(tt.json))
			assert.ErrorIs(t, err, ErrInvalidTuning)
		})
	}
}

func TestParseTuning_ArcSamplesWrapsCurveError(t *testing.T) {
	_, err := ParseTuning([]byte(`{"arc_samples": 0}`))
	assert.ErrorIs(t, err, curve.ErrInvalidSampleCount)
}

func TestApplyTeleport_Resamples(t *testing.T) {
	tun, err := ParseTuning([]byte(`{"arc_samples": 41}`))
	require.NoError(t, err)

	o := teleport.DefaultOptions()
	require.NoError(t, tun.ApplyTeleport(&o))
	assert.Equal(t, 41, o.Arc.Len())
}

func TestApply_Engine(t *testing.T) {
	tun, err := ParseTuning([]byte(`{"ray_max_length": 4, "arc_samples": 11, "pose_preset": "snappy", "frame_rate": 90}`))
	require.NoError(t, err)

	cfg := engine.DefaultConfig()
	require.NoError(t, tun.Apply(&cfg))
	assert.Equal(t, 4.0, cfg.Pointer.RayMaxLength)
	assert.Equal(t, 11, cfg.Teleport.Arc.Len())
	assert.Equal(t, pose.SnappyConfig().Rate, cfg.Pose.Rate)
	assert.Equal(t, 90.0, cfg.Session.FrameRate)
}

func TestLoadTuning_Errors(t *testing.T) {
	_, err := LoadTuning("tuning.yaml")
	assert.Error(t, err)

	_, err = LoadTuning(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadTuning(path)
	assert.Error(t, err)
}

func TestEnv(t *testing.T) {
	t.Setenv("XR_DASHBOARD_PORT", "9000")
	assert.Equal(t, 9000, DashboardPort(DefaultDashboardPort))

	t.Setenv("XR_DASHBOARD_PORT", "not-a-port")
	assert.Equal(t, DefaultDashboardPort, DashboardPort(DefaultDashboardPort))

	t.Setenv("XR_LOG_LEVEL", "")
	assert.Equal(t, "info", LogLevel())
	t.Setenv("XR_LOG_LEVEL", "debug")
	assert.Equal(t, "debug", LogLevel())

	t.Setenv("GO_ENV", "production")
	assert.True(t, Production())
}
