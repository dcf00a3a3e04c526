package beepaudio

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-xr/pkg/audio"
	"github.com/teslashibe/go-xr/pkg/geom"
)

func TestSpatialize(t *testing.T) {
	listener := geom.Identity()

	pan, gain := spatialize(listener, mgl64.Vec3{2, 0, 0})
	assert.InDelta(t, 1.0, pan, 1e-9, "source to the right")
	assert.InDelta(t, 1.0/3.0, gain, 1e-9)

	pan, _ = spatialize(listener, mgl64.Vec3{0, 0, -1})
	assert.InDelta(t, 0.0, pan, 1e-9, "source straight ahead")

	// Turn the listener 90° left; a source at -Z is now on the right
	turned := geom.NewPose(mgl64.Vec3{}, geom.Euler{Yaw: math.Pi / 2}.Quat())
	pan, _ = spatialize(turned, mgl64.Vec3{0, 0, -1})
	assert.InDelta(t, 1.0, pan, 1e-9)

	pan, gain = spatialize(listener, mgl64.Vec3{})
	assert.Equal(t, 0.0, pan)
	assert.Equal(t, 1.0, gain)
}

func TestPlayer_UninitializedDropsCue(t *testing.T) {
	p := New()
	played := 0
	p.OnPlay = func(audio.Cue) { played++ }

	assert.NotPanics(t, func() { p.Play(audio.CuePress, mgl64.Vec3{}, audio.DefaultVolume) })
	assert.Equal(t, 0, played)
}

func TestPlayer_StreamLengthAndFade(t *testing.T) {
	p := New()
	s, err := p.stream(audio.CuePress, mgl64.Vec3{0, 0, -1}, 1)
	require.NoError(t, err)

	want := sampleRate.N(tones[audio.CuePress].duration)
	buf := make([][2]float64, 512)
	total := 0
	var last [2]float64
	for {
		n, ok := s.Stream(buf)
		total += n
		if n > 0 {
			last = buf[n-1]
		}
		if !ok {
			break
		}
	}
	assert.Equal(t, want, total)
	assert.InDelta(t, 0.0, last[0], 0.01, "tone fades out")

	_, err = p.stream(audio.Cue("nope"), mgl64.Vec3{}, 1)
	assert.Error(t, err)
}

func TestWithVolumeSilent(t *testing.T) {
	s := withVolume(beep.Silence(4), 0)
	buf := make([][2]float64, 4)
	n, _ := s.Stream(buf)
	assert.Equal(t, 4, n)
}
