package audio

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Play(CuePress, mgl64.Vec3{1, 2, 3}, 0.3)
	r.Play(CueTeleport, mgl64.Vec3{}, 0.3)
	r.Play(CuePress, mgl64.Vec3{}, 0.5)

	assert.Equal(t, 2, r.Count(CuePress))
	assert.Equal(t, 1, r.Count(CueTeleport))
	require.Len(t, r.Played(), 3)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, r.Played()[0].Anchor)

	r.Reset()
	assert.Empty(t, r.Played())
}

func TestTee(t *testing.T) {
	var a, b Recorder
	Tee{&a, Nop{}, &b}.Play(CuePress, mgl64.Vec3{}, 1)
	assert.Equal(t, 1, a.Count(CuePress))
	assert.Equal(t, 1, b.Count(CuePress))
}
