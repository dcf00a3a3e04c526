package sim

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-xr/pkg/engine"
	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/input"
	"github.com/teslashibe/go-xr/pkg/scene"
)

func TestCrossed(t *testing.T) {
	tests := []struct {
		name          string
		from, to      float64
		phase, period float64
		want          bool
	}{
		{"inside first period", 0.9, 1.1, 1, 5, true},
		{"lands exactly", 0.9, 1.0, 1, 5, true},
		{"already past", 1.0, 1.2, 1, 5, false},
		{"next period", 5.9, 6.1, 1, 5, true},
		{"before", 0.1, 0.2, 1, 5, false},
		{"one shot", 0.9, 1.1, 1, 0, true},
		{"one shot never repeats", 5.9, 6.1, 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, crossed(tt.from, tt.to, tt.phase, tt.period))
		})
	}
}

func TestPlatform_FiresPressEdges(t *testing.T) {
	var events []input.Event
	script := Script{Devices: []Scripted{{
		Device:  input.Device{ID: 7, TargetRaySpace: "ray"},
		Aim:     func(float64) geom.Pose { return geom.Identity() },
		Period:  2,
		Presses: []Press{{Start: 0.5, End: 1}},
	}}}
	p := NewPlatform(script, func(ev input.Event) int {
		events = append(events, ev)
		return 1
	})

	for i := 0; i < 40; i++ {
		p.Next(0.1)
	}

	require.Len(t, events, 4)
	assert.Equal(t, input.SelectStart, events[0].Type)
	assert.Equal(t, input.SelectEnd, events[1].Type)
	assert.Equal(t, 7, events[0].DeviceID)
	assert.InDelta(t, 4.0, p.Time(), 1e-9)
}

func TestPlatform_TrackingGaps(t *testing.T) {
	script := Script{Devices: []Scripted{{
		Device: input.Device{ID: 1, TargetRaySpace: "ray"},
		Aim:    func(float64) geom.Pose { return geom.Identity() },
		Period: 1,
		Lost:   []Window{{From: 0.5, To: 0.75}},
	}}}
	p := NewPlatform(script, nil)

	_, ok := p.Next(0.25).Pose("ray", ReferenceSpace)
	assert.True(t, ok)
	_, ok = p.Next(0.35).Pose("ray", ReferenceSpace)
	assert.False(t, ok, "t=0.6 is inside the gap")
	_, ok = p.Next(0.3).Pose("ray", ReferenceSpace)
	assert.True(t, ok)
}

func TestFrame_RejectsOtherReferenceSpaces(t *testing.T) {
	p := NewPlatform(DefaultScript(), nil)
	f := p.Next(0.01)

	_, ok := f.Pose(engine.ViewerSpace, ReferenceSpace)
	assert.True(t, ok)
	_, ok = f.Pose(engine.ViewerSpace, "other")
	assert.False(t, ok)

	images, ok := f.ImageTrackingResults()
	assert.True(t, ok)
	assert.Len(t, images, 1)
}

func TestSession_FrameRates(t *testing.T) {
	s := NewSession()
	assert.NoError(t, s.UpdateTargetFrameRate(90))
	assert.Equal(t, 90.0, s.TargetFrameRate())
	assert.Error(t, s.UpdateTargetFrameRate(61))
	assert.Equal(t, 90.0, s.TargetFrameRate())
}

func TestBuildScene(t *testing.T) {
	g := scene.NewGraph()
	marks, err := BuildScene(g)
	require.NoError(t, err)

	assert.Equal(t, 6, g.Len())
	assert.Len(t, marks, 5, "hidden objects are not landmarks")
	assert.Len(t, g.Tagged("teleport-target"), 2)
}

// The default script run through a real engine commits teleports onto the
// floor and clicks on scene objects.
func TestDefaultScript_DrivesEngine(t *testing.T) {
	g := scene.NewGraph()
	_, err := BuildScene(g)
	require.NoError(t, err)

	e := engine.New(engine.DefaultConfig(), engine.Deps{Scene: g})
	e.StartSession(NewSession(), ReferenceSpace)

	p := NewPlatform(DefaultScript(), e.Input().Dispatch)
	for _, dev := range p.Devices() {
		e.Input().Connect(dev)
	}

	r := engine.NewRunner(e, p, 14*time.Millisecond)
	r.Step(72*10, 1.0/72)

	commits := e.Commits()
	assert.NotEmpty(t, commits)
	for _, c := range commits {
		assert.InDelta(t, 0, c.Point.Y(), 0.51, "lands on the floor or the deck")
	}
	assert.Equal(t, uint64(720), e.FrameCount())
	assert.InDelta(t, 0, e.Camera().Position.Sub(mgl64.Vec3{0, 1.6, 0}).Len(), 1e-9)

	ref, ok := e.Store().ReferenceSpace()
	require.True(t, ok)
	assert.Equal(t, ReferenceSpace, ref)
}
