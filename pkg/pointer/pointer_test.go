package pointer

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-xr/pkg/audio"
	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/input"
	"github.com/teslashibe/go-xr/pkg/intersect"
	"github.com/teslashibe/go-xr/pkg/scene"
)

type harness struct {
	p      *Pointer
	sounds *audio.Recorder
	events []Event
}

func newHarness(h input.Handedness) *harness {
	hs := &harness{sounds: &audio.Recorder{}}
	hs.p = New(input.Device{ID: 1, Handedness: h}, DefaultOptions(), hs.sounds, func(ev Event) {
		hs.events = append(hs.events, ev)
	})
	return hs
}

func (h *harness) types() []EventType {
	var out []EventType
	for _, ev := range h.events {
		out = append(out, ev.Type)
	}
	return out
}

// wall returns a hit on a wall facing the pointer 0.5m ahead.
func wall(obj scene.Handle) []intersect.Intersection {
	return []intersect.Intersection{{
		Point:     mgl64.Vec3{0, 0, -0.5},
		Normal:    mgl64.Vec3{0, 0, 1},
		HasNormal: true,
		Object:    obj,
		Distance:  0.5,
	}}
}

func handle(t *testing.T) scene.Handle {
	t.Helper()
	g := scene.NewGraph()
	return g.MustAdd(scene.NewObject("wall", geom.Identity(), nil), scene.Handle{})
}

func press() input.Event   { return input.Event{Type: input.SelectStart, DeviceID: 1} }
func release() input.Event { return input.Event{Type: input.SelectEnd, DeviceID: 1} }

func TestPointer_PressedTracksLastCall(t *testing.T) {
	h := newHarness(input.HandRight)
	h.p.Update(geom.Identity(), wall(handle(t)))

	rng := rand.New(rand.NewSource(42))
	edges := 0
	last := false
	for i := 0; i < 200; i++ {
		if rng.Intn(2) == 0 {
			if !last {
				edges++
			}
			h.p.Press(press())
			last = true
		} else {
			h.p.Release(release())
			last = false
		}
		require.Equal(t, last, h.p.Pressed(), "step %d", i)
	}
	assert.Equal(t, edges, h.sounds.Count(audio.CuePress), "one cue per released→pressed edge")
}

func TestPointer_RepeatedPressOneCue(t *testing.T) {
	h := newHarness(input.HandRight)
	h.p.Update(geom.Identity(), wall(handle(t)))

	h.p.Press(press())
	h.p.Press(press())
	h.p.Press(press())

	assert.Equal(t, 1, h.sounds.Count(audio.CuePress))
	assert.Equal(t, []EventType{EventPress}, h.types())

	played := h.sounds.Played()[0]
	assert.Equal(t, audio.DefaultVolume, played.Volume)
	assert.InDelta(t, 0, played.Anchor.Sub(mgl64.Vec3{0, 0, -0.49}).Len(), 1e-9, "cue plays at the cursor, got %v", played.Anchor)
}

func TestPointer_PressWithoutTargetIsMuted(t *testing.T) {
	h := newHarness(input.HandLeft)
	h.p.Update(geom.Identity(), nil)

	h.p.Press(press())
	assert.True(t, h.p.Pressed())
	assert.Equal(t, 0, h.sounds.Count(audio.CuePress))

	h.p.Release(release())
	assert.Equal(t, []EventType{EventPressMissed, EventReleaseMissed, EventClickMissed}, h.types())
}

func TestPointer_ClickOnSameTarget(t *testing.T) {
	h := newHarness(input.HandRight)
	obj := handle(t)
	h.p.Update(geom.Identity(), wall(obj))

	h.p.Press(press())
	h.p.Update(geom.Identity(), wall(obj))
	h.p.Release(release())

	assert.Equal(t, []EventType{EventPress, EventRelease, EventClick}, h.types())
	assert.Equal(t, obj, h.events[2].Object)
}

func TestPointer_NoClickWhenTargetChanged(t *testing.T) {
	h := newHarness(input.HandRight)
	g := scene.NewGraph()
	a := g.MustAdd(scene.NewObject("a", geom.Identity(), nil), scene.Handle{})
	b := g.MustAdd(scene.NewObject("b", geom.Identity(), nil), scene.Handle{})

	h.p.Update(geom.Identity(), wall(a))
	h.p.Press(press())
	h.p.Update(geom.Identity(), wall(b))
	h.p.Release(release())

	assert.Equal(t, []EventType{EventPress, EventRelease}, h.types())
}

func TestPointer_ReleaseWhileReleasedIsSafe(t *testing.T) {
	h := newHarness(input.HandRight)
	assert.NotPanics(t, func() {
		h.p.Release(release())
		h.p.Release(release())
	})
	assert.False(t, h.p.Pressed())
	assert.Empty(t, h.events)
	assert.Equal(t, White, h.p.Cursor().Material.Color)
}

func TestPointer_MaterialsFollowPressState(t *testing.T) {
	h := newHarness(input.HandRight)
	assert.Equal(t, White, h.p.Cursor().Material.Color)
	assert.Equal(t, White, h.p.Ray().Material.Color)
	assert.Equal(t, 0.5, h.p.Cursor().Material.Opacity)

	h.p.Press(press())
	assert.Equal(t, Blue, h.p.Cursor().Material.Color)
	assert.Equal(t, Blue, h.p.Ray().Material.Color)

	// Recomputing every frame does not change the result
	h.p.Update(geom.Identity(), nil)
	h.p.Update(geom.Identity(), nil)
	assert.Equal(t, Blue, h.p.Cursor().Material.Color)

	h.p.Release(release())
	assert.Equal(t, White, h.p.Ray().Material.Color)
}

func TestPointer_VisualPlacement(t *testing.T) {
	h := newHarness(input.HandRight)

	h.p.Update(geom.Identity(), wall(handle(t)))
	cursor := h.p.Cursor()
	require.True(t, cursor.Visible)
	assert.InDelta(t, 0, cursor.Pose.Position.Sub(mgl64.Vec3{0, 0, -0.49}).Len(), 1e-9)
	assert.InDelta(t, 0, cursor.Pose.Orientation.Rotate(geom.Up).Sub(mgl64.Vec3{0, 0, 1}).Len(), 1e-9)
	assert.InDelta(t, 0.5, h.p.Ray().Length, 1e-12, "ray stops at the hit")

	far := wall(handle(t))
	far[0].Distance = 3
	h.p.Update(geom.Identity(), far)
	assert.Equal(t, 1.0, h.p.Ray().Length, "ray capped at max length")

	h.p.Update(geom.Identity(), nil)
	assert.False(t, h.p.Cursor().Visible)
	assert.True(t, h.p.Ray().Visible)
	assert.Equal(t, 1.0, h.p.Ray().Length)

	h.p.Hide()
	assert.False(t, h.p.Ray().Visible)
	_, ok := h.p.Current()
	assert.False(t, ok)
}

func TestPointer_RenderOrder(t *testing.T) {
	left := newHarness(input.HandLeft).p
	right := newHarness(input.HandRight).p
	assert.Equal(t, 1, left.Cursor().RenderOrder)
	assert.Equal(t, 3, left.Ray().RenderOrder)
	assert.Equal(t, 2, right.Cursor().RenderOrder)
	assert.Equal(t, 4, right.Ray().RenderOrder)
}

func TestPointer_NilCollaborators(t *testing.T) {
	p := New(input.Device{ID: 9}, DefaultOptions(), nil, nil)
	p.Update(geom.Identity(), wall(handle(t)))
	assert.NotPanics(t, func() {
		p.Press(press())
		p.Release(release())
	})
}

func TestTable(t *testing.T) {
	tbl := NewTable(func(dev input.Device) *Pointer {
		return New(dev, DefaultOptions(), nil, nil)
	})
	tbl.Attach(input.Device{ID: 4})
	p2 := tbl.Attach(input.Device{ID: 2})
	p2.Press(press())

	var ids []int
	tbl.Each(func(p *Pointer) { ids = append(ids, p.Device().ID) })
	assert.Equal(t, []int{2, 4}, ids)

	assert.True(t, tbl.Detach(2))
	assert.False(t, tbl.Detach(2))
	_, ok := tbl.Get(2)
	assert.False(t, ok)

	// A reattached device starts released
	fresh := tbl.Attach(input.Device{ID: 2})
	assert.False(t, fresh.Pressed())
	assert.Equal(t, 2, tbl.Len())
}
