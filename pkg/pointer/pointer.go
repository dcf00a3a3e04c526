// Package pointer implements the straight pointer of a tracked hand or
// controller: press state, the cursor and ray visuals, and pointer events.
package pointer

import (
	"log/slog"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/teslashibe/go-xr/internal/log"
	"github.com/teslashibe/go-xr/pkg/audio"
	"github.com/teslashibe/go-xr/pkg/debug"
	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/input"
	"github.com/teslashibe/go-xr/pkg/intersect"
	"github.com/teslashibe/go-xr/pkg/scene"
)

// Material is the colour state of a visual.
type Material struct {
	Color   colorful.Color
	Opacity float64
}

// Cursor is the marker drawn on the surface under the pointer.
type Cursor struct {
	Visible     bool
	Pose        geom.Pose // world space, +Y along the surface normal
	Size        float64
	Material    Material
	RenderOrder int
}

// Ray is the beam drawn from the device along -Z of its target-ray pose.
type Ray struct {
	Visible     bool
	Pose        geom.Pose // target-ray pose
	Length      float64
	Size        float64
	Material    Material
	RenderOrder int
}

// Render orders keep both hands' visuals from z-fighting each other.
func renderOrders(h input.Handedness) (cursor, ray int) {
	if h == input.HandLeft {
		return 1, 3
	}
	return 2, 4
}

// Pointer is the press state machine for one device. Released is the initial
// state; Press and Release are idempotent.
type Pointer struct {
	device input.Device
	opts   Options
	player audio.Player
	sink   Sink

	pressed   bool
	current   intersect.Intersection
	hasTarget bool

	// target under the pointer when it was pressed
	pressTarget    scene.Handle
	pressHadTarget bool

	cursor Cursor
	ray    Ray

	log *slog.Logger
}

// New creates a released pointer for dev. player and sink may be nil.
func New(dev input.Device, opts Options, player audio.Player, sink Sink) *Pointer {
	if player == nil {
		player = audio.Nop{}
	}
	cursorOrder, rayOrder := renderOrders(dev.Handedness)
	p := &Pointer{
		device: dev,
		opts:   opts,
		player: player,
		sink:   sink,
		cursor: Cursor{Size: opts.CursorSize, RenderOrder: cursorOrder},
		ray:    Ray{Size: opts.RaySize, RenderOrder: rayOrder},
		log:    log.Component("pointer").With("device", dev.ID),
	}
	p.refreshMaterials()
	return p
}

// Device returns the device this pointer belongs to.
func (p *Pointer) Device() input.Device {
	return p.device
}

// Options returns the pointer's options.
func (p *Pointer) Options() Options {
	return p.opts
}

// Pressed reports the current press state.
func (p *Pointer) Pressed() bool {
	return p.pressed
}

// Current returns this frame's intersection, if any.
func (p *Pointer) Current() (intersect.Intersection, bool) {
	return p.current, p.hasTarget
}

// Cursor returns the cursor visual.
func (p *Pointer) Cursor() Cursor {
	return p.cursor
}

// Ray returns the ray visual.
func (p *Pointer) Ray() Ray {
	return p.ray
}

// Probe returns the ray to cast for a target-ray pose. The probe itself is
// unbounded; RayMaxLength only limits the drawn beam.
func (p *Pointer) Probe(pose geom.Pose) intersect.RayProbe {
	return intersect.RayFrom(pose, 0)
}

// Press handles selectstart. The press cue only plays on the released to
// pressed edge, and only when the cursor shows a target.
func (p *Pointer) Press(ev input.Event) {
	if p.pressed {
		debug.Log("👆 device %d: duplicate press ignored\n", p.device.ID)
		return
	}
	if p.cursor.Visible {
		p.player.Play(audio.CuePress, p.cursor.Pose.Position, p.opts.PressVolume)
	}

	p.pressed = true
	p.refreshMaterials()

	p.pressTarget, p.pressHadTarget = scene.Handle{}, p.hasTarget
	if p.hasTarget {
		p.pressTarget = p.current.Object
		p.emit(EventPress)
	} else {
		p.emit(EventPressMissed)
	}
}

// Release handles selectend. Materials are always recomputed; events only
// fire on the pressed to released edge.
func (p *Pointer) Release(ev input.Event) {
	was := p.pressed
	p.pressed = false
	p.refreshMaterials()
	if !was {
		return
	}

	if p.hasTarget {
		p.emit(EventRelease)
		if p.pressHadTarget && p.pressTarget == p.current.Object {
			p.emit(EventClick)
		}
	} else {
		p.emit(EventReleaseMissed)
		if !p.pressHadTarget {
			p.emit(EventClickMissed)
		}
	}
	p.pressTarget, p.pressHadTarget = scene.Handle{}, false
}

// Update consumes this frame's hits (nearest-first) for the given target-ray
// pose and places the visuals.
func (p *Pointer) Update(pose geom.Pose, hits []intersect.Intersection) {
	p.current, p.hasTarget = intersect.Nearest(hits)

	p.ray.Pose = pose
	p.ray.Visible = p.opts.RayVisible
	p.ray.Length = p.opts.RayMaxLength
	if p.hasTarget && p.current.Distance < p.ray.Length {
		p.ray.Length = p.current.Distance
	}

	p.cursor.Visible = p.opts.CursorVisible && p.hasTarget
	if p.cursor.Visible {
		p.cursor.Pose = cursorPose(p.current, pose, p.opts.CursorOffset)
	}

	p.refreshMaterials()
}

// Hide hides both visuals and forgets the current target. Used when the
// device has no pose this frame.
func (p *Pointer) Hide() {
	p.current, p.hasTarget = intersect.Intersection{}, false
	p.cursor.Visible = false
	p.ray.Visible = false
}

// refreshMaterials is a pure function of the press state and runs every frame.
func (p *Pointer) refreshMaterials() {
	p.cursor.Material = Material{
		Color:   pick(p.pressed, p.opts.CursorColor, p.opts.CursorPressColor),
		Opacity: p.opts.CursorOpacity,
	}
	p.ray.Material = Material{
		Color:   pick(p.pressed, p.opts.RayColor, p.opts.RayPressColor),
		Opacity: 1,
	}
}

func pick(pressed bool, base, press colorful.Color) colorful.Color {
	if pressed {
		return press
	}
	return base
}

// cursorPose lies on the hit, lifted by offset along the surface normal. Hits
// without a normal face back along the ray.
func cursorPose(hit intersect.Intersection, ray geom.Pose, offset float64) geom.Pose {
	normal := ray.ApplyDirection(geom.Forward).Mul(-1)
	if hit.HasNormal {
		normal = hit.Normal
	}
	return geom.Pose{
		Position:    hit.Point.Add(normal.Mul(offset)),
		Orientation: geom.AlignUp(normal),
	}
}

func (p *Pointer) emit(t EventType) {
	ev := Event{Type: t, DeviceID: p.device.ID}
	if p.hasTarget {
		ev.Object = p.current.Object
		ev.Point = p.current.Point
	}
	p.log.Debug("pointer event", "event", t.String(), "object", ev.Object.String())
	if p.sink != nil {
		p.sink(ev)
	}
}
