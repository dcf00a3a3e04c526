// Package teleport implements arc teleportation: aiming a curved pointer at
// tagged surfaces and committing a destination on release.
package teleport

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/teslashibe/go-xr/internal/log"
	"github.com/teslashibe/go-xr/pkg/audio"
	"github.com/teslashibe/go-xr/pkg/debug"
	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/input"
	"github.com/teslashibe/go-xr/pkg/intersect"
	"github.com/teslashibe/go-xr/pkg/scene"
)

// State is the arming state of a controller.
type State int

const (
	Idle State = iota
	Aiming
)

func (s State) String() string {
	if s == Aiming {
		return "aiming"
	}
	return "idle"
}

// Commit is a teleport request. Destination is where the rig origin should
// move so the player's feet land on Point.
type Commit struct {
	ID          uuid.UUID
	DeviceID    int
	Destination mgl64.Vec3
	Point       mgl64.Vec3
	Object      scene.Handle
}

// Arc is the curved ray visual. Visibility is the reveal value of the line.
type Arc struct {
	Visible    bool
	Pose       geom.Pose
	Visibility float64
	Color      colorful.Color
	Opacity    float64
	Size       float64
}

// Cursor is the marker on the targeted surface.
type Cursor struct {
	Visible bool
	Pose    geom.Pose
	Size    float64
	Color   colorful.Color
	Opacity float64
}

// Deps are the collaborators of a controller. Player and OnTeleport may be nil.
type Deps struct {
	Scene      intersect.Scene
	Engine     *intersect.Engine
	Camera     func() mgl64.Vec3 // camera position in rig space
	Player     audio.Player
	OnTeleport func(Commit)
}

// Controller is the teleport state machine for one device.
type Controller struct {
	device input.Device
	opts   Options
	deps   Deps

	state     State
	pose      geom.Pose
	current   intersect.Intersection
	hasTarget bool

	arc    Arc
	cursor Cursor

	log *slog.Logger
}

// New creates an idle controller.
func New(dev input.Device, opts Options, deps Deps) *Controller {
	if deps.Player == nil {
		deps.Player = audio.Nop{}
	}
	if deps.Camera == nil {
		deps.Camera = func() mgl64.Vec3 { return mgl64.Vec3{} }
	}
	return &Controller{
		device: dev,
		opts:   opts,
		deps:   deps,
		pose:   geom.Identity(),
		arc: Arc{
			Visibility: opts.Arc.FullVisibility(),
			Color:      opts.RayColor,
			Opacity:    opts.RayOpacity,
			Size:       opts.RaySize,
		},
		cursor: Cursor{
			Size:    opts.CursorSize,
			Color:   opts.CursorColor,
			Opacity: opts.CursorOpacity,
		},
		log: log.Component("teleport").With("device", dev.ID),
	}
}

// Device returns the controller's device.
func (c *Controller) Device() input.Device {
	return c.device
}

// State returns the arming state.
func (c *Controller) State() State {
	return c.state
}

// Arc returns the arc visual.
func (c *Controller) Arc() Arc {
	return c.arc
}

// Cursor returns the cursor visual.
func (c *Controller) Cursor() Cursor {
	return c.cursor
}

// Current returns the target under the arc this frame.
func (c *Controller) Current() (intersect.Intersection, bool) {
	return c.current, c.hasTarget
}

// SelectStart arms the controller and shows the arc.
func (c *Controller) SelectStart() {
	if c.state == Aiming {
		return
	}
	c.state = Aiming
	c.arc.Visible = true
	c.arc.Visibility = c.opts.Arc.FullVisibility()
	c.log.Debug("aiming")
}

// Update aims the arc from the stabilized aiming pose. Idle controllers only
// remember the pose.
func (c *Controller) Update(arcPose geom.Pose) {
	c.pose = arcPose
	c.arc.Pose = arcPose
	if c.state != Aiming {
		return
	}
	c.arc.Visible = true

	probe := intersect.CurveProbe{Points: c.opts.Arc.Transform(arcPose)}
	hits := c.deps.Engine.Intersect(probe, Eligible(c.deps.Scene), c.opts.Filter)

	c.current, c.hasTarget = intersect.Nearest(hits)
	if !c.hasTarget {
		c.arc.Visibility = c.opts.Arc.FullVisibility()
		c.cursor.Visible = false
		return
	}

	c.arc.Visibility = c.opts.Arc.Visibility(c.current.SegmentIndex, c.current.DistanceOnSegment)
	c.cursor.Visible = true
	c.cursor.Pose = c.cursorPose(c.current)

	debug.FrameLog("🌀 device %d: target %v seg=%d vis=%.3f\n",
		c.device.ID, c.current.Object, c.current.SegmentIndex, c.arc.Visibility)
}

// cursorPose aligns the cursor's up axis with the surface and lifts it off the
// surface along that axis.
func (c *Controller) cursorPose(hit intersect.Intersection) geom.Pose {
	pose := geom.Pose{Position: hit.Point, Orientation: mgl64.QuatIdent()}
	if !hit.HasNormal {
		return pose
	}

	world, ok := c.deps.Scene.WorldTransform(hit.Object)
	if !ok {
		world = geom.Identity()
	}
	local := world.ApplyInverseDirection(hit.Normal)
	pose.Orientation = world.Orientation.Mul(geom.AlignUp(local)).Normalize()
	pose.Position = pose.Position.Add(pose.Orientation.Rotate(mgl64.Vec3{0, c.opts.CursorOffset, 0}))
	return pose
}

// SelectEnd plays the teleport cue, commits if a target is under the arc, and
// disarms. Safe to call in any state.
func (c *Controller) SelectEnd() (Commit, bool) {
	c.deps.Player.Play(audio.CueTeleport, c.pose.Position, c.opts.SoundVolume)

	var commit Commit
	committed := false
	if c.state == Aiming && c.hasTarget {
		commit = c.commit(c.current)
		committed = true
	} else if c.state != Aiming {
		c.log.Debug("selectend while idle ignored")
	}

	c.disarm()

	if committed && c.deps.OnTeleport != nil {
		c.deps.OnTeleport(commit)
	}
	return commit, committed
}

// commit keeps the camera's horizontal offset from the rig origin: the rig
// moves to point minus that offset.
func (c *Controller) commit(hit intersect.Intersection) Commit {
	cam := c.deps.Camera()
	dest := geom.Horizontal(cam).Mul(-1).Add(hit.Point)

	commit := Commit{
		ID:          uuid.New(),
		DeviceID:    c.device.ID,
		Destination: dest,
		Point:       hit.Point,
		Object:      hit.Object,
	}
	c.log.Info("teleport", "commit", commit.ID.String(),
		"x", dest.X(), "y", dest.Y(), "z", dest.Z(), "object", hit.Object.String())
	return commit
}

// Hide hides the visuals for a frame without pose data. The controller stays
// armed and resumes on the next Update.
func (c *Controller) Hide() {
	c.arc.Visible = false
	c.cursor.Visible = false
	c.current, c.hasTarget = intersect.Intersection{}, false
}

// Cancel disarms without a cue or commit, for disconnects and session end.
func (c *Controller) Cancel() {
	c.disarm()
}

func (c *Controller) disarm() {
	c.state = Idle
	c.Hide()
	c.arc.Visibility = c.opts.Arc.FullVisibility()
}
