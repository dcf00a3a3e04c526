// Package engine runs the per-frame interaction pipeline: session refresh,
// pose stabilization, intersection, pointer and teleport updates, telemetry.
package engine

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/go-xr/internal/log"
	"github.com/teslashibe/go-xr/pkg/audio"
	"github.com/teslashibe/go-xr/pkg/debug"
	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/input"
	"github.com/teslashibe/go-xr/pkg/intersect"
	"github.com/teslashibe/go-xr/pkg/pointer"
	"github.com/teslashibe/go-xr/pkg/pose"
	"github.com/teslashibe/go-xr/pkg/protocol"
	"github.com/teslashibe/go-xr/pkg/scene"
	"github.com/teslashibe/go-xr/pkg/session"
	"github.com/teslashibe/go-xr/pkg/teleport"
)

// ViewerSpace is the platform space of the headset.
const ViewerSpace input.Space = "viewer"

// ListenerSetter is implemented by players that pan cues relative to the
// listener, such as beepaudio.Player.
type ListenerSetter interface {
	SetListener(pose geom.Pose)
}

// Deps are the engine's collaborators. Everything but Scene may be nil.
type Deps struct {
	Scene      *scene.Graph
	Player     audio.Player
	Renderer   session.Renderer
	Publish    func(*protocol.Message)
	OnTeleport func(teleport.Commit)
	OnPointer  pointer.Sink
}

// rig is everything the engine keeps for one connected device.
type rig struct {
	dev  input.Device
	role Role

	pointer    *pointer.Pointer
	teleport   *teleport.Controller
	stabilizer *pose.Stabilizer // hands
	follower   *pose.Follower   // controllers
}

// Engine owns the interaction state of one host. All methods except Post,
// Status and Commits must run on the frame goroutine.
type Engine struct {
	cfg  Config
	deps Deps

	graph    *scene.Graph
	hits     *intersect.Engine
	aimable  intersect.Predicate // pointer eligibility; nil means every visible object
	input    *input.Dispatcher
	store    *session.Store
	pointers *pointer.Table
	rigs     map[int]*rig
	queue    *Queue

	camera geom.Pose
	frame  uint64

	// Shared with other goroutines
	mu      sync.RWMutex
	status  protocol.FrameData
	commits []teleport.Commit

	log *slog.Logger
}

// New creates an engine over deps.Scene.
func New(cfg Config, deps Deps) *Engine {
	if deps.Scene == nil {
		deps.Scene = scene.NewGraph()
	}
	if deps.Player == nil {
		deps.Player = audio.Nop{}
	}
	if cfg.Assign == nil {
		cfg.Assign = DefaultAssign
	}

	e := &Engine{
		cfg:    cfg,
		deps:   deps,
		graph:  deps.Scene,
		hits:   intersect.New(deps.Scene),
		input:  input.NewDispatcher(),
		store:  session.NewStore(cfg.Session),
		rigs:   make(map[int]*rig),
		queue:  NewQueue(),
		camera: geom.Identity(),
		log:    log.Component("engine"),
	}
	if cfg.InteractiveOnly {
		e.aimable = intersect.All(intersect.Visible(deps.Scene), intersect.Interactive())
	}
	e.pointers = pointer.NewTable(func(dev input.Device) *pointer.Pointer {
		return pointer.New(dev, e.cfg.Pointer, e.deps.Player, e.onPointer)
	})

	e.input.OnConnect(e.attach)
	e.input.OnDisconnect(e.detach)

	if deps.Renderer != nil {
		e.store.Configure(deps.Renderer)
	}
	return e
}

// Scene returns the scene graph.
func (e *Engine) Scene() *scene.Graph {
	return e.graph
}

// Input returns the device dispatcher.
func (e *Engine) Input() *input.Dispatcher {
	return e.input
}

// Store returns the session store.
func (e *Engine) Store() *session.Store {
	return e.store
}

// Intersector returns the intersection engine.
func (e *Engine) Intersector() *intersect.Engine {
	return e.hits
}

// Post schedules fn on the frame goroutine. Safe from any goroutine.
func (e *Engine) Post(fn func()) {
	e.queue.Post(fn)
}

// Pointer returns the pointer of a device.
func (e *Engine) Pointer(id int) (*pointer.Pointer, bool) {
	return e.pointers.Get(id)
}

// Teleport returns the teleport controller of a device.
func (e *Engine) Teleport(id int) (*teleport.Controller, bool) {
	r, ok := e.rigs[id]
	if !ok || r.teleport == nil {
		return nil, false
	}
	return r.teleport, true
}

// Role returns the role assigned to a connected device.
func (e *Engine) Role(id int) Role {
	if r, ok := e.rigs[id]; ok {
		return r.role
	}
	return RoleNone
}

// Camera returns the latest viewer pose.
func (e *Engine) Camera() geom.Pose {
	return e.camera
}

// FrameCount returns how many frames have run.
func (e *Engine) FrameCount() uint64 {
	return e.frame
}

// StartSession installs a platform session and announces it.
func (e *Engine) StartSession(s session.Session, ref session.ReferenceSpace) {
	e.store.SetSession(s)
	e.store.SetReferenceSpace(ref)
	e.publish(protocol.TypeSession, sessionData(e.store.Snapshot()))
}

// EndSession drops the session and disarms every device.
func (e *Engine) EndSession() {
	e.store.ClearSession()
	e.quiesce()
	e.publish(protocol.TypeSession, sessionData(e.store.Snapshot()))
}

// attach runs when a device connects.
func (e *Engine) attach(dev input.Device) {
	r := &rig{dev: dev, role: e.cfg.Assign(dev)}

	switch r.role {
	case RolePointer:
		r.pointer = e.pointers.Attach(dev)
		e.subscribe(dev.ID, input.SelectStart, r.pointer.Press)
		e.subscribe(dev.ID, input.SelectEnd, r.pointer.Release)

	case RoleTeleport:
		r.teleport = teleport.New(dev, e.cfg.Teleport, teleport.Deps{
			Scene:      e.graph,
			Engine:     e.hits,
			Camera:     func() mgl64.Vec3 { return e.camera.Position },
			Player:     e.deps.Player,
			OnTeleport: e.onTeleport,
		})
		if dev.Hand {
			r.stabilizer = pose.NewStabilizer(dev.Handedness, e.cfg.Pose)
		} else {
			r.follower = pose.NewFollower(e.cfg.Pose)
		}
		e.subscribe(dev.ID, input.SelectStart, func(input.Event) { r.teleport.SelectStart() })
		e.subscribe(dev.ID, input.SelectEnd, func(input.Event) { r.teleport.SelectEnd() })
	}

	e.rigs[dev.ID] = r
	e.log.Info("device attached", "device", dev.ID, "role", r.role.String())
}

func (e *Engine) subscribe(id int, typ input.EventType, fn input.Listener) {
	if _, err := e.input.Subscribe(id, typ, fn); err != nil {
		e.log.Warn("subscribe failed", "device", id, "error", err)
	}
}

// detach runs after the dispatcher dropped the device's listeners.
func (e *Engine) detach(dev input.Device) {
	r, ok := e.rigs[dev.ID]
	if !ok {
		return
	}
	if r.teleport != nil {
		r.teleport.Cancel()
	}
	e.pointers.Detach(dev.ID)
	delete(e.rigs, dev.ID)
	e.log.Info("device detached", "device", dev.ID, "role", r.role.String())
}

// Frame runs one frame. frame may be nil when the platform delivered none;
// dt is the frame time in seconds.
func (e *Engine) Frame(frame session.Frame, dt float64) protocol.FrameData {
	e.queue.Drain()
	e.frame++

	e.store.Refresh(frame)

	if !e.store.Active() {
		e.quiesce()
	} else {
		if cam, ok := e.store.Pose(frame, ViewerSpace); ok {
			e.camera = cam
			if l, ok := e.deps.Player.(ListenerSetter); ok {
				l.SetListener(cam)
			}
		}

		for _, id := range e.rigIDs() {
			r := e.rigs[id]
			switch r.role {
			case RoleTeleport:
				e.updateTeleport(frame, r, dt)
			case RolePointer:
				e.updatePointer(frame, r)
			}
		}
	}

	status := e.snapshot()
	e.mu.Lock()
	e.status = status
	e.mu.Unlock()

	if e.cfg.PublishEvery > 0 && e.frame%uint64(e.cfg.PublishEvery) == 0 {
		e.publish(protocol.TypeFrame, status)
	}
	return status
}

// quiesce hides all visuals and disarms teleports while there is no session.
func (e *Engine) quiesce() {
	for _, r := range e.rigs {
		if r.teleport != nil {
			r.teleport.Cancel()
		}
		if r.pointer != nil {
			r.pointer.Hide()
		}
	}
}

func (e *Engine) updateTeleport(frame session.Frame, r *rig, dt float64) {
	ctrl := r.teleport

	if r.stabilizer != nil {
		space := r.dev.TargetRaySpace
		if r.dev.GripSpace != nil {
			space = *r.dev.GripSpace
		}
		raw, ok := e.store.Pose(frame, space)
		if !ok {
			ctrl.Hide()
			return
		}
		ctrl.Update(r.stabilizer.Update(raw, dt))
		return
	}

	raw, ok := e.store.Pose(frame, r.dev.TargetRaySpace)
	aim, ok := r.follower.Update(raw, ok)
	if !ok {
		ctrl.Hide()
		return
	}
	ctrl.Update(aim)
}

func (e *Engine) updatePointer(frame session.Frame, r *rig) {
	p := r.pointer
	ray, ok := e.store.Pose(frame, r.dev.TargetRaySpace)
	if !ok {
		p.Hide()
		return
	}
	hits := e.hits.Intersect(p.Probe(ray), e.aimable, e.cfg.Pointer.Filter)
	p.Update(ray, hits)
}

func (e *Engine) rigIDs() []int {
	ids := make([]int, 0, len(e.rigs))
	for id := range e.rigs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (e *Engine) onPointer(ev pointer.Event) {
	if e.deps.OnPointer != nil {
		e.deps.OnPointer(ev)
	}
	e.publish(protocol.TypePointer, pointerEventData(ev))
}

func (e *Engine) onTeleport(c teleport.Commit) {
	e.mu.Lock()
	e.commits = append(e.commits, c)
	if n := e.cfg.CommitHistory; n > 0 && len(e.commits) > n {
		e.commits = e.commits[len(e.commits)-n:]
	}
	e.mu.Unlock()

	debug.Log("🌀 teleport %s → (%.2f, %.2f, %.2f)\n",
		c.ID.String()[:8], c.Destination.X(), c.Destination.Y(), c.Destination.Z())

	if e.deps.OnTeleport != nil {
		e.deps.OnTeleport(c)
	}
	e.publish(protocol.TypeTeleport, teleportData(c))
}

// Status returns the state after the last frame. Safe from any goroutine.
func (e *Engine) Status() protocol.FrameData {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// Commits returns recent teleport commits, oldest first. Safe from any goroutine.
func (e *Engine) Commits() []teleport.Commit {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]teleport.Commit(nil), e.commits...)
}

func (e *Engine) publish(t protocol.MessageType, data interface{}) {
	if e.deps.Publish == nil {
		return
	}
	msg, err := protocol.NewMessage(t, data)
	if err != nil {
		e.log.Warn("telemetry encode failed", "type", string(t), "error", err)
		return
	}
	e.deps.Publish(msg)
}
