package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/pointer"
	"github.com/teslashibe/go-xr/pkg/protocol"
	"github.com/teslashibe/go-xr/pkg/session"
	"github.com/teslashibe/go-xr/pkg/teleport"
)

func vec(v mgl64.Vec3) protocol.Vec3 {
	return protocol.Vec3{v.X(), v.Y(), v.Z()}
}

func vecPtr(v mgl64.Vec3) *protocol.Vec3 {
	out := vec(v)
	return &out
}

func sessionData(s session.Snapshot) protocol.SessionData {
	return protocol.SessionData{
		Active:           s.Active,
		ID:               s.ID,
		ReferenceSpace:   s.ReferenceSpace,
		FrameRates:       s.FrameRates,
		HighestFrameRate: s.HighestFrameRate,
		TrackedImages:    s.TrackedImages,
	}
}

func pointerState(p *pointer.Pointer) protocol.PointerState {
	cursor, ray := p.Cursor(), p.Ray()
	st := protocol.PointerState{
		Device:     p.Device().ID,
		Handedness: p.Device().Handedness.String(),
		Pressed:    p.Pressed(),
		RayLength:  ray.Length,
		RayVisible: ray.Visible,
		Color:      ray.Material.Color.Hex(),
	}
	if hit, ok := p.Current(); ok {
		st.Target = hit.Object.String()
	}
	if cursor.Visible {
		st.Cursor = vecPtr(cursor.Pose.Position)
	}
	return st
}

func teleportState(c *teleport.Controller) protocol.TeleportState {
	arc, cursor := c.Arc(), c.Cursor()
	st := protocol.TeleportState{
		Device:     c.Device().ID,
		State:      c.State().String(),
		Visible:    arc.Visible,
		Visibility: arc.Visibility,
		Aim:        vec(arc.Pose.ApplyDirection(geom.Forward)),
	}
	if cursor.Visible {
		st.Cursor = vecPtr(cursor.Pose.Position)
	}
	if hit, ok := c.Current(); ok {
		st.Segment = hit.SegmentIndex
	}
	return st
}

func pointerEventData(ev pointer.Event) protocol.PointerEventData {
	data := protocol.PointerEventData{Device: ev.DeviceID, Event: ev.Type.String()}
	if !ev.Object.IsZero() {
		data.Object = ev.Object.String()
		data.Point = vecPtr(ev.Point)
	}
	return data
}

func teleportData(c teleport.Commit) protocol.TeleportData {
	return protocol.TeleportData{
		ID:          c.ID.String(),
		Device:      c.DeviceID,
		Destination: vec(c.Destination),
		Point:       vec(c.Point),
		Object:      c.Object.String(),
	}
}

// snapshot builds the frame telemetry from the current state.
func (e *Engine) snapshot() protocol.FrameData {
	data := protocol.FrameData{
		Frame:   e.frame,
		Session: sessionData(e.store.Snapshot()),
		Camera:  vec(e.camera.Position),
	}
	for _, id := range e.rigIDs() {
		r := e.rigs[id]
		switch {
		case r.pointer != nil:
			data.Pointers = append(data.Pointers, pointerState(r.pointer))
		case r.teleport != nil:
			data.Teleports = append(data.Teleports, teleportState(r.teleport))
		}
	}
	return data
}
