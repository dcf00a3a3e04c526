// Package sim is a scripted stand-in for an XR runtime: a session, frames
// with tracked poses, and devices that aim and press on a schedule.
package sim

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/teslashibe/go-xr/internal/log"
	"github.com/teslashibe/go-xr/pkg/engine"
	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/input"
	"github.com/teslashibe/go-xr/pkg/session"
)

// ReferenceSpace is the only reference space the simulator hands out.
const ReferenceSpace session.ReferenceSpace = "sim-local-floor"

// Session is a simulated immersive session.
type Session struct {
	Rates  []float64
	Scale  float64
	target float64
}

// NewSession offers the usual standalone-headset rates.
func NewSession() *Session {
	return &Session{Rates: []float64{72, 80, 90, 120}, Scale: 1}
}

// SupportedFrameRates implements session.Session.
func (s *Session) SupportedFrameRates() []float64 { return s.Rates }

// NativeFramebufferScaleFactor implements session.Session.
func (s *Session) NativeFramebufferScaleFactor() float64 { return s.Scale }

// UpdateTargetFrameRate implements session.Session.
func (s *Session) UpdateTargetFrameRate(rate float64) error {
	for _, r := range s.Rates {
		if r == rate {
			s.target = rate
			return nil
		}
	}
	return fmt.Errorf("frame rate %.0f not supported", rate)
}

// TargetFrameRate returns the last accepted rate.
func (s *Session) TargetFrameRate() float64 { return s.target }

// Frame is one simulated frame.
type Frame struct {
	poses  map[input.Space]geom.Pose
	images []session.ImageResult
}

// Pose implements session.Frame.
func (f *Frame) Pose(space input.Space, ref session.ReferenceSpace) (geom.Pose, bool) {
	if ref != ReferenceSpace {
		return geom.Pose{}, false
	}
	p, ok := f.poses[space]
	return p, ok
}

// ImageTrackingResults implements session.Frame.
func (f *Frame) ImageTrackingResults() ([]session.ImageResult, bool) {
	return f.images, f.images != nil
}

// Platform advances scripted devices and produces frames. Next must run on
// the frame goroutine since it dispatches select events.
type Platform struct {
	t        float64
	viewer   Motion
	devices  []Scripted
	images   []session.ImageResult
	dispatch Dispatch

	log *slog.Logger
}

// Dispatch delivers a select event and reports how many listeners ran.
// input.Dispatcher.Dispatch satisfies it.
type Dispatch func(input.Event) int

// NewPlatform creates a platform delivering select events to dispatch.
func NewPlatform(script Script, dispatch Dispatch) *Platform {
	return &Platform{
		viewer:   script.Viewer,
		devices:  script.Devices,
		images:   script.Images,
		dispatch: dispatch,
		log:      log.Component("sim"),
	}
}

// Devices returns the scripted devices.
func (p *Platform) Devices() []input.Device {
	out := make([]input.Device, len(p.devices))
	for i, d := range p.devices {
		out[i] = d.Device
	}
	return out
}

// Time returns the simulated clock in seconds.
func (p *Platform) Time() float64 {
	return p.t
}

// Next advances the clock by dt, fires select edges crossed on the way and
// returns the frame for the new time.
func (p *Platform) Next(dt float64) session.Frame {
	prev := p.t
	p.t += dt

	frame := &Frame{poses: make(map[input.Space]geom.Pose, 2*len(p.devices)+1)}
	if p.viewer != nil {
		frame.poses[engine.ViewerSpace] = p.viewer(p.t)
	}
	if p.images != nil {
		frame.images = append([]session.ImageResult{}, p.images...)
	}

	for _, d := range p.devices {
		for _, press := range d.Presses {
			if crossed(prev, p.t, press.Start, d.Period) {
				p.fire(input.SelectStart, d.Device.ID)
			}
			if crossed(prev, p.t, press.End, d.Period) {
				p.fire(input.SelectEnd, d.Device.ID)
			}
		}
		if d.tracked(p.t) {
			pose := d.Aim(p.t)
			frame.poses[d.Device.TargetRaySpace] = pose
			if d.Device.GripSpace != nil {
				frame.poses[*d.Device.GripSpace] = pose
			}
		}
	}
	return frame
}

func (p *Platform) fire(t input.EventType, id int) {
	if p.dispatch == nil {
		return
	}
	n := p.dispatch(input.Event{Type: t, DeviceID: id})
	p.log.Debug("select", "device", id, "event", t.String(), "t", p.t, "listeners", n)
}

// crossed reports whether the periodic instant at (phase mod period) lies in
// (from, to]. A zero period means a single instant at phase.
func crossed(from, to, phase, period float64) bool {
	if period <= 0 {
		return from < phase && phase <= to
	}
	return math.Floor((to-phase)/period) > math.Floor((from-phase)/period)
}
