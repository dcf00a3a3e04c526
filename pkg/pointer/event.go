package pointer

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/go-xr/pkg/scene"
)

// EventType enumerates pointer events.
type EventType int

const (
	EventPress EventType = iota
	EventRelease
	EventClick
	EventPressMissed
	EventReleaseMissed
	EventClickMissed
)

var eventNames = [...]string{
	EventPress:         "press",
	EventRelease:       "release",
	EventClick:         "click",
	EventPressMissed:   "pressmissed",
	EventReleaseMissed: "releasemissed",
	EventClickMissed:   "clickmissed",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is emitted on press state edges. Object and Point are zero for the
// missed variants.
type Event struct {
	Type     EventType
	DeviceID int
	Object   scene.Handle
	Point    mgl64.Vec3
}

// Sink receives pointer events.
type Sink func(Event)
