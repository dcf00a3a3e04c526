package engine

import (
	"github.com/teslashibe/go-xr/pkg/input"
	"github.com/teslashibe/go-xr/pkg/pointer"
	"github.com/teslashibe/go-xr/pkg/pose"
	"github.com/teslashibe/go-xr/pkg/session"
	"github.com/teslashibe/go-xr/pkg/teleport"
)

// Role is what a connected device drives.
type Role int

const (
	RoleNone Role = iota
	RolePointer
	RoleTeleport
)

func (r Role) String() string {
	switch r {
	case RolePointer:
		return "pointer"
	case RoleTeleport:
		return "teleport"
	default:
		return "none"
	}
}

// AssignFunc picks the role of a newly connected device.
type AssignFunc func(dev input.Device) Role

// DefaultAssign teleports with the left hand and points with everything else.
func DefaultAssign(dev input.Device) Role {
	if dev.Handedness == input.HandLeft {
		return RoleTeleport
	}
	return RolePointer
}

// PointersOnly gives every device a straight pointer.
func PointersOnly(input.Device) Role {
	return RolePointer
}

// Config holds engine tuning.
type Config struct {
	Pointer  pointer.Options
	Teleport teleport.Options
	Pose     pose.Config
	Session  session.Options
	Assign   AssignFunc

	// InteractiveOnly limits pointer rays to objects with pointer handlers.
	InteractiveOnly bool

	// CommitHistory is how many teleport commits Commits keeps.
	CommitHistory int

	// PublishEvery publishes frame telemetry every N frames (0 disables).
	PublishEvery int
}

// DefaultConfig returns the stock interaction setup.
func DefaultConfig() Config {
	return Config{
		Pointer:       pointer.DefaultOptions(),
		Teleport:      teleport.DefaultOptions(),
		Pose:          pose.DefaultConfig(),
		Session:       session.DefaultOptions(),
		Assign:        DefaultAssign,
		CommitHistory: 32,
		PublishEvery:  1,
	}
}
