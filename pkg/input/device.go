// Package input tracks connected pointing devices and routes their select
// signals to per-device listeners.
package input

import (
	"fmt"
	"strings"
)

// Handedness is the hand a device is held in or tracks.
type Handedness int

const (
	HandNone Handedness = iota
	HandLeft
	HandRight
)

func (h Handedness) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	default:
		return "none"
	}
}

// ParseHandedness accepts "left", "right" or "none" (case-insensitive).
func ParseHandedness(s string) (Handedness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return HandLeft, nil
	case "right":
		return HandRight, nil
	case "none", "":
		return HandNone, nil
	}
	return HandNone, fmt.Errorf("unknown handedness %q", s)
}

// Sign is +1 for right, -1 for left and 0 for none.
func (h Handedness) Sign() float64 {
	switch h {
	case HandLeft:
		return -1
	case HandRight:
		return 1
	default:
		return 0
	}
}

// Space identifies a pose source on the platform.
type Space string

// Device is a controller or tracked hand known to the host.
type Device struct {
	ID             int
	Handedness     Handedness
	TargetRaySpace Space
	GripSpace      *Space // nil for gaze or screen input
	Hand           bool   // articulated hand rather than a controller
}

func (d Device) String() string {
	kind := "controller"
	if d.Hand {
		kind = "hand"
	}
	return fmt.Sprintf("%s %s #%d", d.Handedness, kind, d.ID)
}
