// Package pose turns raw tracked poses into stable aiming transforms for the
// teleport arc.
// This file defines the aiming limits.
package pose

import "math"

const (
	// DefaultYawBias is the yaw added for right hands (20°). Positive yaw
	// swings forward (-Z) toward -X, so a right hand's arc turns left across
	// the body. Left and unhanded devices get the negated bias.
	DefaultYawBias = 20.0 * math.Pi / 180.0

	// DefaultPitchBias tips a relaxed hand's aim down (10°).
	DefaultPitchBias = 10.0 * math.Pi / 180.0

	// DefaultMinPitch stops the arc folding back through the hand (-90°).
	DefaultMinPitch = -math.Pi / 2

	// DefaultMaxPitch keeps the arc below the horizon (49.5°).
	DefaultMaxPitch = 1.1 * math.Pi / 4

	// DefaultRate is the slerp convergence rate per second.
	DefaultRate = 10.0
)
