package teleport

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/teslashibe/go-xr/pkg/audio"
	"github.com/teslashibe/go-xr/pkg/curve"
	"github.com/teslashibe/go-xr/pkg/intersect"
)

// Options configures a teleport pointer.
type Options struct {
	Arc curve.ArcSample

	RayColor   colorful.Color
	RayOpacity float64
	RaySize    float64

	CursorColor   colorful.Color
	CursorOpacity float64
	CursorSize    float64
	CursorOffset  float64 // lift along the rotated up axis

	SoundVolume float64

	// Filter further restricts teleport targets. It runs after eligibility.
	Filter intersect.Filter
}

// DefaultOptions returns the stock teleport arc and look.
func DefaultOptions() Options {
	blue := colorful.Color{R: 0, G: 0, B: 1}
	return Options{
		Arc:           curve.DefaultTeleportArc(),
		RayColor:      blue,
		RayOpacity:    1,
		RaySize:       0.01,
		CursorColor:   blue,
		CursorOpacity: 1,
		CursorSize:    0.3,
		CursorOffset:  0.01,
		SoundVolume:   audio.DefaultVolume,
	}
}
