package pointer

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/teslashibe/go-xr/pkg/audio"
	"github.com/teslashibe/go-xr/pkg/intersect"
)

// Named colours used by the defaults.
var (
	White = colorful.Color{R: 1, G: 1, B: 1}
	Blue  = colorful.Color{R: 0, G: 0, B: 1}
)

// Options configures the look and feel of a pointer.
type Options struct {
	CursorColor      colorful.Color
	CursorPressColor colorful.Color
	CursorOpacity    float64
	CursorSize       float64
	CursorVisible    bool
	CursorOffset     float64 // lift off the surface along the normal

	RayColor      colorful.Color
	RayPressColor colorful.Color
	RayMaxLength  float64
	RaySize       float64
	RayVisible    bool

	PressVolume float64

	// Filter post-processes this pointer's hits every frame.
	Filter intersect.Filter
}

// DefaultOptions returns the stock pointer look.
func DefaultOptions() Options {
	return Options{
		CursorColor:      White,
		CursorPressColor: Blue,
		CursorOpacity:    0.5,
		CursorSize:       0.1,
		CursorVisible:    true,
		CursorOffset:     0.01,
		RayColor:         White,
		RayPressColor:    Blue,
		RayMaxLength:     1,
		RaySize:          0.005,
		RayVisible:       true,
		PressVolume:      audio.DefaultVolume,
	}
}
