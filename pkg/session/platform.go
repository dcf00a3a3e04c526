package session

import (
	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/input"
)

// ReferenceSpaceType is the kind of reference space requested from the platform.
type ReferenceSpaceType string

const (
	Viewer       ReferenceSpaceType = "viewer"
	Local        ReferenceSpaceType = "local"
	LocalFloor   ReferenceSpaceType = "local-floor"
	BoundedFloor ReferenceSpaceType = "bounded-floor"
	Unbounded    ReferenceSpaceType = "unbounded"
)

// ReferenceSpace is an opaque handle to the coordinate frame device poses are
// reported in.
type ReferenceSpace string

// Session is the platform's immersive session.
type Session interface {
	SupportedFrameRates() []float64
	UpdateTargetFrameRate(rate float64) error
	NativeFramebufferScaleFactor() float64
}

// ImageTrackingState says whether an image is seen right now.
type ImageTrackingState string

const (
	ImageTracked  ImageTrackingState = "tracked"
	ImageEmulated ImageTrackingState = "emulated"
)

// ImageResult is the platform's latest result for one requested image.
type ImageResult struct {
	Index         int
	Pose          geom.Pose
	State         ImageTrackingState
	MeasuredWidth float64
}

// ImageRequest asks the platform to track an image of known physical width.
type ImageRequest struct {
	Name          string
	WidthInMeters float64
}

// Frame is one platform frame.
type Frame interface {
	// Pose returns space's pose in ref. ok=false when tracking is lost.
	Pose(space input.Space, ref ReferenceSpace) (geom.Pose, bool)

	// ImageTrackingResults returns ok=false when image tracking is unsupported.
	ImageTrackingResults() (results []ImageResult, ok bool)
}

// Renderer is the host render loop configured by Options.
type Renderer interface {
	SetFoveation(level float64)
	SetFramebufferScaleFactor(scale float64)
	SetReferenceSpaceType(t ReferenceSpaceType)
}
