// Package session holds the frame state of the active immersive session.
//
// A Store is created once and passed explicitly to everything that needs the
// session, the reference space or tracked images. Only the frame loop writes
// to it.
package session

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/teslashibe/go-xr/internal/log"
	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/input"
)

// Options configures the renderer and every new session.
type Options struct {
	Foveation          float64
	FrameRate          float64 // 0 leaves the platform default
	ReferenceSpaceType ReferenceSpaceType
	FramebufferScaling float64 // 0 leaves the platform default
}

// DefaultOptions requests a floor-level space with no foveation.
func DefaultOptions() Options {
	return Options{ReferenceSpaceType: LocalFloor}
}

// Store is the frame state. It is not safe for concurrent use.
type Store struct {
	opts Options

	session        Session
	id             uuid.UUID
	referenceSpace ReferenceSpace
	hasReference   bool

	requested     []ImageRequest
	trackedImages map[int]ImageResult

	log *slog.Logger
}

// NewStore creates a store with no session.
func NewStore(opts Options) *Store {
	return &Store{
		opts:          opts,
		trackedImages: make(map[int]ImageResult),
		log:           log.Component("session"),
	}
}

// Options returns the store's options.
func (s *Store) Options() Options {
	return s.opts
}

// Configure applies the options to the renderer.
func (s *Store) Configure(r Renderer) {
	r.SetFoveation(s.opts.Foveation)
	if s.opts.FramebufferScaling > 0 {
		r.SetFramebufferScaleFactor(s.opts.FramebufferScaling)
	}
	if s.opts.ReferenceSpaceType != "" {
		r.SetReferenceSpaceType(s.opts.ReferenceSpaceType)
	}
}

// SetSession starts a new session. Setting the current session again is a
// no-op. A configured frame rate is requested from every new session; a
// refusal is logged, not returned.
func (s *Store) SetSession(sess Session) {
	if sess == nil {
		s.ClearSession()
		return
	}
	if sess == s.session {
		return
	}

	s.reset()
	s.session = sess
	s.id = uuid.New()
	s.log.Info("session started", "session", s.id.String(), "frame_rates", sess.SupportedFrameRates())

	if s.opts.FrameRate > 0 {
		if err := sess.UpdateTargetFrameRate(s.opts.FrameRate); err != nil {
			s.log.Warn("target frame rate rejected", "session", s.id.String(), "rate", s.opts.FrameRate, "error", err)
		}
	}
}

// ClearSession ends the session and drops the reference space and tracked
// images with it.
func (s *Store) ClearSession() {
	if s.session != nil {
		s.log.Info("session ended", "session", s.id.String())
	}
	s.reset()
}

func (s *Store) reset() {
	s.session = nil
	s.id = uuid.Nil
	s.referenceSpace, s.hasReference = "", false
	clear(s.trackedImages)
}

// Session returns the active session.
func (s *Store) Session() (Session, bool) {
	return s.session, s.session != nil
}

// Active reports whether a session is running.
func (s *Store) Active() bool {
	return s.session != nil
}

// ID identifies the active session; uuid.Nil without one.
func (s *Store) ID() uuid.UUID {
	return s.id
}

// SetReferenceSpace records the space poses are read in. Ignored without a
// session.
func (s *Store) SetReferenceSpace(ref ReferenceSpace) {
	if s.session == nil {
		return
	}
	s.referenceSpace, s.hasReference = ref, true
}

// ReferenceSpace returns the current reference space.
func (s *Store) ReferenceSpace() (ReferenceSpace, bool) {
	return s.referenceSpace, s.hasReference
}

// RequestTrackedImages sets the images to track; results are indexed by
// position in reqs.
func (s *Store) RequestTrackedImages(reqs []ImageRequest) {
	s.requested = append([]ImageRequest(nil), reqs...)
	if len(s.requested) == 0 {
		clear(s.trackedImages)
	}
}

// RequestedTrackedImages returns the current request.
func (s *Store) RequestedTrackedImages() []ImageRequest {
	return append([]ImageRequest(nil), s.requested...)
}

// Refresh runs at the start of every frame. Tracked images are replaced
// wholesale from the frame's results, so images that left view disappear.
// frame may be nil when the platform delivered none.
func (s *Store) Refresh(frame Frame) {
	if s.session == nil {
		clear(s.trackedImages)
		return
	}
	if len(s.requested) == 0 {
		return
	}

	clear(s.trackedImages)
	if frame == nil {
		return
	}
	results, ok := frame.ImageTrackingResults()
	if !ok {
		return
	}
	for _, r := range results {
		s.trackedImages[r.Index] = r
	}
}

// TrackedImages returns a copy of the latest results by image index.
func (s *Store) TrackedImages() map[int]ImageResult {
	out := make(map[int]ImageResult, len(s.trackedImages))
	for k, v := range s.trackedImages {
		out[k] = v
	}
	return out
}

// TrackedImage returns the latest result for one image.
func (s *Store) TrackedImage(index int) (ImageResult, bool) {
	r, ok := s.trackedImages[index]
	return r, ok
}

// AvailableFrameRates returns the session's supported rates in ascending
// order, nil without a session.
func (s *Store) AvailableFrameRates() []float64 {
	if s.session == nil {
		return nil
	}
	rates := append([]float64(nil), s.session.SupportedFrameRates()...)
	sort.Float64s(rates)
	return rates
}

// HighestAvailableFrameRate returns the maximum supported rate.
func (s *Store) HighestAvailableFrameRate() (float64, bool) {
	rates := s.AvailableFrameRates()
	if len(rates) == 0 {
		return 0, false
	}
	return floats.Max(rates), true
}

// NativeFramebufferScaling returns the session's native scale factor.
func (s *Store) NativeFramebufferScaling() (float64, bool) {
	if s.session == nil {
		return 0, false
	}
	return s.session.NativeFramebufferScaleFactor(), true
}

// Pose polls a device space in the current reference space. It reports false
// without a frame, a reference space, or tracking.
func (s *Store) Pose(frame Frame, space input.Space) (geom.Pose, bool) {
	if frame == nil || !s.hasReference || space == "" {
		return geom.Pose{}, false
	}
	return frame.Pose(space, s.referenceSpace)
}

// Snapshot is an immutable copy of the store for other goroutines.
type Snapshot struct {
	Active             bool      `json:"active"`
	ID                 string    `json:"id,omitempty"`
	ReferenceSpace     string    `json:"reference_space,omitempty"`
	FrameRates         []float64 `json:"frame_rates,omitempty"`
	HighestFrameRate   float64   `json:"highest_frame_rate,omitempty"`
	FramebufferScaling float64   `json:"framebuffer_scaling,omitempty"`
	TrackedImages      []int     `json:"tracked_images,omitempty"`
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{Active: s.Active()}
	if !snap.Active {
		return snap
	}
	snap.ID = s.id.String()
	snap.ReferenceSpace = string(s.referenceSpace)
	snap.FrameRates = s.AvailableFrameRates()
	snap.HighestFrameRate, _ = s.HighestAvailableFrameRate()
	snap.FramebufferScaling, _ = s.NativeFramebufferScaling()
	for idx := range s.trackedImages {
		snap.TrackedImages = append(snap.TrackedImages, idx)
	}
	sort.Ints(snap.TrackedImages)
	return snap
}
