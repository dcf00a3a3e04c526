package sim

import (
	"log/slog"

	"github.com/teslashibe/go-xr/internal/log"
	"github.com/teslashibe/go-xr/pkg/session"
)

// Renderer records the configuration a host renderer would receive.
type Renderer struct {
	Foveation float64
	Scale     float64
	SpaceType session.ReferenceSpaceType
	log       *slog.Logger
}

// NewRenderer creates a renderer with platform defaults.
func NewRenderer() *Renderer {
	return &Renderer{Scale: 1, log: log.Component("renderer")}
}

// SetFoveation implements session.Renderer.
func (r *Renderer) SetFoveation(level float64) {
	r.Foveation = level
	r.log.Debug("foveation", "level", level)
}

// SetFramebufferScaleFactor implements session.Renderer.
func (r *Renderer) SetFramebufferScaleFactor(scale float64) {
	r.Scale = scale
	r.log.Debug("framebuffer scale", "scale", scale)
}

// SetReferenceSpaceType implements session.Renderer.
func (r *Renderer) SetReferenceSpaceType(t session.ReferenceSpaceType) {
	r.SpaceType = t
	r.log.Debug("reference space type", "type", string(t))
}
