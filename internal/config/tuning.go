package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/teslashibe/go-xr/pkg/curve"
	"github.com/teslashibe/go-xr/pkg/engine"
	"github.com/teslashibe/go-xr/pkg/geom"
	"github.com/teslashibe/go-xr/pkg/pointer"
	"github.com/teslashibe/go-xr/pkg/pose"
	"github.com/teslashibe/go-xr/pkg/session"
	"github.com/teslashibe/go-xr/pkg/teleport"
)

// DefaultTuningPath is the checked-in tuning file with the stock values.
const DefaultTuningPath = "config/tuning.defaults.json"

// ErrInvalidTuning is returned for tuning files with out-of-range values.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds the adjustable look and feel. Every field is optional; unset
// fields keep the built-in defaults. Colours are hex strings like "#0000ff".
type Tuning struct {
	// Pointer
	CursorColor      *string  `json:"cursor_color,omitempty"`
	CursorPressColor *string  `json:"cursor_press_color,omitempty"`
	CursorOpacity    *float64 `json:"cursor_opacity,omitempty"`
	CursorSize       *float64 `json:"cursor_size,omitempty"`
	CursorOffset     *float64 `json:"cursor_offset,omitempty"`
	RayColor         *string  `json:"ray_color,omitempty"`
	RayPressColor    *string  `json:"ray_press_color,omitempty"`
	RayMaxLength     *float64 `json:"ray_max_length,omitempty"`
	RaySize          *float64 `json:"ray_size,omitempty"`
	PressVolume      *float64 `json:"press_volume,omitempty"`

	// Teleport
	ArcSamples          *int     `json:"arc_samples,omitempty"`
	TeleportRayColor    *string  `json:"teleport_ray_color,omitempty"`
	TeleportCursorColor *string  `json:"teleport_cursor_color,omitempty"`
	TeleportCursorSize  *float64 `json:"teleport_cursor_size,omitempty"`
	TeleportVolume      *float64 `json:"teleport_volume,omitempty"`

	// Pose stabilizer (degrees)
	PosePreset       *string  `json:"pose_preset,omitempty"` // default, smooth, snappy
	YawBiasDegrees   *float64 `json:"yaw_bias_degrees,omitempty"`
	PitchBiasDegrees *float64 `json:"pitch_bias_degrees,omitempty"`
	MinPitchDegrees  *float64 `json:"min_pitch_degrees,omitempty"`
	MaxPitchDegrees  *float64 `json:"max_pitch_degrees,omitempty"`
	SmoothingRate    *float64 `json:"smoothing_rate,omitempty"`

	// Session
	FrameRate          *float64 `json:"frame_rate,omitempty"`
	Foveation          *float64 `json:"foveation,omitempty"`
	ReferenceSpace     *string  `json:"reference_space,omitempty"`
	FramebufferScaling *float64 `json:"framebuffer_scaling,omitempty"`
}

// LoadTuning reads and validates a tuning file.
func LoadTuning(path string) (*Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("tuning file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes and validates tuning JSON.
func ParseTuning(data []byte) (*Tuning, error) {
	t := &Tuning{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning JSON: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTuning, fmt.Sprintf(format, args...))
}

// Validate checks ranges and formats of every set field.
func (t *Tuning) Validate() error {
	colors := map[string]*string{
		"cursor_color":          t.CursorColor,
		"cursor_press_color":    t.CursorPressColor,
		"ray_color":             t.RayColor,
		"ray_press_color":       t.RayPressColor,
		"teleport_ray_color":    t.TeleportRayColor,
		"teleport_cursor_color": t.TeleportCursorColor,
	}
	for name, v := range colors {
		if v == nil {
			continue
		}
		if _, err := colorful.Hex(*v); err != nil {
			return invalid("%s %q is not a hex colour", name, *v)
		}
	}

	unit := map[string]*float64{
		"cursor_opacity":  t.CursorOpacity,
		"press_volume":    t.PressVolume,
		"teleport_volume": t.TeleportVolume,
		"foveation":       t.Foveation,
	}
	for name, v := range unit {
		if v != nil && (*v < 0 || *v > 1) {
			return invalid("%s must be between 0 and 1, got %v", name, *v)
		}
	}

	positive := map[string]*float64{
		"cursor_size":          t.CursorSize,
		"ray_max_length":       t.RayMaxLength,
		"ray_size":             t.RaySize,
		"teleport_cursor_size": t.TeleportCursorSize,
		"smoothing_rate":       t.SmoothingRate,
		"framebuffer_scaling":  t.FramebufferScaling,
	}
	for name, v := range positive {
		if v != nil && *v <= 0 {
			return invalid("%s must be positive, got %v", name, *v)
		}
	}

	if t.CursorOffset != nil && *t.CursorOffset < 0 {
		return invalid("cursor_offset must not be negative, got %v", *t.CursorOffset)
	}
	if t.FrameRate != nil && *t.FrameRate < 0 {
		return invalid("frame_rate must not be negative, got %v", *t.FrameRate)
	}
	if t.ArcSamples != nil && *t.ArcSamples < 2 {
		return fmt.Errorf("%w: arc_samples: %w", ErrInvalidTuning, curve.ErrInvalidSampleCount)
	}

	if t.PosePreset != nil {
		if _, ok := posePresets[*t.PosePreset]; !ok {
			return invalid("unknown pose_preset %q", *t.PosePreset)
		}
	}
	cfg := pose.DefaultConfig()
	t.ApplyPose(&cfg)
	if cfg.MinPitch >= cfg.MaxPitch {
		return invalid("min_pitch_degrees must be below max_pitch_degrees")
	}

	if t.ReferenceSpace != nil {
		switch session.ReferenceSpaceType(*t.ReferenceSpace) {
		case session.Viewer, session.Local, session.LocalFloor, session.BoundedFloor, session.Unbounded:
		default:
			return invalid("unknown reference_space %q", *t.ReferenceSpace)
		}
	}
	return nil
}

var posePresets = map[string]func() pose.Config{
	"default": pose.DefaultConfig,
	"smooth":  pose.SmoothConfig,
	"snappy":  pose.SnappyConfig,
}

// mustHex parses a colour already checked by Validate.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func setColor(dst *colorful.Color, v *string) {
	if v != nil {
		*dst = mustHex(*v)
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setDegrees(dst *float64, v *float64) {
	if v != nil {
		*dst = geom.Radians(*v)
	}
}

// ApplyPointer overrides pointer options with the set fields.
func (t *Tuning) ApplyPointer(o *pointer.Options) {
	setColor(&o.CursorColor, t.CursorColor)
	setColor(&o.CursorPressColor, t.CursorPressColor)
	setFloat(&o.CursorOpacity, t.CursorOpacity)
	setFloat(&o.CursorSize, t.CursorSize)
	setFloat(&o.CursorOffset, t.CursorOffset)
	setColor(&o.RayColor, t.RayColor)
	setColor(&o.RayPressColor, t.RayPressColor)
	setFloat(&o.RayMaxLength, t.RayMaxLength)
	setFloat(&o.RaySize, t.RaySize)
	setFloat(&o.PressVolume, t.PressVolume)
}

// ApplyTeleport overrides teleport options, resampling the arc when
// arc_samples is set.
func (t *Tuning) ApplyTeleport(o *teleport.Options) error {
	if t.ArcSamples != nil {
		arc, err := curve.TeleportArc.Sample(*t.ArcSamples)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTuning, err)
		}
		o.Arc = arc
	}
	setColor(&o.RayColor, t.TeleportRayColor)
	setColor(&o.CursorColor, t.TeleportCursorColor)
	setFloat(&o.CursorSize, t.TeleportCursorSize)
	setFloat(&o.SoundVolume, t.TeleportVolume)
	return nil
}

// ApplyPose overrides the stabilizer config. A preset replaces cfg before the
// individual fields are applied.
func (t *Tuning) ApplyPose(cfg *pose.Config) {
	if t.PosePreset != nil {
		if preset, ok := posePresets[*t.PosePreset]; ok {
			*cfg = preset()
		}
	}
	setDegrees(&cfg.YawBias, t.YawBiasDegrees)
	setDegrees(&cfg.PitchBias, t.PitchBiasDegrees)
	setDegrees(&cfg.MinPitch, t.MinPitchDegrees)
	setDegrees(&cfg.MaxPitch, t.MaxPitchDegrees)
	setFloat(&cfg.Rate, t.SmoothingRate)
}

// ApplySession overrides session options.
func (t *Tuning) ApplySession(o *session.Options) {
	setFloat(&o.FrameRate, t.FrameRate)
	setFloat(&o.Foveation, t.Foveation)
	setFloat(&o.FramebufferScaling, t.FramebufferScaling)
	if t.ReferenceSpace != nil {
		o.ReferenceSpaceType = session.ReferenceSpaceType(*t.ReferenceSpace)
	}
}

// Apply overrides every section of an engine config.
func (t *Tuning) Apply(cfg *engine.Config) error {
	t.ApplyPointer(&cfg.Pointer)
	if err := t.ApplyTeleport(&cfg.Teleport); err != nil {
		return err
	}
	t.ApplyPose(&cfg.Pose)
	t.ApplySession(&cfg.Session)
	return nil
}
