// Package beepaudio plays interaction cues through the default output device.
// It links the platform audio stack; the rest of the module only needs the
// audio.Player interface.
package beepaudio

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/teslashibe/go-xr/internal/log"
	"github.com/teslashibe/go-xr/pkg/audio"
	"github.com/teslashibe/go-xr/pkg/geom"
)

var _ audio.Player = (*Player)(nil)

const sampleRate = beep.SampleRate(44100)

// tone describes the synthesized sound of a cue.
type tone struct {
	freq     float64
	duration time.Duration
}

var tones = map[audio.Cue]tone{
	audio.CuePress:    {freq: 1320, duration: 60 * time.Millisecond},
	audio.CueTeleport: {freq: 520, duration: 220 * time.Millisecond},
}

// Player synthesizes cues on the default output device. Cues are panned
// and attenuated relative to the listener pose (usually the camera).
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	listener    geom.Pose
	initialized bool

	// OnPlay is called after a cue was queued on the mixer.
	OnPlay func(cue audio.Cue)

	log *slog.Logger
}

// New creates a player. Call Init before the first cue.
func New() *Player {
	return &Player{
		mixer:    &beep.Mixer{},
		listener: geom.Identity(),
		log:      log.Component("audio"),
	}
}

// Init opens the speaker. Hosts without an audio device get an error and
// should fall back to audio.Nop.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences any cue still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// SetListener moves the listener. Called once per frame with the camera pose.
func (p *Player) SetListener(pose geom.Pose) {
	p.mu.Lock()
	p.listener = pose
	p.mu.Unlock()
}

// Play synthesizes cue at anchor. Failures are logged at debug level.
func (p *Player) Play(cue audio.Cue, anchor mgl64.Vec3, volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		p.log.Debug("cue dropped, speaker not initialized", "cue", string(cue))
		return
	}

	s, err := p.stream(cue, anchor, volume)
	if err != nil {
		p.log.Debug("cue dropped", "cue", string(cue), "error", err)
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()

	if p.OnPlay != nil {
		p.OnPlay(cue)
	}
}

func (p *Player) stream(cue audio.Cue, anchor mgl64.Vec3, volume float64) (beep.Streamer, error) {
	t, ok := tones[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %q", cue)
	}

	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return nil, fmt.Errorf("tone %q: %w", cue, err)
	}

	n := sampleRate.N(t.duration)
	pan, gain := spatialize(p.listener, anchor)

	var s beep.Streamer = &decay{Streamer: beep.Take(n, sine), total: n}
	s = &effects.Pan{Streamer: s, Pan: pan}
	return withVolume(s, volume*gain), nil
}

// spatialize returns the stereo pan in [-1, 1] and the distance gain for a
// source at anchor heard from listener.
func spatialize(listener geom.Pose, anchor mgl64.Vec3) (pan, gain float64) {
	local := listener.ApplyInverse(anchor)
	dist := local.Len()
	if dist < geom.Epsilon {
		return 0, 1
	}
	pan = geom.Clamp(local.X()/dist, -1, 1)
	gain = 1 / (1 + dist)
	return pan, gain
}

// withVolume maps a linear volume onto beep's logarithmic Volume effect.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// decay fades a stream linearly to silence over total samples, so one-shot
// tones end without a click.
type decay struct {
	beep.Streamer
	pos   int
	total int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1 - float64(d.pos)/float64(d.total)
		if g < 0 {
			g = 0
		}
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}
