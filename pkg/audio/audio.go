// Package audio plays the one-shot feedback cues of the interaction core.
//
// Playback is best-effort: a cue that cannot be played is logged and dropped,
// never returned to the caller.
package audio

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Cue names a feedback sound.
type Cue string

const (
	CuePress    Cue = "press"
	CueTeleport Cue = "teleport"
)

// DefaultVolume is the cue volume used by pointers and teleport controllers.
const DefaultVolume = 0.3

// Player plays a cue positioned at anchor (world space).
type Player interface {
	Play(cue Cue, anchor mgl64.Vec3, volume float64)
}

// Nop discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue, mgl64.Vec3, float64) {}

// Played is one call recorded by Recorder.
type Played struct {
	Cue    Cue
	Anchor mgl64.Vec3
	Volume float64
}

// Recorder keeps every cue it is asked to play. Used by tests and the
// simulator's telemetry.
type Recorder struct {
	mu     sync.Mutex
	played []Played
}

// Play records the cue.
func (r *Recorder) Play(cue Cue, anchor mgl64.Vec3, volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, Played{Cue: cue, Anchor: anchor, Volume: volume})
}

// Played returns a copy of everything recorded so far.
func (r *Recorder) Played() []Played {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Played(nil), r.played...)
}

// Count returns how many times cue was played.
func (r *Recorder) Count(cue Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.played {
		if p.Cue == cue {
			n++
		}
	}
	return n
}

// Reset forgets recorded cues.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = nil
}

// Tee fans a cue out to several players.
type Tee []Player

// Play forwards to every player.
func (t Tee) Play(cue Cue, anchor mgl64.Vec3, volume float64) {
	for _, p := range t {
		p.Play(cue, anchor, volume)
	}
}
