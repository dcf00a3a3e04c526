package engine

import (
	"context"
	"sync"
	"time"

	"github.com/teslashibe/go-xr/pkg/debug"
	"github.com/teslashibe/go-xr/pkg/session"
)

// FrameSource produces platform frames.
type FrameSource interface {
	// Next advances the platform by dt seconds and returns its frame, or nil
	// when none was produced.
	Next(dt float64) session.Frame
}

// FrameSourceFunc adapts a function to FrameSource.
type FrameSourceFunc func(dt float64) session.Frame

// Next calls f.
func (f FrameSourceFunc) Next(dt float64) session.Frame {
	return f(dt)
}

// maxFrameTime caps dt after stalls so smoothing doesn't jump.
const maxFrameTime = 0.1

// Runner drives an engine from a ticker.
type Runner struct {
	engine *Engine
	source FrameSource
	rate   time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

// NewRunner creates a runner. rate is the frame interval, ~14ms for 72Hz.
func NewRunner(e *Engine, src FrameSource, rate time.Duration) *Runner {
	return &Runner{
		engine: e,
		source: src,
		rate:   rate,
		stop:   make(chan struct{}),
	}
}

// Run runs frames until ctx is done or Stop is called. It returns ctx.Err()
// when the context ended the loop.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.rate)
	defer ticker.Stop()

	r.mu.Lock()
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	r.engine.log.Info("frame loop started", "hz", 1.0/r.rate.Seconds())

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			r.engine.log.Info("frame loop stopped", "frames", r.engine.FrameCount())
			return ctx.Err()
		case <-r.stop:
			r.engine.log.Info("frame loop stopped", "frames", r.engine.FrameCount())
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > maxFrameTime {
				dt = maxFrameTime
			}
			r.tick(dt)
		}
	}
}

func (r *Runner) tick(dt float64) {
	status := r.engine.Frame(r.source.Next(dt), dt)
	if status.Frame%500 == 0 {
		debug.Log("🎬 frame %d: %d pointers, %d teleports, session=%v\n",
			status.Frame, len(status.Pointers), len(status.Teleports), status.Session.Active)
	}
}

// Step runs n frames of dt seconds synchronously.
func (r *Runner) Step(n int, dt float64) {
	for i := 0; i < n; i++ {
		r.tick(dt)
	}
}

// Stop halts Run. Safe to call more than once.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
}

// Running reports whether Run is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
