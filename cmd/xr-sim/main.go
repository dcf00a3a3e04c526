// xr-sim - Simulated XR host driving the interaction engine
// Scripted hands and controllers aim, point and teleport around a small room
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/teslashibe/go-xr/internal/config"
	"github.com/teslashibe/go-xr/internal/log"
	"github.com/teslashibe/go-xr/internal/sim"
	"github.com/teslashibe/go-xr/pkg/audio"
	"github.com/teslashibe/go-xr/pkg/audio/beepaudio"
	"github.com/teslashibe/go-xr/pkg/debug"
	"github.com/teslashibe/go-xr/pkg/engine"
	"github.com/teslashibe/go-xr/pkg/protocol"
	"github.com/teslashibe/go-xr/pkg/scene"
	"github.com/teslashibe/go-xr/pkg/session"
	"github.com/teslashibe/go-xr/pkg/web"
)

type options struct {
	debug       bool
	debugFrames bool
	tui         bool
	port        int
	tuning      string
	rate        float64
	mute        bool
	pointers    bool
	interactive bool
}

func main() {
	opts := parseFlags()

	// The TUI owns the terminal; logs go to a file instead
	var logOut io.Writer = os.Stdout
	if opts.tui {
		f, err := os.Create("xr-sim.log")
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	level := config.LogLevel()
	if opts.debug {
		level = "debug"
	}
	log.InitWriter(level, logOut)
	debug.Enabled = opts.debug && !opts.tui
	debug.Frames = opts.debugFrames && !opts.tui

	if err := run(opts); err != nil {
		log.Error("xr-sim failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var o options
	flag.BoolVar(&o.debug, "debug", false, "Enable verbose debug logging")
	flag.BoolVar(&o.debugFrames, "debug-frames", false, "Trace poses, hits and arc visibility every frame")
	flag.BoolVar(&o.tui, "tui", false, "Show a top-down terminal view")
	flag.IntVar(&o.port, "port", config.DashboardPort(config.DefaultDashboardPort), "Dashboard port (0 disables)")
	flag.StringVar(&o.tuning, "tuning", config.TuningPath(), "Tuning JSON file")
	flag.Float64Var(&o.rate, "rate", 72, "Frame rate in Hz")
	flag.BoolVar(&o.mute, "mute", false, "Disable audio cues")
	flag.BoolVar(&o.pointers, "pointers-only", false, "Give every device a straight pointer")
	flag.BoolVar(&o.interactive, "interactive-only", false, "Pointers ignore objects without handlers (floor, deck)")
	flag.Parse()
	return o
}

func run(opts options) error {
	cfg := engine.DefaultConfig()
	if opts.tuning != "" {
		tuning, err := config.LoadTuning(opts.tuning)
		if err != nil {
			return err
		}
		if err := tuning.Apply(&cfg); err != nil {
			return err
		}
		log.Info("tuning loaded", "path", opts.tuning)
	}
	if opts.pointers {
		cfg.Assign = engine.PointersOnly
	}
	cfg.InteractiveOnly = opts.interactive
	if opts.rate <= 0 {
		return fmt.Errorf("invalid frame rate %v", opts.rate)
	}
	// Telemetry at ~18Hz is plenty for the dashboard
	cfg.PublishEvery = max(1, int(opts.rate/18))

	graph := scene.NewGraph()
	landmarks, err := sim.BuildScene(graph)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	player := newPlayer(opts.mute)
	defer player.close()

	var dashboard *web.Server
	deps := engine.Deps{
		Scene:    graph,
		Player:   player.Player,
		Renderer: sim.NewRenderer(),
	}
	if opts.port > 0 {
		deps.Publish = func(m *protocol.Message) { dashboard.Publish(m) }
	}

	e := engine.New(cfg, deps)
	if opts.port > 0 {
		dashboard = web.NewServer(strconv.Itoa(opts.port), e)
		dashboard.StartAsync()
		defer dashboard.Shutdown()
	}

	platform := sim.NewPlatform(sim.DefaultScript(), e.Input().Dispatch)
	for _, dev := range platform.Devices() {
		e.Input().Connect(dev)
	}
	e.Store().RequestTrackedImages([]session.ImageRequest{{Name: "poster", WidthInMeters: 0.2}})
	e.StartSession(sim.NewSession(), sim.ReferenceSpace)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runner := engine.NewRunner(e, platform, time.Duration(float64(time.Second)/opts.rate))

	if opts.tui {
		view, err := newTopDown(e, landmarks)
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		go view.run(ctx, cancel)
		defer view.close()
	} else {
		fmt.Printf("🥽 xr-sim running at %.0fHz (Ctrl+C to stop)\n", opts.rate)
	}

	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	fmt.Printf("🥽 xr-sim stopped after %d frames, %d teleports\n", e.FrameCount(), len(e.Commits()))
	return nil
}

// player wraps the cue backend so a missing sound device degrades to silence
type player struct {
	audio.Player
	beep *beepaudio.Player
}

func newPlayer(mute bool) player {
	if mute {
		return player{Player: audio.Nop{}}
	}
	bp := beepaudio.New()
	if err := bp.Init(); err != nil {
		log.Warn("audio unavailable, cues muted", "error", err)
		return player{Player: audio.Nop{}}
	}
	return player{Player: bp, beep: bp}
}

func (p player) close() {
	if p.beep != nil {
		p.beep.Close()
	}
}
