package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/teslashibe/go-xr/internal/sim"
	"github.com/teslashibe/go-xr/pkg/engine"
	"github.com/teslashibe/go-xr/pkg/protocol"
)

const (
	viewRadius  = 10.0 // metres shown either side of the origin
	redrawEvery = 66 * time.Millisecond
)

// topDown draws the room from above: x to the right, -z up the screen.
type topDown struct {
	screen    tcell.Screen
	engine    *engine.Engine
	landmarks []sim.Landmark

	width, height int
	scaleX        float64 // columns per metre
	scaleZ        float64 // rows per metre
}

func newTopDown(e *engine.Engine, landmarks []sim.Landmark) (*topDown, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	v := &topDown{screen: screen, engine: e, landmarks: landmarks}
	v.resize()
	return v, nil
}

func (v *topDown) close() {
	v.screen.Fini()
}

func (v *topDown) resize() {
	v.width, v.height = v.screen.Size()
	rows := float64(v.height - 3) // status lines
	// Terminal cells are about twice as tall as wide
	v.scaleZ = rows / (2 * viewRadius)
	v.scaleX = math.Min(2*v.scaleZ, float64(v.width)/(2*viewRadius))
	v.screen.Sync()
}

// cell maps world x/z to a screen cell
func (v *topDown) cell(p protocol.Vec3) (int, int, bool) {
	col := int(math.Round(float64(v.width)/2 + p[0]*v.scaleX))
	row := int(math.Round(float64(v.height-3)/2 + p[2]*v.scaleZ))
	return col, row, col >= 0 && col < v.width && row >= 0 && row < v.height-3
}

func (v *topDown) put(p protocol.Vec3, r rune, style tcell.Style) {
	if col, row, ok := v.cell(p); ok {
		v.screen.SetContent(col, row, r, nil, style)
	}
}

func (v *topDown) text(row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if i >= v.width {
			return
		}
		v.screen.SetContent(i, row, r, nil, style)
	}
}

// run handles keys and redraws until ctx ends. Quitting cancels ctx.
func (v *topDown) run(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(redrawEvery)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !v.handle(ev) {
				cancel()
				return
			}
		case <-ticker.C:
			v.draw(v.engine.Status())
		}
	}
}

func (v *topDown) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 's' {
			// Session changes must happen on the frame goroutine
			e := v.engine
			e.Post(func() {
				if e.Store().Active() {
					e.EndSession()
					return
				}
				e.StartSession(sim.NewSession(), sim.ReferenceSpace)
			})
		}
	case *tcell.EventResize:
		v.resize()
	}
	return true
}

func (v *topDown) draw(status protocol.FrameData) {
	v.screen.Clear()
	if v.scaleX <= 0 || v.scaleZ <= 0 {
		v.screen.Show()
		return
	}
	dim := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)

	// Teleport targets first so markers draw on top
	for _, lm := range v.landmarks {
		if !lm.Target {
			continue
		}
		step := 1 / v.scaleX
		for x := lm.Position.X() - lm.Extent.X(); x <= lm.Position.X()+lm.Extent.X(); x += step {
			for z := lm.Position.Z() - lm.Extent.Z(); z <= lm.Position.Z()+lm.Extent.Z(); z += 1 / v.scaleZ {
				v.put(protocol.Vec3{x, 0, z}, lm.Rune, dim)
			}
		}
	}
	for _, lm := range v.landmarks {
		if lm.Target {
			continue
		}
		v.put(protocol.Vec3{lm.Position.X(), lm.Position.Y(), lm.Position.Z()}, lm.Rune,
			tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}

	if commits := v.engine.Commits(); len(commits) > 0 {
		d := commits[len(commits)-1].Destination
		v.put(protocol.Vec3{d.X(), d.Y(), d.Z()}, 'T', tcell.StyleDefault.Foreground(tcell.ColorGreen))
	}
	for _, t := range status.Teleports {
		if t.Cursor != nil {
			v.put(*t.Cursor, 'X', tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true))
		}
	}
	for _, p := range status.Pointers {
		if p.Cursor != nil {
			v.put(*p.Cursor, '+', tcell.StyleDefault.Foreground(tcell.GetColor(p.Color)).Bold(true))
		}
	}
	v.put(status.Camera, '@', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	v.text(v.height-3, v.summary(status), tcell.StyleDefault)
	v.text(v.height-2, v.devices(status), tcell.StyleDefault)
	v.text(v.height-1, "q quit · s toggle session · @ head · + pointer · X arc · T last teleport", dim)
	v.screen.Show()
}

func (v *topDown) summary(status protocol.FrameData) string {
	session := "no session"
	if status.Session.Active {
		session = fmt.Sprintf("session %s %s", status.Session.ID[:8], status.Session.ReferenceSpace)
	}
	return fmt.Sprintf("frame %d · %s · teleports %d", status.Frame, session, len(v.engine.Commits()))
}

func (v *topDown) devices(status protocol.FrameData) string {
	s := ""
	for _, p := range status.Pointers {
		state := "up"
		if p.Pressed {
			state = "down"
		}
		target := "-"
		if p.Target != "" {
			target = p.Target
		}
		s += fmt.Sprintf("[%d %s pointer %s → %s] ", p.Device, p.Handedness, state, target)
	}
	for _, t := range status.Teleports {
		s += fmt.Sprintf("[%d arc %s vis=%.2f] ", t.Device, t.State, t.Visibility)
	}
	return s
}
