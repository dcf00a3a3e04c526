// xr-watch - Prints live interaction telemetry from an xr-sim dashboard
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-xr/internal/httpc"
	"github.com/teslashibe/go-xr/pkg/protocol"
	"github.com/teslashibe/go-xr/pkg/web"
)

func main() {
	addr := flag.String("addr", "localhost:8181", "Dashboard host:port")
	frames := flag.Bool("frames", false, "Also print frame state")
	every := flag.Duration("every", time.Second, "Minimum interval between frame lines")
	pingEvery := flag.Duration("ping", 5*time.Second, "Latency probe interval (0 disables)")
	status := flag.Bool("status", false, "Print the current status and recent teleports, then exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *status {
		if err := printStatus(ctx, *addr); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("👀 Watching %s (Ctrl+C to stop)\n", *addr)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- watch(ctx, *addr, "/ws/events", *pingEvery, printEvent)
	}()

	if *frames {
		var last time.Time
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- watch(ctx, *addr, "/ws/frames", 0, func(msg *protocol.Message) {
				if time.Since(last) < *every {
					return
				}
				last = time.Now()
				printFrame(msg)
			})
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errs:
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			cancel()
			wg.Wait()
			os.Exit(1)
		}
	}
	wg.Wait()
}

// watch reads one websocket stream until ctx ends or the connection drops
func watch(ctx context.Context, addr, path string, pingEvery time.Duration, handle func(*protocol.Message)) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	url := "ws://" + addr + path
	ws, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connect %s: %w", url, err)
	}

	var writeMu sync.Mutex
	go func() {
		<-ctx.Done()
		writeMu.Lock()
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		writeMu.Unlock()
		ws.Close()
	}()

	if pingEvery > 0 {
		go keepProbing(ctx, ws, &writeMu, pingEvery)
	}

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read %s: %w", path, err)
		}
		msg, err := protocol.ParseMessage(data)
		if err != nil {
			fmt.Printf("⚠️  bad message: %v\n", err)
			continue
		}
		handle(msg)
	}
}

// keepProbing sends protocol pings; the pong carries the round trip
func keepProbing(ctx context.Context, ws *websocket.Conn, mu *sync.Mutex, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			msg, err := protocol.NewMessage(protocol.TypePing, protocol.PingData{
				ID:        uuid.NewString(),
				Timestamp: time.Now().UnixMilli(),
			})
			if err != nil {
				continue
			}
			mu.Lock()
			ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
			err = ws.WriteJSON(msg)
			mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func printEvent(msg *protocol.Message) {
	ts := time.UnixMilli(msg.Timestamp).Format("15:04:05.000")
	switch msg.Type {
	case protocol.TypeTeleport:
		var d protocol.TeleportData
		if msg.ParseData(&d) == nil {
			fmt.Printf("%s 🌀 teleport #%d → (%.2f, %.2f, %.2f) on %s\n",
				ts, d.Device, d.Destination[0], d.Destination[1], d.Destination[2], d.Object)
		}
	case protocol.TypePointer:
		var d protocol.PointerEventData
		if msg.ParseData(&d) == nil {
			target := "nothing"
			if d.Object != "" {
				target = d.Object
			}
			fmt.Printf("%s 👆 %s #%d on %s\n", ts, d.Event, d.Device, target)
		}
	case protocol.TypeSession:
		var d protocol.SessionData
		if msg.ParseData(&d) == nil {
			if d.Active {
				fmt.Printf("%s 🥽 session %s (%s, %v Hz)\n", ts, d.ID, d.ReferenceSpace, d.FrameRates)
			} else {
				fmt.Printf("%s 🥽 no session\n", ts)
			}
		}
	case protocol.TypePong:
		var d protocol.PongData
		if msg.ParseData(&d) == nil {
			fmt.Printf("%s 🏓 %dms\n", ts, time.Now().UnixMilli()-d.PingTS)
		}
	}
}

func printFrame(msg *protocol.Message) {
	var f protocol.FrameData
	if err := msg.ParseData(&f); err != nil {
		return
	}
	fmt.Printf("🎬 frame %d head=(%.2f, %.2f, %.2f)", f.Frame, f.Camera[0], f.Camera[1], f.Camera[2])
	for _, p := range f.Pointers {
		fmt.Printf(" ptr%d[pressed=%v target=%s]", p.Device, p.Pressed, p.Target)
	}
	for _, t := range f.Teleports {
		fmt.Printf(" arc%d[%s vis=%.2f]", t.Device, t.State, t.Visibility)
	}
	fmt.Println()
}

// printStatus fetches the REST snapshot once
func printStatus(ctx context.Context, addr string) error {
	client := httpc.New("http://"+addr, httpc.DefaultTimeout)

	var frame protocol.FrameData
	if err := client.GetJSON(ctx, "/api/status", &frame); err != nil {
		return err
	}
	var teleports []web.TeleportEntry
	if err := client.GetJSON(ctx, "/api/teleports", &teleports); err != nil {
		return err
	}

	if frame.Session.Active {
		fmt.Printf("🥽 session %s (%s)\n", frame.Session.ID, frame.Session.ReferenceSpace)
	} else {
		fmt.Println("🥽 no session")
	}
	msg, err := protocol.NewMessage(protocol.TypeFrame, frame)
	if err != nil {
		return err
	}
	printFrame(msg)

	fmt.Printf("🌀 %d recent teleports\n", len(teleports))
	for _, t := range teleports {
		fmt.Printf("   %s #%d → (%.2f, %.2f, %.2f)\n",
			t.ID[:8], t.Device, t.Destination[0], t.Destination[1], t.Destination[2])
	}
	return nil
}
