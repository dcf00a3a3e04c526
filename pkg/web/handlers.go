package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-xr/pkg/hub"
	"github.com/teslashibe/go-xr/pkg/protocol"
)

// TeleportEntry is one committed teleport in /api/teleports
type TeleportEntry struct {
	ID          string        `json:"id"`
	Device      int           `json:"device"`
	Destination protocol.Vec3 `json:"destination"`
	Point       protocol.Vec3 `json:"point"`
}

// handleHealth reports liveness and client counts
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":      true,
		"clients": s.Clients(),
	})
}

// handleStatus returns the state after the last frame
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.source.Status())
}

// handleTeleports returns recent commits, newest first
func (s *Server) handleTeleports(c *fiber.Ctx) error {
	commits := s.source.Commits()
	out := make([]TeleportEntry, 0, len(commits))
	for i := len(commits) - 1; i >= 0; i-- {
		cm := commits[i]
		out = append(out, TeleportEntry{
			ID:          cm.ID.String(),
			Device:      cm.DeviceID,
			Destination: protocol.Vec3{cm.Destination.X(), cm.Destination.Y(), cm.Destination.Z()},
			Point:       protocol.Vec3{cm.Point.X(), cm.Point.Y(), cm.Point.Z()},
		})
	}
	return c.JSON(out)
}

// serve attaches a websocket connection to a hub until it closes
func (s *Server) serve(h *hub.Hub) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		client, ok := hub.NewClient(h, conn)
		if !ok {
			conn.Close()
			return
		}
		client.Run()
	}
}
