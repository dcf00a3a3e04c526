// Package web provides a real-time dashboard for the interaction engine
package web

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-xr/internal/log"
	"github.com/teslashibe/go-xr/pkg/hub"
	"github.com/teslashibe/go-xr/pkg/protocol"
	"github.com/teslashibe/go-xr/pkg/teleport"
)

//go:embed static
var static embed.FS

// Source is the engine state served by the dashboard. Both methods are
// called from request goroutines.
type Source interface {
	Status() protocol.FrameData
	Commits() []teleport.Commit
}

// Server is the web dashboard server
type Server struct {
	app    *fiber.App
	port   string
	source Source

	// Hubs for websocket broadcast (thread-safe!)
	frameHub *hub.Hub
	eventHub *hub.Hub

	log *slog.Logger
}

// NewServer creates a new web dashboard server
func NewServer(port string, source Source) *Server {
	s := &Server{
		port:     port,
		source:   source,
		frameHub: hub.New("frames"),
		eventHub: hub.New("events"),
		log:      log.Component("web"),
	}
	s.eventHub.Welcome = func() (*protocol.Message, error) {
		return protocol.NewMessage(protocol.TypeSession, s.source.Status().Session)
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-xr dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/status", s.handleStatus)
	api.Get("/teleports", s.handleTeleports)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/frames", websocket.New(s.serve(s.frameHub)))
	app.Get("/ws/events", websocket.New(s.serve(s.eventHub)))

	// Static dashboard
	app.Use("/", filesystem.New(filesystem.Config{
		Root:       http.FS(static),
		PathPrefix: "static",
		Index:      "index.html",
	}))

	s.app = app
	return s
}

// App exposes the fiber app for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the web server
func (s *Server) Start() error {
	s.log.Info("web dashboard", "url", "http://localhost:"+s.port)

	// Start all hubs
	go s.frameHub.Run()
	go s.eventHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.log.Error("web server error", "error", err)
		}
	}()
}

// Publish routes engine telemetry to the matching hub. Safe from any goroutine.
func (s *Server) Publish(msg *protocol.Message) {
	if msg.Type == protocol.TypeFrame {
		s.frameHub.Publish(msg)
		return
	}
	s.eventHub.Publish(msg)
}

// Clients returns connected websocket clients across hubs
func (s *Server) Clients() int {
	return s.frameHub.ClientCount() + s.eventHub.ClientCount()
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	s.frameHub.Stop()
	s.eventHub.Stop()
	return s.app.Shutdown()
}
