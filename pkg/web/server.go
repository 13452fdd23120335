// Package web exposes the twin engine over HTTP and websocket. Upstream
// wellness services post resolved context snapshots; renderers subscribe to
// the resulting animation decisions.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/vitatwin/go-twin/internal/log"
	"github.com/vitatwin/go-twin/pkg/anim"
	"github.com/vitatwin/go-twin/pkg/engine"
	"github.com/vitatwin/go-twin/pkg/hub"
)

// TwinState is the server's view of the avatar for dashboards.
type TwinState struct {
	Active          bool      `json:"active"`
	Animation       string    `json:"animation"`
	Manual          bool      `json:"manual"`
	IdleAnimations  []string  `json:"idle_animations"`
	LastEvaluatedAt time.Time `json:"last_evaluated_at"`
}

// Event is one animation decision on the websocket stream.
type Event struct {
	ID        string    `json:"id"`
	Animation string    `json:"animation"`
	Manual    bool      `json:"manual"`
	Time      time.Time `json:"time"`
}

// Server hosts the engine behind a fiber app.
type Server struct {
	app  *fiber.App
	port string

	engine      *engine.Engine
	decisionHub *hub.Hub

	// ctrlMu guards the evaluation inputs. Never held across stateMu.
	ctrlMu  sync.Mutex
	lastCtx anim.Context
	active  bool
	manual  string

	// stateMu guards the dashboard state; the engine's animation
	// callback takes it while the engine holds its own locks.
	stateMu sync.RWMutex
	state   TwinState
}

// NewServer creates the twin server on the given port.
func NewServer(port string, opts engine.Options) *Server {
	s := &Server{
		port:        port,
		decisionHub: hub.New("decisions"),
		active:      true,
	}
	s.engine = engine.NewWithOptions(s.onAnimation, opts)
	s.state = TwinState{Active: true, IdleAnimations: s.engine.IdleAnimations()}

	app := fiber.New(fiber.Config{
		AppName:               "go-twin",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Post("/context", s.handleContext)
	api.Post("/animation", s.handleSetAnimation)
	api.Delete("/animation", s.handleClearAnimation)
	api.Post("/active", s.handleSetActive)
	api.Post("/reset", s.handleReset)
	api.Get("/state", s.handleState)
	api.Get("/idle-animations", s.handleIdleAnimations)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/animation", websocket.New(s.handleAnimationWS))

	s.app = app
	return s
}

// App exposes the fiber app, for tests and for embedding the twin API in a
// larger server.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start runs the hub and serves until Shutdown. Blocks.
// Returns ErrNoPort when the server was built without a port.
func (s *Server) Start() error {
	if s.port == "" {
		return ErrNoPort
	}
	go s.decisionHub.Run()
	log.Info("twin server listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync runs the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("twin server stopped", "error", err)
		}
	}()
}

// Shutdown stops the server, the hub, and the engine's timers.
func (s *Server) Shutdown() error {
	s.engine.Dispose()
	s.decisionHub.Stop()
	return s.app.Shutdown()
}

// onAnimation is the engine's outbound callback: record the decision and
// fan it out to subscribers.
func (s *Server) onAnimation(name string, manual bool) {
	s.stateMu.Lock()
	s.state.Animation = name
	s.state.Manual = manual
	s.stateMu.Unlock()

	event := Event{
		ID:        uuid.NewString(),
		Animation: name,
		Manual:    manual,
		Time:      time.Now(),
	}
	if err := s.decisionHub.BroadcastJSON(event); err != nil {
		log.Error("failed to broadcast decision", "error", err)
	}
	log.Debug("animation decision", "animation", name, "manual", manual)
}

// evaluateLocked re-runs the engine on the stored snapshot, applying any
// manual override on top. ctrlMu must be held.
func (s *Server) evaluateLocked() {
	ctx := s.lastCtx
	if s.manual != "" {
		ctx.IsManualAnimation = true
		ctx.ActiveAnimation = s.manual
	} else {
		ctx.IsManualAnimation = false
	}
	s.engine.Evaluate(ctx, s.active)

	idle := s.engine.IdleAnimations()
	s.stateMu.Lock()
	s.state.Active = s.active
	s.state.IdleAnimations = idle
	s.state.LastEvaluatedAt = time.Now()
	if !s.active {
		s.state.Manual = false
	}
	s.stateMu.Unlock()
}
