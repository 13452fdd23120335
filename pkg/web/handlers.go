package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/vitatwin/go-twin/pkg/anim"
	"github.com/vitatwin/go-twin/pkg/hub"
)

// handleContext accepts a resolved wellness snapshot and re-evaluates.
func (s *Server) handleContext(c *fiber.Ctx) error {
	var ctx anim.Context
	if err := c.BodyParser(&ctx); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid context payload: " + err.Error(),
		})
	}

	s.ctrlMu.Lock()
	s.lastCtx = ctx
	s.evaluateLocked()
	s.ctrlMu.Unlock()

	return s.handleState(c)
}

// SetAnimationRequest selects a manual animation.
type SetAnimationRequest struct {
	Name string `json:"name"`
}

// handleSetAnimation applies a user-chosen animation. The engine defers to
// it until it is cleared.
func (s *Server) handleSetAnimation(c *fiber.Ctx) error {
	var req SetAnimationRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	s.ctrlMu.Lock()
	s.manual = req.Name
	s.onAnimation(req.Name, true)
	s.evaluateLocked()
	s.ctrlMu.Unlock()

	return s.handleState(c)
}

// handleClearAnimation removes the manual override.
func (s *Server) handleClearAnimation(c *fiber.Ctx) error {
	s.ctrlMu.Lock()
	s.manual = ""
	s.evaluateLocked()
	s.ctrlMu.Unlock()

	return s.handleState(c)
}

// SetActiveRequest toggles the twin view's activity.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// handleSetActive activates or deactivates the twin. Deactivation stops
// playback immediately.
func (s *Server) handleSetActive(c *fiber.Ctx) error {
	var req SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid payload: " + err.Error(),
		})
	}

	s.ctrlMu.Lock()
	s.active = req.Active
	if !req.Active {
		// The manual override does not survive deactivation.
		s.manual = ""
	}
	s.evaluateLocked()
	s.ctrlMu.Unlock()

	return s.handleState(c)
}

// handleReset gives the engine a clean slate for the next evaluation.
func (s *Server) handleReset(c *fiber.Ctx) error {
	s.engine.Reset()
	return c.JSON(fiber.Map{"reset": true})
}

// handleState returns the current twin state.
func (s *Server) handleState(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleIdleAnimations returns the clips the renderer may use for its own
// idle fallback, kept in sync with what the engine might choose.
func (s *Server) handleIdleAnimations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"idle_animations": s.engine.IdleAnimations(),
	})
}

// handleAnimationWS subscribes a websocket client to the decision stream.
func (s *Server) handleAnimationWS(conn *websocket.Conn) {
	client := hub.NewClient(s.decisionHub, conn)
	client.Run()
}
