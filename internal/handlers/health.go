package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/developia-II/feedback-collector/internal/logger"
)

const healthTimeout = 3 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Root is the plain-text liveness message.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString("API is running!")
}

// Health pings the store and answers 503 when it is unreachable.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.GetLogger().Warnw("Store health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{Status: "degraded", Store: "unreachable"})
	}
	return c.JSON(HealthResponse{Status: "ok", Store: "ok"})
}
