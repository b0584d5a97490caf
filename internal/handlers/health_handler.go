package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type Pinger func(ctx context.Context) error

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler takes the store ping and, when the catalog cache is on,
// the cache ping.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString("Movie server is running")
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
		Cache:     "disabled",
	}
	if err := h.db(c.UserContext()); err != nil {
		resp.Status = "degraded"
		resp.DB = "unhealthy: " + err.Error()
	}
	if h.cache != nil {
		resp.Cache = "ok"
		if err := h.cache(c.UserContext()); err != nil {
			resp.Cache = "unhealthy: " + err.Error()
		}
	}

	if resp.DB != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
