package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminGate interface {
	RequireAdmin(ctx context.Context, email string) error
}

// AdminRequired must run after JWTProtected. The email is taken from the
// verified token only.
func AdminRequired(gate AdminGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := gate.RequireAdmin(c.UserContext(), CallerEmail(c))
		if err == nil {
			return c.Next()
		}
		if errors.Is(err, services.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "forbidden access",
			})
		}

		slog.Error("admin check failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "store unavailable",
		})
	}
}
