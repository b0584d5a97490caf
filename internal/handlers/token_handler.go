package handlers

import (
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type TokenIssuer interface {
	Issue(claims map[string]any) (string, error)
}

type TokenHandler struct {
	tokens TokenIssuer
}

func NewTokenHandler(tokens TokenIssuer) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue signs the posted identity claims.
func (h *TokenHandler) Issue(c *fiber.Ctx) error {
	var claims map[string]any
	if err := c.BodyParser(&claims); err != nil || claims == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	token, err := h.tokens.Issue(claims)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.TokenResponse{Token: token})
}
