package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MovieList interface {
	Add(ctx context.Context, email, movieID string, movie datatypes.JSON) (*dto.InsertResult, bool, error)
	ListByOwner(ctx context.Context, email string) ([]models.ListEntry, error)
	RemoveByID(ctx context.Context, id uuid.UUID) (*dto.DeleteResult, error)
}

// ListHandler serves one movie list; favorites and watch-later each get one.
type ListHandler struct {
	list MovieList
}

func NewListHandler(list MovieList) *ListHandler {
	return &ListHandler{list: list}
}

// Add stores the posted movie document. Its "email" and "id" fields identify
// the owner and the movie.
func (h *ListHandler) Add(c *fiber.Ctx) error {
	email, movieID, movie, err := services.ParseMovie(c.Body())
	if err != nil {
		return serviceError(c, err)
	}

	res, existing, err := h.list.Add(c.UserContext(), email, movieID, movie)
	if err != nil {
		return serviceError(c, err)
	}
	if existing {
		return c.JSON(dto.MessageResponse{Message: "movie already added"})
	}
	return c.JSON(res)
}

func (h *ListHandler) ListByOwner(c *fiber.Ctx) error {
	entries, err := h.list.ListByOwner(c.UserContext(), c.Params("email"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entries)
}

func (h *ListHandler) Remove(c *fiber.Ctx) error {
	id, err := services.ParseID(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	res, err := h.list.RemoveByID(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(res)
}
