package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Catalog interface {
	ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*models.SubscriptionPlan, error)
}

type CatalogHandler struct {
	catalog Catalog
}

func NewCatalogHandler(catalog Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.catalog.ListPlans(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(plans)
}

func (h *CatalogHandler) GetPlan(c *fiber.Ctx) error {
	id, err := services.ParseID(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	plan, err := h.catalog.GetPlan(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(plan)
}
