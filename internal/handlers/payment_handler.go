package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
	"github.com/gofiber/fiber/v2"
)

type Payments interface {
	CreateChargeIntent(ctx context.Context, price float64) (string, error)
	RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.InsertResult, error)
	ListAll(ctx context.Context) ([]models.Payment, error)
	ListByOwner(ctx context.Context, email string) ([]models.Payment, error)
}

type PaymentHandler struct {
	payments Payments
}

func NewPaymentHandler(payments Payments) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var req dto.CreatePaymentIntentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	secret, err := h.payments.CreateChargeIntent(c.UserContext(), req.Price)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.CreatePaymentIntentResponse{ClientSecret: secret})
}

func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var req dto.RecordPaymentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.payments.RecordPayment(c.UserContext(), &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(res)
}

func (h *PaymentHandler) ListAll(c *fiber.Ctx) error {
	payments, err := h.payments.ListAll(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(payments)
}

// ListByOwner serves GET /payment?email=.
func (h *PaymentHandler) ListByOwner(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email query parameter is required")
	}
	payments, err := h.payments.ListByOwner(c.UserContext(), email)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(payments)
}
