package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserDirectory interface {
	RegisterIfAbsent(ctx context.Context, req *dto.RegisterUserRequest) (*dto.InsertResult, bool, error)
	ListAll(ctx context.Context) ([]models.User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*dto.DeleteResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UpdateResult, error)
	CheckAdmin(ctx context.Context, callerEmail, email string) (bool, error)
	PromoteToAdmin(ctx context.Context, id uuid.UUID) (*dto.UpdateResult, error)
	MarkSubscriptionPaid(ctx context.Context, email string) (*dto.UpdateResult, error)
}

type UserHandler struct {
	users UserDirectory
}

func NewUserHandler(users UserDirectory) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a member account. Re-registering an email is a no-op.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, existing, err := h.users.RegisterIfAbsent(c.UserContext(), &req)
	if err != nil {
		return serviceError(c, err)
	}
	if existing {
		return c.JSON(dto.MessageResponse{Message: "user already exist"})
	}
	return c.JSON(res)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListAll(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := services.ParseID(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	res, err := h.users.DeleteByID(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(res)
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := services.ParseID(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	user, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) GetByEmail(c *fiber.Ctx) error {
	user, err := h.users.GetByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := services.ParseID(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.users.UpdateProfile(c.UserContext(), id, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(res)
}

// CheckAdmin answers whether the caller is an admin. Asking about another
// email yields false, not an error.
func (h *UserHandler) CheckAdmin(c *fiber.Ctx) error {
	admin, err := h.users.CheckAdmin(c.UserContext(), middleware.CallerEmail(c), c.Params("email"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.AdminCheckResponse{Admin: admin})
}

func (h *UserHandler) PromoteToAdmin(c *fiber.Ctx) error {
	id, err := services.ParseID(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	res, err := h.users.PromoteToAdmin(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(res)
}

func (h *UserHandler) MarkSubscriptionPaid(c *fiber.Ctx) error {
	res, err := h.users.MarkSubscriptionPaid(c.UserContext(), c.Params("email"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(res)
}
