package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/services"
	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// ErrorHandler renders errors returned from handlers as dto.ErrorResponse.
// 5xx details are logged, not exposed.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "request_id", requestID(c), "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}
	return errorJSON(c, code, message)
}

// parseBody decodes and validates a JSON request body into req. The returned
// *fiber.Error is rendered by ErrorHandler.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, validationMessage(verrs))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "gt", "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), orEqual(err)))
		case "lt", "lte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s characters", err.Field(), err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}

func orEqual(err validator.FieldError) string {
	if err.ActualTag() == "gte" {
		return "or equal to " + err.Param()
	}
	return err.Param()
}

// serviceError renders a service error with the status its sentinel maps to.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidIdentifier):
		return errorJSON(c, fiber.StatusBadRequest, services.ErrInvalidIdentifier.Error())
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidMovie),
		errors.Is(err, services.ErrMissingEmail):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		return errorJSON(c, fiber.StatusUnauthorized, services.ErrUnauthenticated.Error())
	case errors.Is(err, services.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, services.ErrForbidden.Error())
	case errors.Is(err, services.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, services.ErrNotFound.Error())
	case errors.Is(err, services.ErrPaymentProvider):
		slog.Warn("payment provider rejected request", "request_id", requestID(c), "path", c.Path(), "error", err)
		return errorJSON(c, services.ProviderStatus(err), err.Error())
	case errors.Is(err, services.ErrStoreUnavailable):
		slog.Error("store call failed",
			"request_id", requestID(c),
			"user_email", middleware.CallerEmail(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		return errorJSON(c, fiber.StatusServiceUnavailable, services.ErrStoreUnavailable.Error())
	default:
		slog.Error("unexpected handler error", "request_id", requestID(c), "method", c.Method(), "path", c.Path(), "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
