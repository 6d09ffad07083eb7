package presenters

import (
	"errors"

	"freshtrack-backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes err with the status of its error class. statusCode is
// used when err belongs to no known class.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	status := StatusFromError(err, statusCode)

	var detail any
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		detail = verr.Errors
	case status >= fiber.StatusInternalServerError:
		log.Errorw("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		detail = message
	case err != nil:
		detail = err.Error()
	}

	return c.Status(status).JSON(Response{
		Status:  false,
		Message: message,
		Error:   detail,
	})
}

func StatusFromError(err error, fallback int) int {
	switch {
	case err == nil:
		return fallback
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fallback
	}
}
