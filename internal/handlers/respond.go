package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/wastewatch/wastewatch-backend/internal/dto"
	"github.com/wastewatch/wastewatch-backend/internal/services"
)

// serviceError maps service error kinds to HTTP responses. Validation and
// not-found messages pass through; storage detail never leaves the process.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return respond(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return respond(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUpstreamUnavailable):
		return respond(c, fiber.StatusServiceUnavailable, "content provider unavailable, try again later")
	case errors.Is(err, services.ErrStorage):
		slog.Error("storage failure", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return respond(c, fiber.StatusInternalServerError, "Internal server error")
	case errors.Is(err, services.ErrEmailTaken):
		return respond(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		return respond(c, fiber.StatusUnauthorized, err.Error())
	default:
		slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return respond(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func respond(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}
