package handler

import (
	"errors"
	"strconv"

	"go-pos-backend/internal/logger"
	"go-pos-backend/internal/middleware"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeError maps a domain error to its status code. Anything unknown is
// logged and reported as a generic 500.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrProductNotFound), errors.Is(err, model.ErrUserNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, model.ErrInsufficientStock), errors.Is(err, model.ErrDuplicateUsername):
		status = fiber.StatusConflict
	case errors.Is(err, model.ErrInvalidQuantity),
		errors.Is(err, model.ErrInvalidProduct),
		errors.Is(err, model.ErrInvalidRate),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrWeakPassword),
		errors.Is(err, model.ErrEmptyCart),
		errors.Is(err, model.ErrInvalidUser),
		errors.Is(err, service.ErrWrongPassword):
		status = fiber.StatusBadRequest
	case errors.Is(err, model.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrTooManyAttempts):
		status = fiber.StatusTooManyRequests
	case errors.Is(err, model.ErrProtectedUser), errors.Is(err, model.ErrSelfDelete):
		status = fiber.StatusForbidden
	case errors.Is(err, model.ErrIOFailure):
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.Get().Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

func dateRange(c *fiber.Ctx) model.DateRange {
	return model.DateRange{From: c.Query("from"), To: c.Query("to")}
}

// actor names the operator for logs and broadcast messages.
func actor(c *fiber.Ctx) string {
	if sess := middleware.CurrentSession(c); sess != nil {
		return sess.Username
	}
	return "system"
}
