package handler

import (
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ConfigHandler struct {
	service service.ConfigService
}

func NewConfigHandler(s service.ConfigService) *ConfigHandler {
	return &ConfigHandler{service: s}
}

type RateRequest struct {
	Rate float64 `json:"rate"`
}

// GET /api/v1/config/rate
func (h *ConfigHandler) GetRate(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"key": model.ConfigKeyUSDRate, "rate": h.service.GetRate()})
}

// PUT /api/v1/config/rate
func (h *ConfigHandler) SetRate(c *fiber.Ctx) error {
	var req RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.SetRate(req.Rate, actor(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Rate updated", "rate": req.Rate})
}
