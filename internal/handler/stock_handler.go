package handler

import (
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

type ReceiveRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// POST /api/v1/stock/receive
func (h *StockHandler) Receive(c *fiber.Ctx) error {
	var req ReceiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.Receive(req.ProductID, req.Quantity, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": service.ReceiptRecordedMessage, "data": entry})
}

// GET /api/v1/stock/journal?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *StockHandler) Journal(c *fiber.Ctx) error {
	rows, err := h.service.Journal(dateRange(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}
