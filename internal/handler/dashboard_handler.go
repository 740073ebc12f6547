package handler

import (
	"strconv"

	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// maxMovementDays bounds the chart window.
const maxMovementDays = 90

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStockMovement returns units received and sold per day, oldest first.
// Days without movement are omitted.
// GET /api/v1/dashboard/stock-movement?days=7
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "days must be a positive integer"})
	}
	if days > maxMovementDays {
		days = maxMovementDays
	}

	movement, err := h.service.GetStockMovement(days)
	if err != nil {
		return writeError(c, err)
	}

	var inbound, outbound int
	for _, m := range movement {
		inbound += m.Inbound
		outbound += m.Outbound
	}
	return c.JSON(fiber.Map{
		"days":           days,
		"data":           movement,
		"total_inbound":  inbound,
		"total_outbound": outbound,
	})
}

// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total_products":      stats.TotalProducts,
		"low_stock_count":     stats.LowStockCount,
		"low_stock_threshold": service.LowStockThreshold,
		"total_valuation":     stats.TotalValuation,
	})
}
