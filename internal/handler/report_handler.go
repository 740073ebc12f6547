package handler

import (
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GET /api/v1/reports/sales?from=&to=
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	report, err := h.service.Sales(dateRange(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// GET /api/v1/reports/stock?from=&to=
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	report, err := h.service.Stock(dateRange(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
