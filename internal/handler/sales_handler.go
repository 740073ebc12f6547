package handler

import (
	"go-pos-backend/internal/middleware"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

type SaleRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Sell records a single-line sale outside the cart
// POST /api/v1/sales
func (h *SalesHandler) Sell(c *fiber.Ctx) error {
	var req SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.Sell(req.ProductID, req.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded"})
}

// GET /api/v1/sales/history?from=&to=
func (h *SalesHandler) History(c *fiber.Ctx) error {
	rows, err := h.service.History(dateRange(c))
	if err != nil {
		return writeError(c, err)
	}
	var total float64
	for _, r := range rows {
		total += r.LineTotal
	}
	return c.JSON(fiber.Map{"data": rows, "total": total})
}

// GetCart reconciles and prices the session's cart
// GET /api/v1/cart
func (h *SalesHandler) GetCart(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	view, err := h.service.ViewCart(sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// POST /api/v1/cart/items
func (h *SalesHandler) AddToCart(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	var req SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.AddToCart(sess, req.ProductID, req.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Item added to cart", "data": sess.Cart.Lines()})
}

// DELETE /api/v1/cart/items/:id
func (h *SalesHandler) RemoveFromCart(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	h.service.RemoveFromCart(sess, id)
	return c.JSON(fiber.Map{"message": "Item removed from cart", "data": sess.Cart.Lines()})
}

// Checkout sells every cart line. A partial failure is still a 200: the body
// carries per-line outcomes.
// POST /api/v1/cart/checkout
func (h *SalesHandler) Checkout(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	res, err := h.service.Checkout(sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
