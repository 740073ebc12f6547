package handler

import (
	"go-pos-backend/internal/middleware"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and password are required"})
	}

	response, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(response)
}

// Logout ends the current session and discards its cart
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	h.authService.Logout(sess.ID)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the current user with the privileges of their role
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(model.UserResponse{
		ID:         sess.UserID,
		Username:   sess.Username,
		Role:       sess.Role,
		Privileges: model.PrivilegesFor(sess.Role),
	})
}

// ChangePassword updates the current user's password
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"error": "old_password and new_password are required"})
	}

	if err := h.authService.ChangePassword(sess.UserID, req.OldPassword, req.NewPassword); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
