package middleware

import (
	"strings"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/session"

	"github.com/gofiber/fiber/v2"
)

const sessionKey = "session"

// SessionResolver turns a bearer token into a live session.
type SessionResolver interface {
	ValidateToken(tokenString string) (*session.Session, error)
}

// RequireAuth validates the bearer token and stores the session in the context.
func RequireAuth(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		sess, err := resolver.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired session"})
		}

		c.Locals(sessionKey, sess)
		c.Locals("user_id", sess.UserID)
		c.Locals("username", sess.Username)
		c.Locals("role", sess.Role)

		return c.Next()
	}
}

// CurrentSession returns the session set by RequireAuth, or nil.
func CurrentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionKey).(*session.Session)
	return sess
}

// RequirePrivilege checks that the session's role grants the privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := CurrentSession(c)
		if sess == nil {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}
		if model.RoleHasPrivilege(sess.Role, requiredPrivilege) {
			return c.Next()
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + requiredPrivilege + "' privilege",
		})
	}
}

// RequireAnyPrivilege checks that the role grants at least one of the privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := CurrentSession(c)
		if sess == nil {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}
		for _, p := range requiredPrivileges {
			if model.RoleHasPrivilege(sess.Role, p) {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(requiredPrivileges, ", ") + " privileges",
		})
	}
}
