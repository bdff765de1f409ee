package middleware

import (
	"karoo-backend/internal/access"
	"karoo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. 401 with the standard error
// format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		c.Locals("auth", user)
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// GetUserID returns the session user's id, empty if not logged in.
func GetUserID(c *fiber.Ctx) string {
	m, ok := GetUser(c).(map[string]interface{})
	if !ok {
		return ""
	}
	id, _ := m["user_id"].(string)
	return id
}

// GetRole extracts the caller's role from the session. A missing session or a
// malformed role claim both come back as Anonymous (fail closed).
func GetRole(c *fiber.Ctx) access.Role {
	m, ok := GetUser(c).(map[string]interface{})
	if !ok {
		return access.Anonymous
	}
	claim, _ := m["role"].(string)
	return access.ParseRole(claim)
}
