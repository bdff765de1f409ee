package middleware

import (
	"karoo-backend/internal/access"
	"karoo-backend/internal/constants"
	"karoo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequireRole adapts the visibility gate for HTTP. On an authenticated
// request auth is always resolved, so the Unresolved state never occurs here;
// a denial carries the gate's redirect target in the error body. Anonymous
// callers get 401, wrong-role callers 403.
func RequireRole(required access.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := GetRole(c)
		d := access.Decide(current, required, true)
		switch d.State {
		case access.StateAllowed:
			return c.Next()
		default:
			code := fiber.StatusForbidden
			if current == access.Anonymous {
				code = fiber.StatusUnauthorized
			}
			return response.Denied(c, "User is Forbidden from performing this action", code, d.RedirectTo)
		}
	}
}

// AuthorizePermission checks the caller's role against the permission table.
// Unconfigured permission -> 500; role not allowed -> 403.
func AuthorizePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := GetRole(c)
		if current == access.Anonymous {
			return response.Unauthorized(c, "Unauthorized")
		}
		if _, ok := constants.PermissionRoles[permission]; !ok {
			return response.Error(c, "Permission configuration error", fiber.StatusInternalServerError, nil)
		}
		if !constants.AllowedRole(permission, current) {
			return response.Denied(c, "User is Forbidden from performing this action",
				fiber.StatusForbidden, access.DashboardRoute(current))
		}
		return c.Next()
	}
}
