package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/model"
)

// RequireMinimumRole admits every role at or above the given level in the
// hierarchy read_only < coordinator < manager < admin. It must run after
// JWTAuth.
func RequireMinimumRole(minimum string) echo.MiddlewareFunc {
	level := model.RoleLevel(minimum)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || model.RoleLevel(user.Role) < level {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Insufficient permissions"})
			}
			return next(c)
		}
	}
}

// RequireRole admits only the exact roles listed. Used for the admin-only
// user management routes.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !allowed[user.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Insufficient permissions"})
			}
			return next(c)
		}
	}
}
