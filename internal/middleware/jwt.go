// Package middleware provides the shared request processing applied before
// handlers: authentication, role gating, request logging and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/utils"
)

// Context keys set by JWTAuth.
const (
	ContextUser   = "current_user"
	ContextUserID = "user_id"
)

// UserStore is the slice of the user repository the auth middleware needs.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// JWTAuth validates the Bearer token and reloads the user row on every
// request, so deactivation and role changes take effect immediately rather
// than when the token expires. Missing or inactive users are rejected with
// 401 regardless of token validity.
func JWTAuth(secret string, users UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access token required"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			user, err := users.GetByID(ctx, userID)
			if err != nil || !user.IsActive {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "User not found or inactive"})
			}

			c.Set(ContextUser, user)
			c.Set(ContextUserID, user.ID)
			return next(c)
		}
	}
}

// CurrentUser returns the user loaded by JWTAuth, or nil on public routes.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(ContextUser).(*model.User)
	return u
}
