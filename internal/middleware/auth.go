package middleware

import (
	"strings"

	"pageturn/internal/apperr"
	"pageturn/internal/model"
	"pageturn/internal/token"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextEmail  = "email"
)

// AuthMiddleware verifies the bearer token and attaches the caller identity.
func AuthMiddleware(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(h, "Bearer ") {
				return apperr.Auth("Authentication required")
			}

			claims, err := tokens.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				return apperr.Auth("Invalid or expired token")
			}

			c.Set(ContextUserID, claims.Sub)
			c.Set(ContextRole, claims.Role)
			c.Set(ContextEmail, claims.Email)
			return next(c)
		}
	}
}

func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := map[model.Role]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[model.Role(role)]; !ok {
				return apperr.Forbidden("Insufficient permissions")
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated caller, or "" when the request is anonymous.
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}
