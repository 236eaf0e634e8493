package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

// RoleFinder resolves the role of an authenticated user. Access tokens
// carry only the subject, so role checks need one store lookup.
type RoleFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// RequireRole enforces role-based access control. It must run after Auth.
func RequireRole(finder RoleFinder, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
			}

			user, err := finder.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
			}
			if _, ok := allowed[user.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
