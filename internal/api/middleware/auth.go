package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AccessTokenVerifier validates a bearer access token and returns its
// subject (the user id). Verification is stateless.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (string, error)
}

// Auth validates the Authorization bearer token and injects the acting
// user's id into the echo context under "user_id". All failures collapse
// to a single 401 so callers cannot probe which check tripped.
func Auth(verifier AccessTokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
			}

			userID, err := verifier.VerifyAccessToken(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
