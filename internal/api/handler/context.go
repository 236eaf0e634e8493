package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gunceapp/diary-api/internal/core/ports"
)

// ctxUserID extracts the user id injected by the Auth middleware. An empty
// value means the middleware did not run on the route; treat it as an
// authentication failure rather than a server bug the client can observe.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	return userID, nil
}

// clientMeta captures the request's diagnostic metadata for session records
// and audit events.
func clientMeta(c echo.Context) ports.ClientMeta {
	return ports.ClientMeta{
		UserAgent: c.Request().UserAgent(),
		IP:        c.RealIP(),
	}
}
