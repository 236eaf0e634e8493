package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gunceapp/diary-api/internal/core/domain"
	"github.com/gunceapp/diary-api/internal/core/ports"
)

// AdminHandler serves the admin-only audit surface.
type AdminHandler struct {
	audit ports.AuditService
}

func NewAdminHandler(audit ports.AuditService) *AdminHandler {
	return &AdminHandler{audit: audit}
}

type authEventsResponse struct {
	Events []domain.AuthEvent `json:"events"`
}

// ListAuthEvents returns the newest audit-trail entries.
//
// @Summary      List recent authentication events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum events to return (default 100)"
// @Success      200    {object}  authEventsResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /admin/auth-events [get]
func (h *AdminHandler) ListAuthEvents(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	events, err := h.audit.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if events == nil {
		events = []domain.AuthEvent{}
	}
	return c.JSON(http.StatusOK, authEventsResponse{Events: events})
}
