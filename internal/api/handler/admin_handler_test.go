package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

type stubAuditQuery struct {
	events    []domain.AuthEvent
	lastLimit int64
}

func (s *stubAuditQuery) Record(_ context.Context, _ domain.AuthEvent) error {
	return nil
}

func (s *stubAuditQuery) Recent(_ context.Context, limit int64) ([]domain.AuthEvent, error) {
	s.lastLimit = limit
	return s.events, nil
}

func TestAdminHandler_ListAuthEvents(t *testing.T) {
	svc := &stubAuditQuery{events: []domain.AuthEvent{
		{ID: "evt-1", UserID: "user-1", Kind: domain.EventLogin},
	}}
	h := NewAdminHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/admin/auth-events?limit=25", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAuthEvents(c); err != nil {
		t.Fatalf("ListAuthEvents: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastLimit != 25 {
		t.Fatalf("limit not forwarded: %d", svc.lastLimit)
	}
	if !strings.Contains(rec.Body.String(), "evt-1") {
		t.Fatalf("events missing from body: %s", rec.Body.String())
	}
}

func TestAdminHandler_ListAuthEventsEmpty(t *testing.T) {
	h := NewAdminHandler(&stubAuditQuery{})
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/admin/auth-events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAuthEvents(c); err != nil {
		t.Fatalf("ListAuthEvents: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"events":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}
