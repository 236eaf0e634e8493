package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

type stubRoleFinder struct {
	users map[string]*domain.User
}

func (f *stubRoleFinder) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func newRoleFinder() *stubRoleFinder {
	return &stubRoleFinder{users: map[string]*domain.User{
		"admin-1": {ID: "admin-1", Role: domain.RoleAdmin},
		"user-1":  {ID: "user-1", Role: domain.RoleUser},
	}}
}

func runRBAC(t *testing.T, userID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}

	mw := RequireRole(newRoleFinder(), domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	if rec := runRBAC(t, "admin-1"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_UserForbidden(t *testing.T) {
	if rec := runRBAC(t, "user-1"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_UnknownUserUnauthorized(t *testing.T) {
	if rec := runRBAC(t, "ghost"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_MissingClaims(t *testing.T) {
	if rec := runRBAC(t, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
