package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return rec.Code, body.Error
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrTokenExpired, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrEmailTaken, http.StatusConflict, "email already registered"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	}
	for _, tc := range cases {
		code, msg := renderError(t, tc.err)
		if code != tc.code || msg != tc.message {
			t.Fatalf("%v: got %d %q, want %d %q", tc.err, code, msg, tc.code, tc.message)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	code, msg := renderError(t, fmt.Errorf("login: %w", domain.ErrInvalidCredentials))
	if code != http.StatusUnauthorized || msg != "invalid credentials" {
		t.Fatalf("wrapped error not mapped: %d %q", code, msg)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("echo error not passed through: %d %q", code, msg)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}
