package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

func testIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return issuer
}

func TestTokenIssuer_ConfigValidation(t *testing.T) {
	if _, err := NewTokenIssuer(TokenConfig{RefreshSecret: "r"}); err == nil {
		t.Fatalf("expected error for missing access secret")
	}
	if _, err := NewTokenIssuer(TokenConfig{AccessSecret: "a"}); err == nil {
		t.Fatalf("expected error for missing refresh secret")
	}
	if _, err := NewTokenIssuer(TokenConfig{AccessSecret: "same", RefreshSecret: "same"}); err == nil {
		t.Fatalf("expected error for identical secrets")
	}
}

func TestTokenIssuer_Defaults(t *testing.T) {
	issuer, err := NewTokenIssuer(TokenConfig{AccessSecret: "a", RefreshSecret: "r"})
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	if issuer.RefreshTTL() != defaultRefreshTTL {
		t.Fatalf("expected default refresh TTL, got %v", issuer.RefreshTTL())
	}
}

func TestTokenIssuer_AccessRoundTrip(t *testing.T) {
	issuer := testIssuer(t)

	token, err := issuer.IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	subject, err := issuer.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", subject)
	}
}

func TestTokenIssuer_RefreshRoundTrip(t *testing.T) {
	issuer := testIssuer(t)

	token, err := issuer.IssueRefreshToken("user-2")
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}

	subject, err := issuer.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
	if subject != "user-2" {
		t.Fatalf("expected subject user-2, got %q", subject)
	}
}

func TestTokenIssuer_FamiliesAreDisjoint(t *testing.T) {
	issuer := testIssuer(t)

	access, _ := issuer.IssueAccessToken("user-1")
	refresh, _ := issuer.IssueRefreshToken("user-1")

	if _, err := issuer.VerifyRefreshToken(access); err == nil {
		t.Fatalf("access token verified as refresh token")
	}
	if _, err := issuer.VerifyAccessToken(refresh); err == nil {
		t.Fatalf("refresh token verified as access token")
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer, err := NewTokenIssuer(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Nanosecond,
		RefreshTTL:    time.Hour,
	})
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := issuer.VerifyAccessToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer := testIssuer(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.VerifyAccessToken(token); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %q, got %v", token, err)
		}
	}
}
