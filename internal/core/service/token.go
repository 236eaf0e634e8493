package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenConfig holds the signing material for both token families. It is
// loaded once at startup and passed by value; the issuer never reads
// ambient state.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenIssuer mints and verifies HS256 JWTs. Access and refresh tokens are
// signed with distinct secrets so a leaked key for one family cannot forge
// the other. Verification is pure CPU: it never consults the session store.
type TokenIssuer struct {
	cfg TokenConfig
}

// NewTokenIssuer validates the signing configuration. Missing or identical
// secrets are a startup error, not a per-request one.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token issuer: both signing secrets are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("token issuer: access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &TokenIssuer{cfg: cfg}, nil
}

// RefreshTTL exposes the refresh-token lifetime so the service can stamp the
// matching expiry on persisted sessions and the handler on cookies.
func (t *TokenIssuer) RefreshTTL() time.Duration {
	return t.cfg.RefreshTTL
}

// IssueAccessToken mints a short-lived token carrying the user id as subject.
func (t *TokenIssuer) IssueAccessToken(userID string) (string, error) {
	return t.sign(userID, t.cfg.AccessSecret, t.cfg.AccessTTL)
}

// IssueRefreshToken mints a long-lived token; the returned value is what
// gets persisted as a refresh session's token.
func (t *TokenIssuer) IssueRefreshToken(userID string) (string, error) {
	return t.sign(userID, t.cfg.RefreshSecret, t.cfg.RefreshTTL)
}

// VerifyAccessToken returns the token's subject, or ErrTokenExpired /
// ErrInvalidCredentials when the token is expired or otherwise invalid.
func (t *TokenIssuer) VerifyAccessToken(token string) (string, error) {
	return t.verify(token, t.cfg.AccessSecret)
}

// VerifyRefreshToken is VerifyAccessToken for the refresh family.
func (t *TokenIssuer) VerifyRefreshToken(token string) (string, error) {
	return t.verify(token, t.cfg.RefreshSecret)
}

func (t *TokenIssuer) sign(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *TokenIssuer) verify(token, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", domain.ErrTokenExpired
	case err != nil, !parsed.Valid, claims.Subject == "":
		return "", domain.ErrInvalidCredentials
	}
	return claims.Subject, nil
}
