package ports

import (
	"context"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

// ClientMeta carries diagnostic request metadata stored on refresh sessions
// and audit events. Both fields are optional.
type ClientMeta struct {
	UserAgent string
	IP        string
}

// RegisterInput is the DTO for a local-account registration.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Meta     ClientMeta
}

// LoginInput is the DTO for a password login.
type LoginInput struct {
	Email    string
	Password string
	Meta     ClientMeta
}

// GoogleLoginInput carries a verified external identity assertion.
type GoogleLoginInput struct {
	ProviderID    string
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool
	Meta          ClientMeta
}

// RefreshInput is the DTO for exchanging a refresh token.
type RefreshInput struct {
	Token string
	Meta  ClientMeta
}

// AuthResult is returned by every token-issuing operation. RefreshToken is
// empty on Refresh unless rotation is enabled.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

// AuthService orchestrates credential verification, token issuance, and
// session revocation. All authentication failures are reported as
// domain.ErrInvalidCredentials without distinguishing which check failed.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	GoogleLogin(ctx context.Context, in GoogleLoginInput) (*AuthResult, error)
	Refresh(ctx context.Context, in RefreshInput) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
