package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenExpired = errors.New("token expired")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")

// User models an account in the diary system. PasswordHash is empty for
// provider-only accounts; ProviderID is empty for local accounts.
type User struct {
	ID            string       `json:"id"`
	Email         string       `json:"email"`
	Name          string       `json:"name,omitempty"`
	PasswordHash  string       `json:"-"`
	Role          string       `json:"role"`
	Provider      AuthProvider `json:"provider"`
	ProviderID    string       `json:"-"`
	AvatarURL     string       `json:"avatar_url,omitempty"`
	Bio           string       `json:"bio,omitempty"`
	EmailVerified bool         `json:"email_verified"`
	LastLoginAt   time.Time    `json:"last_login_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// HasPassword reports whether the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
