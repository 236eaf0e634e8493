package handler

import "github.com/gunceapp/diary-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64,password"`
	Name     string `json:"name"     validate:"omitempty,max=100"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type googleLoginRequest struct {
	ProviderID    string `json:"provider_id"    validate:"required"`
	Email         string `json:"email"          validate:"required,email"`
	Name          string `json:"name"           validate:"omitempty,max=100"`
	AvatarURL     string `json:"avatar_url"     validate:"omitempty,url"`
	EmailVerified bool   `json:"email_verified"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,min=8,max=64"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=64,password"`
}

// --- Response types ---

// authResponse carries the access token; the refresh token travels only in
// the HttpOnly cookie.
type authResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
