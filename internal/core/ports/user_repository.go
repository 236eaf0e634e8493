package ports

import (
	"context"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

// UserRepository persists account identity records. Lookups by email are
// case-insensitive (implementations store the lowercased form).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByProviderID(ctx context.Context, providerID string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// LinkProvider converts a local account into a provider-linked one:
	// sets the provider, records the external id, and marks the email
	// verified. avatarURL is applied only when non-empty.
	LinkProvider(ctx context.Context, id, providerID, avatarURL string) (*domain.User, error)
}
