package ports

import (
	"context"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

// SessionRepository is the registry of persisted refresh sessions. The
// authentication service is its only writer; every mutation is a single
// atomic row insert or delete.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.RefreshSession) error
	FindByToken(ctx context.Context, token string) (*domain.RefreshSession, error)
	// DeleteByToken removes the session matching the exact token value.
	// Deleting zero rows is not an error.
	DeleteByToken(ctx context.Context, token string) (int64, error)
	// DeleteByUser removes every session owned by the user.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
