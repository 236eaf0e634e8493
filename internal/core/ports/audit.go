package ports

import (
	"context"

	"github.com/gunceapp/diary-api/internal/core/domain"
)

// AuditRepository persists the authentication audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
	ListRecent(ctx context.Context, limit int64) ([]domain.AuthEvent, error)
}

// AuditService records audit events (called by the dispatcher workers) and
// serves the admin listing.
type AuditService interface {
	Record(ctx context.Context, event domain.AuthEvent) error
	Recent(ctx context.Context, limit int64) ([]domain.AuthEvent, error)
}
