package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gunceapp/diary-api/internal/core/domain"
	"github.com/gunceapp/diary-api/internal/core/ports"
)

const defaultAuditLimit = 100

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService backed by the given repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists one audit event. Called from dispatcher workers, never
// from the request path.
func (s *auditService) Record(ctx context.Context, event domain.AuthEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	s.log.Debug().
		Str("user_id", event.UserID).
		Str("kind", string(event.Kind)).
		Msg("auth event recorded")
	return nil
}

// Recent returns the newest events for the admin listing.
func (s *auditService) Recent(ctx context.Context, limit int64) ([]domain.AuthEvent, error) {
	if limit <= 0 || limit > defaultAuditLimit {
		limit = defaultAuditLimit
	}
	events, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	return events, nil
}
