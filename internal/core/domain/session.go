package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("refresh session not found")

// RefreshSession is the persisted record backing one issued refresh token.
// Rows are immutable: they are created at issuance and deleted on logout,
// bulk revocation, or lazily when found expired. UserAgent and IP are
// diagnostic only and never consulted during validation.
type RefreshSession struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	UserAgent string    `json:"user_agent,omitempty"`
	IP        string    `json:"ip,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session has passed its expiry at the given time.
func (s *RefreshSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
