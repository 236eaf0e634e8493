package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gunceapp/diary-api/internal/api/metrics"
	"github.com/gunceapp/diary-api/internal/core/domain"
	"github.com/gunceapp/diary-api/internal/core/ports"
)

// Resolution outcomes for an external identity, in the order they are tried.
const (
	linkOutcomeMatched = "matched" // provider id already on file
	linkOutcomeLinked  = "linked"  // local account adopted the provider id
	linkOutcomeCreated = "created" // no usable match, fresh account
)

// resolveExternalIdentity maps a verified Google identity onto a User:
//
//  1. A user already carrying this provider id is used directly.
//  2. Failing that, a local (password) account with the same email is
//     linked: it adopts the provider id, becomes a Google account, and has
//     its email marked verified. The stored password hash is kept, and the
//     external avatar is taken only when the account has none. Linking is
//     one-way.
//  3. An email match already linked to a different provider id falls
//     through to case 4 and yields a second account rather than a
//     conflict.
//  4. Otherwise a new provider-only user is created, email verified, with
//     no password hash.
func (s *AuthService) resolveExternalIdentity(ctx context.Context, in ports.GoogleLoginInput) (*domain.User, error) {
	user, err := s.users.FindByProviderID(ctx, in.ProviderID)
	if err == nil {
		metrics.ExternalLoginsTotal.WithLabelValues(linkOutcomeMatched).Inc()
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.Provider == domain.ProviderLocal:
		avatar := ""
		if existing.AvatarURL == "" {
			avatar = in.AvatarURL
		}
		linked, err := s.users.LinkProvider(ctx, existing.ID, in.ProviderID, avatar)
		if err != nil {
			return nil, fmt.Errorf("link provider: %w", err)
		}
		s.log.Info().Str("user_id", linked.ID).Msg("linked local account to google identity")
		metrics.ExternalLoginsTotal.WithLabelValues(linkOutcomeLinked).Inc()
		return linked, nil

	case err == nil:
		// Already linked to a different external identity: treated as a
		// lookup miss, not a conflict.
		s.log.Warn().
			Str("user_id", existing.ID).
			Msg("email collides with a differently-linked account, creating a new one")

	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		ID:            uuid.NewString(),
		Email:         email,
		Name:          in.Name,
		Role:          domain.RoleUser,
		Provider:      domain.ProviderGoogle,
		ProviderID:    in.ProviderID,
		AvatarURL:     in.AvatarURL,
		EmailVerified: true,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create google user: %w", err)
	}
	metrics.ExternalLoginsTotal.WithLabelValues(linkOutcomeCreated).Inc()
	return created, nil
}
