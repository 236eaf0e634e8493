package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gunceapp/diary-api/internal/api/metrics"
	"github.com/gunceapp/diary-api/internal/core/domain"
	"github.com/gunceapp/diary-api/internal/core/ports"
)

// SessionCache fronts the session registry on the refresh hot path (Redis).
// The store remains the source of truth: read failures and misses fall
// through to it, and revocation purges the cache before the call returns.
type SessionCache interface {
	Put(ctx context.Context, token, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (userID string, ok bool, err error)
	DeleteToken(ctx context.Context, token string) error
	DeleteUser(ctx context.Context, userID string) error
}

// AuditSink accepts audit events without blocking the request path.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}

// AuthService implements ports.AuthService: registration, login, token
// refresh, revocation, password change, and Google identity linking.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	hasher   *PasswordHasher
	tokens   *TokenIssuer
	cache    SessionCache // optional
	audit    AuditSink    // optional
	rotate   bool
	log      zerolog.Logger
}

// NewAuthService wires the authentication service. cache and audit may be
// nil. rotate enables refresh-token rotation: every successful Refresh then
// replaces the stored session instead of leaving it untouched.
func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	hasher *PasswordHasher,
	tokens *TokenIssuer,
	cache SessionCache,
	audit AuditSink,
	rotate bool,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		cache:    cache,
		audit:    audit,
		rotate:   rotate,
		log:      log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Provider:     domain.ProviderLocal,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	result, err := s.issueSession(ctx, user, in.Meta)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	s.record(domain.EventRegister, user.ID, in.Meta)
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	// Unknown email, provider-only account, and wrong password must be
	// indistinguishable to the caller.
	if !user.HasPassword() || !s.hasher.Verify(in.Password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("last-login update failed")
	}

	result, err := s.issueSession(ctx, user, in.Meta)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(domain.EventLogin, user.ID, in.Meta)
	return result, nil
}

func (s *AuthService) GoogleLogin(ctx context.Context, in ports.GoogleLoginInput) (*ports.AuthResult, error) {
	user, err := s.resolveExternalIdentity(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("google login: %w", err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("last-login update failed")
	}

	result, err := s.issueSession(ctx, user, in.Meta)
	if err != nil {
		return nil, fmt.Errorf("google login: %w", err)
	}

	s.record(domain.EventGoogleLogin, user.ID, in.Meta)
	return result, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// checks run in a fixed order, each collapsing to ErrInvalidCredentials:
// token signature and expiry, stored-row existence, row expiry (expired
// rows are deleted before failing), and row-owner / subject agreement.
func (s *AuthService) Refresh(ctx context.Context, in ports.RefreshInput) (*ports.AuthResult, error) {
	subject, err := s.tokens.VerifyRefreshToken(in.Token)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.checkSession(ctx, in.Token, subject); err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccessToken(subject)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	result := &ports.AuthResult{AccessToken: accessToken}

	if s.rotate {
		rotated, err := s.rotateSession(ctx, in, subject)
		if err != nil {
			return nil, fmt.Errorf("refresh: %w", err)
		}
		result.RefreshToken = rotated
	}

	if err := s.users.UpdateLastLogin(ctx, subject); err != nil {
		s.log.Warn().Err(err).Str("user_id", subject).Msg("last-login update failed")
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	s.record(domain.EventRefresh, subject, in.Meta)
	return result, nil
}

// checkSession validates the persisted half of a refresh token: the row
// must exist, be unexpired, and belong to the token's signed subject.
func (s *AuthService) checkSession(ctx context.Context, token, subject string) error {
	if s.cache != nil {
		userID, ok, err := s.cache.Get(ctx, token)
		if err != nil {
			s.log.Warn().Err(err).Msg("session cache read failed, falling back to store")
		} else if ok {
			if userID != subject {
				return domain.ErrInvalidCredentials
			}
			return nil
		}
	}

	sess, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("refresh: %w", err)
	}

	now := time.Now().UTC()
	if sess.Expired(now) {
		if _, err := s.sessions.DeleteByToken(ctx, token); err != nil {
			s.log.Warn().Err(err).Str("user_id", sess.UserID).Msg("expired session cleanup failed")
		}
		if s.cache != nil {
			_ = s.cache.DeleteToken(ctx, token)
		}
		return domain.ErrInvalidCredentials
	}

	if sess.UserID != subject {
		// A differently-keyed token colliding with a stored value is
		// cryptographically improbable, but checked anyway.
		return domain.ErrInvalidCredentials
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, token, sess.UserID, sess.ExpiresAt.Sub(now)); err != nil {
			s.log.Warn().Err(err).Msg("session cache write failed")
		}
	}
	return nil
}

// rotateSession issues a replacement refresh token, persists its session,
// and retires the presented one.
func (s *AuthService) rotateSession(ctx context.Context, in ports.RefreshInput, userID string) (string, error) {
	token, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return "", err
	}

	if err := s.persistSession(ctx, token, userID, in.Meta); err != nil {
		return "", err
	}

	if _, err := s.sessions.DeleteByToken(ctx, in.Token); err != nil {
		return "", err
	}
	if s.cache != nil {
		if err := s.cache.DeleteToken(ctx, in.Token); err != nil {
			return "", fmt.Errorf("purge rotated session: %w", err)
		}
	}
	return token, nil
}

// Logout revokes the session backing the given refresh token. It is
// idempotent: an unknown token deletes zero rows and is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	deleted, err := s.sessions.DeleteByToken(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	metrics.SessionsRevokedTotal.WithLabelValues("single").Add(float64(deleted))
	if s.cache != nil {
		if err := s.cache.DeleteToken(ctx, refreshToken); err != nil {
			return fmt.Errorf("logout: purge cache: %w", err)
		}
	}

	if subject, err := s.tokens.VerifyRefreshToken(refreshToken); err == nil {
		s.record(domain.EventLogout, subject, ports.ClientMeta{})
	}
	return nil
}

// LogoutAll revokes every session owned by the user. It is also the
// mandatory tail of ChangePassword.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	deleted, err := s.sessions.DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("logout all: %w", err)
	}
	metrics.SessionsRevokedTotal.WithLabelValues("all").Add(float64(deleted))
	if s.cache != nil {
		// Leaving cached entries behind would keep revoked tokens
		// refreshable until their TTL, so a purge failure fails the call.
		if err := s.cache.DeleteUser(ctx, userID); err != nil {
			return fmt.Errorf("logout all: purge cache: %w", err)
		}
	}

	s.log.Info().Str("user_id", userID).Int64("sessions", deleted).Msg("revoked all sessions")
	s.record(domain.EventLogoutAll, userID, ports.ClientMeta{})
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("change password: %w", err)
	}

	if !user.HasPassword() || !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	// A successful change always forces re-authentication everywhere.
	if err := s.LogoutAll(ctx, userID); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.record(domain.EventPasswordChange, userID, ports.ClientMeta{})
	return nil
}

// Profile returns the user behind a validated access token. A record that
// has disappeared since issuance reads as an authentication failure.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return user, nil
}

// issueSession mints both tokens and persists the refresh session.
func (s *AuthService) issueSession(ctx context.Context, user *domain.User, meta ports.ClientMeta) (*ports.AuthResult, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.persistSession(ctx, refreshToken, user.ID, meta); err != nil {
		return nil, err
	}

	return &ports.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (s *AuthService) persistSession(ctx context.Context, token, userID string, meta ports.ClientMeta) error {
	now := time.Now().UTC()
	sess := &domain.RefreshSession{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    userID,
		UserAgent: meta.UserAgent,
		IP:        meta.IP,
		ExpiresAt: now.Add(s.tokens.RefreshTTL()),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, token, userID, s.tokens.RefreshTTL()); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("session cache write failed")
		}
	}
	return nil
}

func (s *AuthService) record(kind domain.AuthEventKind, userID string, meta ports.ClientMeta) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuthEvent{
		UserID:    userID,
		Kind:      kind,
		UserAgent: meta.UserAgent,
		IP:        meta.IP,
		CreatedAt: time.Now().UTC(),
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
