package domain

import "time"

// AuthEventKind labels an entry in the authentication audit trail.
type AuthEventKind string

const (
	EventRegister       AuthEventKind = "register"
	EventLogin          AuthEventKind = "login"
	EventGoogleLogin    AuthEventKind = "google_login"
	EventRefresh        AuthEventKind = "refresh"
	EventLogout         AuthEventKind = "logout"
	EventLogoutAll      AuthEventKind = "logout_all"
	EventPasswordChange AuthEventKind = "password_change"
)

// AuthEvent records one successful authentication-lifecycle action.
// Events are written asynchronously and are best-effort: losing one never
// fails the request that produced it.
type AuthEvent struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Kind      AuthEventKind `json:"kind"`
	UserAgent string        `json:"user_agent,omitempty"`
	IP        string        `json:"ip,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
