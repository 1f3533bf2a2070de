package domain

import "time"

// Session is the ephemeral proof of authentication bound to one identity.
type Session struct {
	UserID       UserID
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the access token's lifetime has elapsed.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// SessionState is the coarse auth state of the process.
type SessionState int

const (
	// SessionUnknown holds until the initial restore resolves; it is left
	// exactly once per process lifetime.
	SessionUnknown SessionState = iota
	SessionUnauthenticated
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionUnknown:
		return "unknown"
	case SessionUnauthenticated:
		return "unauthenticated"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "invalid"
	}
}

// SessionEvent identifies a session transition delivered to subscribers.
type SessionEvent string

const (
	SessionEventInitial   SessionEvent = "initial_session"
	SessionEventSignedIn  SessionEvent = "signed_in"
	SessionEventSignedOut SessionEvent = "signed_out"
	SessionEventRefreshed SessionEvent = "token_refreshed"
)
