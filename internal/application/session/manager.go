// Package session owns the process-wide authentication state: exactly one
// Manager exists per process, every other component reads it, and only the
// sign-up/sign-in/sign-out/refresh paths may change it. Each transition is
// delivered to all subscribers before the mutating call returns, so reads
// that depend on the new identity observe it.
package session

import (
	"context"
	"sync"

	"github.com/Rluis14/Plant-Pals-App/internal/application/auth"
	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

// Listener receives one call per session transition.
type Listener func(event domain.SessionEvent, session *domain.Session)

// Manager wraps the auth use cases behind the session lifecycle
// Unknown -> {Authenticated, Unauthenticated}.
type Manager struct {
	signUp  *auth.SignUp
	login   *auth.Login
	logout  *auth.Logout
	refresh *auth.Refresh
	issuer  ports.TokenIssuer

	mu       sync.RWMutex
	state    domain.SessionState
	session  *domain.Session
	restored bool

	subMu  sync.Mutex
	subs   map[int]Listener
	nextID int
}

func NewManager(signUp *auth.SignUp, login *auth.Login, logout *auth.Logout, refresh *auth.Refresh, issuer ports.TokenIssuer) *Manager {
	return &Manager{
		signUp:  signUp,
		login:   login,
		logout:  logout,
		refresh: refresh,
		issuer:  issuer,
		state:   domain.SessionUnknown,
		subs:    make(map[int]Listener),
	}
}

// Restore resolves the initial Unknown state from previously persisted
// tokens. It runs its resolution exactly once per process; later calls
// return the already-resolved state. Either way subscribers present at the
// first call hear exactly one initial event.
func (m *Manager) Restore(ctx context.Context, accessToken, refreshToken string) domain.SessionState {
	m.mu.Lock()
	if m.restored {
		state := m.state
		m.mu.Unlock()
		return state
	}
	m.restored = true
	m.mu.Unlock()

	if session := m.tryRestore(ctx, accessToken, refreshToken); session != nil {
		m.transition(domain.SessionAuthenticated, session, domain.SessionEventInitial)
		return domain.SessionAuthenticated
	}
	m.transition(domain.SessionUnauthenticated, nil, domain.SessionEventInitial)
	return domain.SessionUnauthenticated
}

func (m *Manager) tryRestore(ctx context.Context, accessToken, refreshToken string) *domain.Session {
	if accessToken != "" {
		if userID, email, err := m.issuer.ValidateAccessToken(accessToken); err == nil {
			id, err := domain.ParseUserID(userID)
			if err == nil {
				return &domain.Session{
					UserID:       id,
					Email:        email,
					AccessToken:  accessToken,
					RefreshToken: refreshToken,
				}
			}
		}
	}
	// Stale access token; a silent refresh may still recover the session.
	if refreshToken != "" && m.refresh != nil {
		if result, err := m.refresh.Execute(ctx, auth.RefreshInput{RefreshToken: refreshToken}); err == nil {
			return result.Session
		}
	}
	return nil
}

// SignUp creates the account and, on success, establishes a session for it
// (the app signs new users straight in; confirmation gating applies at the
// next sign-in).
func (m *Manager) SignUp(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	result, err := m.signUp.Execute(ctx, auth.SignUpInput{Email: email, Password: password, FullName: fullName})
	if err != nil {
		return nil, err
	}
	login, err := m.login.Execute(ctx, auth.LoginInput{Email: email, Password: password})
	if err != nil {
		// Account exists but no session could be established (e.g. the
		// confirmation gate). The caller still gets the identity.
		return result.User, nil
	}
	m.transition(domain.SessionAuthenticated, login.Session, domain.SessionEventSignedIn)
	return result.User, nil
}

func (m *Manager) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	result, err := m.login.Execute(ctx, auth.LoginInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	m.transition(domain.SessionAuthenticated, result.Session, domain.SessionEventSignedIn)
	return result.Session, nil
}

// SignOut invalidates the active session. Calling it with no session active
// is not an error and broadcasts nothing (there is no transition).
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.RLock()
	current := m.session
	m.mu.RUnlock()
	if current == nil {
		return nil
	}
	if err := m.logout.Execute(ctx, auth.LogoutInput{RefreshToken: current.RefreshToken}); err != nil {
		return err
	}
	m.transition(domain.SessionUnauthenticated, nil, domain.SessionEventSignedOut)
	return nil
}

// Refresh silently rotates the active session's tokens. With no session
// active it returns ErrAuthenticationRequired and broadcasts nothing.
func (m *Manager) Refresh(ctx context.Context) (*domain.Session, error) {
	m.mu.RLock()
	current := m.session
	m.mu.RUnlock()
	if current == nil {
		return nil, domerrors.ErrAuthenticationRequired
	}
	result, err := m.refresh.Execute(ctx, auth.RefreshInput{RefreshToken: current.RefreshToken})
	if err != nil {
		// The refresh token is gone; the session is over.
		m.transition(domain.SessionUnauthenticated, nil, domain.SessionEventSignedOut)
		return nil, err
	}
	m.transition(domain.SessionAuthenticated, result.Session, domain.SessionEventRefreshed)
	return result.Session, nil
}

// CurrentSession returns the active session, or nil when there is none.
// It never blocks on the network.
func (m *Manager) CurrentSession() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session != nil && m.session.Expired() {
		return nil
	}
	return m.session
}

// Current satisfies collection.SessionSource.
func (m *Manager) Current(ctx context.Context) *domain.Session {
	return m.CurrentSession()
}

// State returns the coarse session state.
func (m *Manager) State() domain.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe registers a listener for session transitions and returns its
// unsubscribe function. After unsubscribe returns, the listener is never
// invoked again.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.subMu.Unlock()
	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

// transition swaps the session state and delivers the event to every
// subscriber exactly once, synchronously, before returning.
func (m *Manager) transition(state domain.SessionState, session *domain.Session, event domain.SessionEvent) {
	m.mu.Lock()
	m.state = state
	m.session = session
	m.restored = true
	m.mu.Unlock()

	m.subMu.Lock()
	listeners := make([]Listener, 0, len(m.subs))
	for _, fn := range m.subs {
		listeners = append(listeners, fn)
	}
	m.subMu.Unlock()
	for _, fn := range listeners {
		fn(event, session)
	}
}
