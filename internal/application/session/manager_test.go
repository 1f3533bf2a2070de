package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rluis14/Plant-Pals-App/internal/application/auth"
	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return domerrors.ErrAlreadyExists
	}
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[email], nil
}

func (r *memUserRepo) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, nil
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[domain.UserID]*domain.UserProfile
}

func (r *memProfileRepo) Create(ctx context.Context, profile *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *memProfileRepo) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profiles[userID], nil
}

func (r *memProfileRepo) Update(ctx context.Context, userID domain.UserID, fullName string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domerrors.ErrNotFound
	}
	p.FullName = fullName
	return p, nil
}

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*ports.RefreshTokenInfo
}

func (s *memTokenStore) StoreRefreshToken(ctx context.Context, userID domain.UserID, tokenHash string, expiresAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenHash] = &ports.RefreshTokenInfo{
		TokenID:   tokenHash,
		UserID:    userID,
		ExpiresAt: time.Unix(expiresAt, 0),
	}
	return nil
}

func (s *memTokenStore) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshTokenInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.tokens[tokenHash]
	if !ok {
		return nil, domerrors.ErrInvalidToken
	}
	copied := *info
	return &copied, nil
}

func (s *memTokenStore) MarkTokenRotated(ctx context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if info, ok := s.tokens[tokenID]; ok {
		now := time.Now()
		info.RevokedAt = &now
	}
	return nil
}

func (s *memTokenStore) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tokenHash)
	return nil
}

type memHasher struct{}

func (memHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (memHasher) Verify(password, encoded string) bool { return encoded == "h:"+password }

type memIssuer struct{}

func (memIssuer) IssueAccessToken(userID, email string, expiresInSeconds int64) (string, error) {
	return fmt.Sprintf("t:%s:%s", userID, email), nil
}

func (memIssuer) ValidateAccessToken(tokenString string) (string, string, error) {
	parts := strings.SplitN(tokenString, ":", 3)
	if len(parts) != 3 || parts[0] != "t" {
		return "", "", domerrors.ErrInvalidToken
	}
	return parts[1], parts[2], nil
}

func newTestManager(t *testing.T) (*Manager, *memTokenStore) {
	t.Helper()
	users := &memUserRepo{users: make(map[string]*domain.User)}
	profiles := &memProfileRepo{profiles: make(map[domain.UserID]*domain.UserProfile)}
	store := &memTokenStore{tokens: make(map[string]*ports.RefreshTokenInfo)}
	issuer := memIssuer{}
	hasher := memHasher{}
	signUp := auth.NewSignUp(users, profiles, hasher)
	login := auth.NewLogin(users, hasher, issuer, store, nil, false, 0, 0)
	logout := auth.NewLogout(store)
	refresh := auth.NewRefresh(users, issuer, store, 0, 0)
	return NewManager(signUp, login, logout, refresh, issuer), store
}

type eventRecord struct {
	event   domain.SessionEvent
	session *domain.Session
}

func recordEvents(m *Manager) (*[]eventRecord, func()) {
	var mu sync.Mutex
	records := &[]eventRecord{}
	unsub := m.Subscribe(func(event domain.SessionEvent, session *domain.Session) {
		mu.Lock()
		defer mu.Unlock()
		*records = append(*records, eventRecord{event, session})
	})
	return records, unsub
}

func TestStateStartsUnknownAndResolvesOnce(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Equal(t, domain.SessionUnknown, m.State())

	records, unsub := recordEvents(m)
	defer unsub()

	state := m.Restore(context.Background(), "", "")
	assert.Equal(t, domain.SessionUnauthenticated, state)
	assert.Equal(t, domain.SessionUnauthenticated, m.State())

	// Restore resolves exactly once.
	state = m.Restore(context.Background(), "garbage", "")
	assert.Equal(t, domain.SessionUnauthenticated, state)

	require.Len(t, *records, 1)
	assert.Equal(t, domain.SessionEventInitial, (*records)[0].event)
	assert.Nil(t, (*records)[0].session)
}

func TestRestoreWithValidAccessToken(t *testing.T) {
	m, _ := newTestManager(t)
	userID := uuid.New().String()
	token, err := memIssuer{}.IssueAccessToken(userID, "ada@example.com", 900)
	require.NoError(t, err)

	state := m.Restore(context.Background(), token, "")
	assert.Equal(t, domain.SessionAuthenticated, state)

	session := m.CurrentSession()
	require.NotNil(t, session)
	assert.Equal(t, userID, session.UserID.String())
	assert.Equal(t, "ada@example.com", session.Email)
}

func TestSignUpSignsIn(t *testing.T) {
	m, _ := newTestManager(t)
	m.Restore(context.Background(), "", "")
	records, unsub := recordEvents(m)
	defer unsub()

	user, err := m.SignUp(context.Background(), "ada@example.com", "secret1", "Ada Lovelace")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, domain.SessionAuthenticated, m.State())
	require.Len(t, *records, 1)
	assert.Equal(t, domain.SessionEventSignedIn, (*records)[0].event)
}

func TestSignInAndOutTransitions(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.SignUp(context.Background(), "ada@example.com", "secret1", "Ada")
	require.NoError(t, err)
	require.NoError(t, m.SignOut(context.Background()))

	records, unsub := recordEvents(m)
	defer unsub()

	session, err := m.SignIn(context.Background(), "ada@example.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, domain.SessionAuthenticated, m.State())

	require.NoError(t, m.SignOut(context.Background()))
	assert.Equal(t, domain.SessionUnauthenticated, m.State())
	assert.Nil(t, m.CurrentSession())

	// Signing out again is a no-op with no transition.
	require.NoError(t, m.SignOut(context.Background()))

	require.Len(t, *records, 2)
	assert.Equal(t, domain.SessionEventSignedIn, (*records)[0].event)
	assert.Equal(t, domain.SessionEventSignedOut, (*records)[1].event)
}

func TestSignInFailureLeavesStateUntouched(t *testing.T) {
	m, _ := newTestManager(t)
	m.Restore(context.Background(), "", "")

	_, err := m.SignIn(context.Background(), "ghost@example.com", "secret1")
	require.ErrorIs(t, err, domerrors.ErrNotFound)
	assert.Equal(t, domain.SessionUnauthenticated, m.State())
}

func TestRefreshRotatesSession(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.SignUp(context.Background(), "ada@example.com", "secret1", "Ada")
	require.NoError(t, err)
	before := m.CurrentSession()
	require.NotNil(t, before)

	records, unsub := recordEvents(m)
	defer unsub()

	after, err := m.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.NotEqual(t, before.RefreshToken, after.RefreshToken)
	assert.Equal(t, before.UserID, after.UserID)

	require.Len(t, *records, 1)
	assert.Equal(t, domain.SessionEventRefreshed, (*records)[0].event)
}

func TestRefreshWithoutSessionErrors(t *testing.T) {
	m, _ := newTestManager(t)
	m.Restore(context.Background(), "", "")

	records, unsub := recordEvents(m)
	defer unsub()

	session, err := m.Refresh(context.Background())
	require.ErrorIs(t, err, domerrors.ErrAuthenticationRequired)
	assert.Nil(t, session)
	assert.Equal(t, domain.SessionUnauthenticated, m.State())
	assert.Empty(t, *records)
}

func TestRefreshFailureSignsOut(t *testing.T) {
	m, store := newTestManager(t)
	_, err := m.SignUp(context.Background(), "ada@example.com", "secret1", "Ada")
	require.NoError(t, err)

	records, unsub := recordEvents(m)
	defer unsub()

	// Invalidate the stored refresh token behind the manager's back.
	store.mu.Lock()
	store.tokens = make(map[string]*ports.RefreshTokenInfo)
	store.mu.Unlock()

	_, err = m.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.SessionUnauthenticated, m.State())
	assert.Nil(t, m.CurrentSession())

	require.Len(t, *records, 1)
	assert.Equal(t, domain.SessionEventSignedOut, (*records)[0].event)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	m, _ := newTestManager(t)
	records, unsub := recordEvents(m)

	_, err := m.SignUp(context.Background(), "ada@example.com", "secret1", "Ada")
	require.NoError(t, err)
	require.Len(t, *records, 1)

	unsub()
	require.NoError(t, m.SignOut(context.Background()))
	assert.Len(t, *records, 1)
}
