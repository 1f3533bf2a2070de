package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	calls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.users[user.Email]; ok {
		return domerrors.ErrAlreadyExists
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.users[email], nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, u := range r.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[domain.UserID]*domain.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[domain.UserID]*domain.UserProfile)}
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profiles[userID], nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, userID domain.UserID, fullName string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domerrors.ErrNotFound
	}
	p.FullName = fullName
	p.UpdatedAt = time.Now()
	return p, nil
}

// plainHasher stores passwords reversibly so tests can assert on them.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }

func (plainHasher) Verify(password, encoded string) bool { return encoded == "plain:"+password }

type fakeIssuer struct{}

func (fakeIssuer) IssueAccessToken(userID, email string, expiresInSeconds int64) (string, error) {
	return fmt.Sprintf("access:%s:%s", userID, email), nil
}

func (fakeIssuer) ValidateAccessToken(tokenString string) (string, string, error) {
	parts := strings.SplitN(tokenString, ":", 3)
	if len(parts) != 3 || parts[0] != "access" {
		return "", "", domerrors.ErrInvalidToken
	}
	return parts[1], parts[2], nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*ports.RefreshTokenInfo
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*ports.RefreshTokenInfo)}
}

func (s *fakeTokenStore) StoreRefreshToken(ctx context.Context, userID domain.UserID, tokenHash string, expiresAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenHash] = &ports.RefreshTokenInfo{
		TokenID:   tokenHash,
		UserID:    userID,
		ExpiresAt: time.Unix(expiresAt, 0),
	}
	return nil
}

func (s *fakeTokenStore) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshTokenInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.tokens[tokenHash]
	if !ok {
		return nil, nil
	}
	copied := *info
	return &copied, nil
}

func (s *fakeTokenStore) MarkTokenRotated(ctx context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.tokens[tokenID]
	if !ok {
		return domerrors.ErrNotFound
	}
	now := time.Now()
	info.RevokedAt = &now
	return nil
}

func (s *fakeTokenStore) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tokenHash)
	return nil
}

type fakeLockout struct {
	mu       sync.Mutex
	failures map[string]int
	max      int
}

func newFakeLockout(max int) *fakeLockout {
	return &fakeLockout{failures: make(map[string]int), max: max}
}

func (l *fakeLockout) IsLocked(ctx context.Context, email string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures[email] >= l.max, 60
}

func (l *fakeLockout) RecordFailure(ctx context.Context, email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[email]++
}

func (l *fakeLockout) RecordSuccess(ctx context.Context, email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, email)
}
