package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

const (
	DefaultAccessTokenExpiry  = 900    // 15 min
	DefaultRefreshTokenExpiry = 604800 // 7 days
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Session *domain.Session
}

type Login struct {
	users            ports.UserRepository
	hasher           ports.PasswordHasher
	issuer           ports.TokenIssuer
	tokenStore       ports.TokenStore
	lockout          ports.LoginLockoutStore
	requireConfirmed bool
	accessExp        int64
	refreshExp       int64
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, tokenStore ports.TokenStore, lockout ports.LoginLockoutStore, requireConfirmed bool, accessExp, refreshExp int64) *Login {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	if refreshExp <= 0 {
		refreshExp = DefaultRefreshTokenExpiry
	}
	return &Login{
		users:            users,
		hasher:           hasher,
		issuer:           issuer,
		tokenStore:       tokenStore,
		lockout:          lockout,
		requireConfirmed: requireConfirmed,
		accessExp:        accessExp,
		refreshExp:       refreshExp,
	}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, domerrors.ErrValidation
	}
	if uc.lockout != nil {
		if locked, _ := uc.lockout.IsLocked(ctx, email); locked {
			return nil, domerrors.ErrRateLimited
		}
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Distinct from a wrong password so the caller can offer sign-up.
		return nil, domerrors.ErrNotFound
	}
	if !uc.hasher.Verify(input.Password, user.PasswordHash) {
		if uc.lockout != nil {
			uc.lockout.RecordFailure(ctx, email)
		}
		return nil, domerrors.ErrInvalidCredentials
	}
	if uc.requireConfirmed && !user.Confirmed() {
		return nil, domerrors.ErrUnconfirmedAccount
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, email)
	}
	session, err := uc.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Session: session}, nil
}

func (uc *Login) issueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	accessToken, err := uc.issuer.IssueAccessToken(user.ID.String(), user.Email, uc.accessExp)
	if err != nil {
		return nil, err
	}
	refreshToken, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(time.Duration(uc.refreshExp) * time.Second).Unix()
	if err := uc.tokenStore.StoreRefreshToken(ctx, user.ID, hashForStorage(refreshToken), expiresAt); err != nil {
		return nil, err
	}
	return &domain.Session{
		UserID:       user.ID,
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(uc.accessExp) * time.Second),
	}, nil
}

func newRefreshToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// hashForStorage returns the value stored for refresh token lookup; the raw
// token never touches the store.
func hashForStorage(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
