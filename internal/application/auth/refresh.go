package auth

import (
	"context"
	"time"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

type RefreshInput struct {
	RefreshToken string
}

type RefreshResult struct {
	Session *domain.Session
}

type Refresh struct {
	users      ports.UserRepository
	issuer     ports.TokenIssuer
	tokenStore ports.TokenStore
	accessExp  int64
	refreshExp int64
}

func NewRefresh(users ports.UserRepository, issuer ports.TokenIssuer, tokenStore ports.TokenStore, accessExp, refreshExp int64) *Refresh {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	if refreshExp <= 0 {
		refreshExp = DefaultRefreshTokenExpiry
	}
	return &Refresh{
		users:      users,
		issuer:     issuer,
		tokenStore: tokenStore,
		accessExp:  accessExp,
		refreshExp: refreshExp,
	}
}

func (uc *Refresh) Execute(ctx context.Context, input RefreshInput) (*RefreshResult, error) {
	if input.RefreshToken == "" {
		return nil, domerrors.ErrInvalidToken
	}
	info, err := uc.tokenStore.GetRefreshToken(ctx, hashForStorage(input.RefreshToken))
	if err != nil || info == nil {
		return nil, domerrors.ErrInvalidToken
	}
	// Rotation: a token is good for exactly one refresh. Seeing it again
	// means it leaked or the client replayed it.
	if info.RevokedAt != nil {
		return nil, domerrors.ErrInvalidToken
	}
	if time.Now().After(info.ExpiresAt) {
		return nil, domerrors.ErrInvalidToken
	}
	if err := uc.tokenStore.MarkTokenRotated(ctx, info.TokenID); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, info.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrInvalidToken
	}
	accessToken, err := uc.issuer.IssueAccessToken(user.ID.String(), user.Email, uc.accessExp)
	if err != nil {
		return nil, err
	}
	newRefresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(time.Duration(uc.refreshExp) * time.Second).Unix()
	if err := uc.tokenStore.StoreRefreshToken(ctx, user.ID, hashForStorage(newRefresh), expiresAt); err != nil {
		return nil, err
	}
	return &RefreshResult{Session: &domain.Session{
		UserID:       user.ID,
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresAt:    time.Now().Add(time.Duration(uc.accessExp) * time.Second),
	}}, nil
}
