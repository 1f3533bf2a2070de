package auth

import (
	"context"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
)

type LogoutInput struct {
	RefreshToken string
}

type Logout struct {
	tokenStore ports.TokenStore
}

func NewLogout(tokenStore ports.TokenStore) *Logout {
	return &Logout{tokenStore: tokenStore}
}

// Execute revokes the session's refresh token. Logging out with no token, or
// with one that is already gone, is not an error.
func (uc *Logout) Execute(ctx context.Context, input LogoutInput) error {
	if input.RefreshToken == "" {
		return nil
	}
	return uc.tokenStore.RevokeRefreshToken(ctx, hashForStorage(input.RefreshToken))
}
