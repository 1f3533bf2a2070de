// Package redis provides a refresh-token store for deployments that keep
// session state out of Postgres. Tokens expire via key TTL.
package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

const keyPrefix = "refresh:"

type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// StoreRefreshToken writes the token record under its hash; the key's TTL
// enforces expiry.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, userID domain.UserID, tokenHash string, expiresAt int64) error {
	key := keyPrefix + tokenHash
	ttl := time.Until(time.Unix(expiresAt, 0))
	if ttl <= 0 {
		return nil
	}
	if err := s.client.HSet(ctx, key,
		"user_id", userID.String(),
		"expires_at", strconv.FormatInt(expiresAt, 10),
	).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, ttl).Err()
}

func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshTokenInfo, error) {
	key := keyPrefix + tokenHash
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, domerrors.ErrInvalidToken
	}
	userID, err := domain.ParseUserID(fields["user_id"])
	if err != nil {
		return nil, domerrors.ErrInvalidToken
	}
	expiresUnix, _ := strconv.ParseInt(fields["expires_at"], 10, 64)
	info := &ports.RefreshTokenInfo{
		// The hash doubles as the token id in this store.
		TokenID:   tokenHash,
		UserID:    userID,
		ExpiresAt: time.Unix(expiresUnix, 0),
	}
	if rotated, ok := fields["rotated_at"]; ok {
		if unix, err := strconv.ParseInt(rotated, 10, 64); err == nil {
			t := time.Unix(unix, 0)
			info.RevokedAt = &t
		}
	}
	return info, nil
}

func (s *TokenStore) MarkTokenRotated(ctx context.Context, tokenID string) error {
	return s.client.HSet(ctx, keyPrefix+tokenID,
		"rotated_at", strconv.FormatInt(time.Now().Unix(), 10),
	).Err()
}

func (s *TokenStore) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	// Deleting an absent key is a no-op, which keeps revocation idempotent.
	return s.client.Del(ctx, keyPrefix+tokenHash).Err()
}

// Ensure TokenStore implements ports.TokenStore.
var _ ports.TokenStore = (*TokenStore)(nil)
