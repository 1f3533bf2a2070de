package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
)

const (
	storeRefreshTokenSQL = `INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	getRefreshTokenSQL = `SELECT id, user_id, expires_at, revoked_at
		FROM refresh_tokens WHERE token_hash = $1`

	markRotatedSQL = `UPDATE refresh_tokens
		SET revoked_at = COALESCE(revoked_at, NOW())
		WHERE id = $1`
)

type TokenStore struct {
	pool *pgxpool.Pool
}

func NewTokenStore(pool *pgxpool.Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

func (s *TokenStore) StoreRefreshToken(ctx context.Context, userID domain.UserID, tokenHash string, expiresAt int64) error {
	_, err := s.pool.Exec(ctx, storeRefreshTokenSQL,
		uuid.New(), userID.UUID, tokenHash, time.Unix(expiresAt, 0), time.Now())
	return storeErr(err)
}

func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshTokenInfo, error) {
	var (
		id        uuid.UUID
		userID    uuid.UUID
		expiresAt time.Time
		revokedAt *time.Time
	)
	err := s.pool.QueryRow(ctx, getRefreshTokenSQL, tokenHash).Scan(&id, &userID, &expiresAt, &revokedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, storeErr(err)
	}
	return &ports.RefreshTokenInfo{
		TokenID:   id.String(),
		UserID:    domain.NewUserID(userID),
		ExpiresAt: expiresAt,
		RevokedAt: revokedAt,
	}, nil
}

func (s *TokenStore) MarkTokenRotated(ctx context.Context, tokenID string) error {
	id, err := uuid.Parse(tokenID)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, markRotatedSQL, id)
	return storeErr(err)
}

func (s *TokenStore) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	info, err := s.GetRefreshToken(ctx, tokenHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil // already gone or never existed
		}
		return err
	}
	return s.MarkTokenRotated(ctx, info.TokenID)
}

// Ensure TokenStore implements ports.TokenStore.
var _ ports.TokenStore = (*TokenStore)(nil)
