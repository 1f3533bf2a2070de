package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
)

const (
	createProfileSQL = `INSERT INTO user_profiles (user_id, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`

	getProfileSQL = `SELECT user_id, full_name, created_at, updated_at
		FROM user_profiles WHERE user_id = $1`

	updateProfileSQL = `UPDATE user_profiles
		SET full_name = $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, full_name, created_at, updated_at`
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	_, err := r.pool.Exec(ctx, createProfileSQL,
		profile.UserID.UUID, profile.FullName, profile.CreatedAt, profile.UpdatedAt)
	return storeErr(err)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.UserProfile, error) {
	profile, err := scanProfile(r.pool.QueryRow(ctx, getProfileSQL, userID.UUID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, userID domain.UserID, fullName string) (*domain.UserProfile, error) {
	profile, err := scanProfile(r.pool.QueryRow(ctx, updateProfileSQL, userID.UUID, fullName))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return profile, nil
}

func scanProfile(row pgx.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	if err := row.Scan(&p.UserID.UUID, &p.FullName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Ensure ProfileRepository implements ports.ProfileRepository.
var _ ports.ProfileRepository = (*ProfileRepository)(nil)
