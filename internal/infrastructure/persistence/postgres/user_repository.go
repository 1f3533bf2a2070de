package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

const (
	createUserSQL = `INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	getUserByEmailSQL = `SELECT id, email, password_hash, created_at, updated_at, email_verified_at
		FROM users WHERE email = $1`

	getUserByIDSQL = `SELECT id, email, password_hash, created_at, updated_at, email_verified_at
		FROM users WHERE id = $1`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, createUserSQL,
		user.ID.UUID, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		// users.email unique index: two sign-ups racing past the
		// pre-check resolve here.
		if isUniqueViolation(err) {
			return domerrors.ErrAlreadyExists
		}
		return storeErr(err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, getUserByEmailSQL, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, getUserByIDSQL, userID.UUID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u          domain.User
		verifiedAt *time.Time
	)
	if err := row.Scan(&u.ID.UUID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &verifiedAt); err != nil {
		return nil, err
	}
	u.EmailVerifiedAt = verifiedAt
	return &u, nil
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)
