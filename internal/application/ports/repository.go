package ports

import (
	"context"
	"time"

	"github.com/Rluis14/Plant-Pals-App/internal/domain"
)

// PlantRepository defines read-only access to the plant catalog.
type PlantRepository interface {
	// List returns the whole catalog ordered by name ascending.
	List(ctx context.Context) ([]*domain.Plant, error)
	// GetByID returns nil, nil when no such plant exists.
	GetByID(ctx context.Context, id int64) (*domain.Plant, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Plant, error)
	// Search matches term case-insensitively as a substring of name,
	// scientific name, or description; results are capped at limit and
	// ordered by name ascending.
	Search(ctx context.Context, term string, limit int) ([]*domain.Plant, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

// SavedPlantRepository defines persistence for user-scoped plant bookmarks.
type SavedPlantRepository interface {
	// Insert creates the bookmark; the store's (user_id, plant_id)
	// uniqueness constraint is the authority on duplicates and a violation
	// surfaces as domain/errors.ErrAlreadySaved.
	Insert(ctx context.Context, userID domain.UserID, plantID int64) (*domain.SavedPlant, error)
	// Delete removes the bookmark if present; deleting a missing row is
	// not an error.
	Delete(ctx context.Context, userID domain.UserID, plantID int64) error
	Exists(ctx context.Context, userID domain.UserID, plantID int64) (bool, error)
	// ListByUser returns bookmarks joined with their plant and category,
	// most recently saved first.
	ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.SavedPlant, error)
}

// UserRepository defines persistence for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail returns nil, nil when no account exists for the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
}

// ProfileRepository defines persistence for user display profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) error
	// GetByUserID returns nil, nil when the user has no profile row.
	GetByUserID(ctx context.Context, userID domain.UserID) (*domain.UserProfile, error)
	// Update returns the updated row, or nil, nil when no profile row
	// exists for the user.
	Update(ctx context.Context, userID domain.UserID, fullName string) (*domain.UserProfile, error)
}

// RefreshTokenInfo describes a stored refresh token.
type RefreshTokenInfo struct {
	TokenID   string
	UserID    domain.UserID
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// TokenStore defines storage for refresh tokens (Postgres or Redis).
type TokenStore interface {
	StoreRefreshToken(ctx context.Context, userID domain.UserID, tokenHash string, expiresAt int64) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshTokenInfo, error)
	// MarkTokenRotated flags the token as used so reuse is detectable.
	MarkTokenRotated(ctx context.Context, tokenID string) error
	// RevokeRefreshToken is idempotent; revoking an unknown token is a no-op.
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
}
