// Package collection manages a user's saved-plant list: a join table keyed
// by (user, plant) where each pair exists at most once.
package collection

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

// SessionSource yields the active session, or nil when unauthenticated.
// The caller never mutates sessions through it.
type SessionSource interface {
	Current(ctx context.Context) *domain.Session
}

type Manager struct {
	saved    ports.SavedPlantRepository
	sessions SessionSource
	log      zerolog.Logger
}

func NewManager(saved ports.SavedPlantRepository, sessions SessionSource, log zerolog.Logger) *Manager {
	return &Manager{saved: saved, sessions: sessions, log: log}
}

// IsSaved reports whether the current user has saved the plant. It returns
// false, never an error: no session, no matching row, and lookup failures
// all degrade to false.
func (m *Manager) IsSaved(ctx context.Context, plantID int64) bool {
	session := m.sessions.Current(ctx)
	if session == nil {
		return false
	}
	saved, err := m.saved.Exists(ctx, session.UserID, plantID)
	if err != nil {
		m.log.Warn().Err(err).Int64("plant_id", plantID).Msg("saved lookup failed; treating as unsaved")
		return false
	}
	return saved
}

// Save bookmarks the plant for the current user. The exists pre-check is a
// latency optimization only: when two saves race past it, the store's
// (user_id, plant_id) constraint rejects the second insert and the
// repository reports ErrAlreadySaved. Either way at most one row exists.
func (m *Manager) Save(ctx context.Context, plantID int64) (*domain.SavedPlant, error) {
	session := m.sessions.Current(ctx)
	if session == nil {
		return nil, domerrors.ErrAuthenticationRequired
	}
	exists, err := m.saved.Exists(ctx, session.UserID, plantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domerrors.ErrAlreadySaved
	}
	saved, err := m.saved.Insert(ctx, session.UserID, plantID)
	if err != nil {
		return nil, err
	}
	m.log.Info().Int64("plant_id", plantID).Str("user_id", session.UserID.String()).Msg("plant saved")
	return saved, nil
}

// Remove deletes the bookmark. Removing a plant that was never saved
// succeeds silently.
func (m *Manager) Remove(ctx context.Context, plantID int64) error {
	session := m.sessions.Current(ctx)
	if session == nil {
		return domerrors.ErrAuthenticationRequired
	}
	if err := m.saved.Delete(ctx, session.UserID, plantID); err != nil {
		return err
	}
	m.log.Info().Int64("plant_id", plantID).Str("user_id", session.UserID.String()).Msg("plant removed")
	return nil
}

// ListSaved returns the current user's bookmarks, most recently saved
// first, each joined with its plant and category. A user with no saves gets
// an empty list, not an error.
func (m *Manager) ListSaved(ctx context.Context) ([]*domain.SavedPlant, error) {
	session := m.sessions.Current(ctx)
	if session == nil {
		return nil, domerrors.ErrAuthenticationRequired
	}
	return m.saved.ListByUser(ctx, session.UserID)
}
