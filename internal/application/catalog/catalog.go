// Package catalog exposes read-only queries against the shared plant
// reference data. The catalog is created and maintained out-of-band; this
// service never writes to it.
package catalog

import (
	"context"
	"strings"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

// SearchResultLimit caps substring searches.
const SearchResultLimit = 50

type Service struct {
	plants ports.PlantRepository
}

func NewService(plants ports.PlantRepository) *Service {
	return &Service{plants: plants}
}

// List returns every catalog plant ordered by name.
func (s *Service) List(ctx context.Context) ([]*domain.Plant, error) {
	return s.plants.List(ctx)
}

// Get returns the plant with the given id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Plant, error) {
	plant, err := s.plants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, domerrors.ErrNotFound
	}
	return plant, nil
}

// ListByCategory returns the plants assigned to one category.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Plant, error) {
	return s.plants.ListByCategory(ctx, categoryID)
}

// Search returns case-insensitive substring matches of term against plant
// name, scientific name, or description, capped at SearchResultLimit and
// ordered by name. A blank term returns no results without touching the
// store.
func (s *Service) Search(ctx context.Context, term string) ([]*domain.Plant, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	return s.plants.Search(ctx, term, SearchResultLimit)
}

// Categories returns the reference category list.
func (s *Service) Categories(ctx context.Context) ([]*domain.Category, error) {
	return s.plants.ListCategories(ctx)
}
