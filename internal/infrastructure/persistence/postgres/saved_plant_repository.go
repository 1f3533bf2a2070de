package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

const (
	insertSavedPlantSQL = `INSERT INTO saved_plants (user_id, plant_id)
		VALUES ($1, $2)
		RETURNING id, saved_at`

	deleteSavedPlantSQL = `DELETE FROM saved_plants WHERE user_id = $1 AND plant_id = $2`

	savedPlantExistsSQL = `SELECT EXISTS (
		SELECT 1 FROM saved_plants WHERE user_id = $1 AND plant_id = $2)`

	listSavedPlantsSQL = `SELECT sp.id, sp.plant_id, sp.user_id, sp.saved_at,` + selectPlantColumns + `
		FROM saved_plants sp
		JOIN plants p ON p.id = sp.plant_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE sp.user_id = $1
		ORDER BY sp.saved_at DESC`
)

type SavedPlantRepository struct {
	pool *pgxpool.Pool
}

func NewSavedPlantRepository(pool *pgxpool.Pool) *SavedPlantRepository {
	return &SavedPlantRepository{pool: pool}
}

// Insert creates the bookmark. The saved_plants (user_id, plant_id) unique
// constraint is the authority on duplicates: a violation here, not the
// caller's pre-check, is what guarantees at most one row per pair.
func (r *SavedPlantRepository) Insert(ctx context.Context, userID domain.UserID, plantID int64) (*domain.SavedPlant, error) {
	saved := &domain.SavedPlant{PlantID: plantID, UserID: userID}
	err := r.pool.QueryRow(ctx, insertSavedPlantSQL, userID.UUID, plantID).Scan(&saved.ID, &saved.SavedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domerrors.ErrAlreadySaved
		}
		return nil, storeErr(err)
	}
	return saved, nil
}

func (r *SavedPlantRepository) Delete(ctx context.Context, userID domain.UserID, plantID int64) error {
	// Deleting a missing row affects zero rows and is fine.
	_, err := r.pool.Exec(ctx, deleteSavedPlantSQL, userID.UUID, plantID)
	return storeErr(err)
}

func (r *SavedPlantRepository) Exists(ctx context.Context, userID domain.UserID, plantID int64) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, savedPlantExistsSQL, userID.UUID, plantID).Scan(&exists); err != nil {
		return false, storeErr(err)
	}
	return exists, nil
}

func (r *SavedPlantRepository) ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.SavedPlant, error) {
	rows, err := r.pool.Query(ctx, listSavedPlantsSQL, userID.UUID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	var list []*domain.SavedPlant
	for rows.Next() {
		saved, err := scanSavedPlant(rows)
		if err != nil {
			return nil, storeErr(err)
		}
		list = append(list, saved)
	}
	return list, storeErr(rows.Err())
}

func scanSavedPlant(rows pgx.Rows) (*domain.SavedPlant, error) {
	var (
		saved domain.SavedPlant
		p             domain.Plant
		sciName       *string
		description   *string
		waterFreq     *int
		waterInstr    *string
		light         *string
		careLevel     *string
		categoryID    *int64
		imagePath     *string
		joinedCatID   *int64
		joinedCatName *string
	)
	if err := rows.Scan(
		&saved.ID, &saved.PlantID, &saved.UserID.UUID, &saved.SavedAt,
		&p.ID, &p.Name, &sciName, &description,
		&waterFreq, &waterInstr,
		&light, &careLevel, &categoryID, &imagePath,
		&joinedCatID, &joinedCatName,
	); err != nil {
		return nil, err
	}
	if sciName != nil {
		p.ScientificName = *sciName
	}
	if description != nil {
		p.Description = *description
	}
	if waterFreq != nil {
		p.WaterFrequencyDays = *waterFreq
	}
	if waterInstr != nil {
		p.WaterInstructions = *waterInstr
	}
	if light != nil {
		p.LightRequirements = *light
	}
	if careLevel != nil {
		p.CareLevel = *careLevel
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	if imagePath != nil {
		p.ImagePath = *imagePath
	}
	if joinedCatID != nil && joinedCatName != nil {
		p.Category = &domain.Category{ID: *joinedCatID, Name: *joinedCatName}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	saved.Plant = &p
	return &saved, nil
}

// Ensure SavedPlantRepository implements ports.SavedPlantRepository.
var _ ports.SavedPlantRepository = (*SavedPlantRepository)(nil)
