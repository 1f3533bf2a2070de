package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
)

const (
	selectPlantColumns = `
		p.id, p.name, p.scientific_name, p.description,
		p.water_frequency_days, p.water_instructions,
		p.light_requirements, p.care_level, p.category_id, p.image_path,
		c.id, c.name`

	listPlantsSQL = `SELECT` + selectPlantColumns + `
		FROM plants p LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.name ASC`

	getPlantSQL = `SELECT` + selectPlantColumns + `
		FROM plants p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`

	listPlantsByCategorySQL = `SELECT` + selectPlantColumns + `
		FROM plants p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = $1
		ORDER BY p.name ASC`

	searchPlantsSQL = `SELECT` + selectPlantColumns + `
		FROM plants p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.name ILIKE $1 OR p.scientific_name ILIKE $1 OR p.description ILIKE $1
		ORDER BY p.name ASC
		LIMIT $2`

	listCategoriesSQL = `SELECT id, name FROM categories ORDER BY name ASC`
)

type PlantRepository struct {
	pool *pgxpool.Pool
}

func NewPlantRepository(pool *pgxpool.Pool) *PlantRepository {
	return &PlantRepository{pool: pool}
}

func (r *PlantRepository) List(ctx context.Context) ([]*domain.Plant, error) {
	rows, err := r.pool.Query(ctx, listPlantsSQL)
	if err != nil {
		return nil, storeErr(err)
	}
	return scanPlants(rows)
}

func (r *PlantRepository) GetByID(ctx context.Context, id int64) (*domain.Plant, error) {
	row := r.pool.QueryRow(ctx, getPlantSQL, id)
	plant, err := scanPlant(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return plant, nil
}

func (r *PlantRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Plant, error) {
	rows, err := r.pool.Query(ctx, listPlantsByCategorySQL, categoryID)
	if err != nil {
		return nil, storeErr(err)
	}
	return scanPlants(rows)
}

func (r *PlantRepository) Search(ctx context.Context, term string, limit int) ([]*domain.Plant, error) {
	rows, err := r.pool.Query(ctx, searchPlantsSQL, "%"+term+"%", limit)
	if err != nil {
		return nil, storeErr(err)
	}
	return scanPlants(rows)
}

func (r *PlantRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, listCategoriesSQL)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	var categories []*domain.Category
	for rows.Next() {
		c := &domain.Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, storeErr(err)
		}
		categories = append(categories, c)
	}
	return categories, storeErr(rows.Err())
}

func scanPlants(rows pgx.Rows) ([]*domain.Plant, error) {
	defer rows.Close()
	var plants []*domain.Plant
	for rows.Next() {
		plant, err := scanPlant(rows)
		if err != nil {
			return nil, storeErr(err)
		}
		plants = append(plants, plant)
	}
	return plants, storeErr(rows.Err())
}

// scanPlant reads one joined plant row and validates it at the store
// boundary, so malformed records are rejected here instead of propagating
// half-empty fields to callers.
func scanPlant(row pgx.Row) (*domain.Plant, error) {
	var (
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
	if err := row.Scan(
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
	return &p, nil
}

// Ensure PlantRepository implements ports.PlantRepository.
var _ ports.PlantRepository = (*PlantRepository)(nil)
