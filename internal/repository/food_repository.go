package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/snedea/meal-planner-app/internal/models"
)

var (
	ErrFoodNotFound = errors.New("food not found")
)

// FoodRepository handles food data persistence.
type FoodRepository struct {
	db *gorm.DB
}

// NewFoodRepository creates a new FoodRepository.
func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

// Create adds a new food item together with its nutrition row.
func (r *FoodRepository) Create(food *models.Food) error {
	return r.db.Create(food).Error
}

// GetByID retrieves a food item by ID.
func (r *FoodRepository) GetByID(id uuid.UUID) (*models.Food, error) {
	var food models.Food
	err := r.db.Preload("Nutrition").First(&food, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFoodNotFound
	}
	return &food, err
}

// GetByIDs retrieves every food in ids, keyed by id. Missing ids are absent
// from the map.
func (r *FoodRepository) GetByIDs(ids []uuid.UUID) (map[uuid.UUID]*models.Food, error) {
	out := make(map[uuid.UUID]*models.Food, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var foods []models.Food
	if err := r.db.Preload("Nutrition").Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, err
	}
	for i := range foods {
		out[foods[i].ID] = &foods[i]
	}
	return out, nil
}

// GetByBarcode retrieves a food item by barcode.
func (r *FoodRepository) GetByBarcode(barcode string) (*models.Food, error) {
	var food models.Food
	err := r.db.Preload("Nutrition").Where("barcode = ?", barcode).First(&food).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFoodNotFound
	}
	return &food, err
}

// GetBySource retrieves a food previously imported from an external provider.
func (r *FoodRepository) GetBySource(source models.FoodSource, sourceID string) (*models.Food, error) {
	var food models.Food
	err := r.db.Preload("Nutrition").
		Where("source = ? AND source_id = ?", source, sourceID).
		First(&food).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFoodNotFound
	}
	return &food, err
}

// Search matches foods whose name or brand contains query, case-insensitively.
// Verified foods come first, then exact name matches, prefix matches and
// everything else.
func (r *FoodRepository) Search(query string, limit int) ([]models.Food, error) {
	var foods []models.Food
	q := strings.ToLower(strings.TrimSpace(query))
	pattern := "%" + escapeLike(q) + "%"

	err := r.db.
		Preload("Nutrition").
		Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(brand) LIKE ? ESCAPE '\\'", pattern, pattern).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL: "CASE WHEN is_verified THEN 0 ELSE 1 END, " +
				"CASE WHEN LOWER(name) = ? THEN 0 WHEN LOWER(name) LIKE ? ESCAPE '\\' THEN 1 ELSE 2 END, name",
			Vars:               []interface{}{q, escapeLike(q) + "%"},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&foods).Error
	return foods, err
}

// Delete removes a food item.
func (r *FoodRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Food{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFoodNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
