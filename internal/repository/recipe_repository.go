package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snedea/meal-planner-app/internal/models"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

// RecipeRepository handles recipe persistence. Recipes are always loaded with
// their ingredients, each ingredient's food and that food's nutrition.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) withIngredients(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC")
		}).
		Preload("Ingredients.Food").
		Preload("Ingredients.Food.Nutrition")
}

// Create inserts a recipe and its ingredients in one transaction.
func (r *RecipeRepository) Create(recipe *models.Recipe) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(recipe).Error
	})
}

// GetByID retrieves a recipe by ID.
func (r *RecipeRepository) GetByID(id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.withIngredients(r.db).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	return &recipe, err
}

// ListByUser returns one page of a user's recipes, newest first, and the total
// number of recipes they own.
func (r *RecipeRepository) ListByUser(userID uuid.UUID, page, pageSize int) ([]models.Recipe, int64, error) {
	var recipes []models.Recipe
	var total int64

	if err := r.db.Model(&models.Recipe{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.withIngredients(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&recipes).Error

	return recipes, total, err
}

// Update saves the recipe's own columns. When replaceIngredients is set the
// stored ingredients are deleted and recipe.Ingredients inserted instead.
func (r *RecipeRepository) Update(recipe *models.Recipe, replaceIngredients bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients").Save(recipe).Error; err != nil {
			return err
		}
		if !replaceIngredients {
			return nil
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].ID = uuid.Nil
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		if len(recipe.Ingredients) == 0 {
			return nil
		}
		return tx.Omit("Food").Create(&recipe.Ingredients).Error
	})
}

// Delete removes a recipe and its ingredients.
func (r *RecipeRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Recipe{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		return nil
	})
}
