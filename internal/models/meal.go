package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snedea/meal-planner-app/internal/nutrition"
)

// Recipe is a user-authored dish made of foods.
type Recipe struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Description     string         `gorm:"size:2000" json:"description,omitempty"`
	Instructions    string         `gorm:"type:text" json:"instructions,omitempty"`
	PrepTimeMinutes *int           `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int           `json:"cook_time_minutes,omitempty"`
	Servings        int            `gorm:"not null" json:"servings"`
	IsPublic        bool           `gorm:"default:false" json:"is_public"`

	// Relationships
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
}

// TableName returns the table name for Recipe model.
func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns a fresh id.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Nutrition computes the recipe's total and per-serving nutrition. The
// ingredients must be loaded with their foods and nutrition.
func (r *Recipe) Nutrition() (nutrition.RecipeNutrition, error) {
	ingredients := make([]nutrition.Ingredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		var facts nutrition.Facts
		if ing.Food != nil {
			facts = ing.Food.Facts()
		}
		ingredients = append(ingredients, nutrition.Ingredient{
			Facts:    facts,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	return nutrition.ComputeRecipeNutrition(ingredients, r.Servings)
}

// RecipeIngredient is one food inside a recipe.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	FoodID       uuid.UUID `gorm:"type:uuid;not null;index" json:"food_id"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	Unit         string    `gorm:"size:20;not null" json:"unit"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`

	Food *Food `gorm:"foreignKey:FoodID" json:"food,omitempty"`
}

// TableName returns the table name for RecipeIngredient model.
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// BeforeCreate assigns a fresh id.
func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// MealLog is one logged portion of a food or a recipe. The macro columns are
// a snapshot taken when the log was created.
type MealLog struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt  time.Time          `json:"created_at"`
	UserID     uuid.UUID          `gorm:"type:uuid;not null;index:idx_user_date" json:"user_id"`
	FoodID     *uuid.UUID         `gorm:"type:uuid;index" json:"food_id,omitempty"`
	RecipeID   *uuid.UUID         `gorm:"type:uuid;index" json:"recipe_id,omitempty"`
	Quantity   float64            `gorm:"not null" json:"quantity"`
	Unit       string             `gorm:"size:20;not null" json:"unit"`
	MealType   nutrition.MealType `gorm:"size:20;not null" json:"meal_type"`
	LoggedDate string             `gorm:"size:10;not null;index:idx_user_date" json:"logged_date"`
	LoggedTime *string            `gorm:"size:8" json:"logged_time,omitempty"`
	Notes      string             `gorm:"size:500" json:"notes,omitempty"`

	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`

	// Relationships
	Food   *Food   `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

// TableName returns the table name for MealLog model.
func (MealLog) TableName() string {
	return "meal_logs"
}

// BeforeCreate assigns a fresh id.
func (m *MealLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Item returns what the log refers to.
func (m MealLog) Item() (nutrition.LoggedItem, error) {
	return nutrition.ItemFromRefs(m.FoodID, m.RecipeID)
}

// SetItem stores item into the two reference columns.
func (m *MealLog) SetItem(item nutrition.LoggedItem) {
	m.FoodID, m.RecipeID = item.Refs()
}

// Contribution returns the snapshotted macros.
func (m MealLog) Contribution() nutrition.Macros {
	return nutrition.Macros{
		Calories: m.Calories,
		ProteinG: m.ProteinG,
		CarbsG:   m.CarbsG,
		FatsG:    m.FatsG,
	}
}

// Meal returns the log's meal type.
func (m MealLog) Meal() nutrition.MealType { return m.MealType }

// Day returns the logged date.
func (m MealLog) Day() string { return m.LoggedDate }

// SetSnapshot copies macros into the snapshot columns.
func (m *MealLog) SetSnapshot(macros nutrition.Macros) {
	m.Calories = macros.Calories
	m.ProteinG = macros.ProteinG
	m.CarbsG = macros.CarbsG
	m.FatsG = macros.FatsG
}
