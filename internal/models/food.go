package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/snedea/meal-planner-app/internal/nutrition"
)

// FoodSource tags where a food record came from.
type FoodSource string

const (
	SourceOpenFoodFacts FoodSource = "openfoodfacts"
	SourceUSDA          FoodSource = "usda"
	SourceCustom        FoodSource = "custom"
)

// Food represents a food item in the database with its nutrition label.
type Food struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Name            string         `gorm:"size:255;not null;index" json:"name"`
	Brand           string         `gorm:"size:255" json:"brand,omitempty"`
	Barcode         string         `gorm:"size:50;index" json:"barcode,omitempty"`
	Description     string         `gorm:"size:1000" json:"description,omitempty"`
	Source          FoodSource     `gorm:"size:20;not null;index:idx_food_source" json:"source"`
	SourceID        string         `gorm:"size:100;index:idx_food_source" json:"source_id,omitempty"`
	IsVerified      bool           `gorm:"default:false" json:"is_verified"`
	CreatedByUserID *uuid.UUID     `gorm:"type:uuid" json:"created_by_user_id,omitempty"`

	// Relationships
	Nutrition *NutritionInfo `gorm:"foreignKey:FoodID;constraint:OnDelete:CASCADE" json:"nutrition,omitempty"`
}

// TableName returns the table name for Food model.
func (Food) TableName() string {
	return "foods"
}

// BeforeCreate assigns a fresh id.
func (f *Food) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Facts returns the food's nutrition label, or a zero label if it was not
// loaded.
func (f *Food) Facts() nutrition.Facts {
	if f.Nutrition == nil {
		return nutrition.Facts{}
	}
	return f.Nutrition.Facts()
}

// NutritionInfo is the per-serving nutrition label stored for a food.
type NutritionInfo struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	FoodID               uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	ServingSize          float64   `gorm:"not null" json:"serving_size"`
	ServingUnit          string    `gorm:"size:20;not null" json:"serving_unit"`
	ServingsPerContainer *float64  `json:"servings_per_container,omitempty"`

	Calories float64 `gorm:"not null" json:"calories"`
	ProteinG float64 `gorm:"not null" json:"protein_g"`
	CarbsG   float64 `gorm:"not null" json:"carbs_g"`
	FatsG    float64 `gorm:"not null" json:"fats_g"`

	FiberG        *float64 `json:"fiber_g,omitempty"`
	SugarG        *float64 `json:"sugar_g,omitempty"`
	SaturatedFatG *float64 `json:"saturated_fat_g,omitempty"`
	TransFatG     *float64 `json:"trans_fat_g,omitempty"`
	CholesterolMg *float64 `json:"cholesterol_mg,omitempty"`
	SodiumMg      *float64 `json:"sodium_mg,omitempty"`

	Micronutrients datatypes.JSONType[map[string]float64] `json:"micronutrients,omitempty"`
}

// TableName returns the table name for NutritionInfo model.
func (NutritionInfo) TableName() string {
	return "nutrition_info"
}

// BeforeCreate assigns a fresh id.
func (n *NutritionInfo) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// Facts converts the stored row into a nutrition label.
func (n *NutritionInfo) Facts() nutrition.Facts {
	var micros map[string]float64
	if m := n.Micronutrients.Data(); len(m) > 0 {
		micros = m
	}
	return nutrition.Facts{
		ServingSize:          n.ServingSize,
		ServingUnit:          n.ServingUnit,
		ServingsPerContainer: n.ServingsPerContainer,
		Calories:             n.Calories,
		ProteinG:             n.ProteinG,
		CarbsG:               n.CarbsG,
		FatsG:                n.FatsG,
		FiberG:               n.FiberG,
		SugarG:               n.SugarG,
		SaturatedFatG:        n.SaturatedFatG,
		TransFatG:            n.TransFatG,
		CholesterolMg:        n.CholesterolMg,
		SodiumMg:             n.SodiumMg,
		Micronutrients:       micros,
	}
}

// NutritionFromFacts builds a storable row from a label.
func NutritionFromFacts(f nutrition.Facts) *NutritionInfo {
	return &NutritionInfo{
		ServingSize:          f.ServingSize,
		ServingUnit:          f.ServingUnit,
		ServingsPerContainer: f.ServingsPerContainer,
		Calories:             f.Calories,
		ProteinG:             f.ProteinG,
		CarbsG:               f.CarbsG,
		FatsG:                f.FatsG,
		FiberG:               f.FiberG,
		SugarG:               f.SugarG,
		SaturatedFatG:        f.SaturatedFatG,
		TransFatG:            f.TransFatG,
		CholesterolMg:        f.CholesterolMg,
		SodiumMg:             f.SodiumMg,
		Micronutrients:       datatypes.NewJSONType(f.Micronutrients),
	}
}
