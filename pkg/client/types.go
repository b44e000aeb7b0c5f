package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/snedea/meal-planner-app/internal/nutrition"
)

// User is the signed-in user's profile and goals.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	DateOfBirth   *string   `json:"date_of_birth,omitempty"`
	Gender        string    `json:"gender,omitempty"`
	HeightCm      *float64  `json:"height_cm,omitempty"`
	WeightKg      *float64  `json:"weight_kg,omitempty"`
	ActivityLevel string    `json:"activity_level,omitempty"`
	GoalType      string    `json:"goal_type,omitempty"`

	DailyCalorieTarget *float64 `json:"daily_calorie_target,omitempty"`
	ProteinTargetG     *float64 `json:"protein_target_g,omitempty"`
	CarbsTargetG       *float64 `json:"carbs_target_g,omitempty"`
	FatsTargetG        *float64 `json:"fats_target_g,omitempty"`
	WaterTargetMl      *int     `json:"water_target_ml,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Targets resolves the user's goals, filling unset ones with defaults.
func (u User) Targets() nutrition.Targets {
	return nutrition.ResolveTargets(u.DailyCalorieTarget, u.ProteinTargetG, u.CarbsTargetG, u.FatsTargetG)
}

// Food is a food with its per-serving label.
type Food struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Brand       string           `json:"brand,omitempty"`
	Barcode     string           `json:"barcode,omitempty"`
	Description string           `json:"description,omitempty"`
	Source      string           `json:"source"`
	SourceID    string           `json:"source_id,omitempty"`
	IsVerified  bool             `json:"is_verified"`
	Nutrition   *nutrition.Facts `json:"nutrition,omitempty"`
}

// Ingredient is one line of a recipe.
type Ingredient struct {
	FoodID       uuid.UUID `json:"food_id"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	DisplayOrder int       `json:"display_order"`
	Food         *Food     `json:"food,omitempty"`
}

// Recipe is a recipe together with its computed nutrition.
type Recipe struct {
	ID              uuid.UUID    `json:"id"`
	UserID          uuid.UUID    `json:"user_id"`
	Name            string       `json:"name"`
	Description     string       `json:"description,omitempty"`
	Instructions    string       `json:"instructions,omitempty"`
	PrepTimeMinutes *int         `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int         `json:"cook_time_minutes,omitempty"`
	Servings        int          `json:"servings"`
	IsPublic        bool         `json:"is_public"`
	Ingredients     []Ingredient `json:"ingredients"`

	Total      nutrition.Facts `json:"nutrition_total"`
	PerServing nutrition.Facts `json:"nutrition_per_serving"`
}

// RecipeList is one page of the caller's recipes.
type RecipeList struct {
	Results []Recipe `json:"results"`
	Total   int64    `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
}

// MealLog is a logged food or recipe with the macros captured at log time.
type MealLog struct {
	ID         uuid.UUID          `json:"id"`
	FoodID     *uuid.UUID         `json:"food_id,omitempty"`
	RecipeID   *uuid.UUID         `json:"recipe_id,omitempty"`
	Quantity   float64            `json:"quantity"`
	Unit       string             `json:"unit"`
	MealType   nutrition.MealType `json:"meal_type"`
	LoggedDate string             `json:"logged_date"`
	LoggedTime *string            `json:"logged_time,omitempty"`
	Notes      string             `json:"notes,omitempty"`

	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`

	Food   *Food   `json:"food,omitempty"`
	Recipe *Recipe `json:"recipe,omitempty"`
}

func (l MealLog) Contribution() nutrition.Macros {
	return nutrition.Macros{Calories: l.Calories, ProteinG: l.ProteinG, CarbsG: l.CarbsG, FatsG: l.FatsG}
}

func (l MealLog) Meal() nutrition.MealType { return l.MealType }

func (l MealLog) Day() string { return l.LoggedDate }

// Title is the logged food or recipe name, when the server included it.
func (l MealLog) Title() string {
	switch {
	case l.Food != nil:
		return l.Food.Name
	case l.Recipe != nil:
		return l.Recipe.Name
	default:
		return "(unknown)"
	}
}

// DayLogs is one day's logs and its summary.
type DayLogs struct {
	Logs    []MealLog              `json:"logs"`
	Summary nutrition.DailySummary `json:"summary"`
}

// Suggestions are goal recommendations derived from the profile.
type Suggestions struct {
	BMI               float64           `json:"bmi"`
	TDEE              float64           `json:"tdee"`
	SuggestedCalories float64           `json:"suggested_calories"`
	CurrentTargets    nutrition.Targets `json:"current_targets"`
}

// HealthStatus contains health check response
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// ProfileUpdate changes profile fields; nil fields are left alone.
type ProfileUpdate struct {
	FirstName     *string  `json:"first_name,omitempty"`
	LastName      *string  `json:"last_name,omitempty"`
	DateOfBirth   *string  `json:"date_of_birth,omitempty"`
	Gender        *string  `json:"gender,omitempty"`
	HeightCm      *float64 `json:"height_cm,omitempty"`
	WeightKg      *float64 `json:"weight_kg,omitempty"`
	ActivityLevel *string  `json:"activity_level,omitempty"`
	GoalType      *string  `json:"goal_type,omitempty"`
}

// GoalsUpdate changes nutrition targets; nil fields are left alone.
type GoalsUpdate struct {
	DailyCalorieTarget *float64 `json:"daily_calorie_target,omitempty"`
	ProteinTargetG     *float64 `json:"protein_target_g,omitempty"`
	CarbsTargetG       *float64 `json:"carbs_target_g,omitempty"`
	FatsTargetG        *float64 `json:"fats_target_g,omitempty"`
	WaterTargetMl      *int     `json:"water_target_ml,omitempty"`
}

// CreateFoodRequest adds a custom food.
type CreateFoodRequest struct {
	Name        string          `json:"name"`
	Brand       string          `json:"brand,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
	Description string          `json:"description,omitempty"`
	Nutrition   nutrition.Facts `json:"nutrition"`
}

// IngredientRequest is one ingredient of a recipe being saved.
type IngredientRequest struct {
	FoodID   uuid.UUID `json:"food_id"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
}

// RecipeRequest creates a recipe.
type RecipeRequest struct {
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	Instructions    string              `json:"instructions,omitempty"`
	PrepTimeMinutes *int                `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int                `json:"cook_time_minutes,omitempty"`
	Servings        int                 `json:"servings"`
	IsPublic        bool                `json:"is_public"`
	Ingredients     []IngredientRequest `json:"ingredients"`
}

// RecipeUpdate changes a recipe; nil fields are left alone and a non-nil
// Ingredients replaces the whole list.
type RecipeUpdate struct {
	Name            *string              `json:"name,omitempty"`
	Description     *string              `json:"description,omitempty"`
	Instructions    *string              `json:"instructions,omitempty"`
	PrepTimeMinutes *int                 `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int                 `json:"cook_time_minutes,omitempty"`
	Servings        *int                 `json:"servings,omitempty"`
	IsPublic        *bool                `json:"is_public,omitempty"`
	Ingredients     *[]IngredientRequest `json:"ingredients,omitempty"`
}

// MealLogRequest logs exactly one of a food or a recipe.
type MealLogRequest struct {
	FoodID     *uuid.UUID         `json:"food_id,omitempty"`
	RecipeID   *uuid.UUID         `json:"recipe_id,omitempty"`
	Quantity   float64            `json:"quantity"`
	Unit       string             `json:"unit,omitempty"`
	MealType   nutrition.MealType `json:"meal_type"`
	LoggedDate string             `json:"logged_date"`
	LoggedTime *string            `json:"logged_time,omitempty"`
	Notes      string             `json:"notes,omitempty"`
}

// Event is a realtime push from the server.
type Event struct {
	Type     string                  `json:"type"`
	Date     string                  `json:"date,omitempty"`
	Summary  *nutrition.DailySummary `json:"summary,omitempty"`
	MealType nutrition.MealType      `json:"meal_type,omitempty"`
	Message  string                  `json:"message,omitempty"`
}
