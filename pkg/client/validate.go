package client

import (
	"strings"
	"time"
)

const minPasswordLength = 8

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

func validateCredentials(email, password string) error {
	if err := required("email", email); err != nil {
		return err
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	return required("password", password)
}

func validateRegister(req RegisterRequest) error {
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return err
	}
	if len(req.Password) < minPasswordLength {
		return &ValidationError{Field: "password", Message: "must be at least 8 characters"}
	}
	return nil
}

func validateDate(field, v string) error {
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return &ValidationError{Field: field, Message: "must be a date in YYYY-MM-DD format"}
	}
	return nil
}

func validateFood(req CreateFoodRequest) error {
	if err := required("name", req.Name); err != nil {
		return err
	}
	if req.Nutrition.ServingSize <= 0 {
		return &ValidationError{Field: "nutrition.serving_size", Message: "must be greater than 0"}
	}
	if req.Nutrition.Calories < 0 || req.Nutrition.ProteinG < 0 || req.Nutrition.CarbsG < 0 || req.Nutrition.FatsG < 0 {
		return &ValidationError{Field: "nutrition", Message: "values cannot be negative"}
	}
	return nil
}

func validateIngredients(items []IngredientRequest) error {
	for _, ing := range items {
		if ing.Quantity <= 0 {
			return &ValidationError{Field: "ingredients.quantity", Message: "must be greater than 0"}
		}
		if err := required("ingredients.unit", ing.Unit); err != nil {
			return err
		}
	}
	return nil
}

func validateRecipe(req RecipeRequest) error {
	if err := required("name", req.Name); err != nil {
		return err
	}
	if req.Servings <= 0 {
		return &ValidationError{Field: "servings", Message: "must be greater than 0"}
	}
	return validateIngredients(req.Ingredients)
}

func validateRecipeUpdate(req RecipeUpdate) error {
	if req.Name != nil {
		if err := required("name", *req.Name); err != nil {
			return err
		}
	}
	if req.Servings != nil && *req.Servings <= 0 {
		return &ValidationError{Field: "servings", Message: "must be greater than 0"}
	}
	if req.Ingredients != nil {
		return validateIngredients(*req.Ingredients)
	}
	return nil
}

func validateMealLog(req MealLogRequest) error {
	switch {
	case req.FoodID == nil && req.RecipeID == nil:
		return &ValidationError{Field: "food_id", Message: "Either food_id or recipe_id must be provided"}
	case req.FoodID != nil && req.RecipeID != nil:
		return &ValidationError{Field: "recipe_id", Message: "Cannot log both food and recipe in the same entry"}
	}
	if req.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Message: "must be greater than 0"}
	}
	if !req.MealType.Valid() {
		return &ValidationError{Field: "meal_type", Message: "must be one of breakfast, lunch, dinner, snack"}
	}
	if err := validateDate("logged_date", req.LoggedDate); err != nil {
		return err
	}
	if req.LoggedTime != nil {
		if _, err := time.Parse("15:04", *req.LoggedTime); err != nil {
			return &ValidationError{Field: "logged_time", Message: "must be a time in HH:MM format"}
		}
	}
	return nil
}
