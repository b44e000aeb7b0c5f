package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/snedea/meal-planner-app/internal/models"
	"github.com/snedea/meal-planner-app/internal/nutrition"
	"github.com/snedea/meal-planner-app/internal/repository"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// RecipeService manages user recipes and their derived nutrition.
type RecipeService struct {
	recipeRepo *repository.RecipeRepository
	foodRepo   *repository.FoodRepository
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(recipeRepo *repository.RecipeRepository, foodRepo *repository.FoodRepository) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo, foodRepo: foodRepo}
}

// IngredientRequest is one ingredient line.
type IngredientRequest struct {
	FoodID   uuid.UUID `json:"food_id" binding:"required"`
	Quantity float64   `json:"quantity" binding:"required"`
	Unit     string    `json:"unit" binding:"required"`
}

// CreateRecipeRequest describes a new recipe.
type CreateRecipeRequest struct {
	Name            string              `json:"name" binding:"required"`
	Description     string              `json:"description"`
	Instructions    string              `json:"instructions"`
	PrepTimeMinutes *int                `json:"prep_time_minutes"`
	CookTimeMinutes *int                `json:"cook_time_minutes"`
	Servings        int                 `json:"servings"`
	IsPublic        bool                `json:"is_public"`
	Ingredients     []IngredientRequest `json:"ingredients"`
}

// UpdateRecipeRequest changes a recipe. Nil fields are left alone; a non-nil
// Ingredients replaces the whole ingredient list.
type UpdateRecipeRequest struct {
	Name            *string              `json:"name"`
	Description     *string              `json:"description"`
	Instructions    *string              `json:"instructions"`
	PrepTimeMinutes *int                 `json:"prep_time_minutes"`
	CookTimeMinutes *int                 `json:"cook_time_minutes"`
	Servings        *int                 `json:"servings"`
	IsPublic        *bool                `json:"is_public"`
	Ingredients     *[]IngredientRequest `json:"ingredients"`
}

// RecipeResponse is a recipe with its computed nutrition.
type RecipeResponse struct {
	models.Recipe
	nutrition.RecipeNutrition
}

// RecipeListResponse is one page of recipes.
type RecipeListResponse struct {
	Results []RecipeResponse `json:"results"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

// Create stores a new recipe owned by userID.
func (s *RecipeService) Create(userID uuid.UUID, req CreateRecipeRequest) (*RecipeResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Servings <= 0 {
		return nil, nutrition.ErrInvalidServings
	}

	ingredients, err := s.ingredients(req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:          userID,
		Name:            name,
		Description:     req.Description,
		Instructions:    req.Instructions,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		IsPublic:        req.IsPublic,
		Ingredients:     ingredients,
	}
	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}

	return s.load(recipe.ID)
}

// Get returns a recipe the user owns or that is public.
func (s *RecipeService) Get(userID, recipeID uuid.UUID) (*RecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID && !recipe.IsPublic {
		return nil, ErrForbidden
	}
	return respond(recipe)
}

// List returns the user's recipes, newest first.
func (s *RecipeService) List(userID uuid.UUID, page, limit int) (*RecipeListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	recipes, total, err := s.recipeRepo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, err
	}

	out := &RecipeListResponse{
		Results: make([]RecipeResponse, 0, len(recipes)),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}
	for i := range recipes {
		r, err := respond(&recipes[i])
		if err != nil {
			return nil, err
		}
		out.Results = append(out.Results, *r)
	}
	return out, nil
}

// Update changes a recipe owned by userID.
func (s *RecipeService) Update(userID, recipeID uuid.UUID, req UpdateRecipeRequest) (*RecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		recipe.Name = name
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = req.PrepTimeMinutes
	}
	if req.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = req.CookTimeMinutes
	}
	if req.Servings != nil {
		if *req.Servings <= 0 {
			return nil, nutrition.ErrInvalidServings
		}
		recipe.Servings = *req.Servings
	}
	if req.IsPublic != nil {
		recipe.IsPublic = *req.IsPublic
	}

	replace := req.Ingredients != nil
	if replace {
		ingredients, err := s.ingredients(*req.Ingredients)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}

	if err := s.recipeRepo.Update(recipe, replace); err != nil {
		return nil, err
	}
	return s.load(recipe.ID)
}

// Delete removes a recipe owned by userID.
func (s *RecipeService) Delete(userID, recipeID uuid.UUID) error {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return err
	}
	if recipe.UserID != userID {
		return ErrForbidden
	}
	return s.recipeRepo.Delete(recipeID)
}

// ingredients validates the request lines and numbers them in order.
func (s *RecipeService) ingredients(lines []IngredientRequest) ([]models.RecipeIngredient, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: ingredients[%d].quantity must be greater than zero", ErrValidation, i)
		}
		if strings.TrimSpace(line.Unit) == "" {
			return nil, fmt.Errorf("%w: ingredients[%d].unit is required", ErrValidation, i)
		}
		ids = append(ids, line.FoodID)
	}

	foods, err := s.foodRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.RecipeIngredient, 0, len(lines))
	for i, line := range lines {
		food, ok := foods[line.FoodID]
		if !ok {
			return nil, fmt.Errorf("%w: food %s does not exist", ErrValidation, line.FoodID)
		}
		if food.Nutrition == nil || food.Nutrition.ServingSize <= 0 {
			return nil, nutrition.ErrInvalidServingSize
		}
		out = append(out, models.RecipeIngredient{
			FoodID:       line.FoodID,
			Quantity:     line.Quantity,
			Unit:         strings.TrimSpace(line.Unit),
			DisplayOrder: i,
		})
	}
	return out, nil
}

func (s *RecipeService) load(id uuid.UUID) (*RecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return respond(recipe)
}

func respond(recipe *models.Recipe) (*RecipeResponse, error) {
	n, err := recipe.Nutrition()
	if err != nil {
		return nil, err
	}
	return &RecipeResponse{Recipe: *recipe, RecipeNutrition: n}, nil
}
