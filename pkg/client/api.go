package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/snedea/meal-planner-app/internal/nutrition"
)

// Health checks the server health
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var h HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h, false); err != nil {
		return nil, err
	}
	return &h, nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := validateRegister(req); err != nil {
		return nil, err
	}
	var u User
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &u, false); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for tokens and saves them in the token store.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	body := map[string]string{"email": email, "password": password}

	var tp TokenPair
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &tp, false); err != nil {
		return nil, err
	}
	if err := c.tokens.Save(Credentials{AccessToken: tp.AccessToken, RefreshToken: tp.RefreshToken}); err != nil {
		return nil, err
	}
	return &tp, nil
}

// Refresh trades the stored refresh token for a new pair.
func (c *Client) Refresh(ctx context.Context) (*TokenPair, error) {
	creds, err := c.tokens.Load()
	if err != nil {
		return nil, err
	}
	if creds.RefreshToken == "" {
		return nil, &AuthError{Message: "no refresh token"}
	}

	var tp TokenPair
	err = c.do(ctx, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": creds.RefreshToken}, &tp, false)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			_ = c.tokens.Clear()
			return nil, &AuthError{Message: apiErr.Message}
		}
		return nil, err
	}
	if err := c.tokens.Save(Credentials{AccessToken: tp.AccessToken, RefreshToken: tp.RefreshToken}); err != nil {
		return nil, err
	}
	return &tp, nil
}

// Logout forgets the stored tokens.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// ChangePassword changes the signed-in user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	if err := required("current_password", current); err != nil {
		return err
	}
	if len(next) < minPasswordLength {
		return &ValidationError{Field: "new_password", Message: "must be at least 8 characters"}
	}
	body := map[string]string{"current_password": current, "new_password": next}
	return c.do(ctx, http.MethodPost, "/auth/change-password", body, nil, true)
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile patches profile fields.
func (c *Client) UpdateProfile(ctx context.Context, req ProfileUpdate) (*User, error) {
	if req.DateOfBirth != nil {
		if err := validateDate("date_of_birth", *req.DateOfBirth); err != nil {
			return nil, err
		}
	}
	var u User
	if err := c.do(ctx, http.MethodPatch, "/users/me", req, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateGoals patches nutrition targets.
func (c *Client) UpdateGoals(ctx context.Context, req GoalsUpdate) (*User, error) {
	for field, v := range map[string]*float64{
		"daily_calorie_target": req.DailyCalorieTarget,
		"protein_target_g":     req.ProteinTargetG,
		"carbs_target_g":       req.CarbsTargetG,
		"fats_target_g":        req.FatsTargetG,
	} {
		if v != nil && *v <= 0 {
			return nil, &ValidationError{Field: field, Message: "must be greater than 0"}
		}
	}
	var u User
	if err := c.do(ctx, http.MethodPatch, "/users/me/goals", req, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

// Suggestions returns goal recommendations for the signed-in user.
func (c *Client) Suggestions(ctx context.Context) (*Suggestions, error) {
	var s Suggestions
	if err := c.do(ctx, http.MethodGet, "/users/me/suggestions", nil, &s, true); err != nil {
		return nil, err
	}
	return &s, nil
}

// SearchFoods searches local and external foods. A limit of 0 uses the
// server default.
func (c *Client) SearchFoods(ctx context.Context, query string, limit int) ([]Food, error) {
	if err := required("q", query); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("q", strings.TrimSpace(query))
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var foods []Food
	if err := c.do(ctx, http.MethodGet, "/foods/search?"+params.Encode(), nil, &foods, true); err != nil {
		return nil, err
	}
	return foods, nil
}

// GetFood gets a food by id.
func (c *Client) GetFood(ctx context.Context, id uuid.UUID) (*Food, error) {
	var f Food
	if err := c.do(ctx, http.MethodGet, "/foods/"+id.String(), nil, &f, true); err != nil {
		return nil, err
	}
	return &f, nil
}

// FoodByBarcode looks a food up by barcode.
func (c *Client) FoodByBarcode(ctx context.Context, code string) (*Food, error) {
	if err := required("barcode", code); err != nil {
		return nil, err
	}
	var f Food
	if err := c.do(ctx, http.MethodGet, "/foods/barcode/"+url.PathEscape(code), nil, &f, true); err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFood adds a custom food.
func (c *Client) CreateFood(ctx context.Context, req CreateFoodRequest) (*Food, error) {
	if err := validateFood(req); err != nil {
		return nil, err
	}
	var f Food
	if err := c.do(ctx, http.MethodPost, "/foods", req, &f, true); err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateRecipe saves a recipe.
func (c *Client) CreateRecipe(ctx context.Context, req RecipeRequest) (*Recipe, error) {
	if err := validateRecipe(req); err != nil {
		return nil, err
	}
	var r Recipe
	if err := c.do(ctx, http.MethodPost, "/recipes", req, &r, true); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRecipes lists the caller's recipes, one page at a time.
func (c *Client) ListRecipes(ctx context.Context, page, limit int) (*RecipeList, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	path := "/recipes"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var list RecipeList
	if err := c.do(ctx, http.MethodGet, path, nil, &list, true); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetRecipe gets a recipe with its nutrition.
func (c *Client) GetRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error) {
	var r Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes/"+id.String(), nil, &r, true); err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateRecipe patches a recipe.
func (c *Client) UpdateRecipe(ctx context.Context, id uuid.UUID, req RecipeUpdate) (*Recipe, error) {
	if err := validateRecipeUpdate(req); err != nil {
		return nil, err
	}
	var r Recipe
	if err := c.do(ctx, http.MethodPatch, "/recipes/"+id.String(), req, &r, true); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRecipe deletes a recipe.
func (c *Client) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/recipes/"+id.String(), nil, nil, true)
}

// LogMeal records a meal.
func (c *Client) LogMeal(ctx context.Context, req MealLogRequest) (*MealLog, error) {
	if err := validateMealLog(req); err != nil {
		return nil, err
	}
	var l MealLog
	if err := c.do(ctx, http.MethodPost, "/meal-logs", req, &l, true); err != nil {
		return nil, err
	}
	return &l, nil
}

// MealLogs returns one day's logs and summary. An empty date means today on
// the server's clock.
func (c *Client) MealLogs(ctx context.Context, date string) (*DayLogs, error) {
	path := "/meal-logs"
	if date != "" {
		if err := validateDate("date", date); err != nil {
			return nil, err
		}
		path += "?date=" + url.QueryEscape(date)
	}

	var d DayLogs
	if err := c.do(ctx, http.MethodGet, path, nil, &d, true); err != nil {
		return nil, err
	}
	return &d, nil
}

// RangeSummary returns per-day totals and averages for start..end inclusive.
func (c *Client) RangeSummary(ctx context.Context, start, end string) (*nutrition.RangeSummary, error) {
	if err := validateDate("start", start); err != nil {
		return nil, err
	}
	if err := validateDate("end", end); err != nil {
		return nil, err
	}
	if end < start {
		return nil, &ValidationError{Field: "end", Message: "must not be before start"}
	}

	params := url.Values{}
	params.Set("start", start)
	params.Set("end", end)

	var rs nutrition.RangeSummary
	if err := c.do(ctx, http.MethodGet, "/meal-logs/summary?"+params.Encode(), nil, &rs, true); err != nil {
		return nil, err
	}
	return &rs, nil
}

// DeleteMealLog deletes one of the caller's logs.
func (c *Client) DeleteMealLog(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	return c.do(ctx, http.MethodDelete, "/meal-logs/"+id.String(), nil, nil, true)
}
