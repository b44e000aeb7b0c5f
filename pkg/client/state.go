package client

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/snedea/meal-planner-app/internal/nutrition"
)

// AuthState tracks the signed-in user.
type AuthState struct {
	client *Client

	mu   sync.RWMutex
	user *User
	err  error
}

// NewAuthState creates an auth container over c.
func NewAuthState(c *Client) *AuthState {
	return &AuthState{client: c}
}

// Login signs in and loads the profile.
func (s *AuthState) Login(ctx context.Context, email, password string) error {
	if _, err := s.client.Login(ctx, email, password); err != nil {
		s.set(nil, err)
		return err
	}
	return s.Reload(ctx)
}

// Reload fetches the profile for the stored session.
func (s *AuthState) Reload(ctx context.Context) error {
	u, err := s.client.Me(ctx)
	s.set(u, err)
	return err
}

// Logout clears the session.
func (s *AuthState) Logout() error {
	err := s.client.Logout()
	s.set(nil, err)
	return err
}

func (s *AuthState) set(u *User, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user, s.err = u, err
}

// User is the loaded profile, or nil.
func (s *AuthState) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a profile is loaded.
func (s *AuthState) Authenticated() bool {
	return s.User() != nil
}

// Err is the last error.
func (s *AuthState) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// MealLogState holds one day of logs. Adds and deletes reload the current
// day so the list and summary always come from the server.
type MealLogState struct {
	client *Client

	mu      sync.RWMutex
	date    string
	logs    []MealLog
	summary nutrition.DailySummary
	err     error
}

// NewMealLogState creates a meal log container over c.
func NewMealLogState(c *Client) *MealLogState {
	return &MealLogState{client: c}
}

// Load switches to date and fetches it.
func (s *MealLogState) Load(ctx context.Context, date string) error {
	day, err := s.client.MealLogs(ctx, date)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	s.date = date
	s.logs = day.Logs
	s.summary = day.Summary
	return nil
}

// Add logs a meal and reloads the current day.
func (s *MealLogState) Add(ctx context.Context, req MealLogRequest) (*MealLog, error) {
	l, err := s.client.LogMeal(ctx, req)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	return l, s.Load(ctx, s.Date())
}

// Delete removes a log and reloads the current day.
func (s *MealLogState) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.DeleteMealLog(ctx, id); err != nil {
		s.setErr(err)
		return err
	}
	return s.Load(ctx, s.Date())
}

func (s *MealLogState) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Date is the loaded day; empty means the server's today.
func (s *MealLogState) Date() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.date
}

// Logs returns a copy of the loaded logs.
func (s *MealLogState) Logs() []MealLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]MealLog(nil), s.logs...)
}

// Summary is the server's summary for the loaded day.
func (s *MealLogState) Summary() nutrition.DailySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// LocalSummary recomputes the summary from the loaded logs against the
// server's targets. It matches Summary whenever both describe the same logs.
func (s *MealLogState) LocalSummary() nutrition.DailySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nutrition.ComputeDailySummary(s.logs, s.summary.Targets())
}

// Groups returns the loaded logs by meal type.
func (s *MealLogState) Groups() []nutrition.MealGroup[MealLog] {
	return nutrition.GroupByMealType(s.Logs())
}

// Err is the last error.
func (s *MealLogState) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// FoodState holds search results and the selected food.
type FoodState struct {
	client *Client

	mu       sync.RWMutex
	query    string
	results  []Food
	selected *Food
	err      error
}

// NewFoodState creates a food container over c.
func NewFoodState(c *Client) *FoodState {
	return &FoodState{client: c}
}

// Search replaces the results.
func (s *FoodState) Search(ctx context.Context, query string, limit int) error {
	foods, err := s.client.SearchFoods(ctx, query, limit)
	s.Apply(SearchResult{Query: query, Foods: foods, Err: err})
	return err
}

// Apply stores a result delivered by a Searcher.
func (s *FoodState) Apply(r SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = r.Err
	if r.Err == nil {
		s.query = r.Query
		s.results = r.Foods
	}
}

// Select loads a food by id.
func (s *FoodState) Select(ctx context.Context, id uuid.UUID) error {
	f, err := s.client.GetFood(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err == nil {
		s.selected = f
	}
	return err
}

// Query is the query behind Results.
func (s *FoodState) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Results returns a copy of the current results.
func (s *FoodState) Results() []Food {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Food(nil), s.results...)
}

// Selected is the selected food, or nil.
func (s *FoodState) Selected() *Food {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Err is the last error.
func (s *FoodState) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// RecipeState holds the recipe list and the open recipe.
type RecipeState struct {
	client *Client

	mu      sync.RWMutex
	list    []Recipe
	total   int64
	current *Recipe
	err     error
}

// NewRecipeState creates a recipe container over c.
func NewRecipeState(c *Client) *RecipeState {
	return &RecipeState{client: c}
}

// List loads one page of recipes.
func (s *RecipeState) List(ctx context.Context, page, limit int) error {
	l, err := s.client.ListRecipes(ctx, page, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err == nil {
		s.list, s.total = l.Results, l.Total
	}
	return err
}

// Open loads a recipe as the current one.
func (s *RecipeState) Open(ctx context.Context, id uuid.UUID) error {
	r, err := s.client.GetRecipe(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err == nil {
		s.current = r
	}
	return err
}

// Create saves a recipe and makes it current.
func (s *RecipeState) Create(ctx context.Context, req RecipeRequest) (*Recipe, error) {
	r, err := s.client.CreateRecipe(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return nil, err
	}
	s.current = r
	s.list = append([]Recipe{*r}, s.list...)
	s.total++
	return r, nil
}

// Delete removes a recipe from the server and the loaded list.
func (s *RecipeState) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.client.DeleteRecipe(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	kept := s.list[:0]
	for _, r := range s.list {
		if r.ID != id {
			kept = append(kept, r)
		} else {
			s.total--
		}
	}
	s.list = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	return nil
}

// Recipes returns a copy of the loaded list.
func (s *RecipeState) Recipes() []Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Recipe(nil), s.list...)
}

// Total is the server's count of the caller's recipes.
func (s *RecipeState) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Current is the open recipe, or nil.
func (s *RecipeState) Current() *Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Err is the last error.
func (s *RecipeState) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
