package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/snedea/meal-planner-app/internal/cache"
	"github.com/snedea/meal-planner-app/internal/database"
	"github.com/snedea/meal-planner-app/internal/external"
	"github.com/snedea/meal-planner-app/internal/models"
	"github.com/snedea/meal-planner-app/internal/nutrition"
	"github.com/snedea/meal-planner-app/internal/realtime"
	"github.com/snedea/meal-planner-app/internal/repository"
	"github.com/snedea/meal-planner-app/pkg/config"
)

type fixture struct {
	db      *gorm.DB
	users   *repository.UserRepository
	foods   *repository.FoodRepository
	recipes *repository.RecipeRepository
	logs    *repository.MealLogRepository
	events  *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(config.DatabaseConfig{URL: ":memory:", MaxIdleConn: 1, MaxOpenConn: 1}, zap.NewNop(), false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return &fixture{
		db:      db,
		users:   repository.NewUserRepository(db),
		foods:   repository.NewFoodRepository(db),
		recipes: repository.NewRecipeRepository(db),
		logs:    repository.NewMealLogRepository(db),
		events:  &recorder{},
	}
}

func (f *fixture) user(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", IsActive: true}
	require.NoError(t, f.users.Create(u))
	return u
}

func (f *fixture) food(t *testing.T, name string, facts nutrition.Facts) *models.Food {
	t.Helper()
	food := &models.Food{Name: name, Source: models.SourceCustom, Nutrition: models.NutritionFromFacts(facts)}
	require.NoError(t, f.foods.Create(food))
	return food
}

func (f *fixture) mealLogs() *MealLogService {
	return NewMealLogService(f.logs, f.foods, f.recipes, f.users, f.events, zap.NewNop())
}

type recorder struct {
	mu     sync.Mutex
	events []realtime.Event
	users  []uuid.UUID
}

func (r *recorder) Publish(userID uuid.UUID, ev realtime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
	r.events = append(r.events, ev)
}

func (r *recorder) all() []realtime.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]realtime.Event(nil), r.events...)
}

func f64(v float64) *float64 { return &v }
func str(v string) *string    { return &v }

var gram100 = nutrition.Facts{ServingSize: 100, ServingUnit: "g"}

func withMacros(base nutrition.Facts, cal, p, c, fat float64) nutrition.Facts {
	base.Calories, base.ProteinG, base.CarbsG, base.FatsG = cal, p, c, fat
	return base
}

func TestAuthRegisterLoginRefresh(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.users, config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})

	user, err := auth.Register(RegisterRequest{Email: "Kim@Example.com", Password: "password123", FirstName: " Kim "})
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", user.Email)
	assert.Equal(t, "Kim", user.FirstName)
	assert.NotEqual(t, "password123", user.PasswordHash)

	_, err = auth.Register(RegisterRequest{Email: "kim@example.com", Password: "password123"})
	assert.ErrorIs(t, err, repository.ErrEmailExists)

	_, err = auth.Register(RegisterRequest{Email: "short@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = auth.Login("kim@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	pair, err := auth.Login("kim@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.Equal(t, 900, pair.ExpiresIn)

	id, err := auth.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = auth.ValidateToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "refresh token must not authorize requests")

	_, err = auth.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	next, err := auth.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	id, err = auth.ValidateToken(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestAuthTokenExpiry(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.users, config.AuthConfig{JWTSecret: "s", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	_, err := auth.Register(RegisterRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	pair, err := auth.Login("a@example.com", "password123")
	require.NoError(t, err)

	auth.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = auth.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(f.users, config.AuthConfig{JWTSecret: "other", AccessTokenTTL: time.Minute})
	_, err = other.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthChangePassword(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.users, config.AuthConfig{JWTSecret: "s", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	user, err := auth.Register(RegisterRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	assert.ErrorIs(t, auth.ChangePassword(user.ID, "nope", "newpassword1"), ErrInvalidCredentials)
	assert.ErrorIs(t, auth.ChangePassword(user.ID, "password123", "short"), ErrValidation)
	require.NoError(t, auth.ChangePassword(user.ID, "password123", "newpassword1"))

	_, err = auth.Login("a@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login("a@example.com", "newpassword1")
	assert.NoError(t, err)
}

func TestUserServiceGoalsAndSuggestions(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.users)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	u := f.user(t, "u@example.com")

	_, err := svc.UpdateGoals(u.ID, UpdateGoalsRequest{ProteinTargetG: f64(-1)})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateGoals(u.ID, UpdateGoalsRequest{DailyCalorieTarget: f64(1800), ProteinTargetG: f64(120)})
	require.NoError(t, err)
	assert.Equal(t, nutrition.Targets{Calories: 1800, ProteinG: 120, CarbsG: 200, FatsG: 65}, updated.Targets())

	level := models.ActivitySedentary
	goal := models.GoalLoseWeight
	_, err = svc.UpdateProfile(u.ID, UpdateProfileRequest{
		DateOfBirth:   str("1994-06-01"),
		Gender:        str("Male"),
		HeightCm:      f64(180),
		WeightKg:      f64(81),
		ActivityLevel: &level,
		GoalType:      &goal,
	})
	require.NoError(t, err)

	bad := models.ActivityLevel("couch")
	_, err = svc.UpdateProfile(u.ID, UpdateProfileRequest{ActivityLevel: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	sug, err := svc.Suggestions(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, sug.BMI)
	// BMR = 810 + 1125 - 150 + 5 = 1790; sedentary x1.2 = 2148.
	assert.Equal(t, 2148.0, sug.TDEE)
	assert.Equal(t, 1648.0, sug.SuggestedCalories)
	assert.Equal(t, 1800.0, sug.CurrentTargets.Calories)
}

func TestFoodSearchFallsBackToProviders(t *testing.T) {
	f := newFixture(t)
	c := cache.NewMemory()
	svc := NewFoodService(f.foods, external.NewChain(zap.NewNop(), external.NewCatalog()), c,
		FoodSearchOptions{MinLocalResults: 5, DefaultLimit: 20, CacheTTL: time.Hour}, zap.NewNop())

	f.food(t, "Raw Honey", withMacros(gram100, 304, 0.3, 82, 0))

	foods, err := svc.Search(context.Background(), "raw", 20)
	require.NoError(t, err)
	require.Len(t, foods, 6)
	// Catalog foods from USDA are verified and rank ahead of the custom food.
	assert.Equal(t, "Raw Honey", foods[len(foods)-1].Name)
	for _, food := range foods[:5] {
		assert.True(t, food.IsVerified)
		assert.Equal(t, models.SourceUSDA, food.Source)
		require.NotNil(t, food.Nutrition)
	}

	var cached []models.Food
	found, err := c.Get(context.Background(), "food-search:raw:20", &cached)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, cached, 6)

	// A second search does not store the provider foods twice.
	_, err = svc.Search(context.Background(), "chicken", 20)
	require.NoError(t, err)
	var count int64
	require.NoError(t, f.db.Model(&models.Food{}).Where("source_id = ?", "171077").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = svc.Search(context.Background(), "  ", 20)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFoodSearchEnoughLocalResults(t *testing.T) {
	f := newFixture(t)
	svc := NewFoodService(f.foods, external.NewChain(zap.NewNop(), external.NewCatalog()), nil,
		FoodSearchOptions{MinLocalResults: 1}, zap.NewNop())

	f.food(t, "Raw Honey", withMacros(gram100, 304, 0.3, 82, 0))

	foods, err := svc.Search(context.Background(), "raw", 0)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Raw Honey", foods[0].Name)
}

func TestRankFoods(t *testing.T) {
	foods := []models.Food{
		{Name: "Pineapple"},
		{Name: "Apple Pie"},
		{Name: "apple"},
		{Name: "Green Apple", IsVerified: true},
	}
	var names []string
	for _, f := range RankFoods(foods, "Apple") {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Green Apple", "apple", "Apple Pie", "Pineapple"}, names)
}

func TestCreateCustomFood(t *testing.T) {
	f := newFixture(t)
	svc := NewFoodService(f.foods, nil, nil, FoodSearchOptions{}, zap.NewNop())
	owner := uuid.New()

	_, err := svc.CreateCustom(owner, CreateFoodRequest{Name: "Soup", Nutrition: nutrition.Facts{ServingSize: 0}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateCustom(owner, CreateFoodRequest{Name: "Soup", Nutrition: nutrition.Facts{ServingSize: 1, Calories: -5}})
	assert.ErrorIs(t, err, ErrValidation)

	food, err := svc.CreateCustom(owner, CreateFoodRequest{
		Name:      " Soup ",
		Barcode:   "42",
		Nutrition: nutrition.Facts{ServingSize: 250, Calories: 120, ProteinG: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, "Soup", food.Name)
	assert.Equal(t, models.SourceCustom, food.Source)
	assert.False(t, food.IsVerified)
	assert.Equal(t, owner, *food.CreatedByUserID)
	assert.Equal(t, "g", food.Nutrition.ServingUnit)

	got, err := svc.Barcode(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, food.ID, got.ID)

	_, err = svc.Barcode(context.Background(), "43")
	assert.ErrorIs(t, err, repository.ErrFoodNotFound)
}

func TestRecipeServiceLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := NewRecipeService(f.recipes, f.foods)
	owner, other := uuid.New(), uuid.New()

	a := f.food(t, "A", withMacros(gram100, 200, 10, 20, 5))
	b := f.food(t, "B", withMacros(gram100, 200, 10, 20, 5))

	_, err := svc.Create(owner, CreateRecipeRequest{Name: "Zero", Servings: 0})
	assert.ErrorIs(t, err, nutrition.ErrInvalidServings)

	_, err = svc.Create(owner, CreateRecipeRequest{
		Name: "Missing", Servings: 1,
		Ingredients: []IngredientRequest{{FoodID: uuid.New(), Quantity: 1, Unit: "g"}},
	})
	assert.ErrorIs(t, err, ErrValidation)

	recipe, err := svc.Create(owner, CreateRecipeRequest{
		Name:     "Bowl",
		Servings: 4,
		Ingredients: []IngredientRequest{
			{FoodID: a.ID, Quantity: 100, Unit: "g"},
			{FoodID: b.ID, Quantity: 100, Unit: "g"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 400.0, recipe.Total.Calories)
	assert.Equal(t, nutrition.Macros{Calories: 100, ProteinG: 5, CarbsG: 10, FatsG: 2.5}, recipe.PerServing.Macros())
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, 0, recipe.Ingredients[0].DisplayOrder)
	assert.Equal(t, 1, recipe.Ingredients[1].DisplayOrder)

	_, err = svc.Get(other, recipe.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	public := true
	servings := 2
	updated, err := svc.Update(owner, recipe.ID, UpdateRecipeRequest{IsPublic: &public, Servings: &servings})
	require.NoError(t, err)
	assert.Equal(t, 200.0, updated.PerServing.Calories)
	require.Len(t, updated.Ingredients, 2)

	got, err := svc.Get(other, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bowl", got.Name)

	_, err = svc.Update(other, recipe.ID, UpdateRecipeRequest{IsPublic: &public})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(other, recipe.ID), ErrForbidden)

	list, err := svc.List(owner, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, DefaultPageSize, list.Limit)
	require.Len(t, list.Results, 1)
	assert.Equal(t, 400.0, list.Results[0].Total.Calories)

	require.NoError(t, svc.Delete(owner, recipe.ID))
	_, err = svc.Get(owner, recipe.ID)
	assert.ErrorIs(t, err, repository.ErrRecipeNotFound)
}

func TestMealLogCreateValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.mealLogs()
	u := f.user(t, "u@example.com")
	food := f.food(t, "Oats", withMacros(nutrition.Facts{ServingSize: 50, ServingUnit: "g"}, 190, 6.8, 32, 3.4))
	other := uuid.New()

	base := CreateMealLogRequest{FoodID: &food.ID, Quantity: 1, MealType: "breakfast", LoggedDate: "2024-03-01"}

	req := base
	req.FoodID = nil
	_, err := svc.Create(u.ID, req)
	assert.ErrorIs(t, err, ErrNoLoggedItem)

	req = base
	req.RecipeID = &other
	_, err = svc.Create(u.ID, req)
	assert.ErrorIs(t, err, ErrBothLoggedItem)

	req = base
	req.Quantity = 0
	_, err = svc.Create(u.ID, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = base
	req.MealType = "brunch"
	_, err = svc.Create(u.ID, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = base
	req.LoggedDate = "03/01/2024"
	_, err = svc.Create(u.ID, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = base
	req.LoggedTime = str("noon")
	_, err = svc.Create(u.ID, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = base
	req.FoodID = &other
	_, err = svc.Create(u.ID, req)
	assert.ErrorIs(t, err, repository.ErrFoodNotFound)

	assert.Empty(t, f.events.all())
}

func TestMealLogSnapshotsAndSummary(t *testing.T) {
	f := newFixture(t)
	svc := f.mealLogs()
	u := f.user(t, "u@example.com")

	oats := f.food(t, "Oats", withMacros(nutrition.Facts{ServingSize: 50, ServingUnit: "g"}, 190, 6.8, 32, 3.4))
	a := f.food(t, "A", withMacros(gram100, 200, 10, 20, 5))
	recipes := NewRecipeService(f.recipes, f.foods)
	recipe, err := recipes.Create(u.ID, CreateRecipeRequest{
		Name: "Bowl", Servings: 4,
		Ingredients: []IngredientRequest{{FoodID: a.ID, Quantity: 200, Unit: "g"}},
	})
	require.NoError(t, err)

	// 150 g of a 50 g serving is three servings.
	oatLog, err := svc.Create(u.ID, CreateMealLogRequest{
		FoodID: &oats.ID, Quantity: 150, Unit: "g", MealType: "breakfast", LoggedDate: "2024-03-01",
	})
	require.NoError(t, err)
	assert.InDelta(t, 570, oatLog.Calories, 1e-9)
	assert.InDelta(t, 20.4, oatLog.ProteinG, 1e-9)

	// Two servings of a recipe with 100 kcal per serving.
	bowlLog, err := svc.Create(u.ID, CreateMealLogRequest{
		RecipeID: &recipe.ID, Quantity: 2, MealType: "DINNER", LoggedDate: "2024-03-01", LoggedTime: str("19:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "serving", bowlLog.Unit)
	assert.Equal(t, nutrition.MealTypeDinner, bowlLog.MealType)
	assert.Equal(t, nutrition.Macros{Calories: 200, ProteinG: 10, CarbsG: 20, FatsG: 5}, bowlLog.Contribution())

	// Defaults to the food's serving unit.
	snack, err := svc.Create(u.ID, CreateMealLogRequest{FoodID: &oats.ID, Quantity: 50, MealType: "snack", LoggedDate: "2024-03-02"})
	require.NoError(t, err)
	assert.Equal(t, "g", snack.Unit)
	assert.InDelta(t, 190, snack.Calories, 1e-9)

	day, err := svc.ListByDate(u.ID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, day.Logs, 2)
	assert.Equal(t, bowlLog.ID, day.Logs[0].ID, "timed entries come first")
	assert.Equal(t, nutrition.ComputeDailySummary(day.Logs, nutrition.DefaultTargets()), day.Summary)
	assert.InDelta(t, 770, day.Summary.TotalCalories, 1e-9)
	assert.InDelta(t, 1230, day.Summary.CalorieRemaining, 1e-9)

	events := f.events.all()
	require.Len(t, events, 3)
	assert.Equal(t, realtime.EventSummary, events[1].Type)
	assert.Equal(t, "2024-03-01", events[1].Date)
	assert.InDelta(t, 770, events[1].Summary.TotalCalories, 1e-9)

	rng, err := svc.RangeSummary(u.ID, "2024-03-01", "2024-03-07")
	require.NoError(t, err)
	require.Len(t, rng.DailySummaries, 2)
	assert.Equal(t, 2, rng.DailySummaries[0].MealCount)
	assert.InDelta(t, 480, rng.Averages["calories"], 1e-9)

	_, err = svc.RangeSummary(u.ID, "2024-03-07", "2024-03-01")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.RangeSummary(u.ID, "2023-01-01", "2024-03-01")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMealLogPrivateRecipe(t *testing.T) {
	f := newFixture(t)
	svc := f.mealLogs()
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")

	a := f.food(t, "A", withMacros(gram100, 200, 10, 20, 5))
	recipe, err := NewRecipeService(f.recipes, f.foods).Create(owner.ID, CreateRecipeRequest{
		Name: "Secret", Servings: 1,
		Ingredients: []IngredientRequest{{FoodID: a.ID, Quantity: 100, Unit: "g"}},
	})
	require.NoError(t, err)

	_, err = svc.Create(other.ID, CreateMealLogRequest{RecipeID: &recipe.ID, Quantity: 1, MealType: "lunch", LoggedDate: "2024-03-01"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMealLogDelete(t *testing.T) {
	f := newFixture(t)
	svc := f.mealLogs()
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	food := f.food(t, "A", withMacros(gram100, 200, 10, 20, 5))

	entry, err := svc.Create(owner.ID, CreateMealLogRequest{FoodID: &food.ID, Quantity: 100, Unit: "g", MealType: "lunch", LoggedDate: "2024-03-01"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(other.ID, entry.ID), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(owner.ID, uuid.New()), repository.ErrMealLogNotFound)
	require.NoError(t, svc.Delete(owner.ID, entry.ID))

	day, err := svc.ListByDate(owner.ID, "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, day.Logs)
	assert.Equal(t, 2000.0, day.Summary.CalorieRemaining)

	events := f.events.all()
	require.Len(t, events, 2)
	assert.Zero(t, events[1].Summary.TotalCalories)
}

func TestJobs(t *testing.T) {
	f := newFixture(t)
	meals := f.mealLogs()
	a := f.user(t, "a@example.com")
	b := f.user(t, "b@example.com")
	food := f.food(t, "A", withMacros(gram100, 200, 10, 20, 5))

	for _, req := range []CreateMealLogRequest{
		{FoodID: &food.ID, Quantity: 100, Unit: "g", MealType: "lunch", LoggedDate: "2024-03-09"},
		{FoodID: &food.ID, Quantity: 100, Unit: "g", MealType: "lunch", LoggedDate: "2024-03-10"},
		{FoodID: &food.ID, Quantity: 100, Unit: "g", MealType: "dinner", LoggedDate: "2022-01-01"},
	} {
		_, err := meals.Create(a.ID, req)
		require.NoError(t, err)
	}

	events := &recorder{}
	jobs := NewJobsService(f.users, f.logs, events, config.JobsConfig{RetentionDays: 365}, zap.NewNop())
	jobs.now = func() time.Time { return time.Date(2024, 3, 10, 12, 30, 0, 0, time.Local) }

	assert.Equal(t, 1, jobs.DailyReport())
	require.Len(t, events.all(), 1)
	assert.Equal(t, realtime.EventReport, events.all()[0].Type)
	assert.Equal(t, "2024-03-09", events.all()[0].Date)

	// Lunch time: a already logged lunch today, b did not.
	assert.Equal(t, 1, jobs.SendReminders())
	last := events.all()[1]
	assert.Equal(t, realtime.EventReminder, last.Type)
	assert.Equal(t, nutrition.MealTypeLunch, last.MealType)
	assert.Equal(t, b.ID, events.users[1])

	assert.EqualValues(t, 1, jobs.Cleanup())

	jobs.cfg.RetentionDays = 0
	assert.Zero(t, jobs.Cleanup())

	jobs.now = func() time.Time { return time.Date(2024, 3, 10, 3, 0, 0, 0, time.Local) }
	assert.Zero(t, jobs.SendReminders())
}

func TestJobsStartRejectsBadSchedule(t *testing.T) {
	f := newFixture(t)
	jobs := NewJobsService(f.users, f.logs, nil, config.JobsConfig{DailyReportSchedule: "not a schedule"}, zap.NewNop())
	assert.Error(t, jobs.Start())

	jobs = NewJobsService(f.users, f.logs, nil, config.JobsConfig{ReminderSchedule: "0 * * * *"}, zap.NewNop())
	require.NoError(t, jobs.Start())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	jobs.Stop(ctx)
}

func TestReminderMeal(t *testing.T) {
	for hour, want := range map[int]nutrition.MealType{7: "breakfast", 9: "breakfast", 12: "lunch", 18: "dinner"} {
		got, ok := reminderMeal(hour)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	for _, hour := range []int{0, 10, 15, 20, 23} {
		_, ok := reminderMeal(hour)
		assert.False(t, ok, "hour %d", hour)
	}
}
