package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snedea/meal-planner-app/internal/cache"
	"github.com/snedea/meal-planner-app/internal/database"
	"github.com/snedea/meal-planner-app/internal/external"
	"github.com/snedea/meal-planner-app/internal/handlers"
	"github.com/snedea/meal-planner-app/internal/nutrition"
	"github.com/snedea/meal-planner-app/internal/realtime"
	"github.com/snedea/meal-planner-app/internal/repository"
	"github.com/snedea/meal-planner-app/internal/services"
	"github.com/snedea/meal-planner-app/pkg/config"
)

type backend struct {
	url string
	hub *realtime.Hub
}

// newBackend serves the real API over an in-memory database.
func newBackend(t *testing.T) *backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(config.DatabaseConfig{URL: ":memory:", MaxIdleConn: 1, MaxOpenConn: 1}, zap.NewNop(), false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	log := zap.NewNop()
	userRepo := repository.NewUserRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	logRepo := repository.NewMealLogRepository(db)
	hub := realtime.NewHub(log, nil)

	router := handlers.NewRouter(handlers.Deps{
		Auth: services.NewAuthService(userRepo, config.AuthConfig{
			JWTSecret:       "test",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: time.Hour,
		}),
		Users: services.NewUserService(userRepo),
		Foods: services.NewFoodService(foodRepo, external.NewChain(log, external.NewCatalog()), cache.NewMemory(),
			services.FoodSearchOptions{MinLocalResults: 5, CacheTTL: time.Hour}, log),
		Recipes:  services.NewRecipeService(recipeRepo, foodRepo),
		MealLogs: services.NewMealLogService(logRepo, foodRepo, recipeRepo, userRepo, hub, log),
		Hub:      hub,
		Log:      log,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &backend{url: srv.URL, hub: hub}
}

func signedIn(t *testing.T, b *backend, email string) *Client {
	t.Helper()
	ctx := context.Background()
	c := New(b.url)
	_, err := c.Register(ctx, RegisterRequest{Email: email, Password: "password123"})
	require.NoError(t, err)
	_, err = c.Login(ctx, email, "password123")
	require.NoError(t, err)
	return c
}

func customFood(t *testing.T, c *Client, name string, kcal, protein, carbs, fats float64) *Food {
	t.Helper()
	f, err := c.CreateFood(context.Background(), CreateFoodRequest{
		Name: name,
		Nutrition: nutrition.Facts{
			ServingSize: 100, ServingUnit: "g",
			Calories: kcal, ProteinG: protein, CarbsG: carbs, FatsG: fats,
		},
	})
	require.NoError(t, err)
	return f
}

func TestAuthState(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	c := New(b.url)
	_, err := c.Register(ctx, RegisterRequest{Email: "ann@example.com", Password: "password123", FirstName: "Ann"})
	require.NoError(t, err)

	auth := NewAuthState(c)
	err = auth.Login(ctx, "ann@example.com", "wrong-password")
	require.Error(t, err)
	assert.False(t, auth.Authenticated())
	assert.Equal(t, err, auth.Err())

	require.NoError(t, auth.Login(ctx, "ann@example.com", "password123"))
	require.True(t, auth.Authenticated())
	assert.Equal(t, "Ann", auth.User().FirstName)
	assert.Equal(t, nutrition.DefaultTargets(), auth.User().Targets())

	_, err = c.Refresh(ctx)
	require.NoError(t, err)
	require.NoError(t, auth.Reload(ctx))

	require.NoError(t, auth.Logout())
	assert.False(t, auth.Authenticated())

	err = auth.Reload(ctx)
	var authErr *AuthError
	assert.True(t, errors.As(err, &authErr))
}

func TestGoalsAndSuggestions(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	c := signedIn(t, b, "bo@example.com")

	kcal := 1800.0
	u, err := c.UpdateGoals(ctx, GoalsUpdate{DailyCalorieTarget: &kcal})
	require.NoError(t, err)
	assert.Equal(t, 1800.0, u.Targets().Calories)

	height, weight := 180.0, 81.0
	_, err = c.UpdateProfile(ctx, ProfileUpdate{HeightCm: &height, WeightKg: &weight})
	require.NoError(t, err)

	s, err := c.Suggestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25.0, s.BMI)
	assert.Equal(t, 1800.0, s.CurrentTargets.Calories)
}

func TestMealLogStateMatchesServerSummary(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	c := signedIn(t, b, "cy@example.com")

	oats := customFood(t, c, "Oats", 380, 13, 67, 7)
	eggs := customFood(t, c, "Eggs", 143, 12.6, 0.7, 9.5)

	state := NewMealLogState(c)
	require.NoError(t, state.Load(ctx, "2024-03-02"))
	assert.Empty(t, state.Logs())
	assert.Equal(t, 2000.0, state.Summary().CalorieRemaining)

	first, err := state.Add(ctx, MealLogRequest{
		FoodID: &eggs.ID, Quantity: 100, Unit: "g",
		MealType: nutrition.MealTypeLunch, LoggedDate: "2024-03-02",
	})
	require.NoError(t, err)
	_, err = state.Add(ctx, MealLogRequest{
		FoodID: &oats.ID, Quantity: 50, Unit: "g",
		MealType: nutrition.MealTypeBreakfast, LoggedDate: "2024-03-02",
	})
	require.NoError(t, err)

	require.Len(t, state.Logs(), 2)
	assert.Equal(t, state.Summary(), state.LocalSummary())
	assert.InDelta(t, 333, state.Summary().TotalCalories, 1e-9)

	groups := state.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, nutrition.MealTypeBreakfast, groups[0].MealType)
	assert.Equal(t, nutrition.MealTypeLunch, groups[1].MealType)

	require.NoError(t, state.Delete(ctx, first.ID))
	require.Len(t, state.Logs(), 1)
	assert.InDelta(t, 190, state.Summary().TotalCalories, 1e-9)
	assert.Equal(t, state.Summary(), state.LocalSummary())

	err = state.Delete(ctx, first.ID)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, err, state.Err())

	rs, err := c.RangeSummary(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, rs.DailySummaries, 1)
	assert.Equal(t, 1, rs.DailySummaries[0].MealCount)
}

func TestFoodState(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	c := signedIn(t, b, "di@example.com")
	toast := customFood(t, c, "Toast", 265, 9, 49, 3.2)

	foods := NewFoodState(c)
	require.NoError(t, foods.Search(ctx, "raw", 0))
	assert.Equal(t, "raw", foods.Query())
	assert.NotEmpty(t, foods.Results())

	require.NoError(t, foods.Select(ctx, toast.ID))
	assert.Equal(t, "Toast", foods.Selected().Name)

	foods.Apply(SearchResult{Query: "x", Err: errors.New("offline")})
	assert.Equal(t, "raw", foods.Query())
	assert.EqualError(t, foods.Err(), "offline")

	_, err := c.FoodByBarcode(ctx, "0000")
	assert.True(t, IsNotFound(err))
}

func TestRecipeState(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	c := signedIn(t, b, "ed@example.com")
	rice := customFood(t, c, "Rice", 130, 2.7, 28, 0.3)

	recipes := NewRecipeState(c)
	r, err := recipes.Create(ctx, RecipeRequest{
		Name: "Rice bowl", Servings: 2,
		Ingredients: []IngredientRequest{{FoodID: rice.ID, Quantity: 200, Unit: "g"}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 260, r.Total.Calories, 1e-9)
	assert.InDelta(t, 130, r.PerServing.Calories, 1e-9)

	require.NoError(t, recipes.List(ctx, 1, 10))
	require.Len(t, recipes.Recipes(), 1)
	assert.EqualValues(t, 1, recipes.Total())

	servings := 4
	updated, err := c.UpdateRecipe(ctx, r.ID, RecipeUpdate{Servings: &servings})
	require.NoError(t, err)
	assert.InDelta(t, 65, updated.PerServing.Calories, 1e-9)

	require.NoError(t, recipes.Open(ctx, r.ID))
	assert.Equal(t, 4, recipes.Current().Servings)

	require.NoError(t, recipes.Delete(ctx, r.ID))
	assert.Empty(t, recipes.Recipes())
	assert.Nil(t, recipes.Current())
	assert.Zero(t, recipes.Total())

	other := signedIn(t, b, "fay@example.com")
	_, err = other.GetRecipe(ctx, r.ID)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestWatchSummaries(t *testing.T) {
	b := newBackend(t)
	c := signedIn(t, b, "gus@example.com")
	me, err := c.Me(context.Background())
	require.NoError(t, err)
	banana := customFood(t, c, "Banana", 89, 1.1, 22.8, 0.3)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event, 4)
	done := make(chan error, 1)
	go func() {
		done <- c.WatchSummaries(ctx, func(ev Event) { events <- ev })
	}()

	require.Eventually(t, func() bool { return b.hub.Connections(me.ID) == 1 }, 2*time.Second, 10*time.Millisecond)

	_, err = c.LogMeal(context.Background(), MealLogRequest{
		FoodID: &banana.ID, Quantity: 200, Unit: "g",
		MealType: nutrition.MealTypeSnack, LoggedDate: "2024-05-05",
	})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "summary", ev.Type)
		assert.Equal(t, "2024-05-05", ev.Date)
		require.NotNil(t, ev.Summary)
		assert.InDelta(t, 178, ev.Summary.TotalCalories, 1e-9)
	case <-time.After(2 * time.Second):
		t.Fatal("no summary pushed")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchRequiresLogin(t *testing.T) {
	err := New("http://127.0.0.1:1").WatchSummaries(context.Background(), func(Event) {})
	var authErr *AuthError
	assert.True(t, errors.As(err, &authErr))
}
