package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snedea/meal-planner-app/internal/middleware"
	"github.com/snedea/meal-planner-app/internal/realtime"
	"github.com/snedea/meal-planner-app/internal/services"
)

// Version is reported by the health check.
const Version = "1.0.0"

// Deps are the services the HTTP API is built on.
type Deps struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Foods    *services.FoodService
	Recipes  *services.RecipeService
	MealLogs *services.MealLogService
	Hub      *realtime.Hub
	Log      *zap.Logger
}

// NewRouter wires every route under /api/v1.
func NewRouter(d Deps) *gin.Engine {
	authHandler := NewAuthHandler(d.Auth)
	userHandler := NewUserHandler(d.Users)
	foodHandler := NewFoodHandler(d.Foods)
	recipeHandler := NewRecipeHandler(d.Recipes)
	mealLogHandler := NewMealLogHandler(d.MealLogs)

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(d.Log))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
		})
	}
	router.GET("/health", health)

	requireAuth := middleware.AuthMiddleware(d.Auth, false)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", health)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/change-password", requireAuth, authHandler.ChangePassword)
		}

		users := v1.Group("/users/me")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.Me)
			users.PATCH("", userHandler.UpdateProfile)
			users.PATCH("/goals", userHandler.UpdateGoals)
			users.GET("/suggestions", userHandler.Suggestions)
		}

		foods := v1.Group("/foods")
		foods.Use(requireAuth)
		{
			foods.GET("/search", foodHandler.Search)
			foods.GET("/barcode/:barcode", foodHandler.GetByBarcode)
			foods.GET("/:id", foodHandler.Get)
			foods.POST("", foodHandler.Create)
		}

		recipes := v1.Group("/recipes")
		recipes.Use(requireAuth)
		{
			recipes.POST("", recipeHandler.Create)
			recipes.GET("", recipeHandler.List)
			recipes.GET("/:id", recipeHandler.Get)
			recipes.PUT("/:id", recipeHandler.Update)
			recipes.PATCH("/:id", recipeHandler.Update)
			recipes.DELETE("/:id", recipeHandler.Delete)
		}

		logs := v1.Group("/meal-logs")
		logs.Use(requireAuth)
		{
			logs.POST("", mealLogHandler.Create)
			logs.GET("", mealLogHandler.List)
			logs.GET("/summary", mealLogHandler.RangeSummary)
			logs.DELETE("/:id", mealLogHandler.Delete)
		}

		if d.Hub != nil {
			ws := NewRealtimeHandler(d.Hub, d.Log)
			v1.GET("/ws", middleware.AuthMiddleware(d.Auth, true), ws.Connect)
		}
	}

	return router
}
