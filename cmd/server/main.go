package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/snedea/meal-planner-app/internal/cache"
	"github.com/snedea/meal-planner-app/internal/database"
	"github.com/snedea/meal-planner-app/internal/external"
	"github.com/snedea/meal-planner-app/internal/handlers"
	"github.com/snedea/meal-planner-app/internal/logger"
	"github.com/snedea/meal-planner-app/internal/realtime"
	"github.com/snedea/meal-planner-app/internal/repository"
	"github.com/snedea/meal-planner-app/internal/services"
	"github.com/snedea/meal-planner-app/pkg/config"
)

func main() {
	cfg := config.Load()

	log := logger.Must(cfg.Server.Debug)
	defer func() { _ = log.Sync() }()

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.Connect(cfg.Database, log, cfg.Server.Debug)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Search cache
	var searchCache cache.Cache = cache.NewMemory()
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedis(context.Background(), cfg.Redis.URL, "meal-planner:")
		if err != nil {
			log.Warn("redis unavailable, using in-memory cache", zap.Error(err))
		} else {
			defer func() { _ = rc.Close() }()
			searchCache = rc
		}
	}

	// External food providers
	providers, err := external.New(cfg.External.Providers, external.Options{
		OpenFoodFactsURL: cfg.External.OpenFoodFactsURL,
		USDAURL:          cfg.External.USDAURL,
		USDAAPIKey:       cfg.External.USDAAPIKey,
		Timeout:          cfg.External.Timeout,
	})
	if err != nil {
		log.Fatal("invalid food provider configuration", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	mealLogRepo := repository.NewMealLogRepository(db)

	hub := realtime.NewHub(log, originChecker(cfg.CORS.AllowedOrigins))

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.Auth)
	foodService := services.NewFoodService(foodRepo, external.NewChain(log, providers...), searchCache, services.FoodSearchOptions{
		MinLocalResults: cfg.External.MinLocalResults,
		DefaultLimit:    cfg.External.DefaultSearchSize,
		CacheTTL:        cfg.Redis.CacheTTL,
	}, log)
	mealLogService := services.NewMealLogService(mealLogRepo, foodRepo, recipeRepo, userRepo, hub, log)

	jobs := services.NewJobsService(userRepo, mealLogRepo, hub, cfg.Jobs, log)
	if err := jobs.Start(); err != nil {
		log.Fatal("failed to start background jobs", zap.Error(err))
	}

	router := handlers.NewRouter(handlers.Deps{
		Auth:     authService,
		Users:    services.NewUserService(userRepo),
		Foods:    foodService,
		Recipes:  services.NewRecipeService(recipeRepo, foodRepo),
		MealLogs: mealLogService,
		Hub:      hub,
		Log:      log,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      c.Handler(router),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("starting server", zap.String("port", cfg.Server.Port), zap.Bool("postgres", database.IsPostgres(cfg.Database.URL)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	jobs.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// originChecker accepts websocket upgrades from the configured CORS origins
// and from clients that send no Origin header.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set["*"] || set[origin]
	}
}
