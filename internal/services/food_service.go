package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snedea/meal-planner-app/internal/cache"
	"github.com/snedea/meal-planner-app/internal/external"
	"github.com/snedea/meal-planner-app/internal/models"
	"github.com/snedea/meal-planner-app/internal/nutrition"
	"github.com/snedea/meal-planner-app/internal/repository"
)

const (
	MaxSearchLimit  = 100
	searchKeyPrefix = "food-search:"
)

// FoodSearchOptions tunes the search flow.
type FoodSearchOptions struct {
	MinLocalResults int
	DefaultLimit    int
	CacheTTL        time.Duration
}

// FoodService handles food lookup, search and custom foods.
type FoodService struct {
	foodRepo  *repository.FoodRepository
	providers *external.Chain
	cache     cache.Cache
	opts      FoodSearchOptions
	log       *zap.Logger
}

// NewFoodService creates a new FoodService. providers and c may be nil.
func NewFoodService(foodRepo *repository.FoodRepository, providers *external.Chain, c cache.Cache, opts FoodSearchOptions, log *zap.Logger) *FoodService {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 20
	}
	return &FoodService{
		foodRepo:  foodRepo,
		providers: providers,
		cache:     c,
		opts:      opts,
		log:       log,
	}
}

// CreateFoodRequest describes a user-defined food.
type CreateFoodRequest struct {
	Name        string          `json:"name" binding:"required"`
	Brand       string          `json:"brand"`
	Barcode     string          `json:"barcode"`
	Description string          `json:"description"`
	Nutrition   nutrition.Facts `json:"nutrition"`
}

// Search returns foods matching query, best matches first. Local results are
// topped up from the cache and external providers when there are too few.
func (s *FoodService) Search(ctx context.Context, query string, limit int) ([]models.Food, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: q is required", ErrValidation)
	}
	if limit <= 0 {
		limit = s.opts.DefaultLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	local, err := s.foodRepo.Search(query, limit)
	if err != nil {
		return nil, err
	}
	if len(local) >= s.opts.MinLocalResults || s.providers == nil {
		return local, nil
	}

	key := fmt.Sprintf("%s%s:%d", searchKeyPrefix, strings.ToLower(query), limit)
	if s.cache != nil {
		var cached []models.Food
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("food search cache read failed", zap.Error(err))
		} else if found {
			return cached, nil
		}
	}

	merged := append([]models.Food(nil), local...)
	for _, f := range s.providers.Search(ctx, query, limit) {
		food, err := s.persistExternal(f)
		if err != nil {
			s.log.Warn("failed to store external food",
				zap.String("source", f.Source),
				zap.String("source_id", f.SourceID),
				zap.Error(err),
			)
			continue
		}
		merged = append(merged, *food)
	}

	merged = RankFoods(dedupeFoods(merged), query)
	if len(merged) > limit {
		merged = merged[:limit]
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, merged, s.opts.CacheTTL); err != nil {
			s.log.Warn("food search cache write failed", zap.Error(err))
		}
	}
	return merged, nil
}

// Get returns a food by id.
func (s *FoodService) Get(id uuid.UUID) (*models.Food, error) {
	return s.foodRepo.GetByID(id)
}

// Barcode looks a barcode up locally and then with the providers.
func (s *FoodService) Barcode(ctx context.Context, code string) (*models.Food, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: barcode is required", ErrValidation)
	}

	food, err := s.foodRepo.GetByBarcode(code)
	if err == nil {
		return food, nil
	}
	if !errors.Is(err, repository.ErrFoodNotFound) || s.providers == nil {
		return nil, err
	}

	found, err := s.providers.Barcode(ctx, code)
	if errors.Is(err, external.ErrNotFound) {
		return nil, repository.ErrFoodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("barcode lookup failed: %w", err)
	}
	return s.persistExternal(*found)
}

// CreateCustom stores a food defined by userID.
func (s *FoodService) CreateCustom(userID uuid.UUID, req CreateFoodRequest) (*models.Food, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := validateFacts(req.Nutrition); err != nil {
		return nil, err
	}
	if req.Nutrition.ServingUnit == "" {
		req.Nutrition.ServingUnit = "g"
	}

	food := &models.Food{
		Name:            name,
		Brand:           strings.TrimSpace(req.Brand),
		Barcode:         strings.TrimSpace(req.Barcode),
		Description:     req.Description,
		Source:          models.SourceCustom,
		IsVerified:      false,
		CreatedByUserID: &userID,
		Nutrition:       models.NutritionFromFacts(req.Nutrition),
	}
	if err := s.foodRepo.Create(food); err != nil {
		return nil, err
	}
	return food, nil
}

// persistExternal stores an external food unless one with the same source
// and source id already exists.
func (s *FoodService) persistExternal(f external.Food) (*models.Food, error) {
	source := models.FoodSource(f.Source)
	if f.SourceID != "" {
		existing, err := s.foodRepo.GetBySource(source, f.SourceID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, repository.ErrFoodNotFound) {
			return nil, err
		}
	}

	food := &models.Food{
		Name:        f.Name,
		Brand:       f.Brand,
		Barcode:     f.Barcode,
		Description: f.Description,
		Source:      source,
		SourceID:    f.SourceID,
		IsVerified:  source == models.SourceUSDA,
		Nutrition:   models.NutritionFromFacts(f.Facts),
	}
	if err := s.foodRepo.Create(food); err != nil {
		return nil, err
	}
	return food, nil
}

func validateFacts(f nutrition.Facts) error {
	if f.ServingSize <= 0 || math.IsNaN(f.ServingSize) {
		return fmt.Errorf("%w: nutrition.serving_size must be greater than zero", ErrValidation)
	}
	for name, v := range map[string]float64{
		"calories":  f.Calories,
		"protein_g": f.ProteinG,
		"carbs_g":   f.CarbsG,
		"fats_g":    f.FatsG,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: nutrition.%s must not be negative", ErrValidation, name)
		}
	}
	return nil
}

func dedupeFoods(foods []models.Food) []models.Food {
	seen := make(map[uuid.UUID]bool, len(foods))
	out := foods[:0]
	for _, f := range foods {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		out = append(out, f)
	}
	return out
}

// matchRank orders names by how well they match query: exact, prefix, other.
func matchRank(name, query string) int {
	n := strings.ToLower(name)
	switch {
	case n == query:
		return 0
	case strings.HasPrefix(n, query):
		return 1
	default:
		return 2
	}
}

// RankFoods sorts foods with verified entries first, then by exact, prefix
// and substring name match, then by name. The sort is stable.
func RankFoods(foods []models.Food, query string) []models.Food {
	q := strings.ToLower(strings.TrimSpace(query))
	sort.SliceStable(foods, func(i, j int) bool {
		a, b := foods[i], foods[j]
		if a.IsVerified != b.IsVerified {
			return a.IsVerified
		}
		if ra, rb := matchRank(a.Name, q), matchRank(b.Name, q); ra != rb {
			return ra < rb
		}
		return a.Name < b.Name
	})
	return foods
}
