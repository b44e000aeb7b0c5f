package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snedea/meal-planner-app/internal/models"
	"github.com/snedea/meal-planner-app/internal/nutrition"
	"github.com/snedea/meal-planner-app/internal/realtime"
	"github.com/snedea/meal-planner-app/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// MaxRangeDays bounds a range summary request.
	MaxRangeDays = 366
)

var (
	ErrNoLoggedItem   = errors.New("either food_id or recipe_id must be provided")
	ErrBothLoggedItem = errors.New("cannot log both food and recipe in the same entry")
)

// MealLogService records what users eat and summarizes it per day.
type MealLogService struct {
	logRepo    *repository.MealLogRepository
	foodRepo   *repository.FoodRepository
	recipeRepo *repository.RecipeRepository
	userRepo   *repository.UserRepository
	publisher  realtime.Publisher
	log        *zap.Logger
}

// NewMealLogService creates a new MealLogService. publisher may be nil.
func NewMealLogService(
	logRepo *repository.MealLogRepository,
	foodRepo *repository.FoodRepository,
	recipeRepo *repository.RecipeRepository,
	userRepo *repository.UserRepository,
	publisher realtime.Publisher,
	log *zap.Logger,
) *MealLogService {
	return &MealLogService{
		logRepo:    logRepo,
		foodRepo:   foodRepo,
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
		publisher:  publisher,
		log:        log,
	}
}

// CreateMealLogRequest is a new log entry. Exactly one of FoodID and
// RecipeID must be set; for a recipe Quantity counts servings.
type CreateMealLogRequest struct {
	FoodID     *uuid.UUID         `json:"food_id"`
	RecipeID   *uuid.UUID         `json:"recipe_id"`
	Quantity   float64            `json:"quantity"`
	Unit       string             `json:"unit"`
	MealType   nutrition.MealType `json:"meal_type"`
	LoggedDate string             `json:"logged_date"`
	LoggedTime *string            `json:"logged_time"`
	Notes      string             `json:"notes"`
}

// MealLogsResponse is one day of logs with its summary.
type MealLogsResponse struct {
	Logs    []models.MealLog       `json:"logs"`
	Summary nutrition.DailySummary `json:"summary"`
}

// Create validates req, snapshots the nutrition of the logged portion and
// stores the entry.
func (s *MealLogService) Create(userID uuid.UUID, req CreateMealLogRequest) (*models.MealLog, error) {
	item, err := loggedItem(req.FoodID, req.RecipeID)
	if err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}
	meal, err := nutrition.ParseMealType(string(req.MealType))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if err := validDate("logged_date", req.LoggedDate); err != nil {
		return nil, err
	}
	if req.LoggedTime != nil {
		if _, err := time.Parse(timeLayout, *req.LoggedTime); err != nil {
			return nil, fmt.Errorf("%w: logged_time must be HH:MM", ErrValidation)
		}
	}

	entry := &models.MealLog{
		UserID:     userID,
		Quantity:   req.Quantity,
		Unit:       strings.TrimSpace(req.Unit),
		MealType:   meal,
		LoggedDate: req.LoggedDate,
		LoggedTime: req.LoggedTime,
		Notes:      req.Notes,
	}
	entry.SetItem(item)

	snapshot, err := s.snapshot(userID, item, entry)
	if err != nil {
		return nil, err
	}
	entry.SetSnapshot(snapshot)

	if err := s.logRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to log meal: %w", err)
	}

	s.publishSummary(userID, entry.LoggedDate)
	return entry, nil
}

// snapshot resolves item and returns the macros of the logged portion. The
// entry's unit is normalized along the way.
func (s *MealLogService) snapshot(userID uuid.UUID, item nutrition.LoggedItem, entry *models.MealLog) (nutrition.Macros, error) {
	if item.IsRecipe() {
		recipe, err := s.recipeRepo.GetByID(item.ID())
		if err != nil {
			return nutrition.Macros{}, err
		}
		if recipe.UserID != userID && !recipe.IsPublic {
			return nutrition.Macros{}, ErrForbidden
		}
		n, err := recipe.Nutrition()
		if err != nil {
			return nutrition.Macros{}, err
		}
		entry.Unit = "serving"
		return n.PerServing.Macros().Scale(entry.Quantity), nil
	}

	food, err := s.foodRepo.GetByID(item.ID())
	if err != nil {
		return nutrition.Macros{}, err
	}
	if food.Nutrition == nil {
		return nutrition.Macros{}, nutrition.ErrInvalidServingSize
	}
	if entry.Unit == "" {
		entry.Unit = food.Nutrition.ServingUnit
	}
	facts, err := nutrition.ScaleFacts(food.Facts(), entry.Quantity, entry.Unit)
	if err != nil {
		return nutrition.Macros{}, err
	}
	return facts.Macros(), nil
}

// ListByDate returns the user's logs for date and their summary against the
// user's targets.
func (s *MealLogService) ListByDate(userID uuid.UUID, date string) (*MealLogsResponse, error) {
	if err := validDate("date", date); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByDate(userID, date)
	if err != nil {
		return nil, err
	}

	return &MealLogsResponse{
		Logs:    logs,
		Summary: nutrition.ComputeDailySummary(logs, user.Targets()),
	}, nil
}

// Summary returns only the daily summary for date.
func (s *MealLogService) Summary(userID uuid.UUID, date string) (nutrition.DailySummary, error) {
	resp, err := s.ListByDate(userID, date)
	if err != nil {
		return nutrition.DailySummary{}, err
	}
	return resp.Summary, nil
}

// RangeSummary returns per-day totals between start and end inclusive.
func (s *MealLogService) RangeSummary(userID uuid.UUID, start, end string) (*nutrition.RangeSummary, error) {
	if err := validDate("start", start); err != nil {
		return nil, err
	}
	if err := validDate("end", end); err != nil {
		return nil, err
	}
	from, _ := time.Parse(dateLayout, start)
	to, _ := time.Parse(dateLayout, end)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end must not be before start", ErrValidation)
	}
	if to.Sub(from) > MaxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range must not exceed %d days", ErrValidation, MaxRangeDays)
	}

	logs, err := s.logRepo.ListRange(userID, start, end)
	if err != nil {
		return nil, err
	}
	summary := nutrition.ComputeRangeSummary(logs)
	return &summary, nil
}

// Delete removes one of the user's logs.
func (s *MealLogService) Delete(userID, logID uuid.UUID) error {
	entry, err := s.logRepo.GetByID(logID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return ErrForbidden
	}
	if err := s.logRepo.Delete(logID); err != nil {
		return err
	}

	s.publishSummary(userID, entry.LoggedDate)
	return nil
}

func (s *MealLogService) publishSummary(userID uuid.UUID, date string) {
	if s.publisher == nil {
		return
	}
	summary, err := s.Summary(userID, date)
	if err != nil {
		s.log.Warn("failed to compute summary for push",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}
	s.publisher.Publish(userID, realtime.Event{
		Type:    realtime.EventSummary,
		Date:    date,
		Summary: &summary,
	})
}

// loggedItem maps the two optional references onto a LoggedItem with the
// specific error for each invalid combination.
func loggedItem(foodID, recipeID *uuid.UUID) (nutrition.LoggedItem, error) {
	switch {
	case foodID == nil && recipeID == nil:
		return nutrition.LoggedItem{}, ErrNoLoggedItem
	case foodID != nil && recipeID != nil:
		return nutrition.LoggedItem{}, ErrBothLoggedItem
	}
	return nutrition.ItemFromRefs(foodID, recipeID)
}

func validDate(field, value string) error {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrValidation, field)
	}
	return nil
}
