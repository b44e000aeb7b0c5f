package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/snedea/meal-planner-app/internal/models"
	"github.com/snedea/meal-planner-app/internal/nutrition"
	"github.com/snedea/meal-planner-app/internal/repository"
)

// UserService manages profiles and daily targets.
type UserService struct {
	userRepo *repository.UserRepository
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, now: time.Now}
}

// UpdateProfileRequest carries the profile fields to change. Nil fields are
// left alone.
type UpdateProfileRequest struct {
	FirstName     *string               `json:"first_name"`
	LastName      *string               `json:"last_name"`
	DateOfBirth   *string               `json:"date_of_birth"`
	Gender        *string               `json:"gender"`
	HeightCm      *float64              `json:"height_cm"`
	WeightKg      *float64              `json:"weight_kg"`
	ActivityLevel *models.ActivityLevel `json:"activity_level"`
	GoalType      *models.GoalType      `json:"goal_type"`
}

// UpdateGoalsRequest carries daily targets. Nil fields are left alone.
type UpdateGoalsRequest struct {
	DailyCalorieTarget *float64 `json:"daily_calorie_target"`
	ProteinTargetG     *float64 `json:"protein_target_g"`
	CarbsTargetG       *float64 `json:"carbs_target_g"`
	FatsTargetG        *float64 `json:"fats_target_g"`
	WaterTargetMl      *int     `json:"water_target_ml"`
}

// Suggestions are derived from the user's body measurements.
type Suggestions struct {
	BMI               float64           `json:"bmi"`
	TDEE              float64           `json:"tdee"`
	SuggestedCalories float64           `json:"suggested_calories"`
	CurrentTargets    nutrition.Targets `json:"current_targets"`
}

// Get returns the user with the given id.
func (s *UserService) Get(userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile applies req to the user's profile.
func (s *UserService) UpdateProfile(userID uuid.UUID, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.DateOfBirth != nil {
		if _, err := time.Parse(dateLayout, *req.DateOfBirth); err != nil {
			return nil, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", ErrValidation)
		}
		user.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		user.Gender = strings.ToLower(strings.TrimSpace(*req.Gender))
	}
	if req.HeightCm != nil {
		if err := positive("height_cm", *req.HeightCm); err != nil {
			return nil, err
		}
		user.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		if err := positive("weight_kg", *req.WeightKg); err != nil {
			return nil, err
		}
		user.WeightKg = req.WeightKg
	}
	if req.ActivityLevel != nil {
		if !req.ActivityLevel.Valid() {
			return nil, fmt.Errorf("%w: unknown activity_level %q", ErrValidation, *req.ActivityLevel)
		}
		user.ActivityLevel = *req.ActivityLevel
	}
	if req.GoalType != nil {
		if !req.GoalType.Valid() {
			return nil, fmt.Errorf("%w: unknown goal_type %q", ErrValidation, *req.GoalType)
		}
		user.GoalType = *req.GoalType
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateGoals applies req to the user's daily targets.
func (s *UserService) UpdateGoals(userID uuid.UUID, req UpdateGoalsRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	targets := []struct {
		name string
		src  *float64
		dst  **float64
	}{
		{"daily_calorie_target", req.DailyCalorieTarget, &user.DailyCalorieTarget},
		{"protein_target_g", req.ProteinTargetG, &user.ProteinTargetG},
		{"carbs_target_g", req.CarbsTargetG, &user.CarbsTargetG},
		{"fats_target_g", req.FatsTargetG, &user.FatsTargetG},
	}
	for _, t := range targets {
		if t.src == nil {
			continue
		}
		if err := positive(t.name, *t.src); err != nil {
			return nil, err
		}
		*t.dst = t.src
	}
	if req.WaterTargetMl != nil {
		if *req.WaterTargetMl <= 0 {
			return nil, fmt.Errorf("%w: water_target_ml must be greater than zero", ErrValidation)
		}
		user.WaterTargetMl = req.WaterTargetMl
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Suggestions computes BMI and a TDEE based calorie target for the user.
func (s *UserService) Suggestions(userID uuid.UUID) (*Suggestions, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &Suggestions{
		BMI:               round1(user.BMI()),
		TDEE:              math.Round(user.TDEE(now)),
		SuggestedCalories: math.Round(user.SuggestedCalories(now)),
		CurrentTargets:    user.Targets(),
	}, nil
}

func positive(field string, v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be greater than zero", ErrValidation, field)
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
