package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snedea/meal-planner-app/internal/nutrition"
)

// ActivityLevel describes how active a user is during a typical week.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:        1.2,
	ActivityLightlyActive:    1.375,
	ActivityModeratelyActive: 1.55,
	ActivityVeryActive:       1.725,
	ActivityExtremelyActive:  1.9,
}

// Multiplier returns the TDEE factor for the level, or 0 if it is unknown.
func (a ActivityLevel) Multiplier() float64 {
	return activityMultipliers[a]
}

// Valid reports whether a is a known activity level.
func (a ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// GoalType is the direction a user wants their weight to move.
type GoalType string

const (
	GoalLoseWeight     GoalType = "lose_weight"
	GoalMaintainWeight GoalType = "maintain_weight"
	GoalGainWeight     GoalType = "gain_weight"
)

// Valid reports whether g is a known goal type.
func (g GoalType) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalMaintainWeight, GoalGainWeight:
		return true
	}
	return false
}

// User represents a registered user with their profile and daily targets.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	FirstName    string         `gorm:"size:100" json:"first_name,omitempty"`
	LastName     string         `gorm:"size:100" json:"last_name,omitempty"`
	DateOfBirth  *string        `gorm:"size:10" json:"date_of_birth,omitempty"`
	Gender       string         `gorm:"size:20" json:"gender,omitempty"`
	HeightCm     *float64       `json:"height_cm,omitempty"`
	WeightKg     *float64       `json:"weight_kg,omitempty"`

	ActivityLevel ActivityLevel `gorm:"size:30" json:"activity_level,omitempty"`
	GoalType      GoalType      `gorm:"size:30" json:"goal_type,omitempty"`

	DailyCalorieTarget *float64 `json:"daily_calorie_target,omitempty"`
	ProteinTargetG     *float64 `json:"protein_target_g,omitempty"`
	CarbsTargetG       *float64 `json:"carbs_target_g,omitempty"`
	FatsTargetG        *float64 `json:"fats_target_g,omitempty"`
	WaterTargetMl      *int     `json:"water_target_ml,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}

// TableName returns the table name for User model.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a fresh id.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Targets resolves the user's daily targets, falling back to defaults for
// anything unset.
func (u *User) Targets() nutrition.Targets {
	return nutrition.ResolveTargets(u.DailyCalorieTarget, u.ProteinTargetG, u.CarbsTargetG, u.FatsTargetG)
}

// BMI calculates the user's Body Mass Index.
func (u *User) BMI() float64 {
	if u.HeightCm == nil || u.WeightKg == nil || *u.HeightCm <= 0 {
		return 0
	}
	heightInMeters := *u.HeightCm / 100
	return *u.WeightKg / (heightInMeters * heightInMeters)
}

// Age calculates the user's age in whole years at now.
func (u *User) Age(now time.Time) int {
	if u.DateOfBirth == nil {
		return 0
	}
	dob, err := time.Parse("2006-01-02", *u.DateOfBirth)
	if err != nil {
		return 0
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// TDEE estimates Total Daily Energy Expenditure using the Mifflin-St Jeor
// equation and the user's activity level. It returns 0 when height, weight or
// activity level is missing.
func (u *User) TDEE(now time.Time) float64 {
	if u.HeightCm == nil || u.WeightKg == nil || *u.HeightCm <= 0 || *u.WeightKg <= 0 {
		return 0
	}
	m := u.ActivityLevel.Multiplier()
	if m == 0 {
		return 0
	}

	age := float64(u.Age(now))
	bmr := 10**u.WeightKg + 6.25**u.HeightCm - 5*age
	if u.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr * m
}

// SuggestedCalories adjusts TDEE for the user's goal: 500 kcal below for
// weight loss and 300 kcal above for gain.
func (u *User) SuggestedCalories(now time.Time) float64 {
	tdee := u.TDEE(now)
	if tdee == 0 {
		return 0
	}
	switch u.GoalType {
	case GoalLoseWeight:
		return tdee - 500
	case GoalGainWeight:
		return tdee + 300
	}
	return tdee
}
