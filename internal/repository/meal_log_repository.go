package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snedea/meal-planner-app/internal/models"
	"github.com/snedea/meal-planner-app/internal/nutrition"
)

var (
	ErrMealLogNotFound = errors.New("meal log not found")
)

// MealLogRepository handles meal log persistence.
type MealLogRepository struct {
	db *gorm.DB
}

// NewMealLogRepository creates a new MealLogRepository.
func NewMealLogRepository(db *gorm.DB) *MealLogRepository {
	return &MealLogRepository{db: db}
}

// Create inserts a meal log.
func (r *MealLogRepository) Create(log *models.MealLog) error {
	return r.db.Omit("Food", "Recipe").Create(log).Error
}

// GetByID retrieves a meal log by ID.
func (r *MealLogRepository) GetByID(id uuid.UUID) (*models.MealLog, error) {
	var log models.MealLog
	err := r.db.First(&log, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealLogNotFound
	}
	return &log, err
}

// ListByDate returns a user's logs for one date with their food or recipe,
// timed entries first in time order, then by creation time.
func (r *MealLogRepository) ListByDate(userID uuid.UUID, date string) ([]models.MealLog, error) {
	var logs []models.MealLog
	err := r.db.
		Preload("Food").
		Preload("Food.Nutrition").
		Preload("Recipe").
		Where("user_id = ? AND logged_date = ?", userID, date).
		Order("CASE WHEN logged_time IS NULL THEN 1 ELSE 0 END, logged_time ASC, created_at ASC").
		Find(&logs).Error
	return logs, err
}

// ListRange returns a user's logs between start and end inclusive, without
// associations.
func (r *MealLogRepository) ListRange(userID uuid.UUID, start, end string) ([]models.MealLog, error) {
	var logs []models.MealLog
	err := r.db.
		Where("user_id = ? AND logged_date >= ? AND logged_date <= ?", userID, start, end).
		Order("logged_date ASC, created_at ASC").
		Find(&logs).Error
	return logs, err
}

// CountForMeal counts a user's logs of one meal type on a date.
func (r *MealLogRepository) CountForMeal(userID uuid.UUID, date string, meal nutrition.MealType) (int64, error) {
	var count int64
	err := r.db.Model(&models.MealLog{}).
		Where("user_id = ? AND logged_date = ? AND meal_type = ?", userID, date, meal).
		Count(&count).Error
	return count, err
}

// UserIDsForDate returns the distinct users who logged anything on date.
func (r *MealLogRepository) UserIDsForDate(date string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.MealLog{}).
		Where("logged_date = ?", date).
		Distinct().
		Pluck("user_id", &ids).Error
	return ids, err
}

// Delete removes a meal log.
func (r *MealLogRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.MealLog{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMealLogNotFound
	}
	return nil
}

// DeleteBefore removes every log dated before date and returns how many went.
func (r *MealLogRepository) DeleteBefore(date string) (int64, error) {
	res := r.db.Where("logged_date < ?", date).Delete(&models.MealLog{})
	return res.RowsAffected, res.Error
}
