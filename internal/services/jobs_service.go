package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/snedea/meal-planner-app/internal/nutrition"
	"github.com/snedea/meal-planner-app/internal/realtime"
	"github.com/snedea/meal-planner-app/internal/repository"
	"github.com/snedea/meal-planner-app/pkg/config"
)

// JobsService runs scheduled background work.
type JobsService struct {
	userRepo  *repository.UserRepository
	logRepo   *repository.MealLogRepository
	publisher realtime.Publisher
	cfg       config.JobsConfig
	log       *zap.Logger
	cron      *cron.Cron
	now       func() time.Time
}

// NewJobsService creates a new JobsService. publisher may be nil.
func NewJobsService(
	userRepo *repository.UserRepository,
	logRepo *repository.MealLogRepository,
	publisher realtime.Publisher,
	cfg config.JobsConfig,
	log *zap.Logger,
) *JobsService {
	cl := cronLogger{log.Sugar()}
	return &JobsService{
		userRepo:  userRepo,
		logRepo:   logRepo,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
		cron:      cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		now:       time.Now,
	}
}

// Start registers the configured schedules and starts the scheduler.
func (s *JobsService) Start() error {
	jobs := []struct {
		name     string
		schedule string
		run      func()
	}{
		{"daily-report", s.cfg.DailyReportSchedule, func() { s.DailyReport() }},
		{"cleanup", s.cfg.CleanupSchedule, func() { s.Cleanup() }},
		{"reminders", s.cfg.ReminderSchedule, func() { s.SendReminders() }},
	}

	for _, j := range jobs {
		if j.schedule == "" {
			s.log.Info("job disabled", zap.String("job", j.name))
			continue
		}
		if _, err := s.cron.AddFunc(j.schedule, j.run); err != nil {
			return fmt.Errorf("invalid schedule %q for %s: %w", j.schedule, j.name, err)
		}
		s.log.Info("job scheduled", zap.String("job", j.name), zap.String("schedule", j.schedule))
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs or ctx.
func (s *JobsService) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("all background jobs stopped")
	case <-ctx.Done():
		s.log.Warn("background jobs still running at shutdown")
	}
}

// DailyReport summarizes yesterday for every user who logged something and
// pushes the report to their open sockets. It returns how many users were
// reported.
func (s *JobsService) DailyReport() int {
	date := s.now().AddDate(0, 0, -1).Format(dateLayout)

	userIDs, err := s.logRepo.UserIDsForDate(date)
	if err != nil {
		s.log.Error("failed to list users for daily report", zap.Error(err))
		return 0
	}

	reported := 0
	for _, id := range userIDs {
		user, err := s.userRepo.GetByID(id)
		if err != nil {
			s.log.Warn("skipping report for unknown user", zap.String("user_id", id.String()))
			continue
		}
		logs, err := s.logRepo.ListByDate(id, date)
		if err != nil {
			s.log.Error("failed to load logs for report", zap.String("user_id", id.String()), zap.Error(err))
			continue
		}

		summary := nutrition.ComputeDailySummary(logs, user.Targets())
		s.log.Info("daily summary",
			zap.String("user_id", id.String()),
			zap.String("date", date),
			zap.Int("meals", len(logs)),
			zap.Float64("calories", summary.TotalCalories),
			zap.Float64("calorie_target", summary.CalorieTarget),
			zap.Float64("percent", nutrition.Percent(summary.TotalCalories, summary.CalorieTarget)),
		)
		if s.publisher != nil {
			s.publisher.Publish(id, realtime.Event{Type: realtime.EventReport, Date: date, Summary: &summary})
		}
		reported++
	}
	return reported
}

// Cleanup removes meal logs older than the retention period and returns the
// number removed. A retention of zero keeps everything.
func (s *JobsService) Cleanup() int64 {
	if s.cfg.RetentionDays <= 0 {
		return 0
	}
	cutoff := s.now().AddDate(0, 0, -s.cfg.RetentionDays).Format(dateLayout)

	removed, err := s.logRepo.DeleteBefore(cutoff)
	if err != nil {
		s.log.Error("failed to clean up old meal logs", zap.Error(err))
		return 0
	}
	s.log.Info("cleaned up old meal logs", zap.Int64("removed", removed), zap.String("before", cutoff))
	return removed
}

// reminderMeal returns the meal whose logging window contains hour.
func reminderMeal(hour int) (nutrition.MealType, bool) {
	switch {
	case hour >= 7 && hour < 10:
		return nutrition.MealTypeBreakfast, true
	case hour >= 11 && hour < 14:
		return nutrition.MealTypeLunch, true
	case hour >= 17 && hour < 20:
		return nutrition.MealTypeDinner, true
	}
	return "", false
}

// SendReminders nudges active users who have not logged the current meal yet
// and returns how many were reminded.
func (s *JobsService) SendReminders() int {
	now := s.now()
	meal, ok := reminderMeal(now.Hour())
	if !ok {
		return 0
	}

	users, err := s.userRepo.GetActiveUsers()
	if err != nil {
		s.log.Error("failed to get active users for reminders", zap.Error(err))
		return 0
	}

	today := now.Format(dateLayout)
	sent := 0
	for _, u := range users {
		count, err := s.logRepo.CountForMeal(u.ID, today, meal)
		if err != nil {
			s.log.Error("failed to count meals", zap.String("user_id", u.ID.String()), zap.Error(err))
			continue
		}
		if count > 0 {
			continue
		}
		if s.publisher != nil {
			s.publisher.Publish(u.ID, realtime.Event{
				Type:     realtime.EventReminder,
				Date:     today,
				MealType: meal,
				Message:  fmt.Sprintf("You haven't logged %s yet", meal),
			})
		}
		sent++
	}
	s.log.Debug("meal reminders sent", zap.String("meal", string(meal)), zap.Int("users", sent))
	return sent
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
