package services

import (
	"context"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/repositories"
	"github.com/Manaregr8/affiliate-platform/internal/config"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderService runs the daily stale-lead sweep. Leads still untouched
// after the configured number of days are counted, logged for the
// counsellor team and exported as a gauge.
type ReminderService struct {
	studentRepo repositories.StudentRepository
	cfg         *config.Config
	cron        *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(studentRepo repositories.StudentRepository, cfg *config.Config) *ReminderService {
	return &ReminderService{
		studentRepo: studentRepo,
		cfg:         cfg,
		cron:        cron.New(),
	}
}

// Start schedules the daily sweep
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Reminder.Schedule, s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	zap.L().Info("reminder service started",
		zap.String("schedule", s.cfg.Reminder.Schedule),
		zap.Int("stale_days", s.cfg.Reminder.StaleDays))
	return nil
}

// Stop stops the scheduler, waiting for a running sweep to finish
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.L().Info("reminder service stopped")
}

func (s *ReminderService) sweep() {
	count, err := s.studentRepo.CountUntouchedOlderThan(context.Background(), s.cfg.Reminder.StaleDays)
	if err != nil {
		zap.L().Error("stale lead sweep failed", zap.Error(err))
		return
	}

	metrics.StaleUntouchedLeads.Set(float64(count))
	if count > 0 {
		zap.L().Warn("leads awaiting first counsellor touch",
			zap.Int64("count", count),
			zap.Int("older_than_days", s.cfg.Reminder.StaleDays))
	}
}
