package scheduler

import (
	"github.com/mlarina/foodgram-backend/internal/app/service"
	"github.com/mlarina/foodgram-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ResetCleanupScheduler removes expired and used password reset tokens
// once a day so the table does not grow unbounded.
type ResetCleanupScheduler struct {
	cron                 *cron.Cron
	passwordResetService service.PasswordResetService
}

func NewResetCleanupScheduler(passwordResetService service.PasswordResetService) *ResetCleanupScheduler {
	return &ResetCleanupScheduler{
		cron:                 cron.New(),
		passwordResetService: passwordResetService,
	}
}

func (s *ResetCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled password reset cleanup", nil)

		purged, err := s.passwordResetService.PurgeExpired()
		if err != nil {
			logger.Error("Failed to purge password resets from scheduler", err)
			return
		}

		logger.Info("Password reset cleanup finished", map[string]interface{}{
			"purged": purged,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for reset cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Password reset cleanup scheduler started (daily at 3:00 AM)", nil)

	return nil
}

func (s *ResetCleanupScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Password reset cleanup scheduler stopped", nil)
}
