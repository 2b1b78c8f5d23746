package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dkim/authapi-backend/internal/app/repository"
	"github.com/dkim/authapi-backend/pkg/logger"
)

// ResetAuditScheduler purges password-reset audit rows past the retention
// window. The reset tokens themselves expire in the cache; only the
// relational audit trail needs sweeping.
type ResetAuditScheduler struct {
	cron        *cron.Cron
	requestRepo repository.ResetRequestRepository
	retention   time.Duration
}

func NewResetAuditScheduler(requestRepo repository.ResetRequestRepository, retention time.Duration) *ResetAuditScheduler {
	return &ResetAuditScheduler{
		cron:        cron.New(),
		requestRepo: requestRepo,
		retention:   retention,
	}
}

// Start registers the daily purge job and starts the scheduler
func (s *ResetAuditScheduler) Start() error {
	// Daily at 04:00
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		cutoff := time.Now().Add(-s.retention)

		deleted, err := s.requestRepo.DeleteOlderThan(cutoff)
		if err != nil {
			logger.Error("Failed to purge password reset audit rows", err)
			return
		}

		logger.Info("Purged password reset audit rows", map[string]interface{}{
			"deleted": deleted,
			"cutoff":  cutoff,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for reset audit purge", err)
		return err
	}

	s.cron.Start()
	logger.Info("Reset audit scheduler started successfully (daily at 4:00 AM)", map[string]interface{}{
		"retention": s.retention.String(),
	})

	return nil
}

// Stop stops the scheduler
func (s *ResetAuditScheduler) Stop() {
	logger.Info("Stopping reset audit scheduler...")
	s.cron.Stop()
}
