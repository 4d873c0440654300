package service

import (
	"polarproperty/internal/repository"

	"go.uber.org/zap"
)

// MaintenanceService purges expired sessions and old journal entries
type MaintenanceService struct {
	sessions      repository.SessionStore
	submissions   repository.SubmissionRepository
	retentionDays int
	logger        *zap.Logger
}

// NewMaintenanceService creates a new maintenance service.
// submissions may be nil when the journal is disabled.
func NewMaintenanceService(
	sessions repository.SessionStore,
	submissions repository.SubmissionRepository,
	retentionDays int,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		sessions:      sessions,
		submissions:   submissions,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Cleanup removes expired sessions and submissions past retention
func (s *MaintenanceService) Cleanup() error {
	removed, err := s.sessions.Cleanup()
	if err != nil {
		s.logger.Error("Failed to cleanup sessions", zap.Error(err))
		return err
	}
	s.logger.Info("Expired sessions removed", zap.Int("count", removed))

	if s.submissions == nil || s.retentionDays <= 0 {
		return nil
	}

	s.logger.Info("Starting cleanup of old submissions", zap.Int("retention_days", s.retentionDays))

	if err := s.submissions.CleanOldSubmissions(s.retentionDays); err != nil {
		s.logger.Error("Failed to cleanup old submissions", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}
