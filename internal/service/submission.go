package service

import (
	"fmt"

	"polarproperty/internal/domain"
	"polarproperty/internal/repository"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// SubmissionService journals submissions and forwards them to the administrator
type SubmissionService struct {
	sender  Sender
	adminID int64
	repo    repository.SubmissionRepository
	logger  *zap.Logger
}

// NewSubmissionService creates a new submission service.
// adminID 0 disables notifications, a nil repo disables the journal.
func NewSubmissionService(
	sender Sender,
	adminID int64,
	repo repository.SubmissionRepository,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		sender:  sender,
		adminID: adminID,
		repo:    repo,
		logger:  logger,
	}
}

// Submit records the submission and sends one notification to the administrator.
// Journal failures are logged only. Notification is attempted exactly once.
func (s *SubmissionService) Submit(sub *domain.Submission) error {
	if s.repo != nil {
		if err := s.repo.SaveSubmission(sub); err != nil {
			s.logger.Warn("Failed to journal submission",
				zap.Error(err),
				zap.Int64("user_id", sub.UserID),
				zap.String("kind", string(sub.Kind)),
			)
		}
	}

	if s.adminID == 0 {
		return domain.ErrNotificationSkipped
	}

	if _, err := s.sender.Send(tele.ChatID(s.adminID), sub.AdminMessage()); err != nil {
		return fmt.Errorf("%w: notify admin %d: %w", domain.ErrDeliveryFailed, s.adminID, err)
	}
	sub.Notified = true

	if s.repo != nil && sub.ID != 0 {
		if err := s.repo.MarkNotified(sub.ID); err != nil {
			s.logger.Warn("Failed to mark submission notified",
				zap.Error(err),
				zap.Int64("submission_id", sub.ID),
			)
		}
	}
	return nil
}
