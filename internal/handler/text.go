package handler

import (
	"errors"
	"strings"
	"time"

	"polarproperty/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText consumes one free-text message for a user awaiting a submission.
// Text from idle users is ignored.
func (h *Handler) handleText(c tele.Context) error {
	sender := c.Sender()
	text := c.Text()

	// Ignore commands (starting with /)
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		return nil
	}

	state, err := h.sessions.Get(sender.ID)
	if err != nil {
		return err
	}

	kind, ok := domain.KindForState(state)
	if !ok {
		return nil
	}

	// One message per awaiting state, never accumulated
	if err := h.sessions.Clear(sender.ID); err != nil {
		h.logger.Error("Failed to clear state",
			zap.Error(err),
			zap.Int64("user_id", sender.ID),
		)
	}

	sub := &domain.Submission{
		Kind:      kind,
		UserID:    sender.ID,
		FirstName: sender.FirstName,
		Username:  sender.Username,
		Text:      text,
		SentAt:    sentAt(c),
	}

	h.logger.Info("Submission received",
		zap.Int64("user_id", sender.ID),
		zap.String("kind", string(kind)),
	)

	ack := requestAcceptedText
	if kind == domain.KindQuestion {
		ack = questionAcceptedText
	}
	replyErr := c.Send(ack, backMarkup())

	if err := h.submissions.Submit(sub); err != nil {
		if errors.Is(err, domain.ErrNotificationSkipped) {
			h.logger.Debug("Admin notification skipped", zap.Int64("user_id", sender.ID))
		} else {
			h.logger.Error("Failed to notify admin",
				zap.Error(err),
				zap.Int64("user_id", sender.ID),
				zap.String("kind", string(kind)),
			)
		}
	}

	return replyErr
}

func sentAt(c tele.Context) time.Time {
	if msg := c.Message(); msg != nil && msg.Unixtime != 0 {
		return msg.Time()
	}
	return time.Now()
}
