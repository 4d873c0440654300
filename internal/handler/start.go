package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	if h.photoURL == "" {
		return c.Send(welcomeText, mainMenuMarkup())
	}

	photo := &tele.Photo{
		File:    tele.FromURL(h.photoURL),
		Caption: welcomeText,
	}
	if err := c.Send(photo, mainMenuMarkup()); err != nil {
		h.logger.Warn("Failed to send welcome photo, falling back to text",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Send(welcomeText, mainMenuMarkup())
	}
	return nil
}
