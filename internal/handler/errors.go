package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// HandleError is the bot's OnError hook. Every failure is logged with a
// stack trace and the update is dropped; nothing is sent to the user.
func (h *Handler) HandleError(err error, c tele.Context) {
	fields := []zap.Field{
		zap.Error(err),
		zap.Stack("stack"),
	}
	if c != nil {
		fields = append(fields, zap.Int("update_id", c.Update().ID))
		if sender := c.Sender(); sender != nil {
			fields = append(fields, zap.Int64("user_id", sender.ID))
		}
	}

	h.logger.Error("Exception while handling an update", fields...)
}
