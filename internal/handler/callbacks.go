package handler

import (
	"errors"
	"strings"
	"unicode"

	"polarproperty/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// render edits the message behind a callback in place. If there is no such
// message or the edit is rejected (too old, unchanged, a photo), a new message is sent.
func (h *Handler) render(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil || c.Callback().Message == nil {
		return c.Send(text, markup)
	}

	err := c.Edit(text, markup)
	if err == nil {
		return nil
	}

	h.logger.Debug("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", c.Sender().ID),
		zap.Bool("not_modified", strings.Contains(err.Error(), "message is not modified")),
	)
	return c.Send(text, markup)
}

// handleCallback handles callbacks not matched by a registered button
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Unique)
	if data == "" {
		data = cleanCallbackData(callback.Data)
	}

	action, ok := domain.ParseMenuAction(data)
	if !ok {
		h.logger.Warn("Unhandled callback",
			zap.String("data", callback.Data),
			zap.String("unique", callback.Unique),
			zap.Int64("user_id", c.Sender().ID),
		)
		return c.Respond()
	}
	return h.dispatch(c, action)
}

// dispatch answers the callback and runs the branch for the action
func (h *Handler) dispatch(c tele.Context, action domain.MenuAction) error {
	userID := c.Sender().ID

	h.logger.Info("Menu action",
		zap.Int64("user_id", userID),
		zap.String("action", string(action)),
	)

	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}

	switch action {
	case domain.ActionCatalog:
		return h.handleCatalog(c)
	case domain.ActionRequest, domain.ActionQuestion:
		return h.handlePrompt(c, action)
	case domain.ActionContact:
		return h.render(c, contactText, backMarkup())
	case domain.ActionMenu:
		return h.render(c, menuText, mainMenuMarkup())
	}
	return nil
}

// handleCatalog releases the catalog document to subscribed users
func (h *Handler) handleCatalog(c tele.Context) error {
	userID := c.Sender().ID
	channel := h.subscription.Channel()

	subscribed, err := h.subscription.IsSubscribed(userID)
	if err != nil {
		return h.render(c, subscriptionUnavailableText(string(channel)), subscribeMarkup(channel))
	}
	if !subscribed {
		h.logger.Info("User is not subscribed", zap.Int64("user_id", userID))
		return h.render(c, subscribeText(string(channel)), subscribeMarkup(channel))
	}

	if err := h.catalog.Send(chatOf(c)); err != nil {
		h.logger.Warn("Catalog not delivered",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Bool("not_found", errors.Is(err, domain.ErrCatalogNotFound)),
		)
		return c.Send(catalogUnavailableText, backMarkup())
	}
	return c.Send(catalogSentText, backMarkup())
}

// handlePrompt asks for a request or a question and waits for the next text.
// Switching from the other awaiting state discards it with a notice.
func (h *Handler) handlePrompt(c tele.Context, action domain.MenuAction) error {
	userID := c.Sender().ID
	next, _ := action.AwaitingState()

	current, err := h.sessions.Get(userID)
	if err != nil {
		return err
	}

	text := requestPromptText
	if action == domain.ActionQuestion {
		text = questionPromptText
	}
	if current.IsAwaiting() && current != next {
		h.logger.Info("Pending submission discarded",
			zap.Int64("user_id", userID),
			zap.String("previous", string(current)),
			zap.String("next", string(next)),
		)
		text = abandonedNoticeText + "\n\n" + text
	}

	if err := c.Send(text); err != nil {
		return err
	}
	return h.sessions.Set(userID, next)
}

// chatOf returns the chat an update came from, or the sender for chatless updates
func chatOf(c tele.Context) tele.Recipient {
	if chat := c.Chat(); chat != nil {
		return chat
	}
	return c.Sender()
}
