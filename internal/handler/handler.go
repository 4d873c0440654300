package handler

import (
	"polarproperty/internal/domain"
	"polarproperty/internal/repository"
	"polarproperty/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler is the conversation controller: it turns updates into replies
// and per-user state transitions
type Handler struct {
	bot          *tele.Bot
	sessions     repository.SessionStore
	subscription *service.SubscriptionService
	catalog      *service.CatalogService
	submissions  *service.SubmissionService
	photoURL     string
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	sessions repository.SessionStore,
	subscription *service.SubscriptionService,
	catalog *service.CatalogService,
	submissions *service.SubmissionService,
	photoURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		sessions:     sessions,
		subscription: subscription,
		catalog:      catalog,
		submissions:  submissions,
		photoURL:     photoURL,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	for _, btn := range []tele.Btn{btnCatalog, btnRequest, btnQuestion, btnContact, btnBack} {
		action := domain.MenuAction(btn.Unique)
		h.bot.Handle(&btn, func(c tele.Context) error {
			return h.dispatch(c, action)
		})
	}

	// Generic callback handler for stale or unrecognised buttons
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// Inline keyboard buttons
var (
	btnCatalog = tele.Btn{
		Unique: string(domain.ActionCatalog),
		Text:   "📂 Каталог объектов",
	}
	btnRequest = tele.Btn{
		Unique: string(domain.ActionRequest),
		Text:   "📩 Оставить заявку",
	}
	btnQuestion = tele.Btn{
		Unique: string(domain.ActionQuestion),
		Text:   "💬 Задать вопрос",
	}
	btnContact = tele.Btn{
		Unique: string(domain.ActionContact),
		Text:   "📞 Контакты",
	}
	btnBack = tele.Btn{
		Unique: string(domain.ActionMenu),
		Text:   "🔙 Назад в меню",
	}
	// Loops back into the catalog branch
	btnRecheck = tele.Btn{
		Unique: string(domain.ActionCatalog),
		Text:   "✅ Проверить подписку",
	}
)

// mainMenuMarkup returns the four-option main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnCatalog),
		menu.Row(btnRequest),
		menu.Row(btnQuestion),
		menu.Row(btnContact),
	)
	return menu
}

// backMarkup returns a single "back to menu" control
func backMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnBack))
	return menu
}

// subscribeMarkup offers the channel link, a re-check control and the way back
func subscribeMarkup(channel service.Channel) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.URL("📢 Подписаться на канал", channel.URL())),
		menu.Row(btnRecheck),
		menu.Row(btnBack),
	)
	return menu
}
