package handler

import "fmt"

const (
	welcomeText = "🏠 Добро пожаловать в PolarPropertyBot!\n\n" +
		"🔑 Поможем найти квартиру, дом или инвестиционный объект.\n" +
		"💼 Работаем с недвижимостью по всему Тайланду.\n\n" +
		"Выберите, что вас интересует:"

	menuText = "🏠 Главное меню\n\nВыберите действие:"

	catalogSentText = "✅ Каталог отправлен! Изучайте объекты и обращайтесь с вопросами."

	catalogUnavailableText = "⚠️ Каталог временно недоступен. " +
		"Пожалуйста, попробуйте позже или обратитесь к нашим менеджерам."

	contactText = "📞 Наши контакты:\n\n" +
		"👩‍💼 Директор: Любовь Данилова\n" +
		"📱 Телефон: +7 (999) 123-45-67\n" +
		"📨 Telegram: @lyubov_danilove\n" +
		"🕒 Работаем: ПН-ПТ 9:00-18:00"

	requestPromptText = "✍️ Оставьте заявку на подбор недвижимости\n\n" +
		"Укажите:\n" +
		"• Ваше имя\n" +
		"• Телефон\n" +
		"• Город\n" +
		"• Тип недвижимости\n" +
		"• Бюджет\n\n" +
		"Пример: Иван Петров, +7999123456, Москва, квартира 2-комн, до 15 млн"

	questionPromptText = "💬 Задайте ваш вопрос\n\n" +
		"Наши менеджеры ответят в ближайшее время. " +
		"Можете спросить о любых аспектах покупки недвижимости."

	abandonedNoticeText = "ℹ️ Предыдущее незавершённое обращение отменено."

	requestAcceptedText = "✅ Заявка принята!\n\n" +
		"Наш менеджер свяжется с вами в течение 30 минут.\n" +
		"Спасибо за обращение!"

	questionAcceptedText = "✅ Вопрос отправлен!\n\n" +
		"Мы ответим вам в ближайшее время.\n" +
		"Благодарим за интерес к нашим услугам!"
)

func subscribeText(channel string) string {
	return fmt.Sprintf(
		"❗️ Для получения каталога подпишитесь на наш канал: %s\n\n"+
			"После подписки нажмите 'Проверить подписку'",
		channel,
	)
}

func subscriptionUnavailableText(channel string) string {
	return fmt.Sprintf(
		"⚠️ Не удалось проверить подписку на канал %s.\n\n"+
			"Убедитесь, что вы подписаны, и нажмите 'Проверить подписку' ещё раз.",
		channel,
	)
}
