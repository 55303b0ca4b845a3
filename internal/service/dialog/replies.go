package dialog

// User-facing texts, verbatim from the product copy.
const (
	greetingText = "Привет! Я — «Виртуальный респондент».\n" +
		"• Выбери персону (или оставь по умолчанию)\n" +
		"• Напиши любой вопрос — отвечу от первого лица\n" +
		"• В конце используй /summary для итогов"

	helpText = "/start — начать заново\n" +
		"/summary — краткий отчёт по текущему диалогу\n" +
		"Также можно в любой момент писать вопросы."

	pickPersonaText        = "Выбери персону:"
	personaNotFoundText    = "Не нашёл такую персону. Попробуй ещё раз."
	personaAppliedFormat   = "Персона установлена: *%s*.\n\n%s"
	detailCapturedText     = "Отлично, контекст зафиксирован. Можешь начать задавать вопросы пользователю."
	beginChatText          = "Ок, пиши вопрос. Я отвечу от лица выбранной персоны."
	summaryHintText        = "В конце сеанса отправь команду /summary — соберу выводы и инсайты."
	backHomeText           = "Готово. Можешь начать чат или выбрать персону."
	nothingToSummarizeText = "Пока нечего суммировать — напиши пару вопросов."
	chatFailureText        = "Хм, у меня сейчас сложности с ответом. Попробуй ещё раз через минуту."
	summaryFailureText     = "Не удалось собрать сводку. Попробуй ещё раз позже."

	noPersonaTitle      = "Без персоны"
	summaryIntroFormat  = "Отчёт по персоне: *%s*"
	summarySegmentLabel = "\nУточнение сегмента: "
	summaryReportHeader = "\n\n📄 Итоги:\n"
)

// Menu labels.
const (
	pickPersonaLabel = "🧑‍🎤 Выбрать персону"
	beginChatLabel   = "💬 Начать чат"
	summaryHintLabel = "📄 Сводка (/summary)"
	backLabel        = "Назад"
)

// Option identifiers understood by HandleOption.
const (
	optionPickPersona = "pick_persona"
	optionBeginChat   = "begin_chat"
	optionSummaryHint = "summary_hint"
	optionBackHome    = "back_home"

	personaOptionPrefix = "persona:"
)

// summaryLogMarker is recorded as the user line of a transcript entry when a
// summary is requested.
const summaryLogMarker = "[/summary]"

// restartPhrases trigger a full session reset from any state. Matched
// case-insensitively against the whole message.
var restartPhrases = []string{"начать заново", "🔄 начать заново"}
