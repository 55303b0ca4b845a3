package dialog

import (
	"github.com/cloudwego/eino/schema"

	"github.com/respondentai/backend/internal/model/dialog"
)

// segmentContextLabel prefixes the captured audience clarification when it is
// appended to the system prompt.
const segmentContextLabel = "\nКонтекст уточнения аудитории: "

// summaryInstruction is the final user-role message of a debrief request.
const summaryInstruction = "Сделай краткий отчёт по нашей беседе: 3–5 пунктов инсайтов, " +
	"что понравилось/не понравилось, ожидания/триггеры, и 3 тестовых next steps для продукта. " +
	"Формат — маркированный список."

// BuildMessages derives the chat-completion request for a normal turn: the
// session's system prompt, with the audience clarification appended when set,
// followed by the stored history, oldest first.
func BuildMessages(st *dialog.State) []*schema.Message {
	prompt := st.SystemPrompt
	if st.SegmentDetail != "" {
		prompt += segmentContextLabel + st.SegmentDetail
	}

	msgs := make([]*schema.Message, 0, len(st.History)+1)
	msgs = append(msgs, schema.SystemMessage(prompt))
	return appendHistory(msgs, st.History)
}

// BuildSummaryMessages derives the one-off debrief request: the raw system
// prompt, the full history and the report instruction. The segment detail is
// surfaced in the reply header rather than in the prompt.
func BuildSummaryMessages(st *dialog.State) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(st.History)+2)
	msgs = append(msgs, schema.SystemMessage(st.SystemPrompt))
	msgs = appendHistory(msgs, st.History)
	return append(msgs, schema.UserMessage(summaryInstruction))
}

func appendHistory(msgs []*schema.Message, history []dialog.Message) []*schema.Message {
	for _, m := range history {
		switch m.Role {
		case dialog.RoleUser:
			msgs = append(msgs, schema.UserMessage(m.Content))
		case dialog.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(m.Content, nil))
		}
	}
	return msgs
}
