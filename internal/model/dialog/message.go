package dialog

// Roles of stored conversation turns, matching the chat-completion wire roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single stored turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
