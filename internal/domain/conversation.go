package domain

// ConversationMessage is one turn of the chat history sent by the client.
type ConversationMessage struct {
	Role    Role   `json:"role" validate:"required,oneof=USER ASSISTANT SYSTEM"`
	Content string `json:"content" validate:"max=10000"`
}

// NewConversationMessage builds a message and rejects unknown roles and
// oversized content.
func NewConversationMessage(role Role, content string) (ConversationMessage, error) {
	m := ConversationMessage{Role: role, Content: content}
	if err := check(m); err != nil {
		return ConversationMessage{}, err
	}
	return m, nil
}

// ChatAnswer is the text the chat agent produced and what it cost.
type ChatAnswer struct {
	Text     string        `json:"content" validate:"max=10000"`
	Metadata UsageMetadata `json:"metadata"`
}

// NewChatAnswer builds a ChatAnswer and rejects oversized answers.
func NewChatAnswer(text string, metadata UsageMetadata) (ChatAnswer, error) {
	a := ChatAnswer{Text: text, Metadata: metadata}
	if err := check(a); err != nil {
		return ChatAnswer{}, err
	}
	return a, nil
}

// ChatRequest asks the chat agent about a recipe and has the answer spoken
// in the given voice. Messages may be empty but not null.
type ChatRequest struct {
	Schema   RecipeSchema          `json:"schema" validate:"required"`
	Messages []ConversationMessage `json:"messages" validate:"required,dive"`
	Voice    Voice                 `json:"voice" validate:"required,oneof=VOICE_WOMAN VOICE_MAN"`
	Language Language              `json:"language" validate:"required,oneof=PL EN_US EN_GB DE FR SP"`
}

func (r ChatRequest) Validate() error {
	return check(r)
}
