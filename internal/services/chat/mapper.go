package chat

import (
	"fmt"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
	"github.com/hubertmaka/culinary-agent/internal/services/llm"
)

// ToWire converts a conversation message to the model wire form. Only user
// and assistant turns have one.
func ToWire(m domain.ConversationMessage) (llm.Message, error) {
	switch m.Role {
	case domain.RoleUser:
		return llm.UserMessage{Text: m.Content}, nil
	case domain.RoleAssistant:
		return llm.AssistantMessage{Text: m.Content}, nil
	default:
		return nil, apperrors.NewUnsupportedRoleError(fmt.Sprintf("Unsupported role: %s", m.Role))
	}
}

// FromWire is the inverse of ToWire.
func FromWire(m llm.Message) (domain.ConversationMessage, error) {
	switch msg := m.(type) {
	case llm.UserMessage:
		return domain.ConversationMessage{Role: domain.RoleUser, Content: msg.Text}, nil
	case llm.AssistantMessage:
		return domain.ConversationMessage{Role: domain.RoleAssistant, Content: msg.Text}, nil
	default:
		return domain.ConversationMessage{}, apperrors.NewUnsupportedRoleError(fmt.Sprintf("Unsupported message type: %T", m))
	}
}

// ToWireAll maps a whole history in order.
func ToWireAll(history []domain.ConversationMessage) ([]llm.Message, error) {
	out := make([]llm.Message, 0, len(history))
	for _, m := range history {
		w, err := ToWire(m)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
