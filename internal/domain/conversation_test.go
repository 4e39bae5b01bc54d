package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
)

func TestNewConversationMessage(t *testing.T) {
	m, err := NewConversationMessage(RoleUser, "How long do I boil it?")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, m.Role)

	_, err = NewConversationMessage(RoleAssistant, strings.Repeat("a", 10001))
	assert.Error(t, err)

	_, err = NewConversationMessage("BOT", "hi")
	assert.Error(t, err)

	// SYSTEM is a valid domain role even though it has no wire form.
	_, err = NewConversationMessage(RoleSystem, "be nice")
	assert.NoError(t, err)
}

func TestNewChatAnswer(t *testing.T) {
	usage := UsageMetadata{InputTokens: 1, OutputTokens: 2, TotalTokens: 3, ModelID: "m"}

	a, err := NewChatAnswer("Boil for 8 minutes.", usage)
	require.NoError(t, err)
	assert.Equal(t, usage, a.Metadata)

	_, err = NewChatAnswer(strings.Repeat("ż", 10001), usage)
	assert.Error(t, err)
}

func TestStreamEvents(t *testing.T) {
	ev := AudioEvent([]byte{1, 2})
	assert.Equal(t, EventAudio, ev.Type)
	assert.Nil(t, ev.Answer)

	answer := &ChatAnswer{Text: "hi"}
	done := CompletionEvent(answer, nil)
	assert.Equal(t, EventAgentCompletion, done.Type)
	assert.Same(t, answer, done.Answer)
	assert.Nil(t, done.Usage)
}

func TestChatRequest_Validate(t *testing.T) {
	valid := func() ChatRequest {
		return ChatRequest{
			Schema:   RecipeSchema{Content: "Pasta", Ingredients: []Ingredient{}, PreparationTimeMinutes: 10, AIEstimations: []Estimation{}},
			Messages: []ConversationMessage{{Role: RoleUser, Content: "Salt?"}},
			Voice:    VoiceWoman,
			Language: LanguageFR,
		}
	}
	require.NoError(t, valid().Validate())

	empty := valid()
	empty.Messages = []ConversationMessage{}
	assert.NoError(t, empty.Validate(), "an empty history is a valid first question")

	tests := map[string]func(*ChatRequest){
		"null messages":     func(r *ChatRequest) { r.Messages = nil },
		"unknown role":      func(r *ChatRequest) { r.Messages[0].Role = "BOT" },
		"unknown voice":     func(r *ChatRequest) { r.Voice = "ROBOT" },
		"missing language":  func(r *ChatRequest) { r.Language = "" },
		"blank schema":      func(r *ChatRequest) { r.Schema.Content = " " },
		"time out of range": func(r *ChatRequest) { r.Schema.PreparationTimeMinutes = MaxPreparationMinutes + 1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			r := valid()
			mutate(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}
}
