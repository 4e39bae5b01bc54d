package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
	"github.com/hubertmaka/culinary-agent/internal/logger"
	"github.com/hubertmaka/culinary-agent/internal/metrics"
	"github.com/hubertmaka/culinary-agent/internal/services/ai"
	"github.com/hubertmaka/culinary-agent/internal/services/llm"
	"github.com/hubertmaka/culinary-agent/internal/telemetry"
)

var tracer = telemetry.Tracer("culinary-agent/chat")

type Service struct {
	provider    llm.Provider
	model       string
	instruction string
}

// NewService creates the chat agent. instruction is the final user turn
// template with {language} and {schema} placeholders.
func NewService(provider llm.Provider, model, instruction string) *Service {
	if instruction == "" {
		instruction = ai.ChatInstructionTemplate
	}
	return &Service{provider: provider, model: model, instruction: instruction}
}

// Chat answers the last turn of history about schema. The full history is
// sent on every call.
func (s *Service) Chat(ctx context.Context, schema domain.RecipeSchema, language domain.Language, history []domain.ConversationMessage) (answer domain.ChatAnswer, err error) {
	ctx, span := tracer.Start(ctx, "recipe.chat")
	span.SetAttributes(
		attribute.String("chat.language", string(language)),
		attribute.Int("chat.history", len(history)),
	)
	log := logger.FromContext(ctx)

	defer func() {
		metrics.RecordChat(ctx, metrics.Status(err))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	messages, err := ToWireAll(history)
	if err != nil {
		return domain.ChatAnswer{}, err
	}

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return domain.ChatAnswer{}, fmt.Errorf("encoding recipe schema: %w", err)
	}
	messages = append(messages, llm.UserMessage{
		Text: ai.RenderChatInstruction(s.instruction, language.DisplayName(), string(schemaJSON)),
	})

	resp, err := s.provider.Generate(ctx, llm.Request{
		Model:    s.model,
		System:   ai.BuildChatPrompt(),
		Messages: messages,
	})
	if err != nil {
		log.Error("Chat model call failed", "provider", s.provider.Name(), "error", err)
		return domain.ChatAnswer{}, apperrors.NewRecipeChatError("model call failed", "MODEL_CALL_FAILED", err)
	}
	if resp == nil || resp.Usage == nil {
		return domain.ChatAnswer{}, apperrors.NewRecipeChatError("metadata missing", "METADATA_MISSING", nil)
	}

	usage, err := domain.NewUsageMetadata(resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens, resp.Model)
	if err != nil {
		return domain.ChatAnswer{}, err
	}

	answer, err = domain.NewChatAnswer(resp.Text, usage)
	if err != nil {
		return domain.ChatAnswer{}, err
	}

	log.Debug("Chat answered", "history", len(history), "total_tokens", usage.TotalTokens)
	return answer, nil
}
